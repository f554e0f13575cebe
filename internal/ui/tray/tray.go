package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"tabata/internal/core/session"
	"tabata/internal/i18n"
	"tabata/internal/ui/display"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow     func()
	OnToggle   func()
	OnReset    func()
	OnSettings func()
	OnQuit     func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	title      string
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	resetItem  *fyne.MenuItem
	menu       *fyne.Menu
}

// New creates a tray manager with the provided callbacks. A nil app
// keeps the menu state without installing it, which tests rely on.
func New(app desktop.App, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		title:     title,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem(i18n.T("Press to start"), nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem(i18n.T("Start"), callback(&manager.callbacks.OnToggle))
	manager.resetItem = fyne.NewMenuItem(i18n.T("Reset"), callback(&manager.callbacks.OnReset))
	manager.resetItem.Disabled = true

	show := fyne.NewMenuItem(i18n.T("Show timer"), callback(&manager.callbacks.OnShow))
	settings := fyne.NewMenuItem(i18n.T("Settings"), callback(&manager.callbacks.OnSettings))
	quit := fyne.NewMenuItem(i18n.T("Quit"), callback(&manager.callbacks.OnQuit))
	quit.IsQuit = true

	manager.menu = fyne.NewMenu(title,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		show,
		settings,
		quit,
	)
	if app != nil {
		app.SetSystemTrayMenu(manager.menu)
	}
	return manager
}

// Update reflects a session snapshot in the menu.
func (manager *Manager) Update(snapshot session.Snapshot) {
	view := display.ViewOf(snapshot)

	status := view.Phase
	if snapshot.Phase.Active() {
		status = fmt.Sprintf("%s %s · %s %d/%d", view.Phase, view.Time, i18n.T("Round"), snapshot.Round, snapshot.TotalRounds)
	}
	manager.statusItem.Label = status
	manager.toggleItem.Label = view.ToggleLabel
	manager.resetItem.Disabled = !snapshot.EverStarted

	manager.refreshMenu()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

// Menu returns the tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.menu.Refresh()
	}
}

func callback(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
