package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"tabata/internal/i18n"
)

// Window handles the preferences UI.
type Window struct {
	window    fyne.Window
	settings  Settings
	onApply   func(Settings) bool
	rounds    *widget.Entry
	work      *widget.Entry
	rest      *widget.Entry
	getReady  *widget.Entry
	finalRest *widget.Check
	sound     *widget.Check
	keepAwake *widget.Check
	apply     *widget.Button
	defaults  *widget.Button
	cancel    *widget.Button
}

// New creates a preferences window. onApply receives normalized settings
// and returns false to keep the window open.
func New(app fyne.App, settings Settings, onApply func(Settings) bool) *Window {
	window := app.NewWindow(i18n.T("Settings"))

	prefs := &Window{
		window:    window,
		settings:  settings,
		onApply:   onApply,
		rounds:    newNumberEntry(MinRounds, MaxRounds),
		work:      newNumberEntry(MinPhaseSeconds, MaxPhaseSeconds),
		rest:      newNumberEntry(MinPhaseSeconds, MaxPhaseSeconds),
		getReady:  newNumberEntry(MinGetReadySeconds, MaxGetReadySeconds),
		finalRest: widget.NewCheck(i18n.T("Rest after the final round"), nil),
		sound:     widget.NewCheck(i18n.T("Sound cues"), nil),
		keepAwake: widget.NewCheck(i18n.T("Keep screen awake"), nil),
	}

	form := widget.NewForm(
		widget.NewFormItem(i18n.T("Rounds"), prefs.rounds),
		widget.NewFormItem(i18n.T("Work (seconds)"), prefs.work),
		widget.NewFormItem(i18n.T("Rest (seconds)"), prefs.rest),
		widget.NewFormItem(i18n.T("Get ready (seconds)"), prefs.getReady),
	)

	prefs.apply = widget.NewButton(i18n.T("Apply"), prefs.handleApply)
	prefs.apply.Importance = widget.HighImportance
	prefs.defaults = widget.NewButton(i18n.T("Defaults"), prefs.resetToDefaults)
	prefs.cancel = widget.NewButton(i18n.T("Cancel"), func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(prefs.apply, prefs.defaults, layout.NewSpacer(), prefs.cancel)

	content := container.NewBorder(nil, buttons, nil, nil,
		container.NewVBox(form, prefs.finalRest, prefs.sound, prefs.keepAwake))
	window.SetContent(content)
	window.Resize(fyne.NewSize(380, 320))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Window returns the underlying fyne window, e.g. as a dialog parent.
func (prefs *Window) Window() fyne.Window {
	return prefs.window
}

// Settings returns the last applied settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.fill(settings)
}

func (prefs *Window) fill(settings Settings) {
	prefs.rounds.SetText(strconv.Itoa(settings.Rounds))
	prefs.work.SetText(strconv.Itoa(settings.WorkSeconds))
	prefs.rest.SetText(strconv.Itoa(settings.RestSeconds))
	prefs.getReady.SetText(strconv.Itoa(settings.GetReadySeconds))
	prefs.finalRest.SetChecked(settings.RestAfterFinalRound)
	prefs.sound.SetChecked(settings.Sound)
	prefs.keepAwake.SetChecked(settings.KeepAwake)
}

// resetToDefaults fills the form with defaults without applying them.
func (prefs *Window) resetToDefaults() {
	prefs.fill(DefaultSettings())
}

func (prefs *Window) formSettings() Settings {
	settings := prefs.settings
	if value, ok := parseInt(prefs.rounds.Text); ok {
		settings.Rounds = value
	}
	if value, ok := parseInt(prefs.work.Text); ok {
		settings.WorkSeconds = value
	}
	if value, ok := parseInt(prefs.rest.Text); ok {
		settings.RestSeconds = value
	}
	if value, ok := parseInt(prefs.getReady.Text); ok {
		settings.GetReadySeconds = value
	}
	settings.RestAfterFinalRound = prefs.finalRest.Checked
	settings.Sound = prefs.sound.Checked
	settings.KeepAwake = prefs.keepAwake.Checked
	return settings.Normalize()
}

func (prefs *Window) handleApply() {
	settings := prefs.formSettings()
	if prefs.onApply != nil && !prefs.onApply(settings) {
		return
	}
	prefs.UpdateSettings(settings)
	prefs.window.Hide()
}

// newNumberEntry returns an entry that caps typed values at max. Values
// below min are raised by Normalize on apply.
func newNumberEntry(min, max int) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(fmt.Sprintf("%d-%d", min, max))
	entry.OnChanged = func(text string) {
		if value, ok := parseInt(text); ok && value > max {
			entry.SetText(strconv.Itoa(max))
		}
	}
	return entry
}

func parseInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return parsed, true
}
