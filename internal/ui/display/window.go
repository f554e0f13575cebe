package display

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"tabata/internal/core/model"
	"tabata/internal/core/session"
	"tabata/internal/i18n"
	"tabata/internal/ui/animation"
)

const (
	phaseTextSize = 28
	timeTextSize  = 96
	roundTextSize = 36
	totalTextSize = 22
)

// Callbacks defines timer window action handlers.
type Callbacks struct {
	OnToggle   func()
	OnReset    func()
	OnSettings func()
}

// Window manages the main timer UI. Its methods must run on the fyne
// goroutine; wrap calls from event loops in fyne.Do.
type Window struct {
	window         fyne.Window
	background     *canvas.Rectangle
	phaseLabel     *canvas.Text
	timeLabel      *canvas.Text
	roundLabel     *canvas.Text
	totalLabel     *canvas.Text
	progress       *widget.ProgressBar
	description    *widget.Label
	hint           *widget.Label
	toggleButton   *widget.Button
	resetButton    *widget.Button
	settingsButton *widget.Button
	face           *tapArea
	callbacks      Callbacks
	view           View
	frame          animation.Frame
}

// New creates the timer window.
func New(app fyne.App, title string, callbacks Callbacks) *Window {
	window := app.NewWindow(title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	background := canvas.NewRectangle(idleColor)

	phaseLabel := canvas.NewText("", color.White)
	phaseLabel.Alignment = fyne.TextAlignCenter
	phaseLabel.TextStyle = fyne.TextStyle{Bold: true}
	phaseLabel.TextSize = phaseTextSize

	timeLabel := canvas.NewText(FormatTime(0), color.White)
	timeLabel.Alignment = fyne.TextAlignCenter
	timeLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timeLabel.TextSize = timeTextSize

	roundLabel := canvas.NewText("0", color.White)
	roundLabel.TextStyle = fyne.TextStyle{Bold: true}
	roundLabel.TextSize = roundTextSize

	totalLabel := canvas.NewText("/ 0", color.NRGBA{R: 255, G: 255, B: 255, A: 190})
	totalLabel.TextSize = totalTextSize

	progress := widget.NewProgressBar()
	progress.TextFormatter = func() string { return "" }

	description := widget.NewLabel("")
	description.Alignment = fyne.TextAlignCenter
	description.Wrapping = fyne.TextWrapWord

	hint := widget.NewLabel(i18n.T("Press Space to start/pause • Press R to reset"))
	hint.Alignment = fyne.TextAlignCenter
	hint.Importance = widget.LowImportance

	display := &Window{
		window:      window,
		background:  background,
		phaseLabel:  phaseLabel,
		timeLabel:   timeLabel,
		roundLabel:  roundLabel,
		totalLabel:  totalLabel,
		progress:    progress,
		description: description,
		hint:        hint,
		callbacks:   callbacks,
	}

	display.toggleButton = widget.NewButton(i18n.T("Start"), display.toggle)
	display.toggleButton.Importance = widget.HighImportance
	display.resetButton = widget.NewButton(i18n.T("Reset"), display.reset)
	display.settingsButton = widget.NewButton(i18n.T("Settings"), func() {
		if display.callbacks.OnSettings != nil {
			display.callbacks.OnSettings()
		}
	})

	faceContent := container.NewStack(
		background,
		container.NewPadded(container.NewVBox(
			layout.NewSpacer(),
			container.NewCenter(phaseLabel),
			container.NewCenter(timeLabel),
			container.NewCenter(container.NewHBox(roundLabel, totalLabel)),
			layout.NewSpacer(),
		)),
	)
	display.face = newTapArea(faceContent, display.toggle)

	buttons := container.NewHBox(display.toggleButton, display.resetButton, layout.NewSpacer(), display.settingsButton)
	footer := container.NewVBox(progress, description, buttons, hint)
	window.SetContent(container.NewBorder(nil, footer, nil, nil, display.face))
	window.Resize(fyne.NewSize(420, 520))

	window.Canvas().SetOnTypedKey(display.handleKey)

	return display
}

// Show displays the window.
func (display *Window) Show() {
	display.window.Show()
	display.window.RequestFocus()
}

// Window returns the underlying fyne window.
func (display *Window) Window() fyne.Window {
	return display.window
}

// Render updates every label from a session snapshot.
func (display *Window) Render(snapshot session.Snapshot) {
	display.view = ViewOf(snapshot)

	display.phaseLabel.Text = display.view.Phase
	display.timeLabel.Text = display.view.Time
	display.roundLabel.Text = display.view.Round
	display.totalLabel.Text = display.view.TotalRounds
	display.toggleButton.SetText(display.view.ToggleLabel)
	display.progress.SetValue(display.view.Progress)

	display.phaseLabel.Refresh()
	display.timeLabel.Refresh()
	display.totalLabel.Refresh()
	display.applyFrame()
}

// SetWorkout updates the workout description line.
func (display *Window) SetWorkout(config model.WorkoutConfig) {
	display.description.SetText(Description(config))
}

// ApplyFrame shows an animation frame on top of the current view.
func (display *Window) ApplyFrame(frame animation.Frame) {
	display.frame = frame
	display.applyFrame()
}

func (display *Window) applyFrame() {
	display.background.FillColor = display.view.Background
	if display.frame.Accent != nil {
		display.background.FillColor = display.frame.Accent
	}
	display.roundLabel.TextSize = roundTextSize * display.frame.Scale()

	display.background.Refresh()
	display.roundLabel.Refresh()
}

func (display *Window) handleKey(event *fyne.KeyEvent) {
	switch event.Name {
	case fyne.KeySpace:
		display.toggle()
	case fyne.KeyR:
		display.reset()
	}
}

func (display *Window) toggle() {
	if display.callbacks.OnToggle != nil {
		display.callbacks.OnToggle()
	}
}

func (display *Window) reset() {
	if display.callbacks.OnReset != nil {
		display.callbacks.OnReset()
	}
}
