package display

import (
	"fmt"
	"image/color"

	"tabata/internal/core/model"
	"tabata/internal/core/session"
	"tabata/internal/i18n"
)

var (
	idleColor     = color.NRGBA{R: 0x2d, G: 0x2d, B: 0x2d, A: 0xff}
	getReadyColor = color.NRGBA{R: 0xf3, G: 0x9c, B: 0x12, A: 0xff}
	workColor     = color.NRGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
	restColor     = color.NRGBA{R: 0x27, G: 0xae, B: 0x60, A: 0xff}
	completeColor = color.NRGBA{R: 0x8e, G: 0x44, B: 0xad, A: 0xff}
)

// View is the text and colour shown for a session snapshot.
type View struct {
	Phase       string
	Time        string
	Round       string
	TotalRounds string
	Progress    float64
	Background  color.NRGBA
	ToggleLabel string
}

// ViewOf maps a snapshot to display values.
func ViewOf(snapshot session.Snapshot) View {
	view := View{
		Time:        FormatTime(snapshot.Remaining),
		Round:       fmt.Sprintf("%d", snapshot.Round),
		TotalRounds: fmt.Sprintf("/ %d", snapshot.TotalRounds),
		Progress:    snapshot.Progress,
		ToggleLabel: i18n.T("Start"),
	}

	switch snapshot.Phase {
	case session.PhaseGetReady:
		view.Phase = i18n.T("GET READY")
		view.Background = getReadyColor
	case session.PhaseWork:
		view.Phase = i18n.T("WORK")
		view.Background = workColor
	case session.PhaseRest:
		view.Phase = i18n.T("REST")
		view.Background = restColor
	case session.PhaseComplete:
		view.Phase = i18n.T("Workout Complete!")
		view.Background = completeColor
	default:
		view.Phase = i18n.T("Press to start")
		view.Time = FormatTime(0)
		view.Progress = 0
		view.Background = idleColor
	}

	switch {
	case snapshot.Running:
		view.ToggleLabel = i18n.T("Pause")
	case snapshot.Paused():
		view.Phase = fmt.Sprintf("%s (%s)", view.Phase, i18n.T("PAUSED"))
		view.ToggleLabel = i18n.T("Resume")
	}
	return view
}

// FormatTime converts seconds into mm:ss.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Description summarizes a workout, e.g. "8 rounds × (20s work + 10s rest) = 240s".
func Description(config model.WorkoutConfig) string {
	return fmt.Sprintf(i18n.T("%d rounds × (%ds work + %ds rest) = %ds"),
		config.Rounds, config.WorkSeconds, config.RestSeconds, config.WorkoutSeconds())
}
