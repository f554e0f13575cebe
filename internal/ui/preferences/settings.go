package preferences

import (
	"tabata/internal/core/model"
)

// Input ranges accepted by the settings form.
const (
	MinPhaseSeconds    = 1
	MaxPhaseSeconds    = 3600
	MinRounds          = 1
	MaxRounds          = 99
	MinGetReadySeconds = 0
	MaxGetReadySeconds = 300
)

// Settings defines editable user preferences.
type Settings struct {
	WorkSeconds         int
	RestSeconds         int
	Rounds              int
	GetReadySeconds     int
	RestAfterFinalRound bool

	Sound     bool
	KeepAwake bool
}

// DefaultSettings returns default settings for Tabata.
func DefaultSettings() Settings {
	workout := model.DefaultWorkoutConfig()
	return Settings{
		WorkSeconds:     workout.WorkSeconds,
		RestSeconds:     workout.RestSeconds,
		Rounds:          workout.Rounds,
		GetReadySeconds: workout.GetReadySeconds,
		Sound:           true,
		KeepAwake:       true,
	}
}

// Normalize clamps every number into its input range.
func (settings Settings) Normalize() Settings {
	settings.WorkSeconds = clamp(settings.WorkSeconds, MinPhaseSeconds, MaxPhaseSeconds)
	settings.RestSeconds = clamp(settings.RestSeconds, MinPhaseSeconds, MaxPhaseSeconds)
	settings.Rounds = clamp(settings.Rounds, MinRounds, MaxRounds)
	settings.GetReadySeconds = clamp(settings.GetReadySeconds, MinGetReadySeconds, MaxGetReadySeconds)
	return settings
}

// WorkoutConfig converts settings to a session config.
func (settings Settings) WorkoutConfig() model.WorkoutConfig {
	return model.WorkoutConfig{
		WorkSeconds:         settings.WorkSeconds,
		RestSeconds:         settings.RestSeconds,
		GetReadySeconds:     settings.GetReadySeconds,
		Rounds:              settings.Rounds,
		RestAfterFinalRound: settings.RestAfterFinalRound,
	}
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
