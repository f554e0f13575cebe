package model

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates a workout configuration that cannot be run.
var ErrInvalidConfig = errors.New("invalid workout config")

// WorkoutConfig contains the settings for a single interval session.
type WorkoutConfig struct {
	WorkSeconds     int
	RestSeconds     int
	GetReadySeconds int
	Rounds          int

	// RestAfterFinalRound keeps the rest phase after the last work phase.
	// When false the session completes as soon as the final work ends.
	RestAfterFinalRound bool
}

// DefaultWorkoutConfig returns the classic 8 x (20s work + 10s rest) workout.
func DefaultWorkoutConfig() WorkoutConfig {
	return WorkoutConfig{
		WorkSeconds:     20,
		RestSeconds:     10,
		GetReadySeconds: 10,
		Rounds:          8,
	}
}

// Validate reports the first field that makes the config unusable.
func (config WorkoutConfig) Validate() error {
	if config.WorkSeconds <= 0 {
		return fmt.Errorf("%w: work seconds must be positive, got %d", ErrInvalidConfig, config.WorkSeconds)
	}
	if config.RestSeconds <= 0 {
		return fmt.Errorf("%w: rest seconds must be positive, got %d", ErrInvalidConfig, config.RestSeconds)
	}
	if config.GetReadySeconds < 0 {
		return fmt.Errorf("%w: get ready seconds must not be negative, got %d", ErrInvalidConfig, config.GetReadySeconds)
	}
	if config.Rounds < 1 {
		return fmt.Errorf("%w: rounds must be at least 1, got %d", ErrInvalidConfig, config.Rounds)
	}
	return nil
}

// RoundSeconds is the length of one work+rest pair.
func (config WorkoutConfig) RoundSeconds() int {
	return config.WorkSeconds + config.RestSeconds
}

// WorkoutSeconds is the nominal workout length used as the progress
// denominator. It always counts every rest, including the final one.
func (config WorkoutConfig) WorkoutSeconds() int {
	return config.Rounds * config.RoundSeconds()
}

// TotalSeconds is the number of ticks from a fresh start to completion.
func (config WorkoutConfig) TotalSeconds() int {
	total := config.GetReadySeconds + config.WorkoutSeconds()
	if !config.RestAfterFinalRound {
		total -= config.RestSeconds
	}
	return total
}
