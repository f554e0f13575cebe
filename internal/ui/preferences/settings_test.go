package preferences

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	settings := DefaultSettings()
	assert.Equal(t, settings, settings.Normalize())
	require.NoError(t, settings.WorkoutConfig().Validate())
	assert.True(t, settings.Sound)
	assert.True(t, settings.KeepAwake)
}

func TestNormalizeClamps(t *testing.T) {
	settings := Settings{
		WorkSeconds:     0,
		RestSeconds:     5000,
		Rounds:          120,
		GetReadySeconds: -3,
	}.Normalize()

	assert.Equal(t, MinPhaseSeconds, settings.WorkSeconds)
	assert.Equal(t, MaxPhaseSeconds, settings.RestSeconds)
	assert.Equal(t, MaxRounds, settings.Rounds)
	assert.Equal(t, MinGetReadySeconds, settings.GetReadySeconds)
	require.NoError(t, settings.WorkoutConfig().Validate())
}

func TestWorkoutConfig(t *testing.T) {
	settings := DefaultSettings()
	settings.RestAfterFinalRound = true
	config := settings.WorkoutConfig()

	assert.Equal(t, settings.WorkSeconds, config.WorkSeconds)
	assert.Equal(t, settings.RestSeconds, config.RestSeconds)
	assert.Equal(t, settings.Rounds, config.Rounds)
	assert.Equal(t, settings.GetReadySeconds, config.GetReadySeconds)
	assert.True(t, config.RestAfterFinalRound)
}
