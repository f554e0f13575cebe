package main

import (
	"github.com/spf13/pflag"

	"tabata/internal/ui/preferences"
)

var workoutFlagAliases = map[string]string{
	"cycles":  "rounds",
	"prepare": "get-ready",
}

// workoutFlags override saved settings for a single run. They are never
// written back to the settings file.
type workoutFlags struct {
	work      int
	rest      int
	rounds    int
	getReady  int
	finalRest bool
	mute      bool
}

func newWorkoutFlags() *workoutFlags {
	return &workoutFlags{}
}

func (flags *workoutFlags) register(set *pflag.FlagSet) {
	defaults := preferences.DefaultSettings()
	set.IntVarP(&flags.work, "work", "w", defaults.WorkSeconds, "Work interval in seconds")
	set.IntVarP(&flags.rest, "rest", "r", defaults.RestSeconds, "Rest interval in seconds")
	set.IntVarP(&flags.rounds, "rounds", "n", defaults.Rounds, "Number of rounds")
	set.IntVar(&flags.getReady, "get-ready", defaults.GetReadySeconds, "Get-ready countdown in seconds, 0 to skip")
	set.BoolVar(&flags.finalRest, "final-rest", false, "Rest after the final round")
	set.BoolVar(&flags.mute, "mute", false, "Disable sound cues")
	setFlagAliases(set, workoutFlagAliases)
}

// apply copies every flag the user set onto settings.
func (flags *workoutFlags) apply(set *pflag.FlagSet, settings preferences.Settings) preferences.Settings {
	if set.Changed("work") {
		settings.WorkSeconds = flags.work
	}
	if set.Changed("rest") {
		settings.RestSeconds = flags.rest
	}
	if set.Changed("rounds") {
		settings.Rounds = flags.rounds
	}
	if set.Changed("get-ready") {
		settings.GetReadySeconds = flags.getReady
	}
	if set.Changed("final-rest") {
		settings.RestAfterFinalRound = flags.finalRest
	}
	if set.Changed("mute") {
		settings.Sound = !flags.mute
	}
	return settings.Normalize()
}

func setFlagAliases(set *pflag.FlagSet, aliases map[string]string) {
	if len(aliases) == 0 {
		return
	}

	normalize := set.GetNormalizeFunc()
	set.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		return normalize(f, name)
	})
}
