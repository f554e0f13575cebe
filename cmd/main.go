// Package main implements the tabata interval timer.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"tabata/internal/storage"
	"tabata/internal/ui/preferences"
)

const (
	appName = "Tabata"
	appID   = "com.tabata.timer"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "tabata",
	Short:        "Tabata interval timer",
	Long:         "Tabata counts down work and rest intervals for a fixed number of rounds.\nWithout a subcommand it opens the timer window.",
	Version:      version,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runGUI,
}

var overrides = newWorkoutFlags()

func init() {
	overrides.register(rootCmd.PersistentFlags())
	rootCmd.AddCommand(runCmd)
}

// loadSettings reads saved settings and applies command-line overrides.
// The returned store is nil when the config directory is unavailable.
func loadSettings(cmd *cobra.Command) (preferences.Settings, *storage.Store) {
	settings := preferences.DefaultSettings()
	store, err := storage.DefaultStore(appName)
	if err != nil {
		log.Printf("settings: %v", err)
	} else {
		loaded, err := store.Load()
		if err != nil {
			log.Printf("settings: using defaults, %s: %v", store.Path(), err)
		} else {
			settings = loaded
		}
	}
	return overrides.apply(cmd.Flags(), settings), store
}
