package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"tabata/internal/platform"
	"tabata/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkSeconds         int   `yaml:"work_seconds"`
	RestSeconds         int   `yaml:"rest_seconds"`
	Rounds              int   `yaml:"total_rounds"`
	GetReadySeconds     *int  `yaml:"get_ready_seconds,omitempty"`
	RestAfterFinalRound bool  `yaml:"rest_after_final_round"`
	Sound               *bool `yaml:"sound,omitempty"`
	KeepAwake           *bool `yaml:"keep_awake,omitempty"`
}

// Store reads and writes user preferences in a YAML file.
type Store struct {
	path string
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, settingsFileName)}
}

// DefaultStore returns the store in the user's config directory.
func DefaultStore(appName string) (*Store, error) {
	appDir, err := platform.NewService().AppConfigDir(appName)
	if err != nil {
		return nil, fmt.Errorf("resolve settings dir: %w", err)
	}
	return NewStore(appDir), nil
}

// Path returns the settings file location.
func (store *Store) Path() string {
	return store.path
}

// Load reads user preferences.
// If the file does not exist, default settings are returned.
func (store *Store) Load() (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings.Normalize(), nil
}

// Save writes user preferences.
func (store *Store) Save(settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	getReady := settings.GetReadySeconds
	sound := settings.Sound
	keepAwake := settings.KeepAwake
	fileData := yamlSettings{
		WorkSeconds:         settings.WorkSeconds,
		RestSeconds:         settings.RestSeconds,
		Rounds:              settings.Rounds,
		GetReadySeconds:     &getReady,
		RestAfterFinalRound: settings.RestAfterFinalRound,
		Sound:               &sound,
		KeepAwake:           &keepAwake,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.WorkSeconds > 0 {
		settings.WorkSeconds = fileData.WorkSeconds
	}
	if fileData.RestSeconds > 0 {
		settings.RestSeconds = fileData.RestSeconds
	}
	if fileData.Rounds > 0 {
		settings.Rounds = fileData.Rounds
	}
	if fileData.GetReadySeconds != nil && *fileData.GetReadySeconds >= 0 {
		settings.GetReadySeconds = *fileData.GetReadySeconds
	}
	if fileData.Sound != nil {
		settings.Sound = *fileData.Sound
	}
	if fileData.KeepAwake != nil {
		settings.KeepAwake = *fileData.KeepAwake
	}

	settings.RestAfterFinalRound = fileData.RestAfterFinalRound
}
