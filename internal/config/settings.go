package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Settings holds the user-tunable configuration loaded from YAML.
type Settings struct {
	Storage   StorageSettings  `yaml:"storage"`
	Language  string           `yaml:"language"`
	Birthdays BirthdaySettings `yaml:"birthdays"`
	Calendar  CalendarSettings `yaml:"calendar"`
}

// StorageSettings selects the persistence backend and its file.
type StorageSettings struct {
	Driver string `yaml:"driver"` // DriverBolt | DriverSQLite
	Path   string `yaml:"path"`
}

// BirthdaySettings controls the upcoming-birthday query.
type BirthdaySettings struct {
	WindowDays int `yaml:"window_days"`
}

// CalendarSettings controls the iCalendar export.
type CalendarSettings struct {
	ReminderTrigger string `yaml:"reminder_trigger"` // ISO8601 duration, e.g. "-P1D"
}

// DefaultSettings returns Settings with the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Storage: StorageSettings{
			Driver: DefaultDriver,
			Path:   DefaultDataFile,
		},
		Language: DefaultLanguage,
		Birthdays: BirthdaySettings{
			WindowDays: DefaultWindowDays,
		},
	}
}

// LoadSettings reads a YAML settings file on top of the defaults.
// A missing or empty file yields the defaults. Unknown fields are rejected.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return &s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &s, nil
		}
		return nil, fmt.Errorf("%s: %s: %w", ErrSettingsRead, path, err)
	}

	if len(data) == 0 {
		return &s, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		// Comment-only files decode to EOF.
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("%s: %s: %w", ErrSettingsParse, path, err)
	}

	return &s, nil
}

// ApplyEnv applies environment variable overrides.
// Supported variables: ADDRESSBOOK_DATA, ADDRESSBOOK_DRIVER, ADDRESSBOOK_LANG, ADDRESSBOOK_WINDOW_DAYS.
func (s *Settings) ApplyEnv() error {
	if v := os.Getenv(EnvData); v != "" {
		s.Storage.Path = v
	}
	if v := os.Getenv(EnvDriver); v != "" {
		s.Storage.Driver = v
	}
	if v := os.Getenv(EnvLang); v != "" {
		s.Language = v
	}
	if v := os.Getenv(EnvWindowDays); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %s=%q: %w", ErrSettingsInvalid, EnvWindowDays, v, err)
		}
		s.Birthdays.WindowDays = n
	}
	return nil
}

// Validate checks that the settings are usable.
func (s *Settings) Validate() error {
	switch s.Storage.Driver {
	case DriverBolt, DriverSQLite:
	default:
		return fmt.Errorf("%s: %q", ErrDriverUnsupport, s.Storage.Driver)
	}
	if s.Storage.Path == "" {
		return fmt.Errorf("%s: storage.path cannot be empty", ErrSettingsInvalid)
	}
	if !slices.Contains(SupportedLanguages, s.Language) {
		return fmt.Errorf("%s: language must be one of %v, got %q", ErrSettingsInvalid, SupportedLanguages, s.Language)
	}
	if s.Birthdays.WindowDays < 0 || s.Birthdays.WindowDays > MaxWindowDays {
		return fmt.Errorf("%s: birthdays.window_days must be between 0 and %d, got %d",
			ErrSettingsInvalid, MaxWindowDays, s.Birthdays.WindowDays)
	}
	return nil
}
