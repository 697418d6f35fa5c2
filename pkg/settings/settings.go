// Package settings reads and writes the persisted preferences record that
// holds the auto-start flag.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const autoStartKey = "auto_start"

// Settings is the subset of the preferences record this module cares about.
type Settings struct {
	AutoStart bool `json:"auto_start"`
}

// Store loads and saves settings on disk.
type Store struct {
	appName string
	path    string
}

// NewStore creates a store for <UserConfigDir>/<appName>/settings.json.
func NewStore(appName string) *Store {
	return &Store{appName: appName}
}

// NewStoreAt creates a store backed by an explicit file.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the path to the settings file.
func (s *Store) Path() (string, error) {
	if s.path != "" {
		return s.path, nil
	}
	if s.appName == "" {
		return "", errors.New("settings store has no app name or path")
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(configDir, s.appName, "settings.json"), nil
}

// Settings reads the current settings.
// A missing file yields the zero value, which has auto-start disabled.
func (s *Store) Settings() (Settings, error) {
	var out Settings
	data, err := s.read()
	if err != nil || data == nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return out, nil
}

// Save writes settings, replacing the whole file.
func (s *Store) Save(settings Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	return s.write(data)
}

// SetAutoStart updates only the auto-start flag. Keys written by other parts
// of the application are kept as they are.
func (s *Store) SetAutoStart(enabled bool) error {
	data, err := s.read()
	if err != nil {
		return err
	}

	fields := make(map[string]json.RawMessage)
	if data != nil {
		if err := json.Unmarshal(data, &fields); err != nil {
			return fmt.Errorf("parse settings: %w", err)
		}
	}

	raw, err := json.Marshal(enabled)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", autoStartKey, err)
	}
	fields[autoStartKey] = raw

	out, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	return s.write(out)
}

// read returns nil data without error when the file does not exist.
func (s *Store) read() ([]byte, error) {
	path, err := s.Path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read settings file: %w", err)
	}
	return data, nil
}

func (s *Store) write(data []byte) error {
	path, err := s.Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}
