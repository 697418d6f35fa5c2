// Package autostart keeps the OS login-item registration in line with the
// persisted auto-start preference.
//
// Sync does not know how registration works on any platform. It drives a
// Launcher, which the caller picks per target OS (see pkg/launcher).
package autostart

import (
	"log/slog"

	"github.com/codeGROOVE-dev/autostart-sync/pkg/settings"
)

// Launcher registers or unregisters the application for launch at login.
type Launcher interface {
	Enable() error
	Disable() error
}

// SettingsReader returns the persisted preferences.
type SettingsReader interface {
	Settings() (settings.Settings, error)
}

// Sync applies auto-start state to a Launcher. It holds no state of its own
// and is safe to call repeatedly.
type Sync struct {
	launcher Launcher
	settings SettingsReader
	logger   *slog.Logger
}

// Option configures a Sync.
type Option func(*Sync)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sync) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Sync. settings may be nil if only SetEnabled is used.
func New(l Launcher, s SettingsReader, opts ...Option) *Sync {
	sy := &Sync{
		launcher: l,
		settings: s,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(sy)
	}
	return sy
}

// SetEnabled registers the application for launch at login when enabled is
// true, and unregisters it otherwise.
func (s *Sync) SetEnabled(enabled bool) error {
	action, call := ActionDisable, s.launcher.Disable
	if enabled {
		action, call = ActionEnable, s.launcher.Enable
	}

	s.logger.Debug("Applying auto start", "action", action)
	if err := call(); err != nil {
		return &Error{Kind: KindManager, Action: action, Err: err}
	}
	s.logger.Info("[AUTOSTART] Applied", "enabled", enabled)
	return nil
}

// SyncFromSettings reads the persisted preference and applies it.
// A settings read failure is returned as-is and the launcher is not touched.
func (s *Sync) SyncFromSettings() error {
	if s.settings == nil {
		return &Error{Kind: KindSettingsRead, Err: errNoSettings}
	}
	cur, err := s.settings.Settings()
	if err != nil {
		return &Error{Kind: KindSettingsRead, Err: err}
	}
	s.logger.Debug("Loaded settings", "auto_start", cur.AutoStart)
	return s.SetEnabled(cur.AutoStart)
}
