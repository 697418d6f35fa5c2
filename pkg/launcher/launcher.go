// Package launcher registers the application for launch at user login using
// github.com/emersion/go-autostart, which writes a LaunchAgent plist on macOS,
// an XDG desktop entry on Linux and a Startup shortcut on Windows.
package launcher

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"
)

// backend is the part of *autostart.App this package drives.
type backend interface {
	IsEnabled() bool
	Enable() error
	Disable() error
}

// Launcher is a login-item registration for one executable.
type Launcher struct {
	app  backend
	name string
	exec []string
}

// New creates a launcher that starts exec[0] with the remaining arguments.
func New(name, displayName string, exec []string) *Launcher {
	return &Launcher{
		app: &autostart.App{
			Name:        name,
			DisplayName: displayName,
			Exec:        exec,
		},
		name: name,
		exec: exec,
	}
}

// ForExecutable creates a launcher for the running binary.
func ForExecutable(name, displayName string, args ...string) (*Launcher, error) {
	if name == "" {
		return nil, errors.New("launcher name is required")
	}
	path, err := executablePath()
	if err != nil {
		return nil, err
	}
	return New(name, displayName, append([]string{path}, args...)), nil
}

// executablePath returns the running binary with symlinks resolved, so the
// registration survives a package manager swapping the link.
func executablePath() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("get executable: %w", err)
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return "", fmt.Errorf("eval symlinks: %w", err)
	}
	return execPath, nil
}

// Name returns the registration name.
func (l *Launcher) Name() string { return l.name }

// Exec returns the command line that runs at login.
func (l *Launcher) Exec() []string { return l.exec }

// IsEnabled reports whether the application is registered.
func (l *Launcher) IsEnabled() bool {
	return l.app.IsEnabled()
}

// Enable registers the application. An existing registration is rewritten
// so a moved binary is picked up.
func (l *Launcher) Enable() error {
	if len(l.exec) == 0 {
		return errors.New("no command to launch")
	}
	slog.Debug("Registering login item", "name", l.name, "exec", l.exec)
	return l.app.Enable()
}

// Disable removes the registration. It succeeds if there is none.
// Backend errors are returned as-is; callers add the action context.
func (l *Launcher) Disable() error {
	if !l.app.IsEnabled() {
		slog.Debug("Login item not registered", "name", l.name)
		return nil
	}
	slog.Debug("Removing login item", "name", l.name)
	return l.app.Disable()
}
