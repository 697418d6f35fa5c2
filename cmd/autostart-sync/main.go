// Package main implements a small command that keeps an application's
// launch-at-login registration in step with its saved settings.
//
// Usage:
//
//	autostart-sync [flags] [sync|enable|disable|status]
//
// sync applies the saved preference, and is what an application runs at
// startup. enable and disable save a new preference and apply it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/codeGROOVE-dev/autostart-sync/pkg/autostart"
	"github.com/codeGROOVE-dev/autostart-sync/pkg/launcher"
	"github.com/codeGROOVE-dev/autostart-sync/pkg/logging"
	"github.com/codeGROOVE-dev/autostart-sync/pkg/settings"
)

// Version information - set during build with -ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// reportedError is an error that run has already logged.
type reportedError struct {
	error
}

func (e *reportedError) Unwrap() error { return e.error }

// registrar is a launcher that can also report its current state.
type registrar interface {
	autostart.Launcher
	IsEnabled() bool
}

// newRegistrar is replaced in tests.
var newRegistrar = func(name, displayName string) (registrar, error) {
	l, err := launcher.ForExecutable(name, displayName)
	if err != nil {
		return nil, err
	}
	return l, nil
}

type config struct {
	appName      string
	displayName  string
	settingsPath string
	logFile      string
	verb         string
	debug        bool
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}
	fs := flag.NewFlagSet("autostart-sync", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.appName, "app", "", "Application name used for the settings directory and login item (required)")
	fs.StringVar(&cfg.displayName, "display-name", "", "Human readable login item name (defaults to -app)")
	fs.StringVar(&cfg.settingsPath, "settings", "", "Explicit settings file (defaults to <config dir>/<app>/settings.json)")
	fs.StringVar(&cfg.logFile, "log-file", "", "Also write logs to this file")
	fs.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch fs.NArg() {
	case 0:
		cfg.verb = "sync"
	case 1:
		cfg.verb = fs.Arg(0)
	default:
		return nil, fmt.Errorf("expected at most one command, got %d", fs.NArg())
	}
	switch cfg.verb {
	case "sync", "enable", "disable", "status":
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.verb)
	}

	if cfg.appName == "" {
		return nil, errors.New("-app is required")
	}
	if cfg.displayName == "" {
		cfg.displayName = cfg.appName
	}
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Setup(logging.Options{
		Stderr:  stderr,
		LogFile: cfg.logFile,
		Debug:   cfg.debug,
	})
	if err != nil {
		return err
	}
	prev := slog.Default()
	defer slog.SetDefault(prev)
	defer func() {
		if err := closeLog(); err != nil {
			_, _ = fmt.Fprintf(stderr, "close log file: %v\n", err)
		}
	}()
	slog.SetDefault(logger)
	logger.Debug("Starting autostart-sync", "version", version, "commit", commit, "command", cfg.verb)

	// Failures are logged here so they reach the log file before it closes.
	if err := execute(cfg, logger, stdout); err != nil {
		logger.Error("autostart-sync failed", "error", err,
			"settings_error", autostart.IsKind(err, autostart.KindSettingsRead))
		return &reportedError{err}
	}
	return nil
}

func execute(cfg *config, logger *slog.Logger, stdout io.Writer) error {
	store := settings.NewStore(cfg.appName)
	if cfg.settingsPath != "" {
		store = settings.NewStoreAt(cfg.settingsPath)
	}

	reg, err := newRegistrar(cfg.appName, cfg.displayName)
	if err != nil {
		return fmt.Errorf("create launcher: %w", err)
	}
	syncer := autostart.New(reg, store, autostart.WithLogger(logger))

	switch cfg.verb {
	case "enable", "disable":
		enabled := cfg.verb == "enable"
		if err := store.SetAutoStart(enabled); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		logger.Info("[SETTINGS] Start at Login toggled", "enabled", enabled)
		return syncer.SetEnabled(enabled)
	case "status":
		cur, err := store.Settings()
		if err != nil {
			return err
		}
		registered := reg.IsEnabled()
		if _, err := fmt.Fprintf(stdout, "saved: %t\nregistered: %t\n", cur.AutoStart, registered); err != nil {
			return err
		}
		if cur.AutoStart != registered {
			logger.Warn("Login item out of sync with settings, run sync to fix",
				"saved", cur.AutoStart, "registered", registered)
		}
		return nil
	default:
		return syncer.SyncFromSettings()
	}
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		var reported *reportedError
		if !errors.As(err, &reported) {
			slog.Error("autostart-sync failed", "error", err)
		}
		os.Exit(1)
	}
}
