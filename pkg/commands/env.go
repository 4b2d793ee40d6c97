package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"tableflip.dev/gigs/pkg/api"
	"tableflip.dev/gigs/pkg/app"
	"tableflip.dev/gigs/pkg/logging"
	"tableflip.dev/gigs/pkg/store"
)

// logFileName is where the terminal UI writes diagnostics, under the base
// path, so they never land on the screen.
const logFileName = "gigs.log"

// env is everything a command needs, built from configuration.
type env struct {
	Config     *store.Config
	Log        *logging.Logger
	Prefs      *store.Prefs
	Controller *app.Controller

	closers []io.Closer
}

// loadEnv resolves configuration and wires the controller. With tui set
// logs go to a file instead of stderr.
func loadEnv(tui bool) (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	e := &env{Config: cfg}

	var logOut io.Writer = os.Stderr
	if tui {
		if err := os.MkdirAll(cfg.BasePath(), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", cfg.BasePath(), err)
		}
		f, err := os.OpenFile(filepath.Join(cfg.BasePath(), logFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		e.closers = append(e.closers, f)
		logOut = f
	}
	e.Log = logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: logOut})

	if e.Prefs, err = store.Open(cfg); err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}

	client := api.New(api.Options{
		ScriptURL: cfg.ScriptURL,
		Timeout:   cfg.HTTPTimeout,
		Logger:    e.Log.With(map[string]interface{}{"component": "api"}),
	})
	e.Controller = app.New(app.Config{
		Gateway: client,
		Prefs:   e.Prefs,
		Logger:  e.Log.With(map[string]interface{}{"component": "app"}),
	})
	return e, nil
}

func (e *env) Close() {
	for _, c := range e.closers {
		_ = c.Close()
	}
}
