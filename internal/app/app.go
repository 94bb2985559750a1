package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/emxsys/wmt-explorer/internal/config"
	"github.com/emxsys/wmt-explorer/internal/globe"
	"github.com/emxsys/wmt-explorer/internal/session"
)

// App is everything the UI needs, built from the command-line flags.
type App struct {
	Config  *config.Config
	Earth   *globe.Earth
	Session session.Store
	Logger  *slog.Logger
	closers []io.Closer
}

// Setup loads the configuration, restores the last viewpoint and builds the
// globe with its default layers.
func Setup(f *Flags) (*App, error) {
	a := &App{}
	logOut := io.Discard
	if f.LogFile != "" {
		file, err := os.OpenFile(f.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		a.closers = append(a.closers, file)
		logOut = file
	}
	a.Logger = NewLogger(f.LogLevel, f.LogFormat, logOut)

	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Config = cfg

	if f.SessionPath == "" {
		a.Session = session.MemoryStore{}
	} else {
		store, err := session.Open(f.SessionPath)
		if err != nil {
			a.Logger.Warn("ignoring unreadable session, starting from the configured viewpoint", "err", err)
			store = session.NewFileStore(f.SessionPath)
		}
		a.Session = store
	}

	a.Earth, err = globe.New(cfg, globe.OptionsFromConfig(cfg), a.Logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Earth.GoTo(session.RestoreViewpoint(a.Session, cfg.Startup, a.Logger))
	a.Logger.Info("explorer ready", "layers", a.Earth.Registry().Len(), "config", f.ConfigPath)
	return a, nil
}

func (a *App) Close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
	a.closers = nil
}
