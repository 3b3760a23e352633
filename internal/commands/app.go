// Package commands wires the cobra command tree for the geo-time-tracker
// CLI. All shared dependencies hang off App so commands never reach for
// globals; the store is built once per invocation and bootstraps lazily
// on first use.
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/chris-shaw-2011/geo-time-tracker/internal/bus"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/config"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/logging"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/source/manual"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/store"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/tracking"
)

type App struct {
	cfg    *config.Config
	log    logging.Logger
	bus    *bus.Bus
	cache  *tracking.Cache
	store  *store.Store
	source *manual.Source
	clock  *tracking.Timeclock
}

func NewApp(cfg *config.Config) *App {
	return &App{cfg: cfg}
}

// init builds the dependency graph after flags have been parsed, so flag
// overrides are already folded into the config.
func (a *App) init(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("db") {
		a.cfg.DatabasePath, _ = flags.GetString("db")
	}
	if flags.Changed("fix-timeout") {
		a.cfg.FixTimeout, _ = flags.GetDuration("fix-timeout")
	}
	if flags.Changed("accuracy") {
		a.cfg.DesiredAccuracy, _ = flags.GetFloat64("accuracy")
	}

	a.log = logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	a.bus = bus.New()
	a.cache = tracking.NewCache()
	a.store = store.New(a.cfg.DatabasePath, a.bus, a.cache, a.log)
	a.source = manual.New()
	a.clock = tracking.NewTimeclock(a.store, a.source, a.cache, a.log, a.cfg.FixTimeout, a.cfg.DesiredAccuracy)
	return nil
}

func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
