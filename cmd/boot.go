package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/onair/cli"
	"github.com/grovetools/onair/config"
	"github.com/grovetools/onair/internal/daemon/collector"
	"github.com/grovetools/onair/internal/daemon/engine"
	"github.com/grovetools/onair/internal/daemon/server"
	"github.com/grovetools/onair/internal/daemon/store"
	"github.com/grovetools/onair/internal/storage/sqlite"
	"github.com/grovetools/onair/pkg/console"
	"github.com/grovetools/onair/pkg/models"
	"github.com/grovetools/onair/pkg/paths"
	"github.com/grovetools/onair/pkg/profiling"
	"github.com/grovetools/onair/pkg/scoreboard"
	"github.com/grovetools/onair/pkg/services"
	"github.com/grovetools/onair/schema"
	"github.com/grovetools/onair/state"
)

// onaird is a fully wired daemon that has not started yet.
type onaird struct {
	cfg     *config.Config
	running server.RunningConfig
	engine  *engine.Engine
	server  *server.Server
	presets *sqlite.Store
	logger  *logrus.Entry
}

// rigFromConfig maps the boot settings of cfg onto a rig.
func rigFromConfig(cfg *config.Config, catalog *scoreboard.Catalog) models.Rig {
	rig := models.DefaultRig()
	rig.MicLock = cfg.MicLockEnabled()
	if t := models.TransitionType(cfg.Switcher.DefaultTransition); t.Valid() {
		rig.Transition.Type = t
	}
	if cfg.Switcher.DefaultTransitionMs > 0 {
		rig.Transition.DurationMs = cfg.Switcher.DefaultTransitionMs
	}
	if catalog.Has(cfg.Scoreboard.DefaultSport) {
		rig.Scoreboard = catalog.Load(cfg.Scoreboard.DefaultSport)
	}
	rig.Date = time.Now().Format("2006-01-02")
	return rig
}

// bootState builds the state the daemon publishes at version 0.
func bootState(cfg *config.Config, catalog *scoreboard.Catalog, flags *state.File, presets []models.Preset, logger *logrus.Entry) models.State {
	initial := models.InitialState(rigFromConfig(cfg, catalog))
	prefs, err := flags.LoadPrefs(initial.Prefs)
	if err != nil {
		logger.WithError(err).Warn("Ignoring unreadable boot flags")
	}
	initial.Prefs = prefs
	initial.SavedConfigs = presets
	return initial
}

// loadCatalog adds the templates of cfg's templates dir to the embedded ones.
func loadCatalog(cfg *config.Config, logger *logrus.Entry) *scoreboard.Catalog {
	catalog := scoreboard.DefaultCatalog()
	if cfg.Scoreboard.TemplatesDir == "" {
		return catalog
	}
	added, err := catalog.LoadDir(cfg.Scoreboard.TemplatesDir)
	if err != nil {
		logger.WithError(err).WithField("dir", cfg.Scoreboard.TemplatesDir).Warn("Failed to load sport templates")
	}
	if len(added) > 0 {
		logger.WithField("sports", added).Info("Loaded sport templates")
	}
	return catalog
}

func databasePath(cfg *config.Config) string {
	if cfg.Storage.Path != "" {
		return cfg.Storage.Path
	}
	return paths.DatabasePath()
}

// newDaemon wires the store, engine, collectors and server from opts.
func newDaemon(opts cli.CommandOptions, logger *logrus.Entry) (*onaird, error) {
	defer profiling.Start("daemon.boot").Stop()

	span := profiling.Start("config.load")
	cfg, err := opts.LoadConfig()
	span.Stop()
	if err != nil {
		return nil, err
	}

	span = profiling.Start("catalog.load")
	catalog := loadCatalog(cfg, logger)
	span.Stop()

	span = profiling.Start("storage.open")
	db, err := sqlite.Open(databasePath(cfg))
	if err != nil {
		span.Stop()
		return nil, err
	}
	presets, err := db.ListPresets(context.Background())
	span.Stop()
	if err != nil {
		db.Close()
		return nil, err
	}

	flags := state.Open("")
	board := scoreboard.NewEngine(catalog,
		scoreboard.WithMaxEvents(cfg.Scoreboard.MaxEvents),
		scoreboard.WithHistoryDepth(cfg.Scoreboard.HistoryDepth))
	dispatcher := console.New(console.PolicyFromConfig(cfg), console.WithScoreboard(board))

	st := store.New(bootState(cfg, catalog, flags, presets, logger))
	eng := engine.New(st, dispatcher, logger,
		engine.WithFrameInterval(cfg.Switcher.FrameInterval.Duration),
		engine.WithPresetStore(db),
		engine.WithPrefsStore(flags),
		engine.WithServices(engine.Services{
			Text:      services.NewTextGenerator(cfg.AI),
			Probe:     services.NewSimulatedProbe(cfg.Streams, nil),
			Discovery: services.DiscoveryFromConfig(cfg.Devices),
		}))

	files := opts.ConfigFiles()
	eng.Register(collector.NewSetupCollector(services.DiscoveryFromConfig(cfg.Devices), logger))
	eng.Register(collector.NewConfigCollector(files, 0, opts.LoadConfig, func(next *config.Config) {
		eng.SetPolicy(console.PolicyFromConfig(next))
	}, logger))

	validator, err := schema.NewCommandValidator()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to compile command schema: %w", err)
	}

	running := server.RunningConfig{
		ConfigFiles: files,
		Socket:      opts.SocketPath(cfg),
		Listen:      cfg.Daemon.Listen,
		Database:    databasePath(cfg),
		StartedAt:   time.Now(),
	}
	srv := server.New(logger)
	srv.SetEngine(eng)
	srv.SetCatalog(catalog)
	srv.SetValidator(validator)
	srv.SetRunningConfig(&running)

	return &onaird{cfg: cfg, running: running, engine: eng, server: srv, presets: db, logger: logger}, nil
}

// run serves until ctx ends, then drains the engine and closes storage.
func (d *onaird) run(ctx context.Context) error {
	engineCtx, stopEngine := context.WithCancel(context.Background())
	defer stopEngine()
	engineDone := make(chan struct{})
	go func() {
		defer close(engineDone)
		d.engine.Run(engineCtx)
	}()

	errCh := make(chan error, 2)
	go func() { errCh <- d.server.ListenAndServe(d.running.Socket) }()
	if d.running.Listen != "" {
		go func() { errCh <- d.server.ListenTCP(d.running.Listen) }()
	}

	d.logger.WithFields(logrus.Fields{
		"pid":    os.Getpid(),
		"socket": d.running.Socket,
		"listen": d.running.Listen,
	}).Info("Starting daemon")

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.server.Shutdown(shutdownCtx); err != nil {
		d.logger.Errorf("Server shutdown error: %v", err)
	}
	stopEngine()
	<-engineDone

	if err := d.presets.Close(); err != nil {
		d.logger.WithError(err).Warn("Failed to close preset storage")
	}
	_ = os.Remove(d.running.Socket)

	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		return fmt.Errorf("server error: %w", serveErr)
	}
	return nil
}
