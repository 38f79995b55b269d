package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/soulbound/internal/ai"
	"github.com/udisondev/soulbound/internal/catalog"
	"github.com/udisondev/soulbound/internal/config"
	"github.com/udisondev/soulbound/internal/db"
	"github.com/udisondev/soulbound/internal/game/combat"
	"github.com/udisondev/soulbound/internal/game/player"
	"github.com/udisondev/soulbound/internal/game/zone"
	"github.com/udisondev/soulbound/internal/model"
	"github.com/udisondev/soulbound/internal/scripting"
	"github.com/udisondev/soulbound/internal/sim"
	"github.com/udisondev/soulbound/internal/spawn"
	"github.com/udisondev/soulbound/internal/transport/ws"
	"github.com/udisondev/soulbound/internal/world"
)

const (
	shutdownTimeout = 5 * time.Second
	saveTimeout     = 3 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := config.ResolvePath()
	cfg, err := config.LoadGameServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ai.EnableDebugLogging(log.Core().Enabled(zapcore.DebugLevel))

	log.Info("soulbound server starting",
		zap.String("config", cfgPath),
		zap.String("addr", cfg.Addr()),
		zap.String("log_level", cfg.Logging.Level))

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	maps, enemies := cat.Maps(), cat.Enemies()
	log.Info("catalog loaded", zap.Int("maps", len(maps.All())), zap.Int("enemies", len(enemies.All())))

	engine, err := scripting.NewEngine(cfg.ScriptsDir, log.Named("lua"))
	if err != nil {
		return fmt.Errorf("loading scripts: %w", err)
	}
	defer engine.Close()

	// World
	zones := zone.NewManager(maps, model.DefaultMapID, nil)
	players := world.NewPlayerStore()
	monsters := world.NewMonsterStore()
	state := world.NewStateStore(cfg.World)
	resolver := combat.NewResolver(nil)
	life := player.NewService(players, maps, engine)
	spawner := spawn.NewManager(zones, players, monsters, world.NewMonsterIDGenerator(), enemies,
		spawn.WithScaler(engine),
		spawn.WithLogger(log.Named("spawn")))
	brain := ai.NewTickManager(zones, players, monsters, life, resolver, log.Named("ai"))

	game := sim.New(sim.Deps{
		Zones:       zones,
		Players:     players,
		Monsters:    monsters,
		State:       state,
		Life:        life,
		Spawner:     spawner,
		AI:          brain,
		Resolver:    resolver,
		TickSeconds: cfg.Ticks.Seconds(),
		Log:         log.Named("sim"),
	})

	g, gctx := errgroup.WithContext(ctx)

	// Persistence (optional)
	var onDisconnect func(model.Player)
	if cfg.Database.Enabled {
		applied, err := db.RunMigrations(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		log.Info("database migrations applied", zap.Int("applied", applied))

		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		repo := db.NewPlayerRepository(database.Pool())
		stored, err := repo.FindAll(ctx)
		if err != nil {
			return fmt.Errorf("loading players: %w", err)
		}
		game.Restore(stored)
		log.Info("players restored", zap.Int("count", len(stored)))

		onDisconnect = func(p model.Player) {
			saveCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), saveTimeout)
			defer cancel()
			if err := repo.Save(saveCtx, p); err != nil {
				log.Error("saving player on disconnect", zap.String("player", string(p.ID)), zap.Error(err))
			}
		}

		autosaver := db.NewAutosaver(repo, game, cfg.Ticks.Autosave, log.Named("autosave"))
		g.Go(func() error {
			return ignoreCanceled(autosaver.Start(gctx))
		})
	} else {
		log.Info("database disabled, players kept in memory")
	}

	// Transport
	hub := ws.NewHub(log.Named("hub"))
	handler := ws.NewHandler(game, hub, ws.HandlerConfig{
		SendQueueSize: cfg.SendQueueSize,
		WriteTimeout:  cfg.WriteTimeout,
		ReadTimeout:   cfg.ReadTimeout,
		OnDisconnect:  onDisconnect,
		Logger:        log.Named("ws"),
	})
	mux := http.NewServeMux()
	mux.Handle(cfg.WSPath, handler)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Tick loops
	worldLoop := sim.NewLoop("world", cfg.Ticks.World, game.WorldTick, hub, log.Named("tick"))
	spawnLoop := sim.NewLoop("spawn", cfg.Ticks.Spawn, game.SpawnTick, hub, log.Named("tick"))

	g.Go(func() error {
		return ignoreCanceled(worldLoop.Start(gctx))
	})
	g.Go(func() error {
		return ignoreCanceled(spawnLoop.Start(gctx))
	})

	g.Go(func() error {
		log.Info("starting websocket server", zap.String("addr", srv.Addr), zap.String("path", cfg.WSPath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		hub.CloseAll()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// newLogger builds a zap logger: json uses the production encoder, anything
// else a coloured console encoder.
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
