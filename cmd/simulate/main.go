// cmd/simulate/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mzijlstra/Breakout/pkg/config"
	"github.com/mzijlstra/Breakout/pkg/engine"
	"github.com/mzijlstra/Breakout/pkg/event"
	"github.com/mzijlstra/Breakout/pkg/health"
	"github.com/mzijlstra/Breakout/pkg/logging"
	"github.com/mzijlstra/Breakout/pkg/render"
)

func main() {
	ctx := logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID())

	env, err := config.LoadConfigFromEnv()
	if err != nil {
		logging.NewLogger().Error(ctx, "Invalid environment", err)
		os.Exit(1)
	}
	logger := logging.NewLoggerWithLevel(logging.ParseLevel(env.LogLevel))
	defer logger.Sync()

	configPath := flag.String("config", env.ConfigPath, "Path to configuration file (.json, .yaml or .toml)")
	games := flag.Int("games", 1, "Number of games to run side by side, seeded consecutively")
	ticks := flag.Uint64("ticks", 36000, "Ticks per game, 0 runs until interrupted")
	paced := flag.Bool("paced", false, "Run at the configured tick rate instead of flat out")
	report := flag.Duration("report", 5*time.Second, "Interval between progress reports")
	healthAddr := flag.String("health", "", "Serve /health and /ready on this address, e.g. :8080")
	frameEvery := flag.Uint64("frame-every", 600, "Log one debug frame summary every N ticks")
	flag.Parse()

	if *games < 1 {
		logger.Error(ctx, "Invalid game count", nil, "games", *games)
		os.Exit(1)
	}

	base, err := loadConfig(ctx, logger, *configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// one bus for every game so a single subscriber can count outcomes
	bus := event.NewEventBus()
	var lostBottom, lostTerrain, destroyed atomic.Uint64
	bus.Subscribe(event.BallLost, func(e event.Event) {
		if be, ok := e.(*event.BallEvent); ok && be.Cause == "terrain" {
			lostTerrain.Add(1)
			return
		}
		lostBottom.Add(1)
	})
	bus.Subscribe(event.BrickDestroyed, func(event.Event) { destroyed.Add(1) })
	sims := make([]*engine.Game, *games)
	for i := range sims {
		cfg := *base
		cfg.Seed = base.Seed + uint64(i)
		sims[i], err = engine.NewGame(&cfg,
			engine.WithLogger(logger.With("game", i, "seed", cfg.Seed)),
			engine.WithEventBus(bus),
			engine.WithContext(ctx),
		)
		if err != nil {
			logger.Error(ctx, "Failed to create game", err, "game", i)
			os.Exit(1)
		}
	}

	totalTicks := func() uint64 {
		var n uint64
		for _, g := range sims {
			n += g.State().Tick
		}
		return n
	}

	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancelRun := context.WithCancel(gctx)
	defer cancelRun()

	running := len(sims)
	done := make(chan struct{}, len(sims))
	for i, game := range sims {
		nr := render.NewNullRenderer(logger.With("game", i))
		nr.Every = *frameEvery
		g.Go(func() error {
			defer func() { done <- struct{}{} }()
			err := game.Run(runCtx, engine.RunOptions{
				Input:    engine.NewAutopilot(game),
				Renderer: nr,
				MaxTicks: *ticks,
				Unpaced:  !*paced,
			})
			if errors.Is(err, engine.ErrTickLimit) || errors.Is(err, context.Canceled) {
				return nil
			}
			return logging.WrapError(err, "game %d", i)
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(*report)
		defer ticker.Stop()
		start := time.Now()
		for {
			select {
			case <-runCtx.Done():
				return nil
			case <-done:
				running--
				if running == 0 {
					cancelRun()
				}
			case <-ticker.C:
				for i, game := range sims {
					s := game.State()
					logger.Info(gctx, "progress",
						"game", i,
						"tick", s.Tick,
						"phase", s.Phase.String(),
						"bricks", len(s.Bricks),
						"dirt", len(s.Dirt),
						"stats", s.Stats,
					)
				}
				logger.Info(gctx, "throughput",
					"ticks_per_second", float64(totalTicks())/time.Since(start).Seconds(),
					"bricks_destroyed", destroyed.Load(),
					"lost_bottom", lostBottom.Load(),
					"lost_terrain", lostTerrain.Load(),
				)
			}
		}
	})

	if *healthAddr != "" {
		checker := health.NewHealthChecker()
		checker.AddCheck(health.NewTickProgressCheck(totalTicks, 10*time.Second))
		checker.AddCheck(health.NewMemoryHealthCheck(500, func() int64 {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			return int64(m.Alloc / 1024 / 1024)
		}))

		server := &http.Server{
			Addr:         *healthAddr,
			Handler:      checker.Handler(),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info(gctx, "Starting health check server", "address", *healthAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return logging.WrapError(err, "health server")
			}
			return nil
		})
		g.Go(func() error {
			<-runCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	logger.Info(ctx, "Simulation started",
		"games", len(sims),
		"ticks", *ticks,
		"variant", base.Variant,
		"paced", *paced,
	)

	if err := g.Wait(); err != nil {
		logger.Error(ctx, "Simulation failed", err)
		os.Exit(1)
	}

	for i, game := range sims {
		logger.Info(ctx, "Game summary", "game", i, "stats", game.State().Stats)
	}
}

func loadConfig(ctx context.Context, logger *logging.Logger, path string) (*config.GameConfig, error) {
	var gameConfig *config.GameConfig

	if _, err := os.Stat(path); path == "" || os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration", "config_path", path)
		gameConfig = config.DefaultConfig()
	} else {
		gameConfig, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnvOverrides(gameConfig); err != nil {
		return nil, err
	}
	return gameConfig, gameConfig.Validate()
}
