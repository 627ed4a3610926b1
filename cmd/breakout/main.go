// cmd/breakout/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/EngoEngine/engo"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap/zapcore"

	"github.com/mzijlstra/Breakout/pkg/config"
	"github.com/mzijlstra/Breakout/pkg/engine"
	"github.com/mzijlstra/Breakout/pkg/logging"
	"github.com/mzijlstra/Breakout/pkg/render"
	engorender "github.com/mzijlstra/Breakout/pkg/render/engo"
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
	renderer := flag.String("renderer", env.Renderer, "Renderer: 'engo', 'terminal' or 'none'")
	createDefault := flag.Bool("default", false, "Write the default configuration to -config and exit")
	maxTicks := flag.Uint64("ticks", 0, "Stop after this many ticks (terminal and none only)")
	flag.Parse()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err, "config_path", *configPath)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file", "config_path", *configPath)
		return
	}

	gameConfig, err := loadConfig(ctx, logger, *configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	game, err := engine.NewGame(gameConfig, engine.WithLogger(logger), engine.WithContext(ctx))
	if err != nil {
		logger.Error(ctx, "Failed to create game", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Starting breakout",
		"renderer", *renderer,
		"variant", gameConfig.Variant,
		"seed", gameConfig.Seed,
	)

	switch *renderer {
	case config.RendererEngo:
		startEngoRenderer(game, logger)
	case config.RendererTerminal:
		err = startTerminalRenderer(ctx, game, logger, *maxTicks)
	default:
		err = game.Run(ctx, engine.RunOptions{
			Input:    engine.NewAutopilot(game),
			Renderer: render.NewNullRenderer(logger),
			MaxTicks: *maxTicks,
		})
	}

	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, engine.ErrTickLimit) {
		logger.Error(ctx, "Game stopped", err)
		os.Exit(1)
	}
	logger.Info(ctx, "Game finished", "stats", game.State().Stats)
}

// loadConfig reads path, or falls back to the defaults when it is empty or
// missing, then applies environment overrides.
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

// startEngoRenderer opens a window sized to the field. engo.Run returns
// when the window closes.
func startEngoRenderer(game *engine.Game, logger *logging.Logger) {
	opts := engo.RunOptions{
		Title:  "Breakout",
		Width:  game.Config.Field.Width,
		Height: game.Config.Field.Height,
		VSync:  true,
	}
	engo.Run(opts, engorender.NewGameScene(game, logger))
}

// startTerminalRenderer plays in the terminal until the player quits.
func startTerminalRenderer(ctx context.Context, game *engine.Game, logger *logging.Logger, maxTicks uint64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return logging.WrapError(err, "create terminal screen")
	}
	if err := screen.Init(); err != nil {
		return logging.WrapError(err, "init terminal screen")
	}
	defer screen.Fini()

	// log lines would scribble over the playfield
	logger.SetLevel(zapcore.ErrorLevel)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := render.NewKeyboardInput()
	go keys.Listen(screen, ctx.Done())

	input := engine.InputFunc(func() engine.Input {
		if keys.Quit() {
			cancel()
		}
		return keys.Poll()
	})

	return game.Run(ctx, engine.RunOptions{
		Input:    input,
		Renderer: render.NewTerminalRenderer(screen, game.Config.Field.Width, game.Config.Field.Height),
		MaxTicks: maxTicks,
	})
}
