// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/mzijlstra/Breakout/pkg/engine"
	"github.com/mzijlstra/Breakout/pkg/logging"
)

// maxStepsPerFrame bounds catch-up after a stalled frame.
const maxStepsPerFrame = 5

// GameScene represents the main game scene in Engo
type GameScene struct {
	game   *engine.Game
	logger *logging.Logger

	renderer *EngoRenderer
	input    *InputSystem
	hud      *HUDSystem
	sim      *SimSystem

	// loadAssets is replaced in tests
	loadAssets func(*AssetManager) error
}

// NewGameScene creates a scene playing g
func NewGameScene(g *engine.Game, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &GameScene{game: g, logger: logger, loadAssets: (*AssetManager).LoadAssets}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {
	if err := PreloadHUDFont(); err != nil {
		scene.logger.Error(context.Background(), "hud font unavailable", err)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)
	common.SetBackground(color.Black)
	SetupInputBindings()

	rs := &common.RenderSystem{}
	world.AddSystem(rs)

	cfg := scene.game.Config
	renderer := scene.setupRenderer(rs)

	scene.input = NewInputSystem()
	world.AddSystem(scene.input)

	scene.sim = NewSimSystem(scene.game, scene.input, renderer, scene.logger)
	world.AddSystem(scene.sim)

	scene.hud = NewHUDSystem(scene.game.State, scene.input.MouseAim)
	if err := scene.hud.Setup(rs); err != nil {
		scene.logger.Warn(context.Background(), "hud disabled", "error", err.Error())
	} else {
		world.AddSystem(scene.hud)
	}

	scene.logger.Info(context.Background(), "scene ready",
		"variant", cfg.Variant,
		"bricks", len(scene.game.Bricks),
	)
}

// setupRenderer builds the sprite renderer. When the sprites cannot be
// built the error is logged and the game runs without drawing entities.
func (scene *GameScene) setupRenderer(rs *common.RenderSystem) engine.Renderer {
	cfg := scene.game.Config
	assets := NewAssetManager(SpriteSizes{
		BallW: cfg.Ball.Width, BallH: cfg.Ball.Height,
		PaddleW: cfg.Paddle.Width, PaddleH: cfg.Paddle.Height,
		BrickW: cfg.Bricks.Width, BrickH: cfg.Bricks.Height,
	})
	if err := scene.loadAssets(assets); err != nil {
		scene.logger.Error(context.Background(), "Failed to load assets", err)
		return nil
	}
	scene.renderer = NewEngoRenderer(rs, assets)
	return scene.renderer
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *GameScene) Exit() {
	if scene.renderer != nil {
		scene.renderer.Clear()
	}
	scene.logger.Info(context.Background(), "scene exited", "stats", scene.game.State().Stats)
}

// SimSystem ticks the game at its fixed rate from engo's variable frame time
// and pushes each result to the renderer.
type SimSystem struct {
	game     *engine.Game
	input    engine.InputSource
	renderer engine.Renderer
	logger   *logging.Logger

	step  float32
	accum float32
}

// NewSimSystem creates a fixed-step driver for g
func NewSimSystem(g *engine.Game, in engine.InputSource, r engine.Renderer, logger *logging.Logger) *SimSystem {
	return &SimSystem{
		game:     g,
		input:    in,
		renderer: r,
		logger:   logger,
		step:     1 / float32(g.Config.TickRate),
	}
}

// Remove satisfies the ecs.System interface
func (s *SimSystem) Remove(basic ecs.BasicEntity) {}

// Update runs as many ticks as dt covers, then renders once.
func (s *SimSystem) Update(dt float32) {
	n := s.Steps(dt)
	for i := 0; i < n; i++ {
		s.game.Tick(s.input.Poll())
	}
	if s.renderer == nil {
		return
	}
	if err := s.game.Draw(s.renderer); err != nil {
		s.logger.Error(context.Background(), "render failed", err, "tick", s.game.CurrentTick)
	}
}

// Steps adds dt to the accumulator and returns how many whole ticks are due.
// Time beyond maxStepsPerFrame ticks is dropped.
func (s *SimSystem) Steps(dt float32) int {
	s.accum += dt
	n := 0
	for s.accum >= s.step && n < maxStepsPerFrame {
		s.accum -= s.step
		n++
	}
	if n == maxStepsPerFrame && s.accum >= s.step {
		s.accum = 0
	}
	return n
}
