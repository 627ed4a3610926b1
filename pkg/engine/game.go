// pkg/engine/game.go
package engine

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/mzijlstra/Breakout/pkg/config"
	"github.com/mzijlstra/Breakout/pkg/entity"
	"github.com/mzijlstra/Breakout/pkg/event"
	"github.com/mzijlstra/Breakout/pkg/logging"
	"github.com/mzijlstra/Breakout/pkg/terrain"
)

// Phase is the top-level game state
type Phase int

const (
	PhaseServe Phase = iota
	PhasePlaying
)

// String returns the phase name
func (p Phase) String() string {
	if p == PhasePlaying {
		return "playing"
	}
	return "serve"
}

// Game represents the core game state and logic
type Game struct {
	Config      *config.GameConfig
	Ball        *entity.Ball
	Paddle      *entity.Paddle
	Bricks      []*entity.Brick
	Dirt        []*entity.Dirt
	Terrain     *terrain.Terrain // nil in the classic variant
	Phase       Phase
	CurrentTick uint64
	Stats       Stats
	EntityLock  sync.RWMutex
	EventBus    *event.Bus
	Logger      *logging.Logger

	ctx   context.Context
	rng   *rand.Rand
	index *brickIndex

	checksumMu      sync.Mutex
	checksum        uint64
	checksumVersion uint64
	checksumValid   bool
}

// Option customises a new game
type Option func(*Game)

// WithLogger sets the logger used for game events
func WithLogger(l *logging.Logger) Option {
	return func(g *Game) { g.Logger = l }
}

// WithTerrain replaces the generated terrain
func WithTerrain(t *terrain.Terrain) Option {
	return func(g *Game) { g.Terrain = t }
}

// WithEventBus shares an existing event bus
func WithEventBus(b *event.Bus) Option {
	return func(g *Game) { g.EventBus = b }
}

// WithContext sets the context whose correlation ID tags every log entry
func WithContext(ctx context.Context) Option {
	return func(g *Game) { g.ctx = ctx }
}

// NewGame creates a new game with the specified configuration
func NewGame(cfg *config.GameConfig, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, logging.WrapError(err, "new game")
	}

	g := &Game{
		Config:   cfg,
		EventBus: event.NewEventBus(),
		rng:      rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5deece66d)),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.Logger == nil {
		g.Logger = logging.NewNopLogger()
	}
	if g.ctx == nil {
		g.ctx = logging.WithCorrelationID(context.Background(), "")
	}

	g.initTerrain()
	g.initPaddle()
	g.initBall()
	g.initBricks()
	g.registerEventHandlers()

	g.Logger.Info(g.ctx, "game created",
		"variant", cfg.Variant,
		"seed", cfg.Seed,
		"bricks", len(g.Bricks),
		"terrain_cells", g.terrainCells(),
	)
	return g, nil
}

// initTerrain generates the ground unless one was supplied or the classic
// variant is selected.
func (g *Game) initTerrain() {
	if g.Config.Classic() {
		g.Terrain = nil
		return
	}
	if g.Terrain == nil {
		g.Terrain = g.Config.TerrainGenerator().Generate(g.Config.Field.Width, g.Config.Field.Height)
	}
}

// initPaddle places the paddle at the middle of the field, resting on the
// ground when there is any.
func (g *Game) initPaddle() {
	f, pc := g.Config.Field, g.Config.Paddle
	x := float64(f.Width/2 - pc.Width/2)
	y := float64(f.Height - pc.BottomMargin)
	if y > float64(f.Height-pc.Height) {
		y = float64(f.Height - pc.Height)
	}

	if g.Terrain != nil {
		if top, ok := g.Terrain.ColumnTop(f.Width / 2); ok {
			y = float64(top) - pc.Lookahead
		}
	}
	g.Paddle = entity.NewPaddle(x, y, pc.Width, pc.Height, g.Config.PaddleTuning())
}

func (g *Game) initBall() {
	g.Ball = entity.NewBall(g.Config.Ball.Width, g.Config.Ball.Height)
	g.Phase = PhaseServe
	g.Ball.PinTo(g.Paddle)
}

func (g *Game) initBricks() {
	f, bc := g.Config.Field, g.Config.Bricks
	g.index = newBrickIndex(f.Width, f.Height, bc.Width, bc.Height)
	g.Bricks = entity.Layout(g.Config.BrickLayout(), f.Width)
	for _, b := range g.Bricks {
		g.index.add(b)
	}
}

func (g *Game) terrainCells() int {
	if g.Terrain == nil {
		return 0
	}
	return g.Terrain.SolidCount()
}

// Tick advances the game state by one fixed step
func (g *Game) Tick(in Input) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	g.applyInput(in)
	g.Paddle.Update(g.Terrain, g.Config.Field.Width, g.Config.Field.Height)
	g.updateBricks()

	switch g.Phase {
	case PhasePlaying:
		g.updateBall()
	case PhaseServe:
		g.Ball.PinTo(g.Paddle)
		if in.Serve {
			g.launch(g.serveAngle())
		}
	}

	g.updateDirt()
	g.CurrentTick++
}

// applyInput turns the controls into paddle forces and aim.
func (g *Game) applyInput(in Input) {
	p := g.Paddle
	p.Braking = in.Brake
	if in.Left {
		p.MoveLeft()
	}
	if in.Right {
		p.MoveRight()
	}
	if in.Pointer != nil {
		p.AimAt(in.Pointer.X, in.Pointer.Y)
	} else {
		p.Aim(p.PaddleRotation + in.AimDelta)
	}
}

func (g *Game) updateBricks() {
	for _, b := range g.Bricks {
		b.Update(g.Config.Field.Width)
		g.index.sync(b)
	}
}

// updateBall moves the ball and resolves every contact in order: walls,
// paddle, bricks, terrain and finally the bottom edge.
func (g *Game) updateBall() {
	b := g.Ball
	if walls := b.Update(g.Config.Field.Width); walls != 0 {
		g.Stats.WallBounces++
		g.publishBall(event.BallBounced, "wall")
	}

	if b.BouncePaddle(g.Paddle) {
		g.Stats.PaddleBounces++
		g.publishBall(event.BallBounced, "paddle")
	}

	for _, hit := range g.resolveBrickContacts() {
		g.destroyBrick(hit)
	}

	if b.TouchesTerrain(g.Terrain) {
		r := b.Bounds()
		cells := g.Terrain.Splash(r.X, r.W, g.Config.Terrain.SplashRows, g.Config.Terrain.SplashShade)
		g.EventBus.Publish(event.NewTerrainEvent(g, r.CenterX(), r.Y, cells))
		g.loseBall("terrain")
		return
	}

	if b.Lost(g.Config.Field.Height) {
		g.loseBall("bottom")
	}
}

// destroyBrick removes a struck brick and drops dirt in its place.
func (g *Game) destroyBrick(hit brickHit) {
	br := hit.brick
	if !g.removeBrick(br) {
		return
	}
	g.Stats.BricksDestroyed++

	d := entity.NewDirt(br, g.Config.DirtTuning())
	g.Dirt = append(g.Dirt, d)

	g.EventBus.Publish(event.NewBrickEvent(g, uint64(br.ID), uint64(d.ID), hit.side.String()))
	g.EventBus.Publish(event.NewDirtEvent(event.DirtSpawned, g, uint64(d.ID), d.X, d.Y, 0))
}

func (g *Game) removeBrick(br *entity.Brick) bool {
	for i, b := range g.Bricks {
		if b == br {
			g.Bricks = append(g.Bricks[:i], g.Bricks[i+1:]...)
			g.index.remove(br)
			br.Active = false
			return true
		}
	}
	return false
}

// updateDirt lets every piece of debris fall and retires the ones that
// settled or left the field.
func (g *Game) updateDirt() {
	if len(g.Dirt) == 0 {
		return
	}
	f := g.Config.Field
	kept := g.Dirt[:0]
	for _, d := range g.Dirt {
		before := g.terrainCells()
		switch d.Update(g.Terrain, f.Width, f.Height, g.rng) {
		case entity.DirtSettled:
			g.Stats.DirtSettled++
			g.EventBus.Publish(event.NewDirtEvent(event.DirtSettled, g, uint64(d.ID), d.X, d.Y, g.terrainCells()-before))
		case entity.DirtEscaped:
			g.Stats.DirtEscaped++
			g.EventBus.Publish(event.NewDirtEvent(event.DirtEscaped, g, uint64(d.ID), d.X, d.Y, 0))
		default:
			kept = append(kept, d)
		}
	}
	for i := len(kept); i < len(g.Dirt); i++ {
		g.Dirt[i] = nil
	}
	g.Dirt = kept
}

// Launch serves the ball at angle degrees, leaving the serve phase.
func (g *Game) Launch(angle float64) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	g.launch(angle)
}

func (g *Game) launch(angle float64) {
	g.Ball.Launch(g.Config.Ball.ServeForce, angle)
	g.Stats.Serves++
	g.setPhase(PhasePlaying)
	g.publishBall(event.BallServed, g.Config.Ball.ServeMode)
}

// serveAngle picks the launch heading for the configured serve mode.
func (g *Game) serveAngle() float64 {
	if g.Config.Ball.ServeMode == config.ServeRandom {
		cone := g.Config.Ball.ServeCone
		return 270 + (g.rng.Float64()*2-1)*cone
	}
	return g.Paddle.ServeAngle()
}

func (g *Game) loseBall(cause string) {
	g.Stats.BallsLost++
	g.publishBall(event.BallLost, cause)
	g.setPhase(PhaseServe)
	g.Ball.PinTo(g.Paddle)
}

func (g *Game) setPhase(p Phase) {
	if g.Phase == p {
		return
	}
	from := g.Phase
	g.Phase = p
	g.EventBus.Publish(event.NewPhaseEvent(g, from.String(), p.String()))
}

func (g *Game) publishBall(t event.Type, cause string) {
	b := g.Ball
	g.EventBus.Publish(event.NewBallEvent(t, g, uint64(b.ID), b.X, b.Y, b.Direction, b.Velocity, cause))
}

// registerEventHandlers logs game events. A bus may be shared between
// games, so each game only logs what it published itself.
func (g *Game) registerEventHandlers() {
	g.EventBus.Subscribe(event.PhaseChanged, g.own(g.handlePhaseChanged))
	g.EventBus.Subscribe(event.BallLost, g.own(g.handleBallLost))
	g.EventBus.Subscribe(event.BrickDestroyed, g.own(g.handleBrickDestroyed))
	g.EventBus.Subscribe(event.TerrainImpact, g.own(g.handleTerrainImpact))
}

func (g *Game) own(h event.Handler) event.Handler {
	return func(e event.Event) {
		if src, ok := e.GetSource().(*Game); ok && src == g {
			h(e)
		}
	}
}

func (g *Game) handlePhaseChanged(e event.Event) {
	if pe, ok := e.(*event.PhaseEvent); ok {
		g.Logger.Debug(g.ctx, "phase changed", "from", pe.From, "to", pe.To, "tick", g.CurrentTick)
	}
}

func (g *Game) handleBallLost(e event.Event) {
	if be, ok := e.(*event.BallEvent); ok {
		g.Logger.Info(g.ctx, "ball lost",
			"cause", be.Cause,
			"tick", g.CurrentTick,
			"balls_lost", g.Stats.BallsLost,
		)
	}
}

func (g *Game) handleBrickDestroyed(e event.Event) {
	if be, ok := e.(*event.BrickEvent); ok {
		g.Logger.Debug(g.ctx, "brick destroyed",
			"brick", be.BrickID,
			"side", be.Side,
			"remaining", len(g.Bricks),
		)
	}
}

func (g *Game) handleTerrainImpact(e event.Event) {
	if te, ok := e.(*event.TerrainEvent); ok {
		g.Logger.Debug(g.ctx, "terrain impact", "x", te.X, "y", te.Y, "cells", te.Cells)
	}
}
