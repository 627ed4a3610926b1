// pkg/engine/state.go
package engine

import (
	"github.com/mzijlstra/Breakout/pkg/entity"
	"github.com/mzijlstra/Breakout/pkg/physics"
	"github.com/mzijlstra/Breakout/pkg/terrain"
)

// Renderer draws a snapshot. It is called between ticks, so reading the
// terrain is safe.
type Renderer interface {
	Render(state *GameState, t *terrain.Terrain) error
}

// Stats counts what happened since the game started.
type Stats struct {
	Serves          int
	BallsLost       int
	BricksDestroyed int
	DirtSettled     int
	DirtEscaped     int
	PaddleBounces   int
	WallBounces     int
}

// GameState represents a snapshot of the game state
type GameState struct {
	Tick        uint64
	Phase       Phase
	Variant     string
	FieldWidth  int
	FieldHeight int

	Ball   BallState
	Paddle PaddleState
	Bricks []BodyState
	Dirt   []BodyState

	TerrainVersion  uint64
	TerrainChecksum uint64
	TerrainCells    int

	Stats Stats
}

// BodyState represents a snapshot of a simple moving box
type BodyState struct {
	ID     entity.ID
	Bounds physics.Rect
	DX, DY float64
}

// BallState represents a snapshot of the ball
type BallState struct {
	ID        entity.ID
	Bounds    physics.Rect
	Velocity  float64
	Direction float64
}

// PaddleState represents a snapshot of the paddle
type PaddleState struct {
	ID            entity.ID
	Bounds        physics.Rect
	Rotation      float64
	TrackRotation float64
	Frame         int
	TrackFrame    int
	Velocity      float64
	Flying        bool
	Braking       bool
}

// State returns a snapshot of the current game state
func (g *Game) State() *GameState {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()

	return g.createGameStateSnapshot()
}

// createGameStateSnapshot builds and returns the complete game state.
func (g *Game) createGameStateSnapshot() *GameState {
	s := &GameState{
		Tick:        g.CurrentTick,
		Phase:       g.Phase,
		Variant:     g.Config.Variant,
		FieldWidth:  g.Config.Field.Width,
		FieldHeight: g.Config.Field.Height,
		Ball: BallState{
			ID:        g.Ball.ID,
			Bounds:    g.Ball.Bounds(),
			Velocity:  g.Ball.Velocity,
			Direction: g.Ball.Direction,
		},
		Paddle: PaddleState{
			ID:            g.Paddle.ID,
			Bounds:        g.Paddle.Bounds(),
			Rotation:      g.Paddle.PaddleRotation,
			TrackRotation: g.Paddle.TrackRotation,
			Frame:         g.Paddle.Frame(),
			TrackFrame:    g.Paddle.TrackFrame(),
			Velocity:      g.Paddle.Velocity,
			Flying:        g.Paddle.Flying,
			Braking:       g.Paddle.Braking,
		},
		Bricks: make([]BodyState, 0, len(g.Bricks)),
		Dirt:   make([]BodyState, 0, len(g.Dirt)),
		Stats:  g.Stats,
	}
	for _, b := range g.Bricks {
		s.Bricks = append(s.Bricks, BodyState{ID: b.ID, Bounds: b.Bounds(), DX: b.DX, DY: b.DY})
	}
	for _, d := range g.Dirt {
		s.Dirt = append(s.Dirt, BodyState{ID: d.ID, Bounds: d.Bounds(), DX: d.DX, DY: d.DY})
	}
	if g.Terrain != nil {
		s.TerrainVersion = g.Terrain.Version()
		s.TerrainChecksum = g.terrainChecksum()
		s.TerrainCells = g.Terrain.SolidCount()
	}
	return s
}

// terrainChecksum rehashes the terrain only when it changed since the last call.
func (g *Game) terrainChecksum() uint64 {
	g.checksumMu.Lock()
	defer g.checksumMu.Unlock()

	v := g.Terrain.Version()
	if !g.checksumValid || g.checksumVersion != v {
		g.checksum = g.Terrain.Checksum()
		g.checksumVersion = v
		g.checksumValid = true
	}
	return g.checksum
}
