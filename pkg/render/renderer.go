// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/mzijlstra/Breakout/pkg/engine"
	"github.com/mzijlstra/Breakout/pkg/logging"
	"github.com/mzijlstra/Breakout/pkg/terrain"
)

// NullRenderer draws nothing and logs a frame summary instead. It backs
// headless runs.
type NullRenderer struct {
	logger *logging.Logger

	// Every limits logging to one frame in Every; 0 or 1 logs all frames.
	Every uint64
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &NullRenderer{logger: logger}
}

// Render implements engine.Renderer.
func (d *NullRenderer) Render(state *engine.GameState, t *terrain.Terrain) error {
	ctx := context.Background()
	if state == nil {
		d.logger.Debug(ctx, "Render called with nil state")
		return nil
	}
	if d.Every > 1 && state.Tick%d.Every != 0 {
		return nil
	}
	d.logger.Debug(ctx, "frame",
		"tick", state.Tick,
		"phase", state.Phase.String(),
		"ball_x", state.Ball.Bounds.X,
		"ball_y", state.Ball.Bounds.Y,
		"paddle_x", state.Paddle.Bounds.X,
		"bricks", len(state.Bricks),
		"dirt", len(state.Dirt),
		"terrain_cells", state.TerrainCells,
		"has_terrain", t != nil,
	)
	return nil
}
