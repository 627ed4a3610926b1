// pkg/engine/run.go
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/mzijlstra/Breakout/pkg/logging"
)

// RunOptions controls the game loop
type RunOptions struct {
	Input    InputSource
	Renderer Renderer

	// MaxTicks stops the loop after this many ticks when positive.
	MaxTicks uint64
	// Unpaced runs ticks back to back instead of at the configured rate.
	Unpaced bool
}

// ErrTickLimit is returned by Run when MaxTicks was reached.
var ErrTickLimit = errors.New("tick limit reached")

// Run executes the game loop until ctx is cancelled, the tick limit is hit
// or the renderer fails.
func (g *Game) Run(ctx context.Context, opts RunOptions) error {
	if opts.Input == nil {
		opts.Input = InputFunc(func() Input { return Input{} })
	}

	var ticks <-chan time.Time
	if !opts.Unpaced {
		ticker := time.NewTicker(time.Second / time.Duration(g.Config.TickRate))
		defer ticker.Stop()
		ticks = ticker.C
	}

	g.Logger.Info(ctx, "game loop started",
		"tick_rate", g.Config.TickRate,
		"max_ticks", opts.MaxTicks,
		"unpaced", opts.Unpaced,
	)

	var ran uint64
	for {
		if ticks != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticks:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		g.Tick(opts.Input.Poll())
		ran++

		if opts.Renderer != nil {
			if err := g.Draw(opts.Renderer); err != nil {
				return logging.WrapError(err, "render tick %d", g.CurrentTick)
			}
		}

		if opts.MaxTicks > 0 && ran >= opts.MaxTicks {
			g.Logger.Info(ctx, "game loop finished", "ticks", ran, "stats", g.State().Stats)
			return ErrTickLimit
		}
	}
}

// Draw hands a snapshot and the terrain to r while holding the read lock,
// so the terrain cannot change under it.
func (g *Game) Draw(r Renderer) error {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()

	return r.Render(g.createGameStateSnapshot(), g.Terrain)
}
