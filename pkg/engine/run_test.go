// pkg/engine/run_test.go
package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzijlstra/Breakout/pkg/terrain"
)

type countingRenderer struct {
	frames  int
	ticks   []uint64
	terrain *terrain.Terrain
	err     error
}

func (r *countingRenderer) Render(s *GameState, t *terrain.Terrain) error {
	r.frames++
	r.ticks = append(r.ticks, s.Tick)
	r.terrain = t
	return r.err
}

func TestRun_StopsAtTickLimit(t *testing.T) {
	g := newTestGame(t, classicConfig())
	r := &countingRenderer{}

	err := g.Run(context.Background(), RunOptions{
		Input:    &ScriptedInput{Frames: []Input{{Serve: true}}},
		Renderer: r,
		MaxTicks: 5,
		Unpaced:  true,
	})

	assert.ErrorIs(t, err, ErrTickLimit)
	assert.Equal(t, uint64(5), g.CurrentTick)
	assert.Equal(t, 5, r.frames)
	assert.Equal(t, []uint64{1, 2, 3, 4, 5}, r.ticks)
	assert.Nil(t, r.terrain)
	assert.Equal(t, PhasePlaying, g.Phase)
}

func TestRun_RendererError(t *testing.T) {
	g := newTestGame(t, classicConfig())
	boom := errors.New("screen gone")

	err := g.Run(context.Background(), RunOptions{
		Renderer: &countingRenderer{err: boom},
		Unpaced:  true,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "render tick 1")
}

func TestRun_Cancelled(t *testing.T) {
	g := newTestGame(t, classicConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := g.Run(ctx, RunOptions{})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Positive(t, g.State().Tick)
}
