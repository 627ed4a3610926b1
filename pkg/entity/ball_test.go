package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzijlstra/Breakout/pkg/physics"
	"github.com/mzijlstra/Breakout/pkg/terrain"
)

const epsilon = 1e-9

func newMovingBall(x, y, dx, dy float64) *Ball {
	b := NewBall(8, 8)
	b.X, b.Y = x, y
	b.ApplyForce(dx, 0)
	b.ApplyForce(dy, 90)
	return b
}

func TestBall_ReflectBounds(t *testing.T) {
	tests := []struct {
		name    string
		x, y    float64
		dx, dy  float64
		wall    Wall
		wantDX  float64
		wantDY  float64
		minimum float64
	}{
		{"left_wall", -1, 100, -2, 0, WallLeft, 2, 0, 0},
		{"right_wall", 634, 100, 3, 1, WallRight, -3, 1, 0},
		{"top_wall", 100, -1, 1, -2, WallTop, 1, 2, 0},
		{"leaving_left_already", -1, 100, 2, 0, 0, 2, 0, -1},
		{"inside", 100, 100, 2, 2, 0, 2, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newMovingBall(tt.x, tt.y, tt.dx, tt.dy)

			hit := b.ReflectBounds(640)

			assert.Equal(t, tt.wall, hit)
			assert.InDelta(t, tt.wantDX, b.DX, epsilon)
			assert.InDelta(t, tt.wantDY, b.DY, epsilon)
			assert.GreaterOrEqual(t, b.X, tt.minimum)
		})
	}
}

func TestBall_NoBottomWall(t *testing.T) {
	b := newMovingBall(100, 479, 0, 3)

	hit := b.Update(640)

	assert.Equal(t, Wall(0), hit)
	assert.InDelta(t, 3.0, b.DY, epsilon)
	assert.True(t, b.Lost(480))
}

func TestBall_GoUp(t *testing.T) {
	b := newMovingBall(0, 0, 1, 2)
	b.GoUp()
	assert.InDelta(t, -2.0, b.DY, epsilon)

	b.GoUp()
	assert.InDelta(t, -2.0, b.DY, epsilon, "already moving up")
}

func TestBall_Launch(t *testing.T) {
	b := newMovingBall(0, 0, 5, 5)

	b.Launch(3, 90)

	assert.InDelta(t, 3.0, b.Velocity, epsilon)
	assert.InDelta(t, 90.0, b.Direction, 1e-7)
}

func TestBall_BouncePaddle(t *testing.T) {
	p := NewPaddle(100, 400, 32, 8, DefaultPaddleTuning())
	p.Aim(20)

	b := newMovingBall(110, 396, 0, 2)
	speed := b.Velocity

	require.True(t, b.BouncePaddle(p))
	assert.InDelta(t, speed, b.Velocity, epsilon)
	assert.InDelta(t, 290.0, b.Direction, 1e-7)
	assert.Less(t, b.DY, 0.0)

	far := newMovingBall(0, 0, 1, 1)
	assert.False(t, far.BouncePaddle(p))
}

func TestBall_PinTo(t *testing.T) {
	p := NewPaddle(100, 400, 32, 8, DefaultPaddleTuning())
	b := newMovingBall(0, 0, 2, 2)

	b.PinTo(p)

	assert.False(t, b.Moving())
	c := b.Center()
	assert.InDelta(t, 116.0, c.X, epsilon)
	assert.InDelta(t, 404.0-8, c.Y, epsilon)
}

func TestBall_TouchesTerrain(t *testing.T) {
	ter := terrain.FromHeights(100, 100, fill(100, 50), 255)

	above := NewBall(8, 8)
	above.X, above.Y = 10, 40
	assert.False(t, above.TouchesTerrain(ter))

	inside := NewBall(8, 8)
	inside.X, inside.Y = 10, 50
	assert.True(t, inside.TouchesTerrain(ter))

	assert.False(t, inside.TouchesTerrain(nil))
}

func TestBall_HitBrick(t *testing.T) {
	br := NewBrick(100, 50, 32, 16, 1)

	t.Run("horizontal_takes_brick_push", func(t *testing.T) {
		b := newMovingBall(94, 54, 2, 0)
		var flips Flips
		b.HitBrick(br, physics.SideHorizontal, &flips)

		assert.True(t, flips.X)
		assert.InDelta(t, -3.0, b.DX, epsilon)
	})

	t.Run("push_is_reversed_with_the_ball", func(t *testing.T) {
		oncoming := NewBrick(100, 50, 32, 16, -1)
		b := newMovingBall(94, 54, 1, -2)
		var flips Flips
		b.HitBrick(oncoming, physics.SideHorizontal, &flips)

		// (1 - 1) flipped: an oncoming brick cancels the sideways motion
		assert.InDelta(t, 0.0, b.DX, epsilon)
		assert.InDelta(t, -2.0, b.DY, epsilon)
	})

	t.Run("axis_flips_once_per_tick", func(t *testing.T) {
		b := newMovingBall(110, 62, 1, -2)
		var flips Flips
		b.HitBrick(br, physics.SideVertical, &flips)
		b.HitBrick(br, physics.SideVertical, &flips)

		assert.InDelta(t, 2.0, b.DY, epsilon)
		assert.InDelta(t, 1.0, b.DX, epsilon)
	})

	t.Run("no_side_is_ignored", func(t *testing.T) {
		b := newMovingBall(110, 62, 1, -2)
		var flips Flips
		b.HitBrick(br, physics.SideNone, &flips)

		assert.Equal(t, Flips{}, flips)
		assert.InDelta(t, -2.0, b.DY, epsilon)
	})
}

func fill(n, v int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = v
	}
	return s
}
