package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mzijlstra/Breakout/pkg/physics"
	"github.com/mzijlstra/Breakout/pkg/terrain"
)

func TestPaddle_Aim(t *testing.T) {
	tests := []struct {
		name     string
		track    float64
		target   float64
		expected float64
	}{
		{"clamped_clockwise", 0, 90, 30},
		{"clamped_counter_clockwise", 0, -90, -30},
		{"within_range", 0, 10, 10},
		{"across_zero", -10, 30, 20},
		{"target_wraps", 10, 350, -10},
		{"sloped_track", 25, 90, 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaddle(0, 0, 32, 8, DefaultPaddleTuning())
			p.TrackRotation = tt.track

			p.Aim(tt.target)

			assert.InDelta(t, tt.expected, p.PaddleRotation, epsilon)
		})
	}
}

func TestPaddle_AimAt(t *testing.T) {
	p := NewPaddle(100, 400, 32, 8, DefaultPaddleTuning())

	p.AimAt(116, 100)
	assert.InDelta(t, 0.0, p.PaddleRotation, 1e-7, "pointer straight above")

	p.AimAt(600, 404)
	assert.InDelta(t, 30.0, p.PaddleRotation, epsilon, "pointer far right clamps")

	p.AimAt(0, 404)
	assert.InDelta(t, -30.0, p.PaddleRotation, epsilon, "pointer far left clamps")
}

func TestPaddle_FaceNormalAndServePoint(t *testing.T) {
	p := NewPaddle(100, 400, 32, 8, DefaultPaddleTuning())

	n := p.FaceNormal()
	assert.InDelta(t, 0.0, n.X, epsilon)
	assert.InDelta(t, -1.0, n.Y, epsilon)
	assert.InDelta(t, 270.0, p.ServeAngle(), epsilon)

	p.PaddleRotation = 90
	n = p.FaceNormal()
	assert.InDelta(t, 1.0, n.X, epsilon)
	assert.InDelta(t, 0.0, n.Y, epsilon)

	sp := p.ServePoint(8)
	assert.InDelta(t, 124.0, sp.X, epsilon)
	assert.InDelta(t, 404.0, sp.Y, epsilon)
}

func TestPaddle_Probes(t *testing.T) {
	p := NewPaddle(100, 400, 32, 8, DefaultPaddleTuning())

	left, right := p.Probes()

	assert.InDelta(t, 100.0, left.X, epsilon)
	assert.InDelta(t, 414.0, left.Y, epsilon)
	assert.InDelta(t, 132.0, right.X, epsilon)
	assert.InDelta(t, 414.0, right.Y, epsilon)
}

func TestPaddle_MoveSuppressedWhileFlying(t *testing.T) {
	p := NewPaddle(100, 100, 32, 8, DefaultPaddleTuning())

	p.MoveRight()
	assert.InDelta(t, 0.2, p.DX, epsilon)

	p.MoveLeft()
	p.MoveLeft()
	assert.InDelta(t, -0.2, p.DX, epsilon)

	p.Stop()
	p.Flying = true
	p.MoveRight()
	assert.False(t, p.Moving())
}

func TestPaddle_Update_Classic(t *testing.T) {
	t.Run("clamps_right_edge", func(t *testing.T) {
		p := NewPaddle(606, 460, 32, 8, DefaultPaddleTuning())
		p.SetMotion(5, 0)

		p.Update(nil, 640, 480)

		assert.Equal(t, 608.0, p.X)
		assert.Equal(t, 0.0, p.DX)
		assert.False(t, p.Flying)
	})

	t.Run("clamps_left_edge", func(t *testing.T) {
		p := NewPaddle(1, 460, 32, 8, DefaultPaddleTuning())
		p.SetMotion(5, 180)

		p.Update(nil, 640, 480)

		assert.Equal(t, 0.0, p.X)
		assert.Equal(t, 0.0, p.DX)
	})

	t.Run("braking_stops", func(t *testing.T) {
		p := NewPaddle(300, 460, 32, 8, DefaultPaddleTuning())
		p.SetMotion(0.6, 0)
		p.Braking = true

		p.Update(nil, 640, 480)

		assert.False(t, p.Moving())
		assert.InDelta(t, 300.0, p.X, epsilon)
	})

	t.Run("ground_damping", func(t *testing.T) {
		p := NewPaddle(300, 460, 32, 8, DefaultPaddleTuning())
		p.SetMotion(2, 0)

		p.Update(nil, 640, 480)

		assert.InDelta(t, 1.8, p.Velocity, 1e-7)
		assert.InDelta(t, 301.8, p.X, 1e-7)
	})
}

func TestPaddle_Update_FlatGround(t *testing.T) {
	ter := terrain.FromHeights(640, 480, fill(640, 400), 255)
	p := NewPaddle(100, 386.5, 32, 8, DefaultPaddleTuning())

	p.Update(ter, 640, 480)

	assert.False(t, p.Flying)
	assert.InDelta(t, 0.0, p.TrackRotation, epsilon)
	assert.InDelta(t, 386.0, p.Y, epsilon)
	_, right := p.Probes()
	assert.InDelta(t, 400.0, right.Y, epsilon)
}

func TestPaddle_Update_Flying(t *testing.T) {
	ter := terrain.FromHeights(640, 480, fill(640, 400), 255)
	p := NewPaddle(100, 300, 32, 8, DefaultPaddleTuning())
	p.TrackRotation = 12

	p.Update(ter, 640, 480)

	assert.True(t, p.Flying)
	assert.InDelta(t, 12.0, p.TrackRotation, epsilon, "track kept while airborne")
	assert.InDelta(t, 0.3*0.95, p.DY, 1e-9)
	assert.Greater(t, p.Y, 300.0)
}

func TestPaddle_Update_SlopeRollsDownhill(t *testing.T) {
	heights := make([]int, 640)
	for x := range heights {
		heights[x] = 400 - x/2
	}
	ter := terrain.FromHeights(640, 480, heights, 255)

	tuning := DefaultPaddleTuning()
	tuning.GroundStop = 0
	// centre (200, 300); probes at x 184 and 216, y 310
	p := NewPaddle(184, 296, 32, 8, tuning)

	p.Update(ter, 640, 480)

	assert.False(t, p.Flying)
	assert.InDelta(t, -26.565, p.TrackRotation, 0.01)
	assert.Less(t, p.DX, 0.0, "rolls toward the lower left")
	assert.Less(t, p.Y, 296.0, "lifted onto the higher contact")
}

func TestPaddle_Update_SingleFootGapTolerance(t *testing.T) {
	heights := fill(640, 400)
	for x := 120; x < 640; x++ {
		heights[x] = 403
	}
	ter := terrain.FromHeights(640, 480, heights, 255)
	// left probe lands on the 400 ledge, right probe hangs 2px above 403
	p := NewPaddle(100, 387, 32, 8, DefaultPaddleTuning())

	p.Update(ter, 640, 480)

	assert.False(t, p.Flying)
	assert.Greater(t, p.TrackRotation, 0.0, "right foot found ground 3px lower")
}

func TestRotationFrame(t *testing.T) {
	tests := []struct {
		rotation float64
		expected int
	}{
		{0, 0},
		{11.25, 1},
		{30, 2},
		{90, 8},
		{179.9, 15},
		{180, 0},
		{-11.25, 15},
		{-30, 13},
		{360, 0},
	}

	for _, tt := range tests {
		got := RotationFrame(tt.rotation)
		assert.Equal(t, tt.expected, got, "RotationFrame(%v)", tt.rotation)
		assert.GreaterOrEqual(t, got, 0)
		assert.Less(t, got, RotationFrames)
	}
}

func TestPaddle_Update_BothFeetWithinGap(t *testing.T) {
	ter := terrain.FromHeights(640, 480, fill(640, 400), 255)
	// probes hang 2px above the ground line
	p := NewPaddle(100, 384, 32, 8, DefaultPaddleTuning())

	p.Update(ter, 640, 480)

	assert.False(t, p.Flying)
	assert.InDelta(t, 386.0, p.Y, epsilon)
}

// slope returns ground rising to the right at deg degrees.
func slope(deg float64) []int {
	rise := math.Tan(physics.DegreesToRadians(deg))
	heights := make([]int, 640)
	for x := range heights {
		heights[x] = 400 - int(math.Round(float64(x)*rise))
	}
	return heights
}

func TestPaddle_ClimbsSlopeWithoutFlying(t *testing.T) {
	tests := []struct {
		name string
		deg  float64
	}{
		{"flat", 0},
		{"gentle", 10},
		{"steep", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			heights := slope(tt.deg)
			ter := terrain.FromHeights(640, 480, heights, 255)
			p := NewPaddle(100, float64(heights[100])-14, 32, 8, DefaultPaddleTuning())

			flying := 0
			for i := 0; i < 100; i++ {
				p.MoveRight()
				p.Update(ter, 640, 480)
				if p.Flying {
					flying++
				}
			}

			assert.Zero(t, flying, "ticks spent airborne")
			assert.Greater(t, p.X, 140.0, "paddle kept driving")
			assert.InDelta(t, -tt.deg, p.TrackRotation, 4)
		})
	}
}
