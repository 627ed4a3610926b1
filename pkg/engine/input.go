// pkg/engine/input.go
package engine

import (
	"math"

	"github.com/mzijlstra/Breakout/pkg/physics"
)

// Input is the control state sampled once per tick.
type Input struct {
	Left  bool
	Right bool
	Brake bool
	Serve bool

	// AimDelta turns the paddle face by this many degrees.
	AimDelta float64
	// Pointer, when set, aims the paddle face at a screen position.
	Pointer *physics.Vector2D
}

// InputSource supplies the controls for the next tick.
type InputSource interface {
	Poll() Input
}

// InputFunc adapts a function to InputSource.
type InputFunc func() Input

// Poll implements InputSource.
func (f InputFunc) Poll() Input { return f() }

// ScriptedInput replays a fixed sequence of inputs, then idles or loops.
type ScriptedInput struct {
	Frames []Input
	Loop   bool
	next   int
}

// Poll implements InputSource.
func (s *ScriptedInput) Poll() Input {
	if len(s.Frames) == 0 {
		return Input{}
	}
	if s.next >= len(s.Frames) {
		if !s.Loop {
			return Input{}
		}
		s.next = 0
	}
	in := s.Frames[s.next]
	s.next++
	return in
}

// Autopilot steers the paddle under the ball and serves after a pause.
type Autopilot struct {
	Game       *Game
	ServeDelay int
	Deadband   float64

	waited int
}

// NewAutopilot creates an autopilot for g.
func NewAutopilot(g *Game) *Autopilot {
	return &Autopilot{Game: g, ServeDelay: 30, Deadband: 4}
}

// Poll implements InputSource.
func (a *Autopilot) Poll() Input {
	s := a.Game.State()
	var in Input

	paddleX := float64(s.Paddle.Bounds.CenterX())
	target := float64(s.Ball.Bounds.CenterX())
	if s.Phase == PhaseServe {
		target = float64(s.FieldWidth) / 2
		a.waited++
		if a.waited >= a.ServeDelay {
			in.Serve = true
			a.waited = 0
		}
	}

	switch diff := target - paddleX; {
	case math.Abs(diff) <= a.Deadband:
		in.Brake = true
	case diff < 0:
		in.Left = true
	default:
		in.Right = true
	}

	// keep the face level so serves go straight up
	in.AimDelta = -s.Paddle.Rotation + s.Paddle.TrackRotation
	return in
}
