// pkg/physics/motion.go
package physics

import "math"

// Body is the kinematic state shared by every moving entity.
//
// X and Y are the authority position; the integer box returned by Bounds is
// always derived from them. Velocity/Direction and DX/DY describe the same
// motion in polar and cartesian form and are kept in sync by every mutator.
type Body struct {
	X, Y float64
	W, H int

	Velocity  float64 // magnitude, >= 0
	Direction float64 // degrees in [0, 360), clockwise on screen
	DX, DY    float64
}

// NewBody creates a resting body with its top-left corner at (x, y).
func NewBody(x, y float64, w, h int) Body {
	return Body{X: x, Y: y, W: w, H: h}
}

// Bounds returns the integer-truncated box used for rendering and contacts.
func (b *Body) Bounds() Rect {
	return Rect{
		X: int(math.Floor(b.X)),
		Y: int(math.Floor(b.Y)),
		W: b.W,
		H: b.H,
	}
}

// Position returns the authority position as a vector.
func (b *Body) Position() Vector2D {
	return Vector2D{X: b.X, Y: b.Y}
}

// Center returns the centre of the body in sub-pixel precision.
func (b *Body) Center() Vector2D {
	return Vector2D{X: b.X + float64(b.W)/2, Y: b.Y + float64(b.H)/2}
}

// SetCenter moves the body so that its centre is at c.
func (b *Body) SetCenter(c Vector2D) {
	b.X = c.X - float64(b.W)/2
	b.Y = c.Y - float64(b.H)/2
}

// ApplyForce adds a force of the given magnitude along angle (degrees) to
// the current motion. Forces compose by vector addition.
func (b *Body) ApplyForce(magnitude, angle float64) {
	f := FromDegrees(angle, magnitude)
	b.DX += f.X
	b.DY += f.Y
	b.refix()
}

// SetMotion replaces the current motion with the given speed and heading.
func (b *Body) SetMotion(velocity, direction float64) {
	if velocity <= 0 {
		b.Stop()
		return
	}
	f := FromDegrees(direction, velocity)
	b.DX = f.X
	b.DY = f.Y
	b.Velocity = velocity
	b.Direction = NormalizeDegrees(direction)
}

// Advance integrates the position by one tick.
func (b *Body) Advance() {
	b.X += b.DX
	b.Y += b.DY
}

// Stop hard-resets the body to rest.
func (b *Body) Stop() {
	b.Velocity = 0
	b.Direction = 0
	b.DX = 0
	b.DY = 0
}

// StopX kills horizontal motion only.
func (b *Body) StopX() {
	b.DX = 0
	b.refix()
}

// StopY kills vertical motion only.
func (b *Body) StopY() {
	b.DY = 0
	b.refix()
}

// FlipDX negates the horizontal component.
func (b *Body) FlipDX() {
	b.DX = -b.DX
	b.refix()
}

// FlipDY negates the vertical component.
func (b *Body) FlipDY() {
	b.DY = -b.DY
	b.refix()
}

// Moving reports whether the body has any motion.
func (b *Body) Moving() bool {
	return b.DX != 0 || b.DY != 0
}

// refix re-derives velocity and direction from dx/dy.
func (b *Body) refix() {
	v := Vector2D{X: b.DX, Y: b.DY}
	b.Velocity = v.Length()
	b.Direction = v.Degrees()
}
