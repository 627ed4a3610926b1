// pkg/physics/vector.go
package physics

import "math"

// Vector2D represents a 2D vector in screen space (+x right, +y down)
type Vector2D struct {
	X float64
	Y float64
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{
		X: v.X * factor,
		Y: v.Y * factor,
	}
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Degrees returns the screen-space heading of the vector in [0, 360).
// The zero vector has heading 0.
func (v Vector2D) Degrees() float64 {
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	return NormalizeDegrees(RadiansToDegrees(math.Atan2(v.Y, v.X)))
}

// FromDegrees creates a vector from a screen-space heading and magnitude
func FromDegrees(angle float64, magnitude float64) Vector2D {
	rad := DegreesToRadians(angle)
	return Vector2D{
		X: magnitude * math.Cos(rad),
		Y: magnitude * math.Sin(rad),
	}
}

// Rotate rotates the vector clockwise on screen by angle degrees
func (v Vector2D) Rotate(angle float64) Vector2D {
	rad := DegreesToRadians(angle)
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Vector2D{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}
