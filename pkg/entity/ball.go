// pkg/entity/ball.go
package entity

import (
	"github.com/mzijlstra/Breakout/pkg/physics"
	"github.com/mzijlstra/Breakout/pkg/terrain"
)

// Wall identifies the field edges a ball bounced off during a tick.
type Wall uint8

const (
	WallLeft Wall = 1 << iota
	WallRight
	WallTop
)

// Has reports whether w includes other
func (w Wall) Has(other Wall) bool {
	return w&other != 0
}

// Ball is the projectile that breaks bricks.
type Ball struct {
	BaseEntity
}

// NewBall creates a resting ball of the given size.
func NewBall(w, h int) *Ball {
	return &Ball{BaseEntity: newBaseEntity(0, 0, w, h)}
}

// Update advances the ball and bounces it off the side and top walls.
func (b *Ball) Update(fieldWidth int) Wall {
	b.Advance()
	return b.ReflectBounds(fieldWidth)
}

// ReflectBounds flips the ball back into the field when it is outside an
// edge and still heading outward. There is no bottom wall.
func (b *Ball) ReflectBounds(fieldWidth int) Wall {
	var hit Wall
	if b.X < 0 && b.DX < 0 {
		b.FlipDX()
		b.Advance()
		hit |= WallLeft
	}
	if b.X > float64(fieldWidth-b.W) && b.DX > 0 {
		b.FlipDX()
		b.Advance()
		hit |= WallRight
	}
	if b.Y < 0 && b.DY < 0 {
		b.FlipDY()
		b.Advance()
		hit |= WallTop
	}
	return hit
}

// GoUp makes sure the ball is moving up the screen
func (b *Ball) GoUp() {
	if b.DY > 0 {
		b.FlipDY()
	}
}

// BouncePaddle sends the ball off along the paddle face normal when the two
// overlap, keeping its speed.
func (b *Ball) BouncePaddle(p *Paddle) bool {
	if !b.Bounds().Overlaps(p.Bounds()) {
		return false
	}
	b.SetMotion(b.Velocity, p.ServeAngle())
	b.Advance()
	return true
}

// PinTo parks a resting ball on the paddle face.
func (b *Ball) PinTo(p *Paddle) {
	b.Stop()
	b.SetCenter(p.ServePoint(b.H))
}

// Launch replaces the ball's motion with a single push.
func (b *Ball) Launch(force, angle float64) {
	b.Stop()
	b.ApplyForce(force, angle)
}

// Lost reports whether the ball left through the bottom of the field.
func (b *Ball) Lost(fieldHeight int) bool {
	return b.Y > float64(fieldHeight)
}

// TouchesTerrain checks the cell under the middle of the ball's top edge.
func (b *Ball) TouchesTerrain(t *terrain.Terrain) bool {
	if t == nil {
		return false
	}
	r := b.Bounds()
	return t.IsSolid(r.CenterX(), r.Y)
}

// HitBrick applies the response for a classified brick contact.
// flipped tracks the axes already reversed this tick so that several
// bricks struck on the same side reverse the ball only once.
func (b *Ball) HitBrick(br *Brick, side physics.Side, flipped *Flips) {
	switch side {
	case physics.SideHorizontal:
		// push first, then flip: the push is reversed along with the ball
		b.ApplyForce(br.Velocity, br.Direction)
		if !flipped.X {
			b.FlipDX()
			flipped.X = true
		}
	case physics.SideVertical:
		if !flipped.Y {
			b.FlipDY()
			flipped.Y = true
		}
	}
}

// Flips records which velocity axes were reversed during one tick.
type Flips struct {
	X, Y bool
}
