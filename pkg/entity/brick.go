// pkg/entity/brick.go
package entity

import "math"

// Brick is a destructible tile drifting sideways across the field.
type Brick struct {
	BaseEntity
	Row int
}

// NewBrick creates a brick drifting at drift pixels per tick; negative
// drift moves left.
func NewBrick(x, y float64, w, h int, drift float64) *Brick {
	b := &Brick{BaseEntity: newBaseEntity(x, y, w, h)}
	if drift < 0 {
		b.SetMotion(-drift, 180)
	} else {
		b.SetMotion(drift, 0)
	}
	return b
}

// Update moves the brick and wraps it around the field edges.
func (b *Brick) Update(fieldWidth int) {
	b.Advance()
	wrapHorizontal(&b.Body, fieldWidth)
}

// BrickLayout describes the starting wall of bricks.
type BrickLayout struct {
	Rows   int
	Top    int
	Width  int
	Height int
	Drift  float64
}

// Layout builds the starting bricks: rows spaced three brick heights apart,
// as many columns as fit the field, even rows drifting left and odd rows
// drifting right.
func Layout(l BrickLayout, fieldWidth int) []*Brick {
	if l.Width <= 0 || l.Height <= 0 || l.Rows <= 0 {
		return nil
	}
	cols := fieldWidth / l.Width
	drift := math.Abs(l.Drift)
	bricks := make([]*Brick, 0, l.Rows*cols)
	for row := 0; row < l.Rows; row++ {
		dx := drift
		if row%2 == 0 {
			dx = -drift
		}
		y := float64(l.Top + row*l.Height*3)
		for col := 0; col < cols; col++ {
			b := NewBrick(float64(col*l.Width), y, l.Width, l.Height, dx)
			b.Row = row
			bricks = append(bricks, b)
		}
	}
	return bricks
}
