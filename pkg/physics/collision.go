// pkg/physics/collision.go
package physics

// Rect is an integer axis-aligned box. Right and bottom edges are exclusive.
type Rect struct {
	X, Y int
	W, H int
}

// Right returns the first x coordinate past the box.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the first y coordinate past the box.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// CenterX returns the horizontal midpoint of the box.
func (r Rect) CenterX() int {
	return r.X + r.W/2
}

// CenterY returns the vertical midpoint of the box.
func (r Rect) CenterY() int {
	return r.Y + r.H/2
}

// Overlaps checks whether two boxes share any area
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.Right() &&
		other.X < r.Right() &&
		r.Y < other.Bottom() &&
		other.Y < r.Bottom()
}

// ContainsPoint checks whether (x, y) lies inside the box
func (r Rect) ContainsPoint(x, y int) bool {
	return x >= r.X && x < r.Right() &&
		y >= r.Y && y < r.Bottom()
}

// Side classifies how one box touches another.
type Side int

const (
	SideNone Side = iota
	SideHorizontal
	SideVertical
)

// String returns the side name
func (s Side) String() string {
	switch s {
	case SideHorizontal:
		return "horizontal"
	case SideVertical:
		return "vertical"
	default:
		return "none"
	}
}

// ClassifyContact decides which side of target the mover struck by testing the
// mover's edge midpoints against target. A left/right edge midpoint inside the
// target is a horizontal hit; otherwise a top/bottom edge midpoint inside is a
// vertical hit. Horizontal wins when both match.
func ClassifyContact(mover, target Rect) Side {
	midX := mover.CenterX()
	midY := mover.CenterY()

	if target.ContainsPoint(mover.X, midY) || target.ContainsPoint(mover.Right(), midY) {
		return SideHorizontal
	}
	if target.ContainsPoint(midX, mover.Y) || target.ContainsPoint(midX, mover.Bottom()) {
		return SideVertical
	}
	return SideNone
}
