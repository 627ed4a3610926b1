// pkg/physics/collision_test.go
package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, true},
		{"touching_edges", Rect{0, 0, 10, 10}, Rect{10, 0, 10, 10}, false},
		{"contained", Rect{0, 0, 10, 10}, Rect{2, 2, 2, 2}, true},
		{"apart", Rect{0, 0, 10, 10}, Rect{20, 20, 5, 5}, false},
		{"negative_space", Rect{-32, 0, 32, 16}, Rect{-1, 4, 8, 8}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.expected, tt.b.Overlaps(tt.a))
		})
	}
}

func TestRect_ContainsPoint(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 5, H: 5}

	assert.True(t, r.ContainsPoint(10, 10))
	assert.True(t, r.ContainsPoint(14, 14))
	assert.False(t, r.ContainsPoint(15, 12))
	assert.False(t, r.ContainsPoint(12, 15))
	assert.False(t, r.ContainsPoint(9, 12))
}

func TestClassifyContact(t *testing.T) {
	brick := Rect{X: 100, Y: 50, W: 32, H: 16}

	tests := []struct {
		name     string
		ball     Rect
		expected Side
	}{
		{"from_left", Rect{X: 94, Y: 54, W: 8, H: 8}, SideHorizontal},
		{"from_right", Rect{X: 130, Y: 54, W: 8, H: 8}, SideHorizontal},
		{"from_below", Rect{X: 110, Y: 62, W: 8, H: 8}, SideVertical},
		{"from_above", Rect{X: 110, Y: 44, W: 8, H: 8}, SideVertical},
		{"corner_clip", Rect{X: 95, Y: 45, W: 8, H: 8}, SideNone},
		{"embedded_prefers_horizontal", Rect{X: 110, Y: 54, W: 8, H: 8}, SideHorizontal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyContact(tt.ball, brick))
		})
	}
}

func TestSide_String(t *testing.T) {
	assert.Equal(t, "horizontal", SideHorizontal.String())
	assert.Equal(t, "vertical", SideVertical.String())
	assert.Equal(t, "none", SideNone.String())
}
