package terrain

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerrain_IsSolid_OutOfBounds(t *testing.T) {
	ter := FromHeights(10, 10, []int{5, 5, 5, 5, 5, 5, 5, 5, 5, 5}, 200)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"air", 3, 2, false},
		{"surface", 3, 5, true},
		{"bottom", 9, 9, true},
		{"left_of_field", -1, 7, false},
		{"right_of_field", 10, 7, false},
		{"above_field", 3, -1, false},
		{"below_field", 3, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ter.IsSolid(tt.x, tt.y))
		})
	}
}

func TestTerrain_FindSurfaceAbove(t *testing.T) {
	ter := FromHeights(4, 20, []int{10, 12, 20, 0}, 255)

	assert.Equal(t, 10, ter.FindSurfaceAbove(0, 15))
	assert.Equal(t, 12, ter.FindSurfaceAbove(1, 19))
	assert.Equal(t, 7, ter.FindSurfaceAbove(2, 7), "non-solid start returns the start")
	assert.Equal(t, 0, ter.FindSurfaceAbove(3, 19), "full column climbs to the top row")
}

func TestTerrain_FindGroundBelow(t *testing.T) {
	ter := FromHeights(2, 20, []int{10, 20}, 255)

	y, ok := ter.FindGroundBelow(0, 6, 5)
	require.True(t, ok)
	assert.Equal(t, 10, y)

	_, ok = ter.FindGroundBelow(0, 2, 5)
	assert.False(t, ok)

	_, ok = ter.FindGroundBelow(1, 0, 100)
	assert.False(t, ok, "empty column")
}

func TestTerrain_Deposit_Idempotent(t *testing.T) {
	ter := New(8, 8)

	require.True(t, ter.Deposit(2, 3, 100))
	count := ter.SolidCount()
	version := ter.Version()
	sum := ter.Checksum()

	assert.False(t, ter.Deposit(2, 3, 50))
	assert.Equal(t, count, ter.SolidCount())
	assert.Equal(t, version, ter.Version())
	assert.Equal(t, sum, ter.Checksum())
	assert.Equal(t, uint8(100), ter.Alpha(2, 3), "existing shade kept")

	assert.False(t, ter.Deposit(-1, 3, 100))
	assert.False(t, ter.Deposit(8, 8, 100))
	assert.Equal(t, count, ter.SolidCount())
}

func TestTerrain_ChecksumTracksContent(t *testing.T) {
	a := New(16, 16)
	b := New(16, 16)
	assert.Equal(t, a.Checksum(), b.Checksum())

	a.Deposit(4, 4, 10)
	assert.NotEqual(t, a.Checksum(), b.Checksum())

	b.Deposit(4, 4, 10)
	assert.Equal(t, a.Checksum(), b.Checksum())

	assert.NotEqual(t, New(8, 32).Checksum(), New(32, 8).Checksum())
}

func TestTerrain_Image(t *testing.T) {
	ter := New(4, 4)
	ter.Deposit(1, 2, 77)

	img := ter.Image(color.NRGBA{R: 10, G: 20, B: 30})
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 77}, img.NRGBAAt(1, 2))
	assert.Equal(t, uint8(0), img.NRGBAAt(0, 0).A)
}

func TestTerrain_DegenerateFields(t *testing.T) {
	empty := New(0, 0)
	assert.False(t, empty.IsSolid(0, 0))
	assert.False(t, empty.Deposit(0, 0, 1))
	_, ok := empty.ColumnTop(0)
	assert.False(t, ok)

	full := FromHeights(3, 3, []int{0, 0, 0}, 255)
	assert.Equal(t, 9, full.SolidCount())
	assert.False(t, full.Deposit(1, 1, 1))
	assert.Equal(t, 0, full.Splash(0, 3, 2, 200), "no air above the top row")
}
