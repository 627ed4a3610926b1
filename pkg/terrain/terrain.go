// pkg/terrain/terrain.go
package terrain

import (
	"encoding/binary"
	"image"
	"image/color"

	"github.com/cespare/xxhash/v2"
)

// Terrain is a per-pixel solidity grid covering the playfield.
// A cell with alpha 0 is air; any other value is solid ground of that shade.
// Terrain only ever grows: cells are added, never removed.
type Terrain struct {
	width  int
	height int
	cells  []uint8
	solid  int

	version uint64
}

// New creates an empty terrain of the given size.
func New(width, height int) *Terrain {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Terrain{
		width:  width,
		height: height,
		cells:  make([]uint8, width*height),
	}
}

// FromHeights creates a terrain where column x is solid from heights[x] down
// to the bottom of the field. Columns past len(heights) stay empty.
func FromHeights(width, height int, heights []int, shade uint8) *Terrain {
	t := New(width, height)
	if shade == 0 {
		shade = 1
	}
	for x := 0; x < width && x < len(heights); x++ {
		top := heights[x]
		if top < 0 {
			top = 0
		}
		for y := top; y < height; y++ {
			t.set(x, y, shade)
		}
	}
	return t
}

// Width returns the terrain width in pixels
func (t *Terrain) Width() int { return t.width }

// Height returns the terrain height in pixels
func (t *Terrain) Height() int { return t.height }

// Version increases every time a cell changes.
func (t *Terrain) Version() uint64 { return t.version }

// SolidCount returns the number of solid cells.
func (t *Terrain) SolidCount() int { return t.solid }

func (t *Terrain) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < t.width && y < t.height
}

// IsSolid reports whether (x, y) is ground. Out-of-bounds cells are air.
func (t *Terrain) IsSolid(x, y int) bool {
	return t.Alpha(x, y) > 0
}

// Alpha returns the shade stored at (x, y), 0 for air or out of bounds.
func (t *Terrain) Alpha(x, y int) uint8 {
	if !t.inBounds(x, y) {
		return 0
	}
	return t.cells[y*t.width+x]
}

// FindSurfaceAbove walks upward from a solid cell and returns the y of the
// topmost solid cell in that contiguous run. A non-solid start returns yStart.
func (t *Terrain) FindSurfaceAbove(x, yStart int) int {
	if !t.IsSolid(x, yStart) {
		return yStart
	}
	y := yStart
	for t.IsSolid(x, y-1) {
		y--
	}
	return y
}

// FindGroundBelow returns the first solid y in [yStart, yStart+maxDepth].
func (t *Terrain) FindGroundBelow(x, yStart, maxDepth int) (int, bool) {
	if maxDepth < 0 {
		return 0, false
	}
	for y := yStart; y <= yStart+maxDepth; y++ {
		if t.IsSolid(x, y) {
			return y, true
		}
	}
	return 0, false
}

// ColumnTop returns the highest solid y in column x, or false when the
// column has no ground at all.
func (t *Terrain) ColumnTop(x int) (int, bool) {
	return t.FindGroundBelow(x, 0, t.height-1)
}

// Deposit marks (x, y) solid with the given shade and reports whether the
// terrain changed. Already solid cells and out-of-bounds writes are no-ops.
func (t *Terrain) Deposit(x, y int, shade uint8) bool {
	if !t.inBounds(x, y) || t.IsSolid(x, y) {
		return false
	}
	if shade == 0 {
		shade = 1
	}
	t.set(x, y, shade)
	t.version++
	return true
}

func (t *Terrain) set(x, y int, shade uint8) {
	i := y*t.width + x
	if t.cells[i] == 0 {
		t.solid++
	}
	t.cells[i] = shade
}

// Checksum hashes the grid and its dimensions.
func (t *Terrain) Checksum() uint64 {
	d := xxhash.New()
	var dims [16]byte
	binary.LittleEndian.PutUint64(dims[:8], uint64(t.width))
	binary.LittleEndian.PutUint64(dims[8:], uint64(t.height))
	_, _ = d.Write(dims[:])
	_, _ = d.Write(t.cells)
	return d.Sum64()
}

// Image renders the grid as an NRGBA buffer tinted with base. Air is fully
// transparent; solid cells use their shade as alpha.
func (t *Terrain) Image(base color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.width, t.height))
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			a := t.cells[y*t.width+x]
			if a == 0 {
				continue
			}
			img.SetNRGBA(x, y, color.NRGBA{R: base.R, G: base.G, B: base.B, A: a})
		}
	}
	return img
}
