// pkg/terrain/generator.go
package terrain

import (
	"math"
	"math/rand/v2"
)

// Generator produces the initial ground for a field.
type Generator interface {
	Generate(width, height int) *Terrain
}

// NoiseGenerator builds a rolling heightmap from layered value noise.
type NoiseGenerator struct {
	Seed       uint64
	BaseHeight float64 // ground line as a fraction of field height, 0 top .. 1 bottom
	Amplitude  float64 // peak deviation from the base line in pixels
	Octaves    int
	CellSize   float64 // pixels between lattice points of the first octave
	TopShade   uint8
	DeepShade  uint8
}

// DefaultNoiseGenerator returns the generator used when nothing is configured.
func DefaultNoiseGenerator(seed uint64) *NoiseGenerator {
	return &NoiseGenerator{
		Seed:       seed,
		BaseHeight: 0.8,
		Amplitude:  48,
		Octaves:    3,
		CellSize:   128,
		TopShade:   255,
		DeepShade:  96,
	}
}

// Generate implements Generator.
func (g *NoiseGenerator) Generate(width, height int) *Terrain {
	return FromShadedHeights(width, height, g.Heights(width, height), g.TopShade, g.DeepShade)
}

// Heights returns the ground line y for every column.
func (g *NoiseGenerator) Heights(width, height int) []int {
	if width <= 0 {
		return nil
	}
	octaves := g.Octaves
	if octaves < 1 {
		octaves = 1
	}
	cell := g.CellSize
	if cell <= 0 {
		cell = 1
	}

	rng := rand.New(rand.NewPCG(g.Seed, g.Seed^0x9e3779b97f4a7c15))
	layers := make([][]float64, octaves)
	for o := range layers {
		points := int(float64(width)/cell*math.Pow(2, float64(o))) + 2
		layers[o] = make([]float64, points)
		for i := range layers[o] {
			layers[o][i] = rng.Float64()*2 - 1
		}
	}

	base := g.BaseHeight * float64(height)
	heights := make([]int, width)
	for x := 0; x < width; x++ {
		n, amp, norm := 0.0, 1.0, 0.0
		for o, lattice := range layers {
			pos := float64(x) / cell * math.Pow(2, float64(o))
			n += smoothNoise(lattice, pos) * amp
			norm += amp
			amp *= 0.5
		}
		y := int(math.Round(base + n/norm*g.Amplitude))
		heights[x] = clampInt(y, 0, height)
	}
	return heights
}

// FromShadedHeights is FromHeights with a vertical gradient from top to deep
// shade across the first 64 rows below each column's surface.
func FromShadedHeights(width, height int, heights []int, top, deep uint8) *Terrain {
	t := New(width, height)
	if top == 0 {
		top = 1
	}
	if deep == 0 {
		deep = 1
	}
	for x := 0; x < width && x < len(heights); x++ {
		surface := clampInt(heights[x], 0, height)
		for y := surface; y < height; y++ {
			f := math.Min(float64(y-surface)/64, 1)
			shade := uint8(lerpValue(float64(top), float64(deep), f))
			if shade == 0 {
				shade = 1
			}
			t.set(x, y, shade)
		}
	}
	return t
}

// Splash paints rows of lightening material directly above the ground of
// every column in [left, left+width). Columns with no ground are skipped.
// It returns the number of cells added.
func (t *Terrain) Splash(left, width, rows int, shade uint8) int {
	added := 0
	for x := left; x < left+width; x++ {
		top, ok := t.ColumnTop(x)
		if !ok {
			continue
		}
		for i := 1; i <= rows; i++ {
			s := lighten(shade, i, rows)
			if t.Deposit(x, top-i, s) {
				added++
			}
		}
	}
	return added
}

func lighten(shade uint8, step, steps int) uint8 {
	if steps <= 0 {
		return shade
	}
	f := float64(step) / float64(steps+1)
	return uint8(lerpValue(float64(shade), 255, f))
}

func smoothNoise(lattice []float64, pos float64) float64 {
	i := int(math.Floor(pos))
	if i < 0 {
		i = 0
	}
	if i >= len(lattice)-1 {
		return lattice[len(lattice)-1]
	}
	return lerpValue(lattice[i], lattice[i+1], smoothstepValue(pos-float64(i)))
}

func lerpValue(a, b, t float64) float64 {
	return a + t*(b-a)
}

func smoothstepValue(t float64) float64 {
	return t * t * (3.0 - 2.0*t)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
