// pkg/entity/dirt.go
package entity

import (
	"math/rand/v2"

	"github.com/mzijlstra/Breakout/pkg/terrain"
)

// DirtState is the outcome of a dirt update
type DirtState int

const (
	DirtFalling DirtState = iota
	DirtSettled
	DirtEscaped
)

// String returns the state name
func (s DirtState) String() string {
	switch s {
	case DirtSettled:
		return "settled"
	case DirtEscaped:
		return "escaped"
	default:
		return "falling"
	}
}

// DirtTuning holds the constants for falling debris.
type DirtTuning struct {
	Gravity    float64
	MinDeposit int
	MaxDeposit int
	Shade      uint8
}

// DefaultDirtTuning returns the stock debris constants.
func DefaultDirtTuning() DirtTuning {
	return DirtTuning{
		Gravity:    0.1,
		MinDeposit: 1,
		MaxDeposit: 3,
		Shade:      160,
	}
}

// Dirt is the debris left by a destroyed brick. It falls until it lands on
// the terrain and becomes part of it.
type Dirt struct {
	BaseEntity
	State  DirtState
	Tuning DirtTuning
}

// NewDirt creates debris in place of br, inheriting its box and motion.
func NewDirt(br *Brick, tuning DirtTuning) *Dirt {
	d := &Dirt{BaseEntity: newBaseEntity(br.X, br.Y, br.W, br.H), Tuning: tuning}
	d.SetMotion(br.Velocity, br.Direction)
	return d
}

// Update applies gravity and moves the dirt, settling it into t when its
// bottom edge reaches solid ground.
func (d *Dirt) Update(t *terrain.Terrain, fieldWidth, fieldHeight int, rng *rand.Rand) DirtState {
	if d.State != DirtFalling {
		return d.State
	}

	d.ApplyForce(d.Tuning.Gravity, 90)
	d.Advance()
	wrapHorizontal(&d.Body, fieldWidth)

	if t != nil && d.landed(t) {
		d.deposit(t, rng)
		d.State = DirtSettled
		d.Active = false
		return d.State
	}
	if d.Y > float64(fieldHeight) {
		d.State = DirtEscaped
		d.Active = false
	}
	return d.State
}

func (d *Dirt) landed(t *terrain.Terrain) bool {
	r := d.Bounds()
	bottom := r.Bottom() - 1
	for x := r.X; x < r.Right(); x++ {
		if t.IsSolid(x, bottom) {
			return true
		}
	}
	return false
}

// deposit piles a few random cells on top of the ground in every column of
// the footprint.
func (d *Dirt) deposit(t *terrain.Terrain, rng *rand.Rand) {
	r := d.Bounds()
	lo, hi := d.Tuning.MinDeposit, d.Tuning.MaxDeposit
	if lo < 0 {
		lo = 0
	}
	if hi < lo {
		hi = lo
	}
	for x := r.X; x < r.Right(); x++ {
		n := lo
		if hi > lo {
			n += rng.IntN(hi - lo + 1)
		}

		top := r.Bottom()
		if gy, ok := t.FindGroundBelow(x, r.Y, r.H); ok {
			top = t.FindSurfaceAbove(x, gy)
		}
		for i := 1; i <= n; i++ {
			t.Deposit(x, top-i, d.Tuning.Shade)
		}
	}
}
