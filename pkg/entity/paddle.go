// pkg/entity/paddle.go
package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mzijlstra/Breakout/pkg/physics"
	"github.com/mzijlstra/Breakout/pkg/terrain"
)

// RotationFrames is the number of sprite frames covering half a turn.
const RotationFrames = 16

// PaddleTuning holds the constants that shape paddle handling.
type PaddleTuning struct {
	Acceleration     float64
	Gravity          float64
	MaxAimDivergence float64 // degrees the face may tilt away from the track
	Lookahead        float64 // pixels from the top edge to the ground probes
	GapTolerance     int     // pixels a lifted probe still counts as grounded
	AirDamping       float64
	BrakeDamping     float64
	BrakeStop        float64
	GroundDamping    float64
	GroundStop       float64
}

// DefaultPaddleTuning returns the stock handling constants.
func DefaultPaddleTuning() PaddleTuning {
	return PaddleTuning{
		Acceleration:     0.2,
		Gravity:          0.3,
		MaxAimDivergence: 30,
		Lookahead:        14,
		GapTolerance:     5,
		AirDamping:       0.05,
		BrakeDamping:     0.25,
		BrakeStop:        0.5,
		GroundDamping:    0.1,
		GroundStop:       0.1,
	}
}

// Paddle is a tracked vehicle that drives along the terrain and tilts its
// face to aim the ball.
type Paddle struct {
	BaseEntity

	TrackRotation  float64 // degrees, signed, follows the ground under the tracks
	PaddleRotation float64 // degrees, signed, face tilt set by aiming
	Flying         bool
	Braking        bool

	Tuning PaddleTuning
}

// NewPaddle creates a paddle with its top-left corner at (x, y).
func NewPaddle(x, y float64, w, h int, tuning PaddleTuning) *Paddle {
	return &Paddle{
		BaseEntity: newBaseEntity(x, y, w, h),
		Tuning:     tuning,
	}
}

// MoveLeft pushes the paddle backwards along its track.
func (p *Paddle) MoveLeft() {
	if p.Flying {
		return
	}
	p.ApplyForce(p.Tuning.Acceleration, 180+p.TrackRotation)
}

// MoveRight pushes the paddle forwards along its track.
func (p *Paddle) MoveRight() {
	if p.Flying {
		return
	}
	p.ApplyForce(p.Tuning.Acceleration, p.TrackRotation)
}

// Aim tilts the face toward target, never further than MaxAimDivergence
// from the track.
func (p *Paddle) Aim(target float64) {
	limit := p.Tuning.MaxAimDivergence
	diff := physics.Clamp(physics.AngleDiff(target, p.TrackRotation), -limit, limit)
	p.PaddleRotation = physics.SignedDegrees(p.TrackRotation + diff)
}

// AimAt tilts the face so that it points at a screen position.
func (p *Paddle) AimAt(px, py float64) {
	c := p.Center()
	heading := physics.Vector2D{X: px - c.X, Y: py - c.Y}.Degrees()
	p.Aim(heading + 90)
}

// ServeAngle is the heading along the face normal.
func (p *Paddle) ServeAngle() float64 {
	return physics.NormalizeDegrees(p.PaddleRotation - 90)
}

// FaceNormal returns the unit vector pointing out of the paddle face.
func (p *Paddle) FaceNormal() physics.Vector2D {
	n := mgl64.Rotate2D(physics.DegreesToRadians(p.PaddleRotation)).Mul2x1(mgl64.Vec2{0, -1})
	return physics.Vector2D{X: n.X(), Y: n.Y()}
}

// ServePoint is where a ball of height ballH is centred while waiting on
// the paddle.
func (p *Paddle) ServePoint(ballH int) physics.Vector2D {
	offset := float64(p.H)/2 + float64(ballH)/2
	return p.Center().Add(p.FaceNormal().Scale(offset))
}

// Probes returns the left and right ground probe points.
func (p *Paddle) Probes() (left, right physics.Vector2D) {
	rot := mgl64.Rotate2D(physics.DegreesToRadians(p.TrackRotation))
	c := p.Center()
	halfW := float64(p.W) / 2
	down := p.Tuning.Lookahead - float64(p.H)/2

	l := rot.Mul2x1(mgl64.Vec2{-halfW, down})
	r := rot.Mul2x1(mgl64.Vec2{halfW, down})
	return physics.Vector2D{X: c.X + l.X(), Y: c.Y + l.Y()},
		physics.Vector2D{X: c.X + r.X(), Y: c.Y + r.Y()}
}

// Update runs one tick of terrain following, gravity, damping and
// integration. A nil terrain selects flat classic handling.
func (p *Paddle) Update(t *terrain.Terrain, fieldWidth, fieldHeight int) {
	if t == nil {
		p.TrackRotation = 0
		p.Flying = false
	} else {
		p.followTerrain(t)
		p.applyGravity()
	}
	p.applyDamping()
	p.Advance()
	p.clamp(fieldWidth, fieldHeight)
}

type foot struct {
	probe    physics.Vector2D
	contact  float64
	grounded bool
}

func (p *Paddle) senseFoot(t *terrain.Terrain, probe physics.Vector2D) foot {
	x, y := int(math.Floor(probe.X)), int(math.Floor(probe.Y))
	if !t.IsSolid(x, y) {
		return foot{probe: probe}
	}
	return foot{probe: probe, contact: float64(t.FindSurfaceAbove(x, y)), grounded: true}
}

// reachFoot grounds a lifted foot when solid ground lies within
// GapTolerance below its probe.
func (p *Paddle) reachFoot(t *terrain.Terrain, f foot) foot {
	x, y := int(math.Floor(f.probe.X)), int(math.Floor(f.probe.Y))
	if gy, ok := t.FindGroundBelow(x, y, p.Tuning.GapTolerance); ok {
		f.contact = float64(gy)
		f.grounded = true
	}
	return f
}

// settleFoot gives an ungrounded foot a contact when its partner is down.
func (p *Paddle) settleFoot(t *terrain.Terrain, f foot) foot {
	if f.grounded {
		return f
	}
	x, y := int(math.Floor(f.probe.X)), int(math.Floor(f.probe.Y))
	if gy, ok := t.FindGroundBelow(x, y, p.Tuning.GapTolerance); ok {
		f.contact = float64(gy)
		return f
	}
	f.contact = float64(y + p.Tuning.GapTolerance)
	return f
}

func (p *Paddle) followTerrain(t *terrain.Terrain) {
	lp, rp := p.Probes()
	left := p.senseFoot(t, lp)
	right := p.senseFoot(t, rp)

	if !left.grounded && !right.grounded {
		left = p.reachFoot(t, left)
		right = p.reachFoot(t, right)
	}
	if !left.grounded && !right.grounded {
		p.Flying = true
		return
	}
	wasFlying := p.Flying
	p.Flying = false

	left = p.settleFoot(t, left)
	right = p.settleFoot(t, right)

	track := physics.Vector2D{X: right.probe.X - left.probe.X, Y: right.contact - left.contact}
	p.TrackRotation = physics.SignedDegrees(track.Degrees())

	high := left
	if right.contact < left.contact {
		high = right
	}
	p.Y += high.contact - high.probe.Y

	if wasFlying || p.Moving() {
		p.alignToTrack()
	}
}

// alignToTrack keeps only the part of the motion running along the track.
func (p *Paddle) alignToTrack() {
	along := physics.FromDegrees(p.TrackRotation, 1)
	speed := p.DX*along.X + p.DY*along.Y
	if speed >= 0 {
		p.SetMotion(speed, p.TrackRotation)
	} else {
		p.SetMotion(-speed, 180+p.TrackRotation)
	}
}

func (p *Paddle) applyGravity() {
	if p.Flying {
		p.ApplyForce(p.Tuning.Gravity, 90)
		return
	}
	if p.TrackRotation == 0 {
		return
	}
	downhill := p.TrackRotation
	if p.TrackRotation < 0 {
		downhill = 180 + p.TrackRotation
	}
	p.ApplyForce(p.Tuning.Gravity*math.Abs(p.TrackRotation)/90, downhill)
}

func (p *Paddle) applyDamping() {
	k, stop := p.Tuning.GroundDamping, p.Tuning.GroundStop
	switch {
	case p.Flying:
		k, stop = p.Tuning.AirDamping, 0
	case p.Braking:
		k, stop = p.Tuning.BrakeDamping, p.Tuning.BrakeStop
	}
	if p.Velocity > 0 {
		p.ApplyForce(p.Velocity*k, p.Direction+180)
	}
	if p.Velocity < stop {
		p.Stop()
	}
}

func (p *Paddle) clamp(fieldWidth, fieldHeight int) {
	if p.X < 0 {
		p.X = 0
		p.StopX()
	}
	if maxX := float64(fieldWidth - p.W); p.X > maxX {
		p.X = maxX
		p.StopX()
	}
	if p.Y < 0 {
		p.Y = 0
		p.StopY()
	}
	if maxY := float64(fieldHeight - p.H); p.Y > maxY {
		p.Y = maxY
		p.StopY()
	}
}

// Frame returns the face sprite frame.
func (p *Paddle) Frame() int {
	return RotationFrame(p.PaddleRotation)
}

// TrackFrame returns the track sprite frame.
func (p *Paddle) TrackFrame() int {
	return RotationFrame(p.TrackRotation)
}

// RotationFrame maps a rotation to one of RotationFrames sprite frames.
// Opposite rotations share a frame because the sprites are symmetric.
func RotationFrame(rotation float64) int {
	step := 180.0 / RotationFrames
	f := int(math.Floor(math.Mod(physics.NormalizeDegrees(rotation), 180) / step))
	if f >= RotationFrames {
		f = RotationFrames - 1
	}
	return f
}
