// pkg/engine/collision.go
package engine

import (
	"sort"

	"github.com/solarlune/resolv"

	"github.com/mzijlstra/Breakout/pkg/entity"
	"github.com/mzijlstra/Breakout/pkg/physics"
)

const (
	tagBall  = "ball"
	tagBrick = "brick"
)

// brickIndex is the broadphase for ball-versus-brick contacts. Bricks wrap
// past the field edges, so the space extends one margin beyond each side.
type brickIndex struct {
	space   *resolv.Space
	margin  float64
	ball    *resolv.Object
	objects map[*entity.Brick]*resolv.Object
}

func newBrickIndex(fieldWidth, fieldHeight, cellWidth, cellHeight int) *brickIndex {
	if cellWidth <= 0 {
		cellWidth = 16
	}
	if cellHeight <= 0 {
		cellHeight = 16
	}
	margin := cellWidth * 2
	return &brickIndex{
		space:   resolv.NewSpace(fieldWidth+2*margin, fieldHeight+2*margin, cellWidth, cellHeight),
		margin:  float64(margin),
		objects: make(map[*entity.Brick]*resolv.Object),
	}
}

func (ix *brickIndex) add(b *entity.Brick) {
	obj := resolv.NewObject(b.X+ix.margin, b.Y+ix.margin, float64(b.W), float64(b.H), tagBrick)
	obj.Data = b
	ix.space.Add(obj)
	ix.objects[b] = obj
}

func (ix *brickIndex) remove(b *entity.Brick) {
	obj, ok := ix.objects[b]
	if !ok {
		return
	}
	ix.space.Remove(obj)
	delete(ix.objects, b)
}

// sync moves a brick's object to the brick's current position.
func (ix *brickIndex) sync(b *entity.Brick) {
	obj, ok := ix.objects[b]
	if !ok {
		return
	}
	obj.X = b.X + ix.margin
	obj.Y = b.Y + ix.margin
	obj.Update()
}

// candidates returns the bricks sharing a cell with the ball, in creation order.
func (ix *brickIndex) candidates(ball *entity.Ball) []*entity.Brick {
	if ix.ball == nil {
		ix.ball = resolv.NewObject(0, 0, float64(ball.W), float64(ball.H), tagBall)
		ix.space.Add(ix.ball)
	}
	ix.ball.X = ball.X + ix.margin
	ix.ball.Y = ball.Y + ix.margin
	ix.ball.Update()

	collision := ix.ball.Check(0, 0, tagBrick)
	if collision == nil {
		return nil
	}

	found := make([]*entity.Brick, 0, len(collision.Objects))
	for _, obj := range collision.Objects {
		if b, ok := obj.Data.(*entity.Brick); ok {
			found = append(found, b)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return found
}

func (ix *brickIndex) len() int {
	return len(ix.objects)
}

// brickHit is a brick struck by the ball this tick.
type brickHit struct {
	brick *entity.Brick
	side  physics.Side
}

// resolveBrickContacts bounces the ball off every brick it overlaps and
// returns the bricks to destroy. Bricks are only removed after all
// candidates have been examined.
func (g *Game) resolveBrickContacts() []brickHit {
	ballBox := g.Ball.Bounds()
	var flips entity.Flips
	var hits []brickHit

	for _, br := range g.index.candidates(g.Ball) {
		box := br.Bounds()
		if !ballBox.Overlaps(box) {
			continue
		}
		side := physics.ClassifyContact(ballBox, box)
		if side == physics.SideNone {
			continue
		}
		g.Ball.HitBrick(br, side, &flips)
		hits = append(hits, brickHit{brick: br, side: side})
	}
	return hits
}
