// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/mzijlstra/Breakout/pkg/engine"
	"github.com/mzijlstra/Breakout/pkg/entity"
	"github.com/mzijlstra/Breakout/pkg/physics"
	"github.com/mzijlstra/Breakout/pkg/terrain"
)

// Draw order
const (
	zGround = iota
	zDirt
	zBrick
	zTrack
	zPaddle
	zBall
	zHUD
)

type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// EngoRenderer implements engine.Renderer by keeping one sprite per game
// entity in an engo render system.
type EngoRenderer struct {
	renderSystem *common.RenderSystem
	assets       *AssetManager

	ground *sprite
	ball   *sprite
	paddle *sprite
	track  *sprite
	bricks map[entity.ID]*sprite
	dirt   map[entity.ID]*sprite
}

// NewEngoRenderer creates a new Engo-based renderer
func NewEngoRenderer(rs *common.RenderSystem, assets *AssetManager) *EngoRenderer {
	return &EngoRenderer{
		renderSystem: rs,
		assets:       assets,
		bricks:       make(map[entity.ID]*sprite),
		dirt:         make(map[entity.ID]*sprite),
	}
}

// Render implements engine.Renderer
func (r *EngoRenderer) Render(state *engine.GameState, t *terrain.Terrain) error {
	if t != nil {
		r.renderGround(t)
	}
	r.syncBodies(r.bricks, state.Bricks, r.assets.Brick(), zBrick)
	r.syncBodies(r.dirt, state.Dirt, r.assets.Dirt(), zDirt)

	if r.ball == nil {
		r.ball = r.newSprite(r.assets.Ball(), zBall)
	}
	place(&r.ball.SpaceComponent, state.Ball.Bounds, 0)

	if r.paddle == nil {
		r.track = r.newSprite(r.assets.Track(0), zTrack)
		r.paddle = r.newSprite(r.assets.Paddle(0), zPaddle)
	}
	r.renderPaddle(state.Paddle)
	return nil
}

// renderGround swaps in a fresh terrain texture whenever the terrain changed.
func (r *EngoRenderer) renderGround(t *terrain.Terrain) {
	tex, changed := r.assets.GroundTexture(t)
	if r.ground == nil {
		r.ground = r.newSprite(tex, zGround)
		r.ground.SpaceComponent = common.SpaceComponent{
			Width:  float32(t.Width()),
			Height: float32(t.Height()),
		}
		return
	}
	if changed {
		r.ground.Drawable = tex
	}
}

// renderPaddle picks the pre-rotated frames. The sprite images are square,
// so they are centred on the paddle box.
func (r *EngoRenderer) renderPaddle(p engine.PaddleState) {
	r.paddle.Drawable = r.assets.Paddle(p.Frame)
	r.track.Drawable = r.assets.Track(p.TrackFrame)
	centerSquare(&r.paddle.SpaceComponent, p.Bounds, r.paddle.Drawable)
	centerSquare(&r.track.SpaceComponent, p.Bounds, r.track.Drawable)
}

// syncBodies creates, moves and removes sprites to match the snapshot.
func (r *EngoRenderer) syncBodies(sprites map[entity.ID]*sprite, bodies []engine.BodyState, d common.Drawable, z float32) {
	for _, id := range staleIDs(sprites, bodies) {
		r.renderSystem.Remove(sprites[id].BasicEntity)
		delete(sprites, id)
	}
	for _, b := range bodies {
		s, ok := sprites[b.ID]
		if !ok {
			s = r.newSprite(d, z)
			sprites[b.ID] = s
		}
		place(&s.SpaceComponent, b.Bounds, 0)
	}
}

// staleIDs lists the sprites whose bodies are gone.
func staleIDs(sprites map[entity.ID]*sprite, bodies []engine.BodyState) []entity.ID {
	live := make(map[entity.ID]struct{}, len(bodies))
	for _, b := range bodies {
		live[b.ID] = struct{}{}
	}
	var stale []entity.ID
	for id := range sprites {
		if _, ok := live[id]; !ok {
			stale = append(stale, id)
		}
	}
	return stale
}

func (r *EngoRenderer) newSprite(d common.Drawable, z float32) *sprite {
	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.RenderComponent = common.RenderComponent{
		Drawable: d,
		Color:    color.White,
	}
	s.RenderComponent.SetZIndex(z)
	r.renderSystem.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	return s
}

// place positions a space component over a field box.
func place(sc *common.SpaceComponent, box physics.Rect, rotation float32) {
	sc.Position = engo.Point{X: float32(box.X), Y: float32(box.Y)}
	sc.Width = float32(box.W)
	sc.Height = float32(box.H)
	sc.Rotation = rotation
}

// centerSquare positions a drawable of its own size so that its centre is on
// the centre of box.
func centerSquare(sc *common.SpaceComponent, box physics.Rect, d common.Drawable) {
	w, h := d.Width(), d.Height()
	cx := float32(box.X) + float32(box.W)/2
	cy := float32(box.Y) + float32(box.H)/2
	sc.Position = engo.Point{X: cx - w/2, Y: cy - h/2}
	sc.Width = w
	sc.Height = h
}

// Clear removes every sprite from the render system.
func (r *EngoRenderer) Clear() {
	for _, s := range []*sprite{r.ground, r.ball, r.paddle, r.track} {
		if s != nil {
			r.renderSystem.Remove(s.BasicEntity)
		}
	}
	for id, s := range r.bricks {
		r.renderSystem.Remove(s.BasicEntity)
		delete(r.bricks, id)
	}
	for id, s := range r.dirt {
		r.renderSystem.Remove(s.BasicEntity)
		delete(r.dirt, id)
	}
	r.ground, r.ball, r.paddle, r.track = nil, nil, nil, nil
}
