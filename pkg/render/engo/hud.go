// pkg/render/engo/hud.go
package engo

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/mzijlstra/Breakout/pkg/engine"
)

const hudFontURL = "hud/go-regular.ttf"

// PreloadHUDFont registers the embedded HUD font with engo's file loader.
func PreloadHUDFont() error {
	return engo.Files.LoadReaderData(hudFontURL, bytes.NewReader(goregular.TTF))
}

// HUDSystem manages the heads-up display
type HUDSystem struct {
	text *sprite
	font *common.Font

	last   string
	source func() *engine.GameState
	mouse  func() bool
}

// NewHUDSystem creates a HUD showing the snapshots returned by source.
func NewHUDSystem(source func() *engine.GameState, mouseAim func() bool) *HUDSystem {
	return &HUDSystem{source: source, mouse: mouseAim}
}

// Setup creates the text entity. The font must have been preloaded.
func (hud *HUDSystem) Setup(rs *common.RenderSystem) error {
	hud.font = &common.Font{
		URL:  hudFontURL,
		FG:   color.White,
		Size: 14,
	}
	if err := hud.font.CreatePreloaded(); err != nil {
		return fmt.Errorf("load hud font: %w", err)
	}

	hud.text = &sprite{BasicEntity: ecs.NewBasic()}
	hud.text.RenderComponent = common.RenderComponent{
		Drawable: common.Text{Font: hud.font, Text: " "},
		Color:    color.White,
	}
	hud.text.RenderComponent.SetShader(common.TextHUDShader)
	hud.text.RenderComponent.SetZIndex(zHUD)
	hud.text.SpaceComponent = common.SpaceComponent{Position: engo.Point{X: 8, Y: 8}}
	rs.Add(&hud.text.BasicEntity, &hud.text.RenderComponent, &hud.text.SpaceComponent)
	return nil
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update refreshes the text when it changed
func (hud *HUDSystem) Update(dt float32) {
	if hud.text == nil || hud.source == nil {
		return
	}
	mouse := hud.mouse != nil && hud.mouse()
	text := HUDText(hud.source(), mouse)
	if text == hud.last {
		return
	}
	hud.last = text
	hud.text.Drawable = common.Text{Font: hud.font, Text: text}
}

// HUDText formats the status shown in the corner of the window.
func HUDText(s *engine.GameState, mouseAim bool) string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "bricks %d  lost %d  served %d", len(s.Bricks), s.Stats.BallsLost, s.Stats.Serves)
	fmt.Fprintf(&b, "  aim %+.0f", s.Paddle.Rotation-s.Paddle.TrackRotation)
	if mouseAim {
		b.WriteString(" (mouse)")
	}
	if s.Paddle.Flying {
		b.WriteString("  airborne")
	}
	if s.Phase == engine.PhaseServe {
		b.WriteString("  [space] serve")
	}
	return b.String()
}
