package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/mzijlstra/Breakout/pkg/engine"
	"github.com/mzijlstra/Breakout/pkg/physics"
	"github.com/mzijlstra/Breakout/pkg/terrain"
)

// newSimScreen returns a 64x25 simulation screen: a 64x24 playfield, ten
// pixels per column and twenty per row of a 640x480 field.
func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(64, 25)
	return screen
}

func flatTerrain(top int) *terrain.Terrain {
	heights := make([]int, 640)
	for i := range heights {
		heights[i] = top
	}
	return terrain.FromHeights(640, 480, heights, 255)
}

func sampleState() *engine.GameState {
	return &engine.GameState{
		Tick:        7,
		Phase:       engine.PhasePlaying,
		FieldWidth:  640,
		FieldHeight: 480,
		Ball:        engine.BallState{Bounds: physics.Rect{X: 316, Y: 452, W: 8, H: 8}},
		Paddle:      engine.PaddleState{Bounds: physics.Rect{X: 304, Y: 460, W: 32, H: 8}},
		Bricks:      []engine.BodyState{{Bounds: physics.Rect{X: 0, Y: 32, W: 32, H: 16}}},
		Dirt:        []engine.BodyState{{Bounds: physics.Rect{X: 100, Y: 200, W: 32, H: 16}}},
	}
}

func TestNewTerminalRenderer_SizesBufferToScreen(t *testing.T) {
	screen := newSimScreen(t)
	r := NewTerminalRenderer(screen, 640, 480)

	if r.width != 64 || r.height != 24 {
		t.Errorf("expected 64x24 playfield, got %dx%d", r.width, r.height)
	}
	if len(r.buffer) != 24 {
		t.Errorf("expected 24 buffer rows, got %d", len(r.buffer))
	}
}

func TestTerminalRenderer_Render_PlacesEntities(t *testing.T) {
	screen := newSimScreen(t)
	r := NewTerminalRenderer(screen, 640, 480)

	if err := r.Render(sampleState(), flatTerrain(400)); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	tests := []struct {
		name  string
		x, y  int
		glyph rune
	}{
		{"ball", 32, 22, glyphBall},
		{"paddle left end", 30, 23, glyphPaddle},
		{"paddle right end", 33, 23, glyphPaddle},
		{"brick top", 0, 1, glyphBrick},
		{"brick bottom", 3, 2, glyphBrick},
		{"dirt", 10, 10, glyphDirt},
		{"terrain", 5, 20, '█'},
		{"air above terrain", 5, 19, glyphEmpty},
		{"empty field", 50, 5, glyphEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.buffer[tt.y][tt.x]; got != tt.glyph {
				t.Errorf("cell (%d, %d): expected %q, got %q", tt.x, tt.y, tt.glyph, got)
			}
		})
	}
}

func TestTerminalRenderer_Render_WritesScreen(t *testing.T) {
	screen := newSimScreen(t)
	r := NewTerminalRenderer(screen, 640, 480)

	if err := r.Render(sampleState(), nil); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if mainc, _, _, _ := screen.GetContent(32, 22); mainc != glyphBall {
		t.Errorf("expected ball on screen, got %q", mainc)
	}
	if mainc, _, _, _ := screen.GetContent(0, 24); mainc != 't' {
		t.Errorf("expected status line on the last row, got %q", mainc)
	}
}

func TestTerminalRenderer_Render_ClassicHasNoGround(t *testing.T) {
	screen := newSimScreen(t)
	r := NewTerminalRenderer(screen, 640, 480)

	if err := r.Render(sampleState(), nil); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.ContainsAny(r.String(), string(terrainGlyphs)) {
		t.Error("expected no terrain glyphs without terrain")
	}
}

func TestTerminalRenderer_Render_NilState(t *testing.T) {
	r := NewTerminalRenderer(newSimScreen(t), 640, 480)
	if err := r.Render(nil, nil); err == nil {
		t.Error("expected an error for a nil state")
	}
}

func TestTerminalRenderer_Rows_IncludeStatus(t *testing.T) {
	r := NewTerminalRenderer(newSimScreen(t), 640, 480)
	if err := r.Render(sampleState(), nil); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	rows := r.Rows()
	if len(rows) != 25 {
		t.Fatalf("expected 25 rows, got %d", len(rows))
	}
	status := rows[len(rows)-1]
	for _, want := range []string{"tick 7", "playing", "bricks 1"} {
		if !strings.Contains(status, want) {
			t.Errorf("status %q missing %q", status, want)
		}
	}
}

func TestTerminalRenderer_FollowsResize(t *testing.T) {
	screen := newSimScreen(t)
	r := NewTerminalRenderer(screen, 640, 480)

	screen.SetSize(32, 13)
	if err := r.Render(sampleState(), nil); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if r.width != 32 || r.height != 12 {
		t.Errorf("expected 32x12 playfield after resize, got %dx%d", r.width, r.height)
	}
	// the ball moves with the scale
	if got := r.buffer[11][16]; got != glyphBall {
		t.Errorf("expected ball at (16, 11), got %q", got)
	}
}

func TestTerrainGlyph(t *testing.T) {
	tests := []struct {
		alpha uint8
		want  rune
	}{
		{1, '░'},
		{96, '▒'},
		{160, '▓'},
		{255, '█'},
	}
	for _, tt := range tests {
		if got := terrainGlyph(tt.alpha); got != tt.want {
			t.Errorf("alpha %d: expected %q, got %q", tt.alpha, tt.want, got)
		}
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{7, 2, 3},
		{-7, 2, -4},
		{-8, 2, -4},
		{0, 5, 0},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d): expected %d, got %d", tt.a, tt.b, tt.want, got)
		}
	}
}
