// pkg/render/terminal.go
package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/mzijlstra/Breakout/pkg/engine"
	"github.com/mzijlstra/Breakout/pkg/physics"
	"github.com/mzijlstra/Breakout/pkg/terrain"
)

// Glyphs used by the terminal renderer
const (
	glyphEmpty  = ' '
	glyphBall   = 'O'
	glyphPaddle = '='
	glyphBrick  = '#'
	glyphDirt   = ':'
)

var terrainGlyphs = []rune{'░', '▒', '▓', '█'}

var glyphStyles = map[rune]tcell.Style{
	glyphBall:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
	glyphPaddle: tcell.StyleDefault.Foreground(tcell.ColorYellow),
	glyphBrick:  tcell.StyleDefault.Foreground(tcell.ColorRed),
	glyphDirt:   tcell.StyleDefault.Foreground(tcell.NewRGBColor(160, 120, 60)),
}

var terrainStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(120, 90, 50))

// TerminalRenderer scales the playfield onto a character grid. The bottom
// row of the screen holds a status line.
type TerminalRenderer struct {
	screen      tcell.Screen
	fieldWidth  int
	fieldHeight int

	mu     sync.Mutex
	width  int
	height int
	buffer [][]rune
	status string
}

// NewTerminalRenderer creates a renderer drawing a fieldWidth x fieldHeight
// playfield onto screen.
func NewTerminalRenderer(screen tcell.Screen, fieldWidth, fieldHeight int) *TerminalRenderer {
	r := &TerminalRenderer{
		screen:      screen,
		fieldWidth:  fieldWidth,
		fieldHeight: fieldHeight,
	}
	r.resize()
	return r
}

// resize matches the buffer to the screen size.
func (r *TerminalRenderer) resize() {
	w, h := r.screen.Size()
	h-- // status line
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == r.width && h == r.height {
		return
	}
	r.width, r.height = w, h
	r.buffer = make([][]rune, h)
	for i := range r.buffer {
		r.buffer[i] = make([]rune, w)
	}
}

// cellX maps a field x coordinate to a column.
func (r *TerminalRenderer) cellX(x int) int {
	return floorDiv(x*r.width, r.fieldWidth)
}

// cellY maps a field y coordinate to a row.
func (r *TerminalRenderer) cellY(y int) int {
	return floorDiv(y*r.height, r.fieldHeight)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Render implements engine.Renderer.
func (r *TerminalRenderer) Render(state *engine.GameState, t *terrain.Terrain) error {
	if state == nil {
		return fmt.Errorf("render: nil state")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.resize()
	r.clear()
	r.drawTerrain(t)
	for _, d := range state.Dirt {
		r.fillRect(d.Bounds, glyphDirt)
	}
	for _, b := range state.Bricks {
		r.fillRect(b.Bounds, glyphBrick)
	}
	r.fillRect(state.Paddle.Bounds, glyphPaddle)
	r.plot(state.Ball.Bounds.CenterX(), state.Ball.Bounds.CenterY(), glyphBall)
	r.status = statusLine(state)

	r.present()
	return nil
}

func (r *TerminalRenderer) clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = glyphEmpty
		}
	}
}

// drawTerrain samples the pixel under the centre of every cell.
func (r *TerminalRenderer) drawTerrain(t *terrain.Terrain) {
	if t == nil {
		return
	}
	for cy := 0; cy < r.height; cy++ {
		py := (2*cy + 1) * r.fieldHeight / (2 * r.height)
		for cx := 0; cx < r.width; cx++ {
			px := (2*cx + 1) * r.fieldWidth / (2 * r.width)
			if a := t.Alpha(px, py); a > 0 {
				r.buffer[cy][cx] = terrainGlyph(a)
			}
		}
	}
}

// terrainGlyph picks a denser block for more opaque ground.
func terrainGlyph(alpha uint8) rune {
	i := int(alpha) * len(terrainGlyphs) / 256
	return terrainGlyphs[i]
}

func (r *TerminalRenderer) fillRect(box physics.Rect, glyph rune) {
	if box.W <= 0 || box.H <= 0 {
		return
	}
	x0, x1 := r.cellX(box.X), r.cellX(box.Right()-1)
	y0, y1 := r.cellY(box.Y), r.cellY(box.Bottom()-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r.set(x, y, glyph)
		}
	}
}

func (r *TerminalRenderer) plot(px, py int, glyph rune) {
	r.set(r.cellX(px), r.cellY(py), glyph)
}

func (r *TerminalRenderer) set(x, y int, glyph rune) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	r.buffer[y][x] = glyph
}

func statusLine(s *engine.GameState) string {
	return fmt.Sprintf("tick %d  %s  bricks %d  lost %d  aim %+.0f  track %+.0f",
		s.Tick, s.Phase, len(s.Bricks), s.Stats.BallsLost, s.Paddle.Rotation, s.Paddle.TrackRotation)
}

// present copies the buffer and status line to the screen.
func (r *TerminalRenderer) present() {
	for y, row := range r.buffer {
		for x, ch := range row {
			style, ok := glyphStyles[ch]
			if !ok {
				style = tcell.StyleDefault
				if ch != glyphEmpty {
					style = terrainStyle
				}
			}
			r.screen.SetContent(x, y, ch, nil, style)
		}
	}
	x := 0
	for _, ch := range r.status {
		if x >= r.width {
			break
		}
		r.screen.SetContent(x, r.height, ch, nil, tcell.StyleDefault.Reverse(true))
		x++
	}
	for ; x < r.width; x++ {
		r.screen.SetContent(x, r.height, ' ', nil, tcell.StyleDefault.Reverse(true))
	}
	r.screen.Show()
}

// Rows returns the last frame as text, one string per row, status line last.
func (r *TerminalRenderer) Rows() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]string, 0, len(r.buffer)+1)
	for _, row := range r.buffer {
		rows = append(rows, string(row))
	}
	return append(rows, r.status)
}

// String returns the last frame as a block of text.
func (r *TerminalRenderer) String() string {
	return strings.Join(r.Rows(), "\n")
}
