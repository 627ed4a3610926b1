// pkg/render/keyboard.go
package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/mzijlstra/Breakout/pkg/engine"
)

// Terminals only report key presses, so a press keeps its direction held
// for a few ticks; key repeat refreshes it.
const (
	holdTicks = 6
	aimStep   = 5.0
)

// KeyboardInput turns tcell key events into engine input.
type KeyboardInput struct {
	mu    sync.Mutex
	left  int
	right int
	brake int
	serve bool
	aim   float64
	quit  bool
}

// NewKeyboardInput creates an idle keyboard input.
func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{}
}

// HandleEvent records a screen event. It returns false once the player asked
// to quit.
func (k *KeyboardInput) HandleEvent(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return !k.Quit()
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		k.quit = true
	case tcell.KeyLeft:
		k.left, k.right = holdTicks, 0
	case tcell.KeyRight:
		k.right, k.left = holdTicks, 0
	case tcell.KeyDown:
		k.brake = holdTicks
	case tcell.KeyUp, tcell.KeyEnter:
		k.serve = true
	case tcell.KeyRune:
		k.handleRune(key.Rune())
	}
	return !k.quit
}

func (k *KeyboardInput) handleRune(r rune) {
	switch r {
	case 'a', 'h':
		k.left, k.right = holdTicks, 0
	case 'd', 'l':
		k.right, k.left = holdTicks, 0
	case 's', 'j':
		k.brake = holdTicks
	case ' ':
		k.serve = true
	case 'q':
		k.aim -= aimStep
	case 'e':
		k.aim += aimStep
	}
}

// Quit reports whether the player asked to quit.
func (k *KeyboardInput) Quit() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.quit
}

// Poll implements engine.InputSource.
func (k *KeyboardInput) Poll() engine.Input {
	k.mu.Lock()
	defer k.mu.Unlock()

	in := engine.Input{
		Left:     k.left > 0,
		Right:    k.right > 0,
		Brake:    k.brake > 0,
		Serve:    k.serve,
		AimDelta: k.aim,
	}
	k.left = decay(k.left)
	k.right = decay(k.right)
	k.brake = decay(k.brake)
	k.serve = false
	k.aim = 0
	return in
}

func decay(n int) int {
	if n > 0 {
		return n - 1
	}
	return 0
}

// Listen feeds screen events into k until the player quits or done closes.
// It returns when PollEvent yields nil after the screen is finalized.
func (k *KeyboardInput) Listen(screen tcell.Screen, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		default:
		}
		ev := screen.PollEvent()
		if ev == nil || !k.HandleEvent(ev) {
			return
		}
	}
}
