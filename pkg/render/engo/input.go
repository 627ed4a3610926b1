// pkg/render/engo/input.go
package engo

import (
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/mzijlstra/Breakout/pkg/engine"
	"github.com/mzijlstra/Breakout/pkg/physics"
)

// Button names
const (
	buttonLeft      = "left"
	buttonRight     = "right"
	buttonBrake     = "brake"
	buttonServe     = "serve"
	buttonAimLeft   = "aimLeft"
	buttonAimRight  = "aimRight"
	buttonMouseAim  = "mouseAim"
	buttonQuit      = "quit"
	aimRatePerFrame = 3.0
)

// buttons is the state of the bound buttons for one frame.
type buttons struct {
	left, right, brake bool
	serve              bool
	aimLeft, aimRight  bool
	mouseAimToggle     bool
	mouseX, mouseY     float32
	quit               bool
}

// InputSystem samples engo input every frame and serves it to the game as an
// engine.InputSource.
type InputSystem struct {
	mu       sync.Mutex
	pending  engine.Input
	mouseAim bool
	quit     bool

	// read is replaced in tests
	read func() buttons
}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{read: readButtons}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update samples the buttons.
func (is *InputSystem) Update(dt float32) {
	is.apply(is.read())
	if is.Quit() {
		engo.Exit()
	}
}

// apply folds one frame of button state into the pending input. Held
// buttons are level triggered, serve is latched until the next Poll.
func (is *InputSystem) apply(b buttons) {
	is.mu.Lock()
	defer is.mu.Unlock()

	if b.mouseAimToggle {
		is.mouseAim = !is.mouseAim
	}
	is.quit = is.quit || b.quit

	in := engine.Input{
		Left:     b.left,
		Right:    b.right,
		Brake:    b.brake,
		Serve:    is.pending.Serve || b.serve,
		AimDelta: is.pending.AimDelta,
	}
	if b.aimLeft {
		in.AimDelta -= aimRatePerFrame
	}
	if b.aimRight {
		in.AimDelta += aimRatePerFrame
	}
	if is.mouseAim {
		in.Pointer = &physics.Vector2D{X: float64(b.mouseX), Y: float64(b.mouseY)}
		in.AimDelta = 0
	}
	is.pending = in
}

// Poll implements engine.InputSource.
func (is *InputSystem) Poll() engine.Input {
	is.mu.Lock()
	defer is.mu.Unlock()

	in := is.pending
	is.pending.Serve = false
	is.pending.AimDelta = 0
	return in
}

// MouseAim reports whether the paddle face follows the pointer.
func (is *InputSystem) MouseAim() bool {
	is.mu.Lock()
	defer is.mu.Unlock()
	return is.mouseAim
}

// Quit reports whether the player asked to quit.
func (is *InputSystem) Quit() bool {
	is.mu.Lock()
	defer is.mu.Unlock()
	return is.quit
}

func readButtons() buttons {
	return buttons{
		left:           engo.Input.Button(buttonLeft).Down(),
		right:          engo.Input.Button(buttonRight).Down(),
		brake:          engo.Input.Button(buttonBrake).Down(),
		serve:          engo.Input.Button(buttonServe).JustPressed(),
		aimLeft:        engo.Input.Button(buttonAimLeft).Down(),
		aimRight:       engo.Input.Button(buttonAimRight).Down(),
		mouseAimToggle: engo.Input.Button(buttonMouseAim).JustPressed(),
		mouseX:         engo.Input.Mouse.X,
		mouseY:         engo.Input.Mouse.Y,
		quit:           engo.Input.Button(buttonQuit).JustPressed(),
	}
}

// SetupInputBindings sets up the key bindings for the game
func SetupInputBindings() {
	engo.Input.RegisterButton(buttonLeft, engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton(buttonRight, engo.KeyD, engo.KeyArrowRight)
	engo.Input.RegisterButton(buttonBrake, engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton(buttonServe, engo.KeySpace, engo.KeyArrowUp)
	engo.Input.RegisterButton(buttonAimLeft, engo.KeyQ)
	engo.Input.RegisterButton(buttonAimRight, engo.KeyE)
	engo.Input.RegisterButton(buttonMouseAim, engo.KeyM)
	engo.Input.RegisterButton(buttonQuit, engo.KeyEscape)
}
