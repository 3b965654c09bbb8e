package gui

import (
	"context"
	"errors"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/hopfviz/internal/app"
	"github.com/san-kum/hopfviz/internal/command"
	"github.com/san-kum/hopfviz/internal/config"
)

// Theme Colors
var (
	ColBg      = rl.NewColor(0, 0, 15, 255) // Main view
	ColMinimap = rl.NewColor(0, 0, 0, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColPrompt  = rl.NewColor(20, 20, 30, 230)
)

const (
	orbitSpeed = 0.005
	keyOrbit   = 0.03
	zoomStep   = 0.9
)

type App struct {
	Ctrl *app.Controller
	Font rl.Font
	Loop *app.Loop

	// Minimap is drawn off-screen and pasted into the bottom-left corner.
	MinimapTex rl.RenderTexture2D

	Prompting bool
	Input     []rune
	ShowHelp  bool
	Err       error

	lastMouse rl.Vector2
	dragging  bool
}

// initWindow opens a resizable window of the configured size at 60 FPS and
// disables the default exit key.
func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), "hopfviz")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont loads the Liberation Mono font from the system path, falling back
// to the raylib default font when it is missing.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp creates a session for cfg. The window must already be open.
func NewApp(cfg *config.Config) (*App, error) {
	ctrl, err := app.NewController(cfg)
	if err != nil {
		return nil, err
	}
	a := &App{
		Ctrl: ctrl,
		Font: loadFont(),
		Loop: app.NewLoop(0),
	}
	a.resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	return a, nil
}

// Run opens the window and blocks until it is closed or ctx is done.
func Run(ctx context.Context, cfg *config.Config) error {
	initWindow(cfg)
	defer rl.CloseWindow()

	a, err := NewApp(cfg)
	if err != nil {
		return err
	}
	defer rl.UnloadRenderTexture(a.MinimapTex)

	err = a.Loop.Run(ctx, a.frame)
	return errors.Join(err, a.Ctrl.Close())
}

func (a *App) frame(now time.Time) error {
	if rl.WindowShouldClose() {
		a.Loop.Stop()
		return nil
	}
	a.Update(now)
	a.Draw()
	return nil
}

func (a *App) resize(w, h int) {
	a.Ctrl.Resize(float64(w), float64(h))
	mw, mh := a.Ctrl.State.MinimapSize()
	if a.MinimapTex.ID != 0 {
		rl.UnloadRenderTexture(a.MinimapTex)
	}
	a.MinimapTex = rl.LoadRenderTexture(int32(mw), int32(mh))
}

// Update applies window, pointer and keyboard events and drains scheduled fibers.
func (a *App) Update(now time.Time) {
	if rl.IsWindowResized() {
		a.resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}

	if a.Prompting {
		a.updatePrompt(now)
	} else {
		a.updateKeys(now)
	}
	a.updatePointer()

	if _, err := a.Ctrl.Tick(now); err != nil {
		a.Err = err
	}
}

func (a *App) updatePointer() {
	pos := rl.GetMousePosition()
	x, y := float64(pos.X), float64(pos.Y)

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.Ctrl.PointerDown(x, y)
		a.dragging = true
	}
	if pos != a.lastMouse {
		if a.dragging && rl.IsMouseButtonDown(rl.MouseLeftButton) {
			delta := rl.GetMouseDelta()
			a.Ctrl.Orbit(-float64(delta.X)*orbitSpeed, -float64(delta.Y)*orbitSpeed)
		}
		a.Ctrl.PointerMove(x, y)
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		a.Ctrl.PointerUp(x, y)
		a.dragging = false
	}
	a.lastMouse = pos

	if wheel := rl.GetMouseWheelMove(); wheel > 0 {
		a.Ctrl.Zoom(zoomStep)
	} else if wheel < 0 {
		a.Ctrl.Zoom(1 / zoomStep)
	}
}

func (a *App) updateKeys(now time.Time) {
	for ch := rl.GetCharPressed(); ch != 0; ch = rl.GetCharPressed() {
		switch ch {
		case 'q', 'Q':
			a.Loop.Stop()
			return
		case '?':
			a.ShowHelp = !a.ShowHelp
			continue
		case 'r':
			a.Err = a.Ctrl.Reset()
			continue
		case '+', '=':
			a.Ctrl.Zoom(zoomStep)
			continue
		case '-':
			a.Ctrl.Zoom(1 / zoomStep)
			continue
		}
		pending, err := a.Ctrl.HandleKey(rune(ch), now)
		if errors.Is(err, command.ErrUnknownCommand) {
			continue
		}
		a.Err = err
		if pending != nil {
			a.beginPrompt(pending)
			return
		}
	}

	if rl.IsKeyDown(rl.KeyLeft) {
		a.Ctrl.Orbit(-keyOrbit, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		a.Ctrl.Orbit(keyOrbit, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		a.Ctrl.Orbit(0, -keyOrbit)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		a.Ctrl.Orbit(0, keyOrbit)
	}
}

func (a *App) beginPrompt(p *command.Pending) {
	prompt, ok := p.Current()
	if !ok {
		a.Prompting = false
		return
	}
	a.Prompting = true
	a.Input = []rune(prompt.Default)
}

func (a *App) updatePrompt(now time.Time) {
	for ch := rl.GetCharPressed(); ch != 0; ch = rl.GetCharPressed() {
		a.Input = append(a.Input, rune(ch))
	}
	switch {
	case rl.IsKeyPressed(rl.KeyBackspace) && len(a.Input) > 0:
		a.Input = a.Input[:len(a.Input)-1]
	case rl.IsKeyPressed(rl.KeyEscape):
		a.Ctrl.CancelInput()
		a.Prompting = false
	case rl.IsKeyPressed(rl.KeyEnter):
		a.Err = a.Ctrl.Answer(string(a.Input), now)
		if p := a.Ctrl.Pending(); p != nil {
			a.beginPrompt(p)
			return
		}
		a.Prompting = false
	}
}
