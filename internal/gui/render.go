package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/hopfviz/internal/command"
	"github.com/san-kum/hopfviz/internal/hopf"
	"github.com/san-kum/hopfviz/internal/scene"
)

func vec(p hopf.Point3) rl.Vector3 {
	return rl.NewVector3(float32(p.X), float32(p.Y), float32(p.Z))
}

func rlColor(c hopf.Color, opacity float64) rl.Color {
	r, g, b := c.RGB255()
	return rl.NewColor(r, g, b, uint8(opacity*255))
}

// camera3D mirrors a scene camera for raylib.
func camera3D(c *scene.Camera) rl.Camera3D {
	return rl.NewCamera3D(vec(c.Position), vec(c.Target), vec(c.Up), float32(c.FovY), rl.CameraPerspective)
}

func (a *App) Draw() {
	s := a.Ctrl.State

	rl.BeginTextureMode(a.MinimapTex)
	rl.ClearBackground(ColMinimap)
	rl.BeginMode3D(camera3D(s.MinimapCamera))
	RenderScene(s.Minimap)
	rl.EndMode3D()
	rl.EndTextureMode()

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	rl.BeginMode3D(camera3D(s.MainCamera))
	RenderScene(s.Main)
	rl.EndMode3D()

	a.drawMinimap()
	a.DrawHUD()
	if a.Prompting {
		a.drawPrompt()
	}
	if a.ShowHelp {
		a.drawHelp()
	}
	rl.EndDrawing()
}

// drawMinimap pastes the minimap texture into the bottom-left corner.
// Render textures are stored upside down, hence the negative height.
func (a *App) drawMinimap() {
	w, h := float32(a.MinimapTex.Texture.Width), float32(a.MinimapTex.Texture.Height)
	y := float32(rl.GetScreenHeight()) - h
	src := rl.NewRectangle(0, 0, w, -h)
	rl.DrawTextureRec(a.MinimapTex.Texture, src, rl.NewVector2(0, y), rl.White)
	rl.DrawRectangleLines(0, int32(y), int32(w), int32(h), ColTextDim)
}

// RenderScene draws every object of s. It must be called inside BeginMode3D.
func RenderScene(s *scene.Scene) {
	for _, obj := range s.Objects() {
		switch o := obj.(type) {
		case *scene.Line:
			RenderLine(o.Points, rlColor(o.Color, 1))
		case *scene.Marker:
			rl.DrawSphere(vec(o.Center), float32(o.Radius), rlColor(o.Color, o.Opacity))
		case *scene.Sphere:
			col := rlColor(o.Color, o.Opacity)
			rl.DrawSphereEx(vec(o.Center), float32(o.Radius), 24, 32, col)
			rl.DrawSphereWires(vec(o.Center), float32(o.Radius), 12, 24, rl.ColorAlpha(col, float32(o.Opacity)))
		case *scene.Axes:
			RenderAxes(float32(o.Length))
		}
	}
}

// RenderLine draws a polyline, breaking it at non-finite samples.
func RenderLine(points []hopf.Point3, col rl.Color) {
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if a.IsFinite() && b.IsFinite() {
			rl.DrawLine3D(vec(a), vec(b), col)
		}
	}
}

func RenderAxes(l float32) {
	o := rl.NewVector3(0, 0, 0)
	rl.DrawLine3D(o, rl.NewVector3(l, 0, 0), rl.Red)
	rl.DrawLine3D(o, rl.NewVector3(0, l, 0), rl.Green)
	rl.DrawLine3D(o, rl.NewVector3(0, 0, l), rl.Blue)
}

func (a *App) DrawHUD() {
	s := a.Ctrl.State
	sw := int(rl.GetScreenWidth())

	a.drawText("hopfviz", 30, 30, 24, ColSelect)
	a.drawText(":: hopf fibration", 140, 34, 16, ColText)

	a.drawText(fmt.Sprintf("FIBERS  %d", s.Fibers.Len()), sw-220, 30, 16, ColSelect)
	a.drawText(fmt.Sprintf("PENDING %d", a.Ctrl.PendingFibers()), sw-220, 52, 16, ColText)
	a.drawText(fmt.Sprintf("ORBIT   %s", s.Focus), sw-220, 74, 16, ColText)
	if !s.ControlsEnabled {
		a.drawText("CONTROLS OFF", sw-220, 96, 16, ColTextDim)
	}

	if e, ok := s.Fibers.Preview(); ok {
		p := e.Fiber.Base
		a.drawText(fmt.Sprintf("(%.2f, %.2f, %.2f)", p.X, p.Y, p.Z), 30, 64, 16, rlColor(e.Fiber.Color, 1))
	}

	msg, col := a.Ctrl.Status(), ColAccent
	if a.Err != nil {
		msg, col = a.Err.Error(), rl.Red
	}
	sh := int(rl.GetScreenHeight())
	mw, _ := s.MinimapSize()
	a.drawText(msg, int(mw)+20, sh-60, 14, col)
	a.drawText("[A/B/C] FAMILIES  [D] CLEAR  [G] FOCUS  [H] CONTROLS  [?] HELP  [Q] QUIT", int(mw)+20, sh-36, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), sw-90, sh-36, 14, ColTextDim)
}

func (a *App) drawPrompt() {
	p := a.Ctrl.Pending()
	if p == nil {
		return
	}
	prompt, _ := p.Current()
	sw := rl.GetScreenWidth()
	rl.DrawRectangle(0, 110, int32(sw), 44, ColPrompt)
	a.drawText(prompt.Label+string(a.Input)+"_", 30, 122, 20, ColSelect)
}

func (a *App) drawHelp() {
	y := 180
	for _, c := range command.Commands {
		a.drawText(fmt.Sprintf("%c  %s", c.Key, c.Help), 30, y, 16, ColText)
		y += 22
	}
	a.drawText("drag  orbit    wheel  zoom    r  reset", 30, y+10, 16, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
