package viz

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/hopfviz/internal/app"
	"github.com/san-kum/hopfviz/internal/command"
	"github.com/san-kum/hopfviz/internal/config"
	"github.com/san-kum/hopfviz/internal/hopf"
)

const (
	// MinimapDivisor replaces the window minimap divisor in the terminal,
	// where a sixth of the screen is too coarse to aim at.
	MinimapDivisor = 3.0

	sidePanelWidth = 38
	orbitStep      = 0.1
	cursorStep     = 0.04
	frameRate      = 60
	radiusHistory  = 60
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the terminal front end. It forwards every event to an
// app.Controller and draws both scenes on braille canvases.
type Model struct {
	ctrl          *app.Controller
	width, height int
	canvas        *Canvas
	minimap       *Canvas
	input         textinput.Model
	prompting     bool
	cursorU       float64
	cursorV       float64
	showHelp      bool
	recording     bool
	frames        []*image.Paletted
	gifPath       string
	err           error
}

// NewModel starts a session for cfg. The configured minimap divisor is
// replaced by MinimapDivisor unless it was changed from the default.
func NewModel(cfg *config.Config) (Model, error) {
	c := *cfg
	if c.Window.MinimapDivisor == config.DefaultMinimapDivisor {
		c.Window.MinimapDivisor = MinimapDivisor
	}
	ctrl, err := app.NewController(&c)
	if err != nil {
		return Model{}, err
	}
	SetTheme(cfg.Theme)

	in := textinput.New()
	in.CharLimit = 128
	in.Width = 40

	m := Model{
		ctrl:    ctrl,
		input:   in,
		cursorU: 0.5,
		cursorV: 0.5,
		gifPath: "hopf.gif",
	}
	m.resize(80, 24)
	return m, nil
}

// Controller exposes the session driven by the model.
func (m Model) Controller() *app.Controller { return m.ctrl }

// SetGIFPath chooses where a recording is written.
func (m *Model) SetGIFPath(path string) { m.gifPath = path }

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), textinput.Blink)
}

// Update handles input events and drains scheduled fibers.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if m.prompting {
			return m.updatePrompt(msg)
		}
		return m.updateKey(msg)
	case tea.MouseMsg:
		m.updateMouse(msg)
	case TickMsg:
		if _, err := m.ctrl.Tick(time.Time(msg)); err != nil {
			m.err = err
		}
		if m.recording {
			m.draw()
			m.captureFrame()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cw := max(20, w-sidePanelWidth-2)
	ch := max(8, h-2)
	m.canvas = NewCanvas(cw, ch)
	m.ctrl.Resize(float64(cw*2), float64(ch*4))
	mw, mh := m.ctrl.State.MinimapSize()
	m.minimap = NewCanvas(max(1, int(mw)/2), max(1, int(mh)/4))
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.recording {
			m.saveGIF()
		}
		if err := m.ctrl.Close(); err != nil {
			m.err = err
		}
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
	case "t":
		NextTheme()
	case "r":
		m.err = m.ctrl.Reset()
	case "R":
		if m.recording {
			m.saveGIF()
			m.recording = false
			m.frames = nil
		} else {
			m.recording = true
			m.frames = make([]*image.Paletted, 0)
		}
	case "up":
		m.ctrl.Orbit(0, -orbitStep)
	case "down":
		m.ctrl.Orbit(0, orbitStep)
	case "left":
		m.ctrl.Orbit(-orbitStep, 0)
	case "right":
		m.ctrl.Orbit(orbitStep, 0)
	case "+", "=":
		m.ctrl.Zoom(0.9)
	case "-", "_":
		m.ctrl.Zoom(1.1)
	case "i":
		m.moveCursor(0, -cursorStep)
	case "k":
		m.moveCursor(0, cursorStep)
	case "j":
		m.moveCursor(-cursorStep, 0)
	case "l":
		m.moveCursor(cursorStep, 0)
	case " ", "enter":
		x, y := m.ctrl.MinimapPoint(m.cursorU, m.cursorV)
		m.ctrl.PointerDown(x, y)
		m.ctrl.PointerUp(x, y)
	default:
		if len(msg.Runes) != 1 {
			return m, nil
		}
		pending, err := m.ctrl.HandleKey(msg.Runes[0], time.Now())
		if errors.Is(err, command.ErrUnknownCommand) {
			return m, nil
		}
		m.err = err
		if pending != nil {
			return m, m.beginPrompt(pending)
		}
	}
	return m, nil
}

func (m *Model) moveCursor(du, dv float64) {
	m.cursorU = min(1, max(0, m.cursorU+du))
	m.cursorV = min(1, max(0, m.cursorV+dv))
	m.ctrl.PointerMove(m.ctrl.MinimapPoint(m.cursorU, m.cursorV))
}

func (m *Model) beginPrompt(p *command.Pending) tea.Cmd {
	prompt, ok := p.Current()
	if !ok {
		m.prompting = false
		return nil
	}
	m.prompting = true
	m.input.Prompt = prompt.Label
	m.input.SetValue(prompt.Default)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.ctrl.CancelInput()
		m.prompting = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.err = m.ctrl.Answer(m.input.Value(), time.Now())
		if p := m.ctrl.Pending(); p != nil {
			return m, m.beginPrompt(p)
		}
		m.prompting = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateMouse maps a terminal cell to the center of its braille cell, which
// is the pixel space the controller was sized in.
func (m *Model) updateMouse(msg tea.MouseMsg) {
	if msg.X >= m.canvas.Width || msg.Y >= m.canvas.Height {
		return
	}
	x, y := float64(msg.X*2+1), float64(msg.Y*4+2)
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.ctrl.Zoom(0.9)
	case msg.Button == tea.MouseButtonWheelDown:
		m.ctrl.Zoom(1.1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.ctrl.PointerDown(x, y)
	case msg.Action == tea.MouseActionRelease:
		m.ctrl.PointerUp(x, y)
	case msg.Action == tea.MouseActionMotion:
		m.ctrl.PointerMove(x, y)
	}
}

// draw renders the main scene and pastes the minimap into its bottom-left corner.
func (m *Model) draw() {
	s := m.ctrl.State
	RenderScene(m.canvas, s.Main, s.MainCamera, CurrentTheme)
	RenderScene(m.minimap, s.Minimap, s.MinimapCamera, CurrentTheme)

	pw, ph := m.minimap.PixelSize()
	m.minimap.SetPen(string(CurrentTheme.Accent))
	cx, cy := int(m.cursorU*float64(pw-1)), int(m.cursorV*float64(ph-1))
	m.minimap.DrawLine(cx-2, cy, cx+2, cy)
	m.minimap.DrawLine(cx, cy-2, cx, cy+2)
	m.minimap.SetPen(string(CurrentTheme.Border))
	m.minimap.Frame()
	m.minimap.SetPen("")

	m.canvas.Overlay(m.minimap, 0, m.canvas.Height-m.minimap.Height)
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	st := stylesFor(CurrentTheme)
	canvasView := strings.TrimSuffix(m.canvas.Render(CurrentTheme.Text), "\n")
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.sidePanel(st))

	var bottom string
	switch {
	case m.prompting:
		bottom = m.input.View()
	case m.err != nil:
		bottom = st.err.Render(m.err.Error())
	default:
		bottom = st.value.Render(m.ctrl.Status())
	}
	view := mainView + "\n" + bottom
	if m.showHelp {
		return helpText() + "\n" + view
	}
	return view
}

func (m Model) sidePanel(st styles) string {
	s := m.ctrl.State
	var b strings.Builder
	b.WriteString(st.header.Render(GradientText("HOPF FIBRATION", CurrentTheme.Title, CurrentTheme.Accent)) + "\n\n")

	row := func(label, value string) {
		b.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Fibers", fmt.Sprintf("%d", s.Fibers.Len()))
	row("Pending", fmt.Sprintf("%d", m.ctrl.PendingFibers()))
	row("Orbit", s.Focus.String())
	row("Controls", onOff(s.ControlsEnabled))
	row("Minimap", lockState(s.Gate.Locked()))
	row("Theme", CurrentTheme.Name)
	if m.recording {
		row("Recording", fmt.Sprintf("%d frames", len(m.frames)))
	}

	b.WriteString("\n" + st.accent.Render("PREVIEW") + "\n")
	if e, ok := s.Fibers.Preview(); ok {
		p := e.Fiber.Base
		row("Base", fmt.Sprintf("%.2f %.2f %.2f", p.X, p.Y, p.Z))
		row("Hue", fmt.Sprintf("%d", e.Fiber.Color.Hue))
		b.WriteString("  " + ProgressBar(float64(e.Fiber.Color.Hue)/360, sidePanelWidth-10, lipgloss.Color(e.Fiber.Color.Hex())) + "\n")
		if r, ok := hopf.FiberRadius(e.Fiber.Points); ok {
			row("Radius", fmt.Sprintf("%.3f", r))
		} else {
			row("Radius", "∞")
		}
	} else {
		b.WriteString(st.help.Render("  move over the minimap") + "\n")
	}

	radii, hexes := m.fiberProfile()
	if len(radii) > 1 {
		chart := asciigraph.Plot(radii, asciigraph.Height(5), asciigraph.Width(sidePanelWidth-12), asciigraph.Caption("fiber radius"))
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Render(chart) + "\n")
	}
	if len(hexes) > 0 {
		b.WriteString("\n" + HueStrip(hexes, sidePanelWidth-6) + "\n")
	}

	b.WriteString(st.help.Render("\n─────────────────────\na b c:Families d:Clear\ng:Focus h:Controls\nijkl:Aim SP:Add ?:Help Q:Quit"))
	return st.panel.Width(sidePanelWidth).Render(b.String())
}

// fiberProfile returns the projected radius of the most recent fibers and the
// color of every fiber. Fibers through the pole are skipped in the radii.
func (m Model) fiberProfile() ([]float64, []string) {
	entries := m.ctrl.State.Fibers.Entries()
	hexes := make([]string, len(entries))
	var radii []float64
	for i, e := range entries {
		hexes[i] = e.Fiber.Color.Hex()
		if i < len(entries)-radiusHistory {
			continue
		}
		if r, ok := hopf.FiberRadius(e.Fiber.Points); ok {
			radii = append(radii, r)
		}
	}
	return radii, hexes
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func lockState(locked bool) string {
	if locked {
		return "locked"
	}
	return "drag guarded"
}

func helpText() string {
	var b strings.Builder
	b.WriteString("KEYBOARD SHORTCUTS\n")
	for _, c := range command.Commands {
		fmt.Fprintf(&b, "  %c  %s\n", c.Key, c.Help)
	}
	b.WriteString("  ←↑↓→  orbit   +/-  zoom   ijkl  aim   space  add\n")
	b.WriteString("  t  theme   r  reset   R  record GIF   q  quit\n")
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Render(b.String())
}

// captureFrame rasterizes the canvas dots into a paletted image, one
// colored block per dot.
func (m *Model) captureFrame() {
	const dotW, dotH = 4, 4
	pw, ph := m.canvas.PixelSize()
	img := image.NewPaletted(image.Rect(0, 0, pw*dotW, ph*dotH), palette.Plan9)
	fg, _ := colorful.Hex(string(CurrentTheme.Text))
	cache := map[string]colorful.Color{}
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if !m.canvas.IsSet(x, y) {
				continue
			}
			c := fg
			if hex := m.canvas.Colors[y/4][x/2]; hex != "" {
				cc, ok := cache[hex]
				if !ok {
					cc, _ = colorful.Hex(hex)
					cache[hex] = cc
				}
				c = cc
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.Set(x*dotW+px, y*dotH+py, c)
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF() {
	if len(m.frames) == 0 {
		return
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(m.gifPath)
	if err != nil {
		m.err = err
		return
	}
	defer f.Close()
	m.err = gif.EncodeAll(f, &anim)
}

// Run starts the terminal UI and blocks until the user quits.
func Run(cfg *config.Config, gifPath string) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	if gifPath != "" {
		m.SetGIFPath(gifPath)
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}
