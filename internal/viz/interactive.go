package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/hopfviz/internal/config"
)

var presetInfo = map[string]string{
	"latitude/equator": "one circle of fibers",
	"latitude/bands":   "five parallel circles",
	"latitude/half":    "an arc up to pi",
	"rotated/meridian": "great circle through the poles",
	"rotated/tilted":   "euler-rotated great circle",
	"points/axes":      "fibers over the axis points",
	"points/single":    "the fiber over +z",
	"empty":            "start with a bare sphere",
}

const (
	stateMenu = iota
	stateConfig
	stateLive
)

// menuEntry is one selectable starting point: a preset or the empty session.
type menuEntry struct {
	family, name string
}

func (e menuEntry) key() string {
	if e.family == "" {
		return "empty"
	}
	return e.family + "/" + e.name
}

type model struct {
	state, cursor int
	entries       []menuEntry
	params        map[string]float64
	paramNames    []string
	paramCursor   int
	editing       bool
	editBuf       string
	base          *config.Config
	live          Model
	err           error
}

// NewInteractiveApp builds the preset menu on top of base.
func NewInteractiveApp(base *config.Config) *model {
	entries := []menuEntry{{}}
	for _, family := range config.Families() {
		for _, name := range config.ListPresets(family) {
			entries = append(entries, menuEntry{family: family, name: name})
		}
	}
	return &model{
		state:      stateMenu,
		entries:    entries,
		base:       base,
		paramNames: []string{"steps", "stagger_ms", "latitude_size", "rotated_size"},
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateLive {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.menuKey(msg)
		case stateConfig:
			return m.configKey(msg)
		}
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		cfg := m.selectedConfig()
		m.params = map[string]float64{
			"steps":         float64(cfg.Steps),
			"stagger_ms":    float64(cfg.Families.StaggerMs),
			"latitude_size": float64(cfg.Families.LatitudeSize),
			"rotated_size":  float64(cfg.Families.RotatedSize),
		}
		m.state, m.paramCursor, m.err = stateConfig, 0, nil
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	name := m.paramNames[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%f", &val); err == nil {
				m.params[name] = val
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if c >= '0' && c <= '9' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, fmt.Sprintf("%.0f", m.params[name])
	case "left", "h":
		m.params[name] = max(0, m.params[name]-paramStep(name))
	case "right", "l":
		m.params[name] += paramStep(name)
	case "s":
		return m.start()
	}
	return m, nil
}

func paramStep(name string) float64 {
	switch name {
	case "steps":
		return 100
	case "stagger_ms":
		return 10
	}
	return 5
}

// selectedConfig copies the highlighted preset onto the base settings.
func (m model) selectedConfig() *config.Config {
	cfg := *m.base
	cfg.Seed = nil
	if e := m.entries[m.cursor]; e.family != "" {
		if p := config.GetPreset(e.family, e.name); p != nil {
			cfg.Seed = p.Seed
		}
	}
	return &cfg
}

func (m model) start() (model, tea.Cmd) {
	cfg := m.selectedConfig()
	cfg.Steps = int(m.params["steps"])
	cfg.Families.StaggerMs = int(m.params["stagger_ms"])
	cfg.Families.LatitudeSize = int(m.params["latitude_size"])
	cfg.Families.RotatedSize = int(m.params["rotated_size"])
	if err := cfg.Validate(); err != nil {
		m.err = err
		return m, nil
	}
	live, err := NewModel(cfg)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.live, m.state = live, stateLive
	return m, tea.Batch(live.Init(), tea.WindowSize())
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateLive:
		return m.live.View()
	}
	return ""
}

var (
	menuTitle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuPointer = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuIdleSub = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	menuKeyHint = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(menuKeyHint.Render(pairs[i]) + menuIdle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("HOPFVIZ") + "\n    " + menuSub.Render("fibers of S³ over S²") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, e := range m.entries {
		key := e.key()
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuPointer.Render("▸"), menuActive.Render(fmt.Sprintf("%-18s", key)), menuDesc.Render(presetInfo[key])))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-18s", key)), menuIdleSub.Render(presetInfo[key])))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder
	key := m.entries[m.cursor].key()
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(key)) + "\n    " + menuSub.Render(presetInfo[key]) + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.paramNames {
		valStr := fmt.Sprintf("%8.0f", m.params[name])
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%8s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", menuPointer.Render("▸"), menuActive.Render(fmt.Sprintf("%-14s", name)), menuDesc.Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", menuIdle.Render(fmt.Sprintf("  %-14s", name)), menuIdleSub.Render(valStr)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(CurrentTheme.Error).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back") + "\n")
	return b.String()
}

// RunInteractive opens the preset menu and then the live view.
func RunInteractive(base *config.Config) error {
	_, err := tea.NewProgram(NewInteractiveApp(base), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
