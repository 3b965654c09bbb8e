package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// styles are the lipgloss styles derived from a Theme.
type styles struct {
	panel  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	accent lipgloss.Style
	help   lipgloss.Style
	err    lipgloss.Style
}

func stylesFor(t Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		header: lipgloss.NewStyle().Bold(true).Foreground(t.Title),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		accent: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		help:   lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		err:    lipgloss.NewStyle().Foreground(t.Error),
	}
}

// GradientText colors text with a gradient between two hex colors, blended in Lab space.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	from, err := colorful.Hex(string(start))
	if err != nil {
		return text
	}
	to, err := colorful.Hex(string(end))
	if err != nil {
		return text
	}

	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := from.BlendLab(to, t).Clamped()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return b.String()
}

// ProgressBar renders a bar filled to percent, clamped to [0, 1].
func ProgressBar(percent float64, width int, fg lipgloss.Color) string {
	filled := int(percent * float64(width))
	filled = max(0, min(width, filled))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(fg).Render(bar)
}

// HueStrip renders one block per hue, each in its own fiber color.
func HueStrip(hexes []string, width int) string {
	if len(hexes) == 0 {
		return strings.Repeat("─", width)
	}
	step := max(1, len(hexes)/width)
	var b strings.Builder
	for i := 0; i < width && i*step < len(hexes); i++ {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hexes[i*step])).Render("█"))
	}
	return b.String()
}
