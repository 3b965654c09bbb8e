package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/hopfviz/internal/hopf"
	"github.com/san-kum/hopfviz/internal/scene"
	"github.com/san-kum/hopfviz/internal/viz"
)

const Background = "#00000f"

func header(sb *strings.Builder, width, height float64, bg string) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, bg))
}

// CanvasToSVG converts a Braille canvas to SVG format. Dots keep the color
// of their cell; uncolored cells use fg.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fg string) string {
	if canvas == nil {
		return ""
	}

	pw, ph := canvas.PixelSize()
	width, height := float64(pw)*scale, float64(ph)*scale

	// Group dots by color so each color is one <g>.
	dots := map[string][]string{}
	dotRadius := scale * 0.4
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			col := canvas.Colors[y/4][x/2]
			if col == "" {
				col = fg
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			dots[col] = append(dots[col], fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>`, cx, cy, dotRadius))
		}
	}

	var sb strings.Builder
	header(&sb, width, height, Background)
	for _, col := range sortedKeys(dots) {
		sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", col))
		for _, d := range dots[col] {
			sb.WriteString(d + "\n")
		}
		sb.WriteString("</g>\n")
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// FibersToSVG draws each fiber as a stroked path seen through cam. Samples
// outside the view break the path.
func FibersToSVG(fibers []hopf.Fiber, cam *scene.Camera, width, height int) string {
	var sb strings.Builder
	header(&sb, float64(width), float64(height), Background)

	for _, f := range fibers {
		d := fiberPath(f.Points, cam, width, height)
		if d == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"%s\"/>\n", f.Color.Hex(), d))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func fiberPath(points []hopf.Point3, cam *scene.Camera, width, height int) string {
	var sb strings.Builder
	pen := false
	for _, p := range points {
		if !p.IsFinite() {
			pen = false
			continue
		}
		x, y, _, ok := cam.Project(p, width, height)
		if !ok {
			pen = false
			continue
		}
		if pen {
			sb.WriteString(fmt.Sprintf(" L%d,%d", x, y))
		} else {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("M%d,%d", x, y))
			pen = true
		}
	}
	return sb.String()
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
