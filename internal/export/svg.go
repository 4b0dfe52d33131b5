package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/cyberfolio/internal/scramble"
	"github.com/san-kum/cyberfolio/internal/viz"
)

// FramesToSVG renders a trace as a filmstrip, one line per frame. Characters
// before the frontier use the theme's primary color, the rest its secondary.
func FramesToSVG(frames []scramble.Frame, t viz.Theme, fontSize float64) string {
	if len(frames) == 0 {
		return ""
	}
	if fontSize <= 0 {
		fontSize = 14
	}

	cols := 0
	for _, f := range frames {
		cols = max(cols, len([]rune(f.Text)))
	}

	pad := fontSize
	lineHeight := fontSize * 1.3
	charWidth := fontSize * 0.6
	gutter := charWidth * 5
	width := pad*2 + gutter + float64(cols)*charWidth
	height := pad*2 + float64(len(frames))*lineHeight

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g font-family="monospace" font-size="%.0f" xml:space="preserve">
`, width, height, width, height, colorOr(t.Background, "#0a0a0a"), fontSize))

	for i, f := range frames {
		y := pad + float64(i+1)*lineHeight
		runes := []rune(f.Text)
		split := min(f.Frontier, len(runes))
		if f.Done {
			split = len(runes)
		}

		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s">%3d</text>`, pad, y, colorOr(t.Muted, "#666666"), i))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f">`, pad+gutter, y))
		if split > 0 {
			sb.WriteString(fmt.Sprintf(`<tspan fill="%s">%s</tspan>`, colorOr(t.Primary, "#00ffff"), html.EscapeString(string(runes[:split]))))
		}
		if split < len(runes) {
			sb.WriteString(fmt.Sprintf(`<tspan fill="%s">%s</tspan>`, colorOr(t.Secondary, "#ff0055"), html.EscapeString(string(runes[split:]))))
		}
		sb.WriteString("</text>\n")
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func colorOr[C ~string](c C, fallback string) string {
	if c == "" {
		return fallback
	}
	return string(c)
}
