package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/cyberfolio/internal/profile"
)

// Styles is the set of lipgloss styles derived from one theme
type Styles struct {
	Theme     Theme
	Title     lipgloss.Style
	Heading   lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Panel     lipgloss.Style
	Legendary lipgloss.Style
	NavActive lipgloss.Style
	NavIdle   lipgloss.Style
	KeyHint   lipgloss.Style
	Tag       lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Theme:   t,
		Title:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Heading: lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		Text:    lipgloss.NewStyle().Foreground(t.Text),
		Muted:   lipgloss.NewStyle().Foreground(t.Muted),
		Accent:  lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		// Glass panel effect with subtle border
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		Legendary: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(t.Accent).
			Padding(0, 1),
		NavActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 1),
		NavIdle: lipgloss.NewStyle().
			Foreground(t.Muted).
			Padding(0, 1),
		KeyHint: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Tag: lipgloss.NewStyle().
			Foreground(t.Purple).
			Border(lipgloss.NormalBorder(), false, true).
			BorderForeground(t.Purple).
			Padding(0, 1),
	}
}

// StatusColor maps an experience status onto the theme
func StatusColor(t Theme, s profile.Status) lipgloss.Color {
	switch s {
	case profile.StatusRunning:
		return t.Success
	case profile.StatusActive:
		return t.Primary
	case profile.StatusAward:
		return t.Accent
	default:
		return t.Muted
	}
}

// TypeColor maps an experience type onto the theme
func TypeColor(t Theme, e profile.EntryType) lipgloss.Color {
	switch e {
	case profile.TypeWork:
		return t.Primary
	case profile.TypeOrg:
		return t.Success
	case profile.TypeEvent:
		return t.Purple
	case profile.TypeCTF:
		return t.Secondary
	default:
		return t.Muted
	}
}

// Certificate type colors are brand colors and do not follow the theme
var certColors = map[profile.CertType]lipgloss.Color{
	profile.CertAI:         lipgloss.Color("#00FFFF"),
	profile.CertSecurity:   lipgloss.Color("#FF0055"),
	profile.CertNetworking: lipgloss.Color("#FFD700"),
	profile.CertIoT:        lipgloss.Color("#39FF14"),
	profile.CertData:       lipgloss.Color("#9B59B6"),
}

func CertColor(c profile.CertType) lipgloss.Color {
	if col, ok := certColors[c]; ok {
		return col
	}
	return lipgloss.Color("#888888")
}

// Badge renders a bracketed label, e.g. [AWARD]
func Badge(label string, color lipgloss.Color) string {
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render("[" + label + "]")
}

func RarityBadge(t Theme, r profile.Rarity) string {
	if r == profile.RarityEpic {
		return Badge(string(r), t.Purple)
	}
	return Badge(string(r), t.Primary)
}

// GradientText creates a gradient effect on text using color interpolation
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	start, err := colorful.Hex(string(startColor))
	if err != nil {
		start = colorful.Color{R: 1, G: 1, B: 1}
	}
	end, err := colorful.Hex(string(endColor))
	if err != nil {
		end = colorful.Color{R: 1, G: 1, B: 1}
	}

	var result strings.Builder
	n := len(runes)
	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		color := lipgloss.Color(start.BlendLuv(end, t).Clamped().Hex())
		result.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(c)))
	}

	return result.String()
}

// RGBSplit renders text with the chromatic offset used by the loading screen
func RGBSplit(text string, t Theme, split bool) string {
	if !split {
		return lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render(text)
	}
	red := lipgloss.NewStyle().Foreground(t.Secondary).Render(text)
	return " " + red
}

// AnimatedSpinner returns frame of animated spinner
func AnimatedSpinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	if frame < 0 {
		frame = -frame
	}
	return spinners[frame%len(spinners)]
}

// ProgressBar renders a progress bar, percent in [0, 1]
func ProgressBar(t Theme, percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	done := lipgloss.NewStyle().Foreground(t.Primary).Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(t.Muted).Render(strings.Repeat("░", width-filled))
	return done + rest
}

// Separator is a decorative rule with a centered diamond
func Separator(t Theme, width int) string {
	if width < 8 {
		width = 8
	}
	left := strings.Repeat("─", (width-3)/2)
	right := strings.Repeat("─", width-3-(width-3)/2)
	return lipgloss.NewStyle().Foreground(t.Muted).Render(left + " ◆ " + right)
}
