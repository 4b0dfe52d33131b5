package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cyberfolio/internal/scramble"
	"github.com/san-kum/cyberfolio/internal/viz"
)

// HackState is the phase of the hacker mode easter egg.
type HackState int

const (
	HackIdle HackState = iota
	HackBreach
	HackSuccess
	HackExit
)

func (s HackState) String() string {
	switch s {
	case HackIdle:
		return "idle"
	case HackBreach:
		return "breach"
	case HackSuccess:
		return "success"
	case HackExit:
		return "exit"
	default:
		return "unknown"
	}
}

const (
	breachDuration  = 4 * time.Second
	successDuration = 3 * time.Second
	exitDuration    = 500 * time.Millisecond
	flashDuration   = 150 * time.Millisecond
	streamInterval  = 50 * time.Millisecond
	streamKeep      = 30
	cpuKeep         = 60
	hackTrigger     = "hack"
)

var systemWarnings = []string{
	"WARNING: FIREWALL BREACH DETECTED",
	"ALERT: UNAUTHORIZED ACCESS ATTEMPT",
	"CRITICAL: ENCRYPTION KEY EXPOSED",
	"NOTICE: PROXY CHAIN ESTABLISHED",
	"SYSTEM: ROOT PRIVILEGES ESCALATING",
	"DANGER: INTRUSION COUNTERMEASURES ACTIVE",
	"STATUS: DECRYPTION IN PROGRESS",
	"ALERT: TRACE ROUTE BLOCKED",
}

// HackAt maps time since the sequence started onto its phase.
func HackAt(elapsed time.Duration) (HackState, bool) {
	switch {
	case elapsed < 0:
		return HackIdle, false
	case elapsed < breachDuration:
		return HackBreach, false
	case elapsed < breachDuration+successDuration:
		return HackSuccess, elapsed < breachDuration+flashDuration
	case elapsed < breachDuration+successDuration+exitDuration:
		return HackExit, false
	default:
		return HackIdle, false
	}
}

func hexByte(rng scramble.Rand) string {
	return fmt.Sprintf("0x%02X", rng.IntN(256))
}

func hexLine(rng scramble.Rand) string {
	n := rng.IntN(8) + 8
	parts := make([]string, n)
	for i := range parts {
		parts[i] = hexByte(rng)
	}
	return strings.Join(parts, " ")
}

// streamLine is one line of the breach data stream.
func streamLine(rng scramble.Rand, now time.Time) string {
	if rng.Float64() > 0.85 {
		return "[!] " + systemWarnings[rng.IntN(len(systemWarnings))]
	}
	ms := fmt.Sprintf("%d", now.UnixMilli())
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return "[" + ms + "] " + hexLine(rng)
}

type hackTickMsg struct {
	gen  int
	time time.Time
}

type hacker struct {
	state   HackState
	flash   bool
	start   time.Time
	gen     int
	lines   []string
	status  string
	cpu     []float64
	rng     scramble.Rand
	granted scramble.Model
	typed   []rune
}

func newHacker(rng scramble.Rand, granted scramble.Model) hacker {
	return hacker{rng: rng, granted: granted}
}

func (h hacker) Active() bool { return h.state != HackIdle }

// keyTyped feeds printable keys and reports whether the trigger word was typed.
func (h *hacker) keyTyped(r rune) bool {
	h.typed = append(h.typed, r)
	if len(h.typed) > len(hackTrigger) {
		h.typed = h.typed[len(h.typed)-len(hackTrigger):]
	}
	return string(h.typed) == hackTrigger
}

func (h *hacker) begin(now time.Time) tea.Cmd {
	if h.Active() {
		return nil
	}
	h.gen++
	h.state = HackBreach
	h.flash = false
	h.start = now
	h.lines = nil
	h.cpu = nil
	h.typed = nil
	return h.tick()
}

func (h *hacker) abort() {
	h.gen++
	h.state = HackIdle
	h.lines = nil
	h.cpu = nil
}

func (h *hacker) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case scramble.FrameMsg:
		var cmd tea.Cmd
		h.granted, cmd = h.granted.Update(msg)
		return cmd
	case hackTickMsg:
		if msg.gen != h.gen || !h.Active() {
			return nil
		}
		prev := h.state
		h.state, h.flash = HackAt(msg.time.Sub(h.start))

		var cmds []tea.Cmd
		switch h.state {
		case HackBreach:
			h.push(msg.time)
		case HackSuccess:
			if prev != HackSuccess {
				var cmd tea.Cmd
				h.granted, cmd = h.granted.Replay()
				cmds = append(cmds, cmd)
			}
		case HackIdle:
			h.lines = nil
			h.cpu = nil
			return nil
		}
		cmds = append(cmds, h.tick())
		return tea.Batch(cmds...)
	}
	return nil
}

func (h *hacker) push(now time.Time) {
	h.lines = append(h.lines, streamLine(h.rng, now))
	if len(h.lines) > streamKeep {
		h.lines = h.lines[len(h.lines)-streamKeep:]
	}

	cpu := h.rng.IntN(100)
	h.cpu = append(h.cpu, float64(cpu))
	if len(h.cpu) > cpuKeep {
		h.cpu = h.cpu[len(h.cpu)-cpuKeep:]
	}
	net := hexLine(h.rng)
	if len(net) > 30 {
		net = net[:30]
	}
	h.status = fmt.Sprintf("MEM:%s CPU:%d%% NET:%s", hexByte(h.rng), cpu, net)
}

func (h *hacker) tick() tea.Cmd {
	gen := h.gen
	return tea.Tick(streamInterval, func(t time.Time) tea.Msg {
		return hackTickMsg{gen: gen, time: t}
	})
}

func (h hacker) view(st viz.Styles, width, height int) string {
	green := lipgloss.NewStyle().Foreground(st.Theme.Success)
	warn := lipgloss.NewStyle().Bold(true).Foreground(st.Theme.Error)

	var b strings.Builder
	switch h.state {
	case HackBreach:
		frame := len(h.lines)
		b.WriteString(warn.Render(viz.AnimatedSpinner(frame)+" BREACH IN PROGRESS") + "\n\n")

		keep := height - 14
		if keep < 5 {
			keep = 5
		}
		lines := h.lines
		if len(lines) > keep {
			lines = lines[len(lines)-keep:]
		}
		for _, l := range lines {
			if strings.HasPrefix(l, "[!]") {
				b.WriteString(warn.Render(l) + "\n")
			} else {
				b.WriteString(green.Render(l) + "\n")
			}
		}
		b.WriteString("\n" + green.Render(h.status) + "\n")
		if len(h.cpu) > 1 {
			w := width - 12
			if w > cpuKeep {
				w = cpuKeep
			}
			if w < 10 {
				w = 10
			}
			graph := asciigraph.Plot(h.cpu,
				asciigraph.Height(5),
				asciigraph.Width(w),
				asciigraph.LowerBound(0),
				asciigraph.UpperBound(100),
				asciigraph.Caption("CPU %"))
			b.WriteString(green.Render(graph) + "\n")
		}
	case HackSuccess:
		banner := lipgloss.NewStyle().
			Bold(true).
			Foreground(st.Theme.Success).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(st.Theme.Success).
			Padding(1, 4).
			Render(h.granted.View())
		b.WriteString(lipgloss.Place(width, height-2, lipgloss.Center, lipgloss.Center, banner))
	case HackExit:
		b.WriteString(lipgloss.Place(width, height-2, lipgloss.Center, lipgloss.Center, st.Muted.Render("DISCONNECTING...")))
	}

	out := b.String()
	if h.flash {
		return lipgloss.NewStyle().Reverse(true).Render(out)
	}
	return out
}
