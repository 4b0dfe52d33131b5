package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/cyberfolio/internal/config"
	"github.com/san-kum/cyberfolio/internal/profile"
	"github.com/san-kum/cyberfolio/internal/scramble"
	"github.com/san-kum/cyberfolio/internal/viz"
)

const (
	phaseLoading = iota
	phasePortfolio
)

const (
	heroName = iota
	heroSurname
	heroTitle
)

var heroPresets = [3]string{"hero-name", "hero-surname", "hero-title"}

type startMsg struct{}

// App is the interactive terminal portfolio.
type App struct {
	cfg   *config.Config
	p     *profile.Profile
	theme viz.Theme
	st    viz.Styles

	phase         int
	loadStart     time.Time
	loading       LoadingFrame
	width, height int
	offset        int

	hero     [3]scramble.Model
	headings map[string]scramble.Model
	revealed map[string]bool
	hack     hacker
}

func preset(cfg *config.Config, name string) scramble.Options {
	if opts, ok := cfg.Preset(name); ok {
		return opts
	}
	return scramble.DefaultOptions()
}

// NewApp builds the portfolio. A nil rng seeds from the clock; every
// animation gets its own source derived from it.
func NewApp(cfg *config.Config, p *profile.Profile, rng scramble.Rand) (App, error) {
	if rng == nil {
		rng = scramble.NewRand(uint64(time.Now().UnixNano()))
	}
	child := func() scramble.Rand { return scramble.NewRand(uint64(rng.IntN(math.MaxInt))) }

	theme := viz.GetTheme(cfg.Theme)
	m := App{
		cfg:       cfg,
		p:         p,
		theme:     theme,
		st:        viz.NewStyles(theme),
		loadStart: time.Now(),
		width:     80,
		height:    24,
		headings:  make(map[string]scramble.Model),
		revealed:  make(map[string]bool),
	}
	if cfg.LoadingDuration() <= 0 {
		m.phase = phasePortfolio
	}

	targets := [3]string{p.Hero.Name, p.Hero.Surname, p.Hero.Title}
	for i, target := range targets {
		hm, err := scramble.NewModel(target, preset(cfg, heroPresets[i]), child())
		if err != nil {
			return App{}, fmt.Errorf("%s: %w", heroPresets[i], err)
		}
		m.hero[i] = hm
	}

	for _, item := range p.Nav {
		if item.ID == "hero" {
			continue
		}
		hm, err := scramble.NewModel(headingText(item), preset(cfg, "heading"), child())
		if err != nil {
			return App{}, fmt.Errorf("heading %s: %w", item.ID, err)
		}
		m.headings[item.ID] = hm
	}

	granted, err := scramble.NewModel("ACCESS GRANTED", preset(cfg, "glitch"), child())
	if err != nil {
		return App{}, fmt.Errorf("glitch: %w", err)
	}
	m.hack = newHacker(child(), granted)
	return m, nil
}

func (m App) Init() tea.Cmd {
	if m.phase == phaseLoading {
		return loadingTick()
	}
	return func() tea.Msg { return startMsg{} }
}

func loadingTick() tea.Cmd {
	return tea.Tick(loadingInterval, func(t time.Time) tea.Msg { return loadingTickMsg(t) })
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.offset = clamp(m.offset, 0, m.maxOffset())
		if m.phase == phasePortfolio {
			return m, m.reveal()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case startMsg:
		return m, m.reveal()
	case loadingTickMsg:
		if m.phase != phaseLoading {
			return m, nil
		}
		m.loading = LoadingAt(time.Time(msg).Sub(m.loadStart), m.cfg.LoadingDuration())
		if m.loading.Done {
			return m.enterPortfolio()
		}
		return m, loadingTick()
	case scramble.FrameMsg:
		var cmds []tea.Cmd
		for i := range m.hero {
			var cmd tea.Cmd
			m.hero[i], cmd = m.hero[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		for id, hm := range m.headings {
			var cmd tea.Cmd
			m.headings[id], cmd = hm.Update(msg)
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, m.hack.update(msg))
		return m, tea.Batch(cmds...)
	case hackTickMsg:
		return m, m.hack.update(msg)
	}
	return m, nil
}

func (m App) enterPortfolio() (App, tea.Cmd) {
	m.phase = phasePortfolio
	m.loading = LoadingFrame{Progress: 100, Done: true}
	return m, tea.Batch(tea.ClearScreen, m.reveal())
}

func (m App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.phase == phaseLoading {
		return m.enterPortfolio()
	}

	if m.hack.Active() {
		switch key {
		case "q":
			return m, tea.Quit
		case "esc":
			m.hack.abort()
		}
		return m, nil
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && m.hack.keyTyped(msg.Runes[0]) {
		return m, m.hack.begin(time.Now())
	}

	_, starts := m.page()
	vp := m.viewport()
	switch key {
	case "q":
		return m, tea.Quit
	case "j", "down":
		m.offset++
	case "k", "up":
		m.offset--
	case "pgdown", " ", "f":
		m.offset += vp
	case "pgup", "b":
		m.offset -= vp
	case "g", "home":
		m.offset = 0
	case "G", "end":
		m.offset = m.maxOffset()
	case "tab":
		next := ActiveSection(starts, m.offset, vp) + 1
		if next < len(starts) {
			m.offset = starts[next]
		}
	case "shift+tab":
		prev := ActiveSection(starts, m.offset, vp) - 1
		if prev >= 0 {
			m.offset = starts[prev]
		}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		i := int(key[0] - '1')
		if i < len(starts) {
			m.offset = starts[i]
		}
	case "t":
		m.theme = viz.NextTheme(m.theme)
		m.st = viz.NewStyles(m.theme)
	case "r":
		return m, m.replay()
	}
	m.offset = clamp(m.offset, 0, m.maxOffset())
	return m, m.reveal()
}

// replay restarts every animation that has already been revealed.
func (m *App) replay() tea.Cmd {
	var cmds []tea.Cmd
	if m.revealed["hero"] {
		for i := range m.hero {
			var cmd tea.Cmd
			m.hero[i], cmd = m.hero[i].Replay()
			cmds = append(cmds, cmd)
		}
	}
	for id, hm := range m.headings {
		if !m.revealed[id] {
			continue
		}
		var cmd tea.Cmd
		m.headings[id], cmd = hm.Replay()
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// reveal starts the animations of sections that have scrolled into view for
// the first time.
func (m *App) reveal() tea.Cmd {
	lines, starts := m.page()
	vp := m.viewport()
	var cmds []tea.Cmd
	for i, item := range m.p.Nav {
		if m.revealed[item.ID] {
			continue
		}
		end := len(lines)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		if !Visible(starts[i], end, m.offset, vp) {
			continue
		}
		m.revealed[item.ID] = true
		if item.ID == "hero" {
			for j := range m.hero {
				var cmd tea.Cmd
				m.hero[j], cmd = m.hero[j].Start()
				cmds = append(cmds, cmd)
			}
			continue
		}
		if hm, ok := m.headings[item.ID]; ok {
			var cmd tea.Cmd
			m.headings[item.ID], cmd = hm.Start()
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m App) viewport() int {
	return max(1, m.height-3)
}

func (m App) maxOffset() int {
	lines, _ := m.page()
	return max(0, len(lines)-m.viewport())
}

// page renders every section and returns its lines plus the first line of
// each section. Scramble text keeps its length while animating, so section
// offsets do not move under the reader.
func (m App) page() ([]string, []int) {
	r := renderCtx{st: m.st, p: m.p, width: m.width}
	var lines []string
	starts := make([]int, len(m.p.Nav))
	for i, item := range m.p.Nav {
		starts[i] = len(lines)
		var s string
		if item.ID == "hero" {
			s = r.hero(m.hero[heroName].View(), m.hero[heroSurname].View(), m.hero[heroTitle].View())
		} else {
			text := headingText(item)
			if hm, ok := m.headings[item.ID]; ok {
				text = hm.View()
			}
			s = r.heading(item.Icon, text) + r.body(item.ID)
		}
		lines = append(lines, strings.Split(strings.TrimRight(s, "\n"), "\n")...)
		lines = append(lines, "")
	}
	return lines, starts
}

func (m App) View() string {
	if m.phase == phaseLoading {
		return m.viewLoading()
	}
	if m.hack.Active() {
		return m.hack.view(m.st, m.width, m.height)
	}
	return m.viewPortfolio()
}

func (m App) viewLoading() string {
	f := m.loading
	title := viz.RGBSplit("INITIALIZING NEURAL LINK", m.theme, f.Split)
	if f.Exiting {
		title = viz.RGBSplit("LINK ESTABLISHED", m.theme, false)
	}
	barWidth := max(10, min(m.width-20, 50))
	body := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		viz.ProgressBar(m.theme, f.Progress/100, barWidth),
		m.st.Muted.Render(fmt.Sprintf("%s %3.0f%%", viz.AnimatedSpinner(int(f.Progress)), f.Progress)),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m App) viewPortfolio() string {
	lines, starts := m.page()
	vp := m.viewport()
	active := ActiveSection(starts, m.offset, vp)

	nav := make([]string, len(m.p.Nav))
	for i, item := range m.p.Nav {
		label := item.Icon + " " + item.Label
		if i == active {
			nav[i] = m.st.NavActive.Render(label)
		} else {
			nav[i] = m.st.NavIdle.Render(label)
		}
	}

	end := min(len(lines), m.offset+vp)
	visible := lines[m.offset:end]
	for len(visible) < vp {
		visible = append(visible, "")
	}

	footer := m.st.KeyHint.Render("j/k scroll · tab/1-5 jump · r replay · t theme · q quit")
	return lipgloss.JoinHorizontal(lipgloss.Top, nav...) + "\n" +
		strings.Join(visible, "\n") + "\n" + footer
}

// Run starts the interactive portfolio on the alternate screen.
func Run(cfg *config.Config, p *profile.Profile) error {
	m, err := NewApp(cfg, p, nil)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
