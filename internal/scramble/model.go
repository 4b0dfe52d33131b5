package scramble

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

// FrameMsg asks the Model with the matching ID to run one tick. Messages from
// an earlier generation are dropped, which is how Replay cancels a pending tick.
type FrameMsg struct {
	ID   int
	Time time.Time
	gen  int
}

// Model is a Bubble Tea component wrapping an Animator. Each Model owns its
// own tick chain; several can run side by side in one program.
type Model struct {
	id      int
	gen     int
	anim    *Animator
	started bool
}

func NewModel(target string, opts Options, rng Rand) (Model, error) {
	anim, err := New(target, opts, rng)
	if err != nil {
		return Model{}, err
	}
	return Model{id: nextID(), anim: anim}, nil
}

func (m Model) ID() int { return m.id }

// Start schedules the first tick. Starting an already started model is a
// no-op and an empty target schedules nothing.
func (m Model) Start() (Model, tea.Cmd) {
	if m.started {
		return m, nil
	}
	m.started = true
	return m, m.tick()
}

// Replay resets the animation and abandons any tick still in flight.
func (m Model) Replay() (Model, tea.Cmd) {
	m.gen++
	m.started = true
	m.anim.Reset()
	return m, m.tick()
}

// SetTarget swaps the target and restarts if the model was started.
func (m Model) SetTarget(target string) (Model, tea.Cmd) {
	m.gen++
	m.anim.SetTarget(target)
	if !m.started {
		return m, nil
	}
	return m, m.tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	fm, ok := msg.(FrameMsg)
	if !ok || fm.ID != m.id || fm.gen != m.gen {
		return m, nil
	}
	if _, done := m.anim.Tick(); done {
		return m, nil
	}
	return m, m.tick()
}

func (m Model) View() string { return m.anim.Text() }

func (m Model) Target() string { return m.anim.Target() }

func (m Model) Started() bool { return m.started }

// Animating is true between Start and the settling tick.
func (m Model) Animating() bool { return m.started && m.anim.Animating() }

func (m Model) tick() tea.Cmd {
	if !m.anim.Animating() {
		return nil
	}
	id, gen := m.id, m.gen
	return tea.Tick(m.anim.Options().Speed, func(t time.Time) tea.Msg {
		return FrameMsg{ID: id, Time: t, gen: gen}
	})
}
