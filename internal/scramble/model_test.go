package scramble

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runModel(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		if i > 1000 {
			t.Fatal("model never settled")
		}
		m, cmd = m.Update(cmd())
	}
	return m
}

func TestModel_StartRunsToTarget(t *testing.T) {
	m, err := NewModel("RAFLI SANTOSA", fastOptions(), NewRand(3))
	if err != nil {
		t.Fatalf("new model failed: %v", err)
	}
	if m.Animating() {
		t.Error("model should not animate before Start")
	}

	m, cmd := m.Start()
	if cmd == nil {
		t.Fatal("expected a tick command")
	}
	if !m.Animating() {
		t.Error("model should animate after Start")
	}

	m = runModel(t, m, cmd)
	if m.View() != "RAFLI SANTOSA" {
		t.Errorf("expected settled text, got %q", m.View())
	}
	if m.Animating() {
		t.Error("settled model still animating")
	}

	if _, again := m.Start(); again != nil {
		t.Error("second Start should be a no-op")
	}
}

func TestModel_EmptyTargetSchedulesNothing(t *testing.T) {
	m, err := NewModel("", fastOptions(), nil)
	if err != nil {
		t.Fatalf("new model failed: %v", err)
	}
	if _, cmd := m.Start(); cmd != nil {
		t.Error("empty target should not schedule a tick")
	}
}

func TestModel_ReplayDropsStaleTicks(t *testing.T) {
	m, _ := NewModel("STALE", fastOptions(), alwaysTrue)
	m, cmd := m.Start()
	stale := cmd()

	m, cmd = m.Replay()
	m, next := m.Update(stale)
	if next != nil {
		t.Error("stale tick should not schedule another")
	}
	if m.View() != "     " {
		t.Errorf("stale tick advanced the animation: %q", m.View())
	}

	m = runModel(t, m, cmd)
	if m.View() != "STALE" {
		t.Errorf("expected STALE, got %q", m.View())
	}
}

func TestModel_IgnoresOtherModels(t *testing.T) {
	a, _ := NewModel("ONE", fastOptions(), alwaysTrue)
	b, _ := NewModel("TWO", fastOptions(), alwaysTrue)
	if a.ID() == b.ID() {
		t.Fatal("models share an id")
	}

	a, cmdA := a.Start()
	b, _ = b.Start()

	msg := cmdA()
	b, cmd := b.Update(msg)
	if cmd != nil || b.View() != "   " {
		t.Errorf("model b reacted to model a's tick: %q", b.View())
	}
	a, _ = a.Update(msg)
	if a.View() != "O  " {
		t.Errorf("model a did not tick: %q", a.View())
	}
}

func TestModel_SetTarget(t *testing.T) {
	m, _ := NewModel("BEFORE", fastOptions(), nil)
	m, cmd := m.SetTarget("AFTER")
	if cmd != nil {
		t.Error("unstarted model should not tick on SetTarget")
	}

	m, cmd = m.Start()
	m = runModel(t, m, cmd)
	m, cmd = m.SetTarget("LATER")
	if cmd == nil {
		t.Fatal("started model should restart on SetTarget")
	}
	m = runModel(t, m, cmd)
	if m.View() != "LATER" {
		t.Errorf("expected LATER, got %q", m.View())
	}
}
