package tui

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/cyberfolio/internal/scramble"
	"github.com/san-kum/cyberfolio/internal/viz"
)

type stubRand struct {
	f float64
	n int
}

func (r stubRand) IntN(n int) int   { return r.n % n }
func (r stubRand) Float64() float64 { return r.f }

func TestHackAt(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		state   HackState
		flash   bool
	}{
		{-time.Millisecond, HackIdle, false},
		{0, HackBreach, false},
		{3999 * time.Millisecond, HackBreach, false},
		{4 * time.Second, HackSuccess, true},
		{4149 * time.Millisecond, HackSuccess, true},
		{4150 * time.Millisecond, HackSuccess, false},
		{7 * time.Second, HackExit, false},
		{7499 * time.Millisecond, HackExit, false},
		{7500 * time.Millisecond, HackIdle, false},
	}
	for _, tt := range tests {
		state, flash := HackAt(tt.elapsed)
		if state != tt.state || flash != tt.flash {
			t.Errorf("HackAt(%v) = %v/%v, want %v/%v", tt.elapsed, state, flash, tt.state, tt.flash)
		}
	}
}

func TestStreamLine(t *testing.T) {
	now := time.UnixMilli(1700000123456)

	warning := streamLine(stubRand{f: 0.9, n: 1}, now)
	if warning != "[!] "+systemWarnings[1] {
		t.Errorf("unexpected warning line %q", warning)
	}

	data := streamLine(stubRand{f: 0.1, n: 3}, now)
	re := regexp.MustCompile(`^\[123456\]( 0x[0-9A-F]{2}){8,15}$`)
	if !re.MatchString(data) {
		t.Errorf("unexpected data line %q", data)
	}
}

func newTestHacker(t *testing.T) hacker {
	t.Helper()
	granted, err := scramble.NewModel("ACCESS GRANTED", scramble.DefaultOptions(), scramble.NewRand(1))
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return newHacker(scramble.NewRand(2), granted)
}

func TestHacker_Trigger(t *testing.T) {
	h := newTestHacker(t)
	for i, r := range "xhachack" {
		got := h.keyTyped(r)
		if want := i == 7; got != want {
			t.Errorf("after %q: expected trigger %v, got %v", "xhachack"[:i+1], want, got)
		}
	}
}

func TestHacker_Sequence(t *testing.T) {
	h := newTestHacker(t)
	start := time.Now()

	if cmd := h.begin(start); cmd == nil {
		t.Fatal("begin should schedule a tick")
	}
	if !h.Active() || h.state != HackBreach {
		t.Fatalf("expected breach, got %v", h.state)
	}
	if cmd := h.begin(start); cmd != nil {
		t.Error("begin while active should be a no-op")
	}

	for i := 1; i <= streamKeep+5; i++ {
		h.update(hackTickMsg{gen: h.gen, time: start.Add(time.Duration(i) * streamInterval)})
	}
	if len(h.lines) != streamKeep {
		t.Errorf("expected %d stream lines kept, got %d", streamKeep, len(h.lines))
	}
	if !strings.HasPrefix(h.status, "MEM:0x") {
		t.Errorf("unexpected status %q", h.status)
	}
	if out := h.view(viz.NewStyles(viz.ThemeCyberpunk), 80, 40); !strings.Contains(out, "BREACH IN PROGRESS") {
		t.Error("breach view missing banner")
	}

	h.update(hackTickMsg{gen: h.gen, time: start.Add(breachDuration + time.Millisecond)})
	if h.state != HackSuccess || !h.flash {
		t.Errorf("expected flashing success, got %v flash=%v", h.state, h.flash)
	}
	if !h.granted.Started() {
		t.Error("granted banner should start on success")
	}

	h.update(hackTickMsg{gen: h.gen, time: start.Add(10 * time.Second)})
	if h.Active() {
		t.Errorf("expected idle after exit, got %v", h.state)
	}
}

func TestHacker_AbortDropsTicks(t *testing.T) {
	h := newTestHacker(t)
	start := time.Now()
	h.begin(start)
	gen := h.gen

	h.abort()
	if h.Active() {
		t.Fatal("abort should return to idle")
	}
	if cmd := h.update(hackTickMsg{gen: gen, time: start.Add(time.Second)}); cmd != nil {
		t.Error("stale tick should be dropped")
	}
	if h.Active() {
		t.Error("stale tick revived hacker mode")
	}
}

func TestHackState_String(t *testing.T) {
	tests := map[HackState]string{
		HackIdle:      "idle",
		HackBreach:    "breach",
		HackSuccess:   "success",
		HackExit:      "exit",
		HackState(-1): "unknown",
		HackState(9):  "unknown",
	}
	for state, want := range tests {
		if got := state.String(); got != want {
			t.Errorf("HackState(%d).String() = %q, want %q", int(state), got, want)
		}
	}
}
