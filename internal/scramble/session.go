package scramble

import (
	"context"
	"io"
	"log"
	"sync"
	"time"
)

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithRand sets the random source used for glyphs and flicker.
func WithRand(r Rand) SessionOption {
	return func(s *Session) { s.rng = r }
}

// WithFrameFunc registers the push-based consumer. fn runs on the session
// goroutine and must not call Stop, Replay or SetTarget synchronously.
func WithFrameFunc(fn func(Frame)) SessionOption {
	return func(s *Session) { s.onFrame = fn }
}

func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// Session runs an Animator from its own ticker. At most one ticker goroutine
// is alive per session; Replay and Stop wait for it to exit.
type Session struct {
	// ctl serializes Start, Replay, SetTarget and Stop.
	ctl sync.Mutex

	mu      sync.Mutex
	anim    *Animator
	state   State
	parent  context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	started bool

	rng     Rand
	onFrame func(Frame)
	logger  *log.Logger
}

func NewSession(target string, opts Options, options ...SessionOption) (*Session, error) {
	s := &Session{}
	for _, opt := range options {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard, "", 0)
	}
	anim, err := New(target, opts, s.rng)
	if err != nil {
		return nil, err
	}
	s.anim = anim
	s.done = make(chan struct{})
	return s, nil
}

// Start begins the animation and returns immediately. Cancelling ctx has the
// same effect as Stop. Calling Start on a running session restarts it.
func (s *Session) Start(ctx context.Context) {
	s.ctl.Lock()
	defer s.ctl.Unlock()
	s.halt()
	s.mu.Lock()
	s.parent = ctx
	s.started = true
	s.anim.Reset()
	s.mu.Unlock()
	s.launch()
}

// Replay cancels any in-flight ticker, then restarts from iteration 0.
func (s *Session) Replay() {
	s.ctl.Lock()
	defer s.ctl.Unlock()
	s.halt()
	s.mu.Lock()
	if s.parent == nil || s.parent.Err() != nil {
		s.parent = context.Background()
	}
	s.started = true
	s.anim.Reset()
	s.mu.Unlock()
	s.launch()
}

// SetTarget swaps the target. A started session restarts from iteration 0.
func (s *Session) SetTarget(target string) {
	s.ctl.Lock()
	defer s.ctl.Unlock()
	s.halt()
	s.mu.Lock()
	s.anim.SetTarget(target)
	started := s.started
	if !started {
		s.state = StateIdle
	}
	s.mu.Unlock()
	if started {
		s.launch()
	}
}

// Stop cancels the ticker and waits for it to exit. No frame is delivered
// after Stop returns. Safe to call more than once.
func (s *Session) Stop() {
	s.ctl.Lock()
	defer s.ctl.Unlock()
	s.halt()
	s.mu.Lock()
	s.started = false
	s.mu.Unlock()
}

// halt cancels the running goroutine and waits for it. Caller holds ctl.
func (s *Session) halt() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	if s.state == StateAnimating {
		s.state = StateIdle
	}
	s.mu.Unlock()
	if cancel != nil {
		cancel()
		<-done
		s.logger.Printf("scramble: stopped %q", s.anim.Target())
	}
}

// launch starts the ticker goroutine for the current run. Caller holds ctl.
func (s *Session) launch() {
	s.mu.Lock()
	done := make(chan struct{})
	s.done = done
	if s.anim.State() == StateSettled {
		s.state = StateSettled
		f := Frame{Text: s.anim.Target(), Iteration: s.anim.Iteration(), Frontier: s.anim.Frontier(), Done: true}
		s.mu.Unlock()
		close(done)
		s.emit(f)
		return
	}
	ctx, cancel := context.WithCancel(s.parent)
	s.cancel = cancel
	s.state = StateAnimating
	opts := s.anim.Options()
	s.mu.Unlock()

	s.logger.Printf("scramble: start %q (%d frames every %s)", s.anim.Target(), opts.Frames(len([]rune(s.anim.Target()))), opts.Speed)
	go s.run(ctx, opts.Speed, done)
}

func (s *Session) run(ctx context.Context, speed time.Duration, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(speed)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			if s.state == StateAnimating {
				s.state = StateIdle
			}
			s.mu.Unlock()
			return
		case <-ticker.C:
			s.mu.Lock()
			f := s.anim.NextFrame()
			if f.Done {
				s.state = StateSettled
			}
			s.mu.Unlock()

			if ctx.Err() != nil {
				return
			}
			s.emit(f)
			if f.Done {
				s.logger.Printf("scramble: settled %q", f.Text)
				return
			}
		}
	}
}

func (s *Session) emit(f Frame) {
	if s.onFrame != nil {
		s.onFrame(f)
	}
}

// Text is the current display string.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anim.Text()
}

// IsAnimating is true from Start until the target is reached or the session
// is stopped.
func (s *Session) IsAnimating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateAnimating
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Target() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anim.Target()
}

// Done is closed when the current run settles or is stopped. Replay and
// SetTarget install a new channel.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}
