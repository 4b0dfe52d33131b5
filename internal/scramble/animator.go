package scramble

// State is the lifecycle position of an animation.
type State int

const (
	StateIdle State = iota
	StateAnimating
	StateSettled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnimating:
		return "animating"
	case StateSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Frame is one emitted display string. Iteration and Frontier are the values
// the text was computed from.
type Frame struct {
	Text      string `json:"text"`
	Iteration int    `json:"iteration"`
	Frontier  int    `json:"frontier"`
	Done      bool   `json:"done"`
}

// Animator converges a display string onto a target one tick at a time.
// It owns no timer; callers decide when a tick fires.
type Animator struct {
	target    []rune
	opts      Options
	rng       Rand
	iteration int
	threshold int
	// covered is the rune length of the previous frame of this run.
	covered int
	display []rune
	state   State
}

// New validates opts and binds target. A nil rng uses a clock-seeded PCG.
func New(target string, opts Options, rng Rand) (*Animator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = clockRand()
	}
	a := &Animator{opts: opts, rng: rng}
	a.SetTarget(target)
	return a, nil
}

// SetTarget replaces the target and restarts from iteration 0.
func (a *Animator) SetTarget(target string) {
	a.target = []rune(target)
	a.Reset()
}

// Reset discards progress and restarts from iteration 0 with the same target.
func (a *Animator) Reset() {
	a.iteration = 0
	a.covered = 0
	a.threshold = a.opts.Threshold(len(a.target))
	a.display = make([]rune, len(a.target))
	if len(a.target) == 0 || a.threshold == 0 {
		a.settle()
		return
	}
	for i := range a.display {
		a.display[i] = ' '
	}
	a.state = StateAnimating
}

func (a *Animator) settle() {
	copy(a.display, a.target)
	a.state = StateSettled
}

// Tick runs one timer firing and returns the new display text.
func (a *Animator) Tick() (string, bool) {
	f := a.NextFrame()
	return f.Text, f.Done
}

// NextFrame runs one timer firing. Once settled it keeps returning the target.
func (a *Animator) NextFrame() Frame {
	if a.state == StateSettled {
		return Frame{Text: string(a.target), Iteration: a.iteration, Frontier: a.Frontier(), Done: true}
	}

	iteration := a.iteration
	frontier := a.Frontier()
	for i, c := range a.target {
		switch {
		case i < frontier:
			a.display[i] = c
		case i == frontier:
			if a.rng.Float64() < a.opts.Chance {
				a.display[i] = Glyph(a.rng)
			} else {
				a.display[i] = c
			}
		case a.opts.Overflow:
			a.display[i] = Glyph(a.rng)
		case a.opts.Overdrive && i < a.covered:
			a.display[i] = Glyph(a.rng)
		default:
			a.display[i] = ' '
		}
	}
	a.covered = len(a.display)

	a.iteration += a.opts.Advance()
	if a.iteration >= a.threshold {
		a.settle()
		return Frame{Text: string(a.target), Iteration: iteration, Frontier: frontier, Done: true}
	}
	return Frame{Text: string(a.display), Iteration: iteration, Frontier: frontier}
}

func (a *Animator) Text() string { return string(a.display) }

func (a *Animator) Target() string { return string(a.target) }

func (a *Animator) Options() Options { return a.opts }

func (a *Animator) State() State { return a.state }

func (a *Animator) Animating() bool { return a.state == StateAnimating }

func (a *Animator) Iteration() int { return a.iteration }

func (a *Animator) Threshold() int { return a.threshold }

// Frontier is the index currently being resolved.
func (a *Animator) Frontier() int { return a.iteration / a.opts.Scramble }

// Record resets a and drives it to completion without a timer, returning
// every frame including the settling one.
func Record(a *Animator) []Frame {
	a.Reset()
	frames := make([]Frame, 0, a.opts.Frames(len(a.target))+1)
	for {
		f := a.NextFrame()
		frames = append(frames, f)
		if f.Done {
			return frames
		}
	}
}
