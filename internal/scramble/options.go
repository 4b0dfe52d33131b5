package scramble

import (
	"math"
	"time"
)

const (
	DefaultSpeed    = 50 * time.Millisecond
	DefaultTick     = 1
	DefaultStep     = 1
	DefaultScramble = 3
	DefaultSeed     = 0
	DefaultChance   = 0.8
)

// Options configures one animation. The zero value is invalid; start from
// DefaultOptions.
type Options struct {
	// Speed is the interval between ticks.
	Speed time.Duration
	// Tick multiplies the per-firing advance.
	Tick int
	// Step is the base per-firing advance.
	Step int
	// Scramble is the number of iterations spent on each position.
	Scramble int
	// Seed extends the threshold past the last character.
	Seed int
	// Chance is the probability the frontier shows a random glyph.
	Chance float64
	// Overdrive keeps positions covered by the previous frame flickering.
	Overdrive bool
	// Overflow fills every unreached position with noise. Wins over Overdrive.
	Overflow bool
}

func DefaultOptions() Options {
	return Options{
		Speed:    DefaultSpeed,
		Tick:     DefaultTick,
		Step:     DefaultStep,
		Scramble: DefaultScramble,
		Seed:     DefaultSeed,
		Chance:   DefaultChance,
	}
}

// Validate rejects combinations that divide by zero or never settle.
func (o Options) Validate() error {
	switch {
	case o.Scramble <= 0:
		return &ConfigError{Field: "scramble", Value: o.Scramble, Reason: "must be positive"}
	case o.Step <= 0:
		return &ConfigError{Field: "step", Value: o.Step, Reason: "must be positive"}
	case o.Tick <= 0:
		return &ConfigError{Field: "tick", Value: o.Tick, Reason: "must be positive"}
	case o.Speed <= 0:
		return &ConfigError{Field: "speed", Value: o.Speed, Reason: "must be positive"}
	case math.IsNaN(o.Chance) || o.Chance < 0 || o.Chance > 1:
		return &ConfigError{Field: "chance", Value: o.Chance, Reason: "must be within [0, 1]"}
	}
	return nil
}

// Advance is the iteration increment per timer firing.
func (o Options) Advance() int {
	return o.Step * o.Tick
}

// Threshold is the iteration at which a target of n characters settles.
func (o Options) Threshold(n int) int {
	t := n*o.Scramble + o.Seed
	if t < 0 {
		return 0
	}
	return t
}

// Frames is the number of ticks needed to settle n characters.
func (o Options) Frames(n int) int {
	t := o.Threshold(n)
	if n == 0 || t == 0 {
		return 0
	}
	adv := o.Advance()
	return (t + adv - 1) / adv
}

// Duration estimates how long an n character animation runs.
func (o Options) Duration(n int) time.Duration {
	return time.Duration(o.Frames(n)) * o.Speed
}
