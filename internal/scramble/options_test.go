package scramble

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Speed != 50*time.Millisecond {
		t.Errorf("expected speed 50ms, got %s", opts.Speed)
	}
	if opts.Scramble != 3 || opts.Step != 1 || opts.Tick != 1 {
		t.Errorf("unexpected defaults %+v", opts)
	}
	if opts.Chance != 0.8 {
		t.Errorf("expected chance 0.8, got %f", opts.Chance)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Options)
		field string
	}{
		{"zero scramble", func(o *Options) { o.Scramble = 0 }, "scramble"},
		{"negative scramble", func(o *Options) { o.Scramble = -1 }, "scramble"},
		{"zero step", func(o *Options) { o.Step = 0 }, "step"},
		{"zero tick", func(o *Options) { o.Tick = 0 }, "tick"},
		{"zero speed", func(o *Options) { o.Speed = 0 }, "speed"},
		{"chance above one", func(o *Options) { o.Chance = 1.5 }, "chance"},
		{"negative chance", func(o *Options) { o.Chance = -0.1 }, "chance"},
		{"NaN chance", func(o *Options) { o.Chance = math.NaN() }, "chance"},
		{"negative seed", func(o *Options) { o.Seed = -3 }, ""},
		{"certain flicker", func(o *Options) { o.Chance = 1 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.edit(&opts)
			err := opts.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("expected valid, got %v", err)
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("field = %s, want %s", cfgErr.Field, tt.field)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Error("ConfigError should unwrap to ErrInvalidConfig")
			}
		})
	}
}

func TestOptions_Threshold(t *testing.T) {
	tests := []struct {
		n, scramble, seed, want int
	}{
		{2, 2, 0, 4},
		{10, 3, 0, 30},
		{10, 3, 5, 35},
		{1, 1, -4, 0},
		{0, 3, 0, 0},
	}

	for _, tt := range tests {
		opts := DefaultOptions()
		opts.Scramble, opts.Seed = tt.scramble, tt.seed
		if got := opts.Threshold(tt.n); got != tt.want {
			t.Errorf("Threshold(%d) scramble=%d seed=%d = %d, want %d", tt.n, tt.scramble, tt.seed, got, tt.want)
		}
	}
}

func TestOptions_Duration(t *testing.T) {
	opts := DefaultOptions()
	opts.Scramble, opts.Step, opts.Tick = 4, 1, 2

	if got := opts.Frames(5); got != 10 {
		t.Errorf("Frames(5) = %d, want 10", got)
	}
	if got := opts.Duration(5); got != 500*time.Millisecond {
		t.Errorf("Duration(5) = %s, want 500ms", got)
	}
	if got := opts.Frames(0); got != 0 {
		t.Errorf("Frames(0) = %d, want 0", got)
	}
}

func TestGlyphPoolBiasesTowardBlank(t *testing.T) {
	counts := map[rune]int{}
	for _, g := range glyphs {
		counts[g]++
	}
	for g, n := range counts {
		if g != '_' && n >= counts['_'] {
			t.Errorf("glyph %q appears %d times, underscore only %d", g, n, counts['_'])
		}
	}
	if !IsGlyph('Z') || !IsGlyph('7') || IsGlyph('a') {
		t.Error("unexpected alphabet membership")
	}
}
