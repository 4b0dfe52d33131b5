package scramble

import (
	"math/rand/v2"
	"time"
)

// glyphSource repeats the underscore so blank-like noise dominates the symbols.
const glyphSource = "!<>-_\\/[]{}—=+*^?#________ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var glyphs = []rune(glyphSource)

// Rand is the randomness an animator draws from. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// NewRand returns a deterministic source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func clockRand() *rand.Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}

// Glyph draws one noise character.
func Glyph(r Rand) rune {
	return glyphs[r.IntN(len(glyphs))]
}

// IsGlyph reports whether c belongs to the noise alphabet.
func IsGlyph(c rune) bool {
	for _, g := range glyphs {
		if g == c {
			return true
		}
	}
	return false
}
