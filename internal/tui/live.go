package tui

import (
	"fmt"
	"io"

	"github.com/san-kum/cyberfolio/internal/scramble"
)

const (
	clearLine  = "\033[2K"
	hideCursor = "\033[?25l"
	showCursor = "\033[?25h"
)

// LiveRenderer redraws scramble frames in place on a plain terminal line.
// It is the non-interactive counterpart of App and is safe to use as a
// scramble.WithFrameFunc target.
type LiveRenderer struct {
	w      io.Writer
	prefix string
	frames int
	err    error
}

func NewLiveRenderer(w io.Writer, prefix string) *LiveRenderer {
	return &LiveRenderer{w: w, prefix: prefix}
}

func (r *LiveRenderer) OnFrame(f scramble.Frame) {
	r.frames++
	r.write("\r" + clearLine + r.prefix + f.Text)
	if f.Done {
		r.write("\n")
	}
}

func (r *LiveRenderer) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprint(r.w, s)
}

func (r *LiveRenderer) Frames() int { return r.frames }

// Err reports the first write error.
func (r *LiveRenderer) Err() error { return r.err }

func (r *LiveRenderer) Start() { r.write(hideCursor) }
func (r *LiveRenderer) Stop()  { r.write(showCursor) }
