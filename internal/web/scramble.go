package web

import (
	"context"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/san-kum/cyberfolio/internal/scramble"
)

type scrambleQuery struct {
	Text      string   `form:"text"`
	Preset    string   `form:"preset"`
	RandSeed  *uint64  `form:"rand_seed"`
	SpeedMs   *int     `form:"speed_ms"`
	Scramble  *int     `form:"scramble"`
	Step      *int     `form:"step"`
	Seed      *int     `form:"seed"`
	Chance    *float64 `form:"chance"`
	Overdrive *bool    `form:"overdrive"`
	Overflow  *bool    `form:"overflow"`
}

// options resolves the preset and applies any per-request overrides.
func (s *Server) options(q scrambleQuery) (scramble.Options, error) {
	name := q.Preset
	if name == "" {
		name = "default"
	}
	opts, ok := s.cfg.Preset(name)
	if !ok {
		return scramble.Options{}, fmt.Errorf("unknown preset %q", name)
	}
	if q.SpeedMs != nil {
		opts.Speed = time.Duration(*q.SpeedMs) * time.Millisecond
	}
	if q.Scramble != nil {
		opts.Scramble = *q.Scramble
	}
	if q.Step != nil {
		opts.Step = *q.Step
	}
	if q.Seed != nil {
		opts.Seed = *q.Seed
	}
	if q.Chance != nil {
		opts.Chance = *q.Chance
	}
	if q.Overdrive != nil {
		opts.Overdrive = *q.Overdrive
	}
	if q.Overflow != nil {
		opts.Overflow = *q.Overflow
	}
	if err := opts.Validate(); err != nil {
		return scramble.Options{}, err
	}
	if opts.Speed < minSpeed {
		return scramble.Options{}, fmt.Errorf("speed must be at least %s", minSpeed)
	}
	return opts, nil
}

// scramble streams one animation as server-sent events: a "frame" event per
// tick and a final "done" event carrying the settled frame.
func (s *Server) scramble(c *gin.Context) {
	var q scrambleQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if utf8.RuneCountInString(q.Text) > maxTextRunes {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("text longer than %d characters", maxTextRunes)})
		return
	}
	opts, err := s.options(q)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	frames := make(chan scramble.Frame, frameBuffer)
	sessOpts := []scramble.SessionOption{
		scramble.WithLogger(s.logger),
		scramble.WithFrameFunc(func(f scramble.Frame) {
			select {
			case frames <- f:
			case <-ctx.Done():
			}
		}),
	}
	if q.RandSeed != nil {
		sessOpts = append(sessOpts, scramble.WithRand(scramble.NewRand(*q.RandSeed)))
	}

	sess, err := scramble.NewSession(q.Text, opts, sessOpts...)
	if err != nil {
		cancel()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer sess.Stop()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	sess.Start(ctx)
	for {
		select {
		case f := <-frames:
			c.SSEvent("frame", f)
			if f.Done {
				c.SSEvent("done", f)
			}
			c.Writer.Flush()
			if f.Done {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
