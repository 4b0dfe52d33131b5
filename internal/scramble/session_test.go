package scramble

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recorder struct {
	mu     sync.Mutex
	frames []Frame
}

func (r *recorder) record(f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, f)
}

func (r *recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Frame(nil), r.frames...)
}

func (r *recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func (r *recorder) Last() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return Frame{}
	}
	return r.frames[len(r.frames)-1]
}

func fastOptions() Options {
	opts := DefaultOptions()
	opts.Speed = time.Millisecond
	return opts
}

var _ = Describe("Session", func() {
	var (
		rec *recorder
		ctx context.Context
	)

	BeforeEach(func() {
		rec = &recorder{}
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(context.Background())
		DeferCleanup(cancel)
	})

	newSession := func(target string, opts Options) *Session {
		s, err := NewSession(target, opts, WithFrameFunc(rec.record), WithRand(NewRand(1)))
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(s.Stop)
		return s
	}

	It("starts idle", func() {
		s := newSession("IDLE", fastOptions())
		Expect(s.State()).To(Equal(StateIdle))
		Expect(s.IsAnimating()).To(BeFalse())
		Expect(rec.Len()).To(BeZero())
	})

	It("converges on the target and stops animating", func() {
		s := newSession("SYAHRINDRA", fastOptions())
		s.Start(ctx)
		Expect(s.IsAnimating()).To(BeTrue())

		Eventually(s.Done()).Should(BeClosed())
		Expect(s.IsAnimating()).To(BeFalse())
		Expect(s.State()).To(Equal(StateSettled))
		Expect(s.Text()).To(Equal("SYAHRINDRA"))

		frames := rec.Frames()
		Expect(frames).To(HaveLen(fastOptions().Frames(10)))
		Expect(frames[len(frames)-1]).To(Equal(Frame{Text: "SYAHRINDRA", Iteration: 29, Frontier: 9, Done: true}))
		for _, f := range frames[:len(frames)-1] {
			Expect(f.Done).To(BeFalse())
			Expect([]rune(f.Text)).To(HaveLen(10))
		}
	})

	It("settles an empty target without a ticker", func() {
		s := newSession("", fastOptions())
		s.Start(ctx)

		Expect(s.Done()).To(BeClosed())
		Expect(s.IsAnimating()).To(BeFalse())
		Expect(rec.Frames()).To(Equal([]Frame{{Done: true}}))
	})

	It("rejects a zero scramble factor", func() {
		opts := fastOptions()
		opts.Scramble = 0
		_, err := NewSession("AB", opts)
		Expect(err).To(MatchError(ErrInvalidConfig))
	})

	It("replays from iteration zero", func() {
		s := newSession("REPLAY", fastOptions())
		s.Start(ctx)
		Eventually(s.Done()).Should(BeClosed())
		first := rec.Len()

		s.Replay()
		Expect(s.IsAnimating()).To(BeTrue())
		Eventually(s.Done()).Should(BeClosed())
		Expect(s.Text()).To(Equal("REPLAY"))

		frames := rec.Frames()
		Expect(frames).To(HaveLen(2 * first))
		Expect(frames[first].Iteration).To(BeZero())
	})

	It("cancels an in-flight run before replaying", func() {
		opts := fastOptions()
		opts.Speed = 5 * time.Millisecond
		s := newSession("CYBER SECURITY | DEVOPS ENGINEER", opts)
		s.Start(ctx)
		Eventually(rec.Len).Should(BeNumerically(">=", 3))

		for i := 0; i < 5; i++ {
			s.Replay()
		}
		Eventually(s.Done(), 5*time.Second).Should(BeClosed())

		frames := rec.Frames()
		Expect(frames[len(frames)-1].Text).To(Equal("CYBER SECURITY | DEVOPS ENGINEER"))
		done := 0
		for _, f := range frames {
			if f.Done {
				done++
			}
		}
		Expect(done).To(Equal(1))
	})

	It("delivers nothing after Stop", func() {
		opts := fastOptions()
		opts.Speed = 2 * time.Millisecond
		s := newSession("A LONG LINE OF TEXT THAT TAKES A WHILE", opts)
		s.Start(ctx)
		Eventually(rec.Len).Should(BeNumerically(">", 0))

		s.Stop()
		Expect(s.IsAnimating()).To(BeFalse())
		Expect(s.State()).To(Equal(StateIdle))
		n := rec.Len()
		Consistently(rec.Len, 50*time.Millisecond).Should(Equal(n))

		s.Stop()
	})

	It("stops when the context is cancelled", func() {
		opts := fastOptions()
		opts.Speed = 2 * time.Millisecond
		runCtx, cancel := context.WithCancel(ctx)
		s := newSession("CANCELLED BEFORE IT FINISHES", opts)
		s.Start(runCtx)
		cancel()

		Eventually(s.Done()).Should(BeClosed())
		Expect(s.IsAnimating()).To(BeFalse())
		Expect(rec.Last().Done).To(BeFalse())
	})

	It("replays after the start context was cancelled", func() {
		runCtx, cancel := context.WithCancel(ctx)
		s := newSession("REVIVED", fastOptions())
		s.Start(runCtx)
		cancel()
		s.Stop()

		s.Replay()
		Eventually(s.Done()).Should(BeClosed())
		Expect(s.Text()).To(Equal("REVIVED"))
		Expect(s.State()).To(Equal(StateSettled))
		Expect(rec.Last().Done).To(BeTrue())
	})

	It("restarts on a new target", func() {
		opts := fastOptions()
		opts.Speed = 2 * time.Millisecond
		s := newSession("OLD TARGET STRING", opts)
		s.Start(ctx)
		Eventually(rec.Len).Should(BeNumerically(">", 2))

		s.SetTarget("NEW")
		Eventually(s.Done()).Should(BeClosed())
		Expect(s.Target()).To(Equal("NEW"))
		Expect(s.Text()).To(Equal("NEW"))
		Expect(rec.Last()).To(HaveField("Done", BeTrue()))
	})

	It("keeps independent sessions apart", func() {
		other := &recorder{}
		a := newSession("ALPHA", fastOptions())
		b, err := NewSession("OMEGA-99", fastOptions(), WithFrameFunc(other.record))
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(b.Stop)

		a.Start(ctx)
		b.Start(ctx)
		Eventually(a.Done()).Should(BeClosed())
		Eventually(b.Done()).Should(BeClosed())

		Expect(a.Text()).To(Equal("ALPHA"))
		Expect(b.Text()).To(Equal("OMEGA-99"))
		Expect(rec.Last().Text).To(Equal("ALPHA"))
		Expect(other.Last().Text).To(Equal("OMEGA-99"))
	})
})
