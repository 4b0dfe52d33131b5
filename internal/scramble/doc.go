// Package scramble provides the scramble-reveal text animator.
//
// An animation converges a display string onto a fixed target by settling
// characters left to right. The character at the reveal frontier flickers
// between a random glyph and its true value; characters past the frontier
// are blank, or noise in overflow/overdrive mode.
//
//   - [Animator]: pure per-tick state machine, one owner, no timers
//   - [Session]: drives an Animator from its own [time.Ticker]
//   - [Model]: Bubble Tea component driving an Animator with tea.Tick
//
// # Example
//
//	s, err := scramble.NewSession("SYAHRINDRA", scramble.DefaultOptions(),
//		scramble.WithFrameFunc(func(f scramble.Frame) { fmt.Println(f.Text) }))
//	if err != nil {
//		return err
//	}
//	s.Start(ctx)
//	defer s.Stop()
//
// # Thread Safety
//
// Animator instances are NOT thread-safe. Session guards its Animator with a
// mutex and may be read from any goroutine. Sessions share no state.
package scramble
