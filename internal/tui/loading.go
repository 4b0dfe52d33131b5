package tui

import "time"

const (
	loadingExit     = 200 * time.Millisecond
	splitInterval   = 300 * time.Millisecond
	splitDuration   = 30 * time.Millisecond
	loadingInterval = 30 * time.Millisecond
)

// LoadingFrame is the loading screen state at one instant.
type LoadingFrame struct {
	Progress float64 // 0..100
	Split    bool
	Exiting  bool
	Done     bool
}

// LoadingAt computes the loading screen for elapsed time since start.
func LoadingAt(elapsed, total time.Duration) LoadingFrame {
	if elapsed < 0 {
		elapsed = 0
	}
	progress := 100.0
	if total > 0 {
		progress = float64(elapsed) / float64(total) * 100
	}
	if progress > 100 {
		progress = 100
	}

	f := LoadingFrame{Progress: progress}
	if progress >= 100 {
		f.Exiting = true
		f.Done = elapsed >= total+loadingExit
		return f
	}
	f.Split = elapsed%splitInterval < splitDuration && elapsed >= splitInterval
	return f
}

type loadingTickMsg time.Time
