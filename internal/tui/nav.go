package tui

// ActiveSection returns the index of the section the reader is looking at:
// the last section whose first line is at or above a probe one third of the
// way down the viewport.
func ActiveSection(starts []int, offset, viewport int) int {
	if len(starts) == 0 {
		return -1
	}
	probe := offset + viewport/3
	active := 0
	for i, s := range starts {
		if s <= probe {
			active = i
		}
	}
	return active
}

// Visible reports whether lines [start, end) intersect the viewport.
func Visible(start, end, offset, viewport int) bool {
	return start < offset+viewport && end > offset
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
