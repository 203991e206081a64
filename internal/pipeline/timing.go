package pipeline

// Interval is a half-open display window in seconds.
type Interval struct {
	Start float64
	End   float64
}

// SplitTimes divides [start, end] into n contiguous intervals of equal
// length beginning at start. The total is clamped into [n*minDur, n*maxDur]
// and each share into [minDur, maxDur], so the last interval may end before
// or after end.
func SplitTimes(start, end float64, n int, minDur, maxDur float64) []Interval {
	if n <= 0 {
		return nil
	}
	total := clamp(end-start, float64(n)*minDur, float64(n)*maxDur)
	each := clamp(total/float64(n), minDur, maxDur)

	out := make([]Interval, n)
	cur := start
	for i := range out {
		out[i] = Interval{Start: cur, End: cur + each}
		cur += each
	}
	return out
}

// ClampDuration moves c.End so the duration lies in [minDur, maxDur]. Start
// never moves.
func ClampDuration(c Cue, minDur, maxDur float64) Cue {
	switch d := c.Duration(); {
	case d < minDur:
		c.End = c.Start + minDur
	case d > maxDur:
		c.End = c.Start + maxDur
	}
	return c
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
