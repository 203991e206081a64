package pipeline

import (
	"srtpost/internal/config"
)

// timeEpsilon absorbs float noise left by millisecond timecodes.
const timeEpsilon = 1e-9

// Reconciler removes overlaps and enforces the minimum gap in one forward
// sweep.
type Reconciler struct {
	MinDuration float64
	MinGap      float64
	MaxGap      float64
}

// NewReconciler creates a reconciler from subtitle settings.
func NewReconciler(settings *config.SubtitleSettings) *Reconciler {
	return &Reconciler{
		MinDuration: settings.MinSubtitleDuration,
		MinGap:      settings.MinSubtitleGap,
		MaxGap:      settings.MaxSubtitleGap,
	}
}

// Apply returns a reconciled copy of track. An overlapping predecessor is
// shortened when it keeps at least MinDuration; otherwise the current cue is
// pushed back past it. Gaps above MaxGap are left alone and only noted.
func (r *Reconciler) Apply(track Track, rep *Report) Track {
	out := make(Track, len(track))
	copy(out, track)

	for i := 1; i < len(out); i++ {
		prev := &out[i-1]
		cur := &out[i]

		if cur.Start < prev.End {
			newPrevEnd := cur.Start - r.MinGap
			if newPrevEnd-prev.Start >= r.MinDuration-timeEpsilon {
				prev.End = newPrevEnd
			} else {
				r.pushStart(cur, prev.End+r.MinGap)
				rep.warn(StageReconcile, WarnDeferredStart, i,
					"start deferred to %.3fs behind cue %d", cur.Start, i-1)
			}
		}

		gap := cur.Start - prev.End
		switch {
		case gap >= 0 && gap < r.MinGap-timeEpsilon:
			r.pushStart(cur, prev.End+r.MinGap)
		case gap > r.MaxGap+timeEpsilon:
			rep.warn(StageReconcile, WarnLongGap, i, "gap of %.3fs before cue", gap)
		}
	}
	return out
}

// pushStart moves c.Start forward to start. End follows only as far as
// needed to keep MinDuration.
func (r *Reconciler) pushStart(c *Cue, start float64) {
	c.Start = start
	if c.End < c.Start+r.MinDuration {
		c.End = c.Start + r.MinDuration
	}
}
