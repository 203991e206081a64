package pipeline

import (
	"math"

	"srtpost/internal/config"
)

// Pacer extends cues that read too fast into the following gap and then
// clamps every duration into [MinDuration, MaxDuration].
type Pacer struct {
	Classifier  Classifier
	MinDuration float64
	MaxDuration float64
	MinGap      float64
}

// NewPacer creates a pacer from subtitle settings.
func NewPacer(settings *config.SubtitleSettings) *Pacer {
	return &Pacer{
		Classifier:  NewClassifier(settings),
		MinDuration: settings.MinSubtitleDuration,
		MaxDuration: settings.MaxSubtitleDuration,
		MinGap:      settings.MinSubtitleGap,
	}
}

// relieve returns the end time that brings c under maxCPS, or c.End when the
// following cue leaves no room. The second result is false when relief was
// not possible at all and true with partial when the gap had to be
// compressed to MinGap.
func (p *Pacer) relieve(c Cue, maxCPS, nextStart float64) (end float64, ok, partial bool) {
	needed := float64(CharCount(c.Text)) / maxCPS
	target := c.Start + needed
	switch {
	case target <= nextStart-p.MinGap:
		return target, true, false
	case target <= nextStart:
		return nextStart - p.MinGap, true, true
	}
	return c.End, false, false
}

// Apply returns a paced copy of track. Room for relief is measured against
// the following cue's start in the input track.
func (p *Pacer) Apply(track Track, rep *Report) Track {
	out := make(Track, len(track))
	for i, c := range track {
		profile := p.Classifier.Profile(c.Text)
		if cps := ReadingSpeed(c.Text, c.Duration()); cps > profile.MaxCPS {
			nextStart := math.Inf(1)
			if i+1 < len(track) {
				nextStart = track[i+1].Start
			}
			end, ok, partial := p.relieve(c, profile.MaxCPS, nextStart)
			switch {
			case !ok:
				rep.warn(StagePacing, WarnPacingUnresolved, i,
					"%.1f cps over limit %.1f, next cue at %.3fs", cps, profile.MaxCPS, nextStart)
			case partial:
				c.End = max(c.End, end)
				rep.warn(StagePacing, WarnPacingPartial, i,
					"gap compressed to %.3fs, %.1f cps remain", p.MinGap, ReadingSpeed(c.Text, c.Duration()))
			default:
				c.End = max(c.End, end)
				if rep != nil {
					rep.Relieved++
				}
			}
		}
		out[i] = ClampDuration(c, p.MinDuration, p.MaxDuration)
	}
	return out
}
