package pipeline

import (
	"srtpost/internal/config"
)

// Merger coalesces adjacent cues separated by less than Gap seconds when the
// combined text still fits one line of its profile.
type Merger struct {
	Classifier Classifier
	Gap        float64
}

// NewMerger creates a merger from subtitle settings.
func NewMerger(settings *config.SubtitleSettings) *Merger {
	return &Merger{
		Classifier: NewClassifier(settings),
		Gap:        settings.MergeGapThreshold,
	}
}

func (m *Merger) canMerge(last, next Cue) bool {
	// Out-of-order cues are left for the reconciler.
	if next.Start < last.Start || next.Start-last.End >= m.Gap {
		return false
	}
	combined := joinText(last.Text, next.Text)
	return CharCount(combined) <= m.Classifier.Profile(combined).MaxChars
}

func mergeTwoCues(last, next Cue) Cue {
	return Cue{
		Start: last.Start,
		End:   max(last.End, next.End),
		Text:  joinText(last.Text, next.Text),
	}
}

// Merge performs greedy forward merging. Each cue is compared with the most
// recently emitted one, never with the original predecessor, and earlier
// decisions are not revisited.
func (m *Merger) Merge(track Track, rep *Report) Track {
	if len(track) == 0 {
		return nil
	}

	merged := make(Track, 0, len(track))
	merged = append(merged, track[0])
	for _, next := range track[1:] {
		last := &merged[len(merged)-1]
		if m.canMerge(*last, next) {
			*last = mergeTwoCues(*last, next)
			if rep != nil {
				rep.Merged++
			}
			continue
		}
		merged = append(merged, next)
	}
	return merged
}
