package pipeline

import (
	"fmt"
	"math"
	"strings"
)

// FormatTimecode converts seconds to SRT time format HH:MM:SS,mmm. Negative
// input is clamped to zero and milliseconds are rounded to the nearest value,
// carrying into the seconds field.
func FormatTimecode(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	totalMs := int64(math.Round(seconds * 1000))
	ms := totalMs % 1000
	totalSec := totalMs / 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", totalSec/3600, totalSec/60%60, totalSec%60, ms)
}

// Format renders track as SRT, numbering cues from 1. Blocks are separated by
// a blank line and the result carries no trailing whitespace.
func Format(track Track) string {
	if len(track) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, cue := range track {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s", i+1, FormatTimecode(cue.Start), FormatTimecode(cue.End), cue.Text)
	}
	return strings.TrimSpace(sb.String())
}
