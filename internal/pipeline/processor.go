package pipeline

import (
	"log/slog"
	"strings"

	"srtpost/internal/config"
)

// Process runs the full pipeline on SRT data and returns the rewritten SRT
// content together with its report.
func Process(data []byte, settings *config.SubtitleSettings) (string, *Report) {
	rep := &Report{}
	track := Parse(data, rep)
	slog.Debug("parsed",
		"blocks", rep.Blocks,
		"cues", rep.Parsed,
		"skipped", rep.Skipped,
		"dropped", rep.Dropped,
	)

	track = processTrack(track, settings, rep)
	return Format(track), rep
}

// ProcessTrack runs every stage after parsing on an already decoded track.
// The input is not modified.
func ProcessTrack(track Track, settings *config.SubtitleSettings) (Track, *Report) {
	rep := &Report{Parsed: len(track)}
	return processTrack(track, settings, rep), rep
}

func processTrack(track Track, settings *config.SubtitleSettings, rep *Report) Track {
	if len(track) == 0 {
		rep.Language = config.DetectLanguage("")
		return nil
	}
	rep.Language = config.DetectLanguage(trackText(track))

	track = NewMerger(settings).Merge(track, rep)
	slog.Debug("merged", "cues", len(track), "merges", rep.Merged)

	track = NewSegmenter(settings).Apply(track, rep)
	slog.Debug("segmented", "cues", len(track), "splits", rep.Split)

	track = NewPacer(settings).Apply(track, rep)
	slog.Debug("paced", "cues", len(track), "relieved", rep.Relieved,
		"unresolved", rep.Count(WarnPacingUnresolved))

	track = NewReconciler(settings).Apply(track, rep)
	slog.Debug("reconciled", "cues", len(track), "deferred", rep.Count(WarnDeferredStart),
		"long_gaps", rep.Count(WarnLongGap))

	rep.Output = len(track)
	return track
}

func trackText(track Track) string {
	var sb strings.Builder
	for i, c := range track {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.Text)
	}
	return sb.String()
}
