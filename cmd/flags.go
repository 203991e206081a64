package cmd

import (
	"github.com/spf13/cobra"

	"srtpost/internal/config"
)

// subtitleFlags holds command line overrides for the engine limits.
type subtitleFlags struct {
	minDuration float64
	maxDuration float64
	minGap      float64
	maxGap      float64
	mergeGap    float64
	cjkCPS      float64
	latinCPS    float64
	cjkCPL      int
	latinCPL    int
	breakWindow int
}

func (f *subtitleFlags) register(cmd *cobra.Command) {
	d := config.DefaultSubtitleSettings()
	fs := cmd.Flags()
	fs.Float64Var(&f.minDuration, "min-duration", d.MinSubtitleDuration, "minimum subtitle duration in seconds")
	fs.Float64Var(&f.maxDuration, "max-duration", d.MaxSubtitleDuration, "maximum subtitle duration in seconds")
	fs.Float64Var(&f.minGap, "min-gap", d.MinSubtitleGap, "minimum gap between subtitles in seconds")
	fs.Float64Var(&f.maxGap, "max-gap", d.MaxSubtitleGap, "gap in seconds above which a silence is reported")
	fs.Float64Var(&f.mergeGap, "merge-gap", d.MergeGapThreshold, "merge adjacent cues closer than this many seconds")
	fs.Float64Var(&f.cjkCPS, "cjk-cps", d.CJKCPS, "CJK characters per second limit")
	fs.Float64Var(&f.latinCPS, "latin-cps", d.LatinCPS, "Latin characters per second limit")
	fs.IntVar(&f.cjkCPL, "cjk-cpl", d.CJKCharsPerLine, "CJK characters per line limit")
	fs.IntVar(&f.latinCPL, "latin-cpl", d.LatinCharsPerLine, "Latin characters per line limit")
	fs.IntVar(&f.breakWindow, "break-window", d.BreakWindow, "line break search radius in characters")
}

// apply copies every flag the user actually set onto s and validates the
// result. Unset flags leave config file and environment values in place.
func (f *subtitleFlags) apply(cmd *cobra.Command, s *config.SubtitleSettings) error {
	fs := cmd.Flags()
	if fs.Changed("min-duration") {
		s.MinSubtitleDuration = f.minDuration
	}
	if fs.Changed("max-duration") {
		s.MaxSubtitleDuration = f.maxDuration
	}
	if fs.Changed("min-gap") {
		s.MinSubtitleGap = f.minGap
	}
	if fs.Changed("max-gap") {
		s.MaxSubtitleGap = f.maxGap
	}
	if fs.Changed("merge-gap") {
		s.MergeGapThreshold = f.mergeGap
	}
	if fs.Changed("cjk-cps") {
		s.CJKCPS = f.cjkCPS
	}
	if fs.Changed("latin-cps") {
		s.LatinCPS = f.latinCPS
	}
	if fs.Changed("cjk-cpl") {
		s.CJKCharsPerLine = f.cjkCPL
	}
	if fs.Changed("latin-cpl") {
		s.LatinCharsPerLine = f.latinCPL
	}
	if fs.Changed("break-window") {
		s.BreakWindow = f.breakWindow
	}
	return s.Validate()
}
