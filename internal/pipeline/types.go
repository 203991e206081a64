package pipeline

import (
	"fmt"

	"golang.org/x/text/language"
)

// Cue is one timestamped subtitle unit. Times are in seconds.
type Cue struct {
	Start float64
	End   float64
	Text  string
}

// Duration returns End - Start.
func (c Cue) Duration() float64 {
	return c.End - c.Start
}

// Track is an ordered sequence of cues. Order is chronological and no stage
// reorders it.
type Track []Cue

// Stage names a pipeline step in diagnostics.
type Stage string

const (
	StageParse     Stage = "parse"
	StageMerge     Stage = "merge"
	StageSegment   Stage = "segment"
	StagePacing    Stage = "pacing"
	StageReconcile Stage = "reconcile"
)

// WarningKind classifies a diagnostic.
type WarningKind string

const (
	WarnMalformedBlock   WarningKind = "malformed_block"
	WarnInvertedTiming   WarningKind = "inverted_timing"
	WarnOversizeLine     WarningKind = "oversize_line"
	WarnPacingPartial    WarningKind = "pacing_partial"
	WarnPacingUnresolved WarningKind = "pacing_unresolved"
	WarnDeferredStart    WarningKind = "deferred_start"
	WarnLongGap          WarningKind = "long_gap"
)

// Informational reports whether the kind describes legal output that needs no
// attention.
func (k WarningKind) Informational() bool {
	return k == WarnLongGap
}

// Warning is one entry of the diagnostic channel. Cue is the zero-based
// position in the stage's output track, or the block number for parse
// warnings.
type Warning struct {
	Stage  Stage
	Kind   WarningKind
	Cue    int
	Detail string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s/%s #%d: %s", w.Stage, w.Kind, w.Cue, w.Detail)
}

// Report summarizes one pipeline invocation.
type Report struct {
	Blocks   int // blocks seen by the parser
	Parsed   int // cues accepted by the parser
	Skipped  int // malformed blocks
	Dropped  int // blocks whose text was empty after punctuation stripping
	Merged   int // merge operations performed
	Split    int // cues replaced by two or more lines
	Relieved int // cues whose reading speed was brought under the limit
	Output   int // cues serialized

	Language language.Tag
	Warnings []Warning
}

func (r *Report) warn(stage Stage, kind WarningKind, cue int, format string, args ...any) {
	if r == nil {
		return
	}
	r.Warnings = append(r.Warnings, Warning{
		Stage:  stage,
		Kind:   kind,
		Cue:    cue,
		Detail: fmt.Sprintf(format, args...),
	})
}

// Count returns how many warnings of kind were recorded.
func (r *Report) Count(kind WarningKind) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, w := range r.Warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}

// Clean reports whether the pass finished without any knowingly imperfect
// result.
func (r *Report) Clean() bool {
	if r == nil {
		return true
	}
	for _, w := range r.Warnings {
		if !w.Kind.Informational() {
			return false
		}
	}
	return true
}
