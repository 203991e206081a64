package pipeline

import (
	"strings"

	"srtpost/internal/config"
)

// Break point scoring weights.
const (
	protectedPenalty = 50
	breakAfterBonus  = 20
	distanceWeight   = 2
	initialBestScore = -100
)

// FindBreakPoint returns the rune offset at which to cut text so the first
// line is close to target, scanning target±window. Cuts inside protected
// words are penalised, cuts right after a break-after word are rewarded and
// distance from target costs twice its size. Ties keep the leftmost position.
func FindBreakPoint(text string, target, window int, lex *Lexicon) int {
	runes := []rune(text)
	return findBreakPoint(runes, target, window, len(runes), lex)
}

// findBreakPoint scans candidates no further right than limit.
func findBreakPoint(runes []rune, target, window, limit int, lex *Lexicon) int {
	n := len(runes)
	if target >= n {
		return n
	}
	if lex == nil {
		lex = DefaultLexicon
	}

	lo := max(0, target-window)
	hi := min(n, target+window, limit)

	bestPos := target
	bestScore := initialBestScore
	for pos := lo; pos <= hi; pos++ {
		if pos == 0 || pos >= n {
			continue
		}

		score := 0
		for _, word := range lex.protected {
			if splitsProtected(runes, pos, word) {
				score -= protectedPenalty
			}
		}
		for _, word := range lex.breakAfter {
			if endsWithWord(runes, pos, word) {
				score += breakAfterBonus
				break
			}
		}
		score -= distanceWeight * abs(pos-target)

		if score > bestScore {
			bestScore = score
			bestPos = pos
		}
	}
	return bestPos
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// SplitDense cuts dense-script text into lines of at most maxChars runes,
// choosing each cut with FindBreakPoint. A non-positive cut is forced to
// maxChars so the loop always advances. Only the left half of the break window
// is searched: candidates past maxChars would overflow the line.
func SplitDense(text string, maxChars, window int, lex *Lexicon) []string {
	if text == "" {
		return nil
	}
	remaining := []rune(text)
	if len(remaining) <= maxChars {
		return []string{text}
	}

	var lines []string
	for len(remaining) > maxChars {
		cut := findBreakPoint(remaining, maxChars, window, maxChars, lex)
		if cut <= 0 {
			cut = maxChars
		}
		if line := strings.TrimSpace(string(remaining[:cut])); line != "" {
			lines = append(lines, line)
		}
		remaining = remaining[cut:]
	}
	if line := strings.TrimSpace(string(remaining)); line != "" {
		lines = append(lines, line)
	}
	return lines
}

// WrapWords packs whole words into lines of at most maxChars runes. A word
// longer than maxChars is emitted on its own oversized line and never broken.
func WrapWords(text string, maxChars int) []string {
	var (
		lines   []string
		current []string
		curLen  int
	)
	for _, w := range strings.Fields(text) {
		wl := runeLen(w)
		sep := 0
		if len(current) > 0 {
			sep = 1
		}
		if curLen+sep+wl > maxChars {
			if len(current) > 0 {
				lines = append(lines, strings.Join(current, " "))
			}
			current = []string{w}
			curLen = wl
			continue
		}
		current = append(current, w)
		curLen += sep + wl
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}

// Segmenter splits over-long cues into lines and re-times them.
type Segmenter struct {
	Classifier  Classifier
	Lexicon     *Lexicon
	Window      int
	MinDuration float64
	MaxDuration float64
}

// NewSegmenter creates a segmenter from subtitle settings using the default lexicon.
func NewSegmenter(settings *config.SubtitleSettings) *Segmenter {
	return &Segmenter{
		Classifier:  NewClassifier(settings),
		Lexicon:     DefaultLexicon,
		Window:      settings.BreakWindow,
		MinDuration: settings.MinSubtitleDuration,
		MaxDuration: settings.MaxSubtitleDuration,
	}
}

// Segment splits text into display lines. Sentences are separated first;
// each sentence is stripped of punctuation and kept whole when it fits its
// profile, otherwise wrapped at clause delimiters and then by boundary search
// (dense script) or whole words (word-separated script).
func (s *Segmenter) Segment(text string) []string {
	var lines []string
	for _, sentence := range SplitSentences(text) {
		clean := normalizeSpaces(StripPunctuation(sentence))
		if clean == "" {
			continue
		}
		maxChars := s.Classifier.Profile(clean).MaxChars
		if runeLen(clean) <= maxChars {
			lines = append(lines, clean)
			continue
		}
		lines = append(lines, s.WrapByPunctuation(sentence, maxChars)...)
	}
	return lines
}

// WrapByPunctuation greedily packs clause-delimited chunks of text into lines
// of at most maxChars runes. Chunks that do not fit on their own fall through
// to SplitDense or WrapWords.
func (s *Segmenter) WrapByPunctuation(text string, maxChars int) []string {
	clean := normalizeSpaces(StripPunctuation(text))
	if clean == "" {
		return nil
	}
	if runeLen(clean) <= maxChars {
		return []string{clean}
	}

	var (
		packed  []string
		current string
	)
	for _, chunk := range splitClauses(text) {
		chunk = normalizeSpaces(StripPunctuation(chunk))
		if chunk == "" {
			continue
		}
		if current == "" {
			current = chunk
			continue
		}
		if joined := joinText(current, chunk); runeLen(joined) <= maxChars {
			current = joined
			continue
		}
		packed = append(packed, current)
		current = chunk
	}
	if current != "" {
		packed = append(packed, current)
	}

	var lines []string
	for _, line := range packed {
		switch {
		case runeLen(line) <= maxChars:
			lines = append(lines, line)
		case IsDense(line):
			lines = append(lines, SplitDense(line, maxChars, s.Window, s.Lexicon)...)
		default:
			lines = append(lines, WrapWords(line, maxChars)...)
		}
	}
	return lines
}

// Apply replaces every cue whose character count exceeds its profile with one
// cue per segmented line, spreading the original interval evenly.
func (s *Segmenter) Apply(track Track, rep *Report) Track {
	out := make(Track, 0, len(track))
	for _, cue := range track {
		profile := s.Classifier.Profile(cue.Text)
		if CharCount(cue.Text) <= profile.MaxChars {
			out = append(out, cue)
			continue
		}

		lines := s.Segment(cue.Text)
		if len(lines) <= 1 {
			if len(lines) == 1 {
				cue.Text = lines[0]
			}
			rep.warn(StageSegment, WarnOversizeLine, len(out),
				"%d chars exceed limit %d and cannot be split", CharCount(cue.Text), profile.MaxChars)
			out = append(out, cue)
			continue
		}

		times := SplitTimes(cue.Start, cue.End, len(lines), s.MinDuration, s.MaxDuration)
		for i, line := range lines {
			if lp := s.Classifier.Profile(line); CharCount(line) > lp.MaxChars {
				rep.warn(StageSegment, WarnOversizeLine, len(out),
					"line of %d chars exceeds limit %d", CharCount(line), lp.MaxChars)
			}
			out = append(out, Cue{Start: times[i].Start, End: times[i].End, Text: line})
		}
		if rep != nil {
			rep.Split++
		}
	}
	return out
}
