package pipeline

import (
	"strings"
	"unicode/utf8"
)

// sentenceTerminators end a sentence; runs of them stay on the preceding segment.
var sentenceTerminators = map[rune]struct{}{
	'.': {}, '!': {}, '?': {}, ';': {},
	'。': {}, '！': {}, '？': {}, '；': {},
}

// clauseDelimiters are the comma class used for wrapping long sentences.
var clauseDelimiters = map[rune]struct{}{
	',': {},
	'，': {}, '、': {},
}

// formattingPunctuation is removed from cue text entirely.
var formattingPunctuation = map[rune]struct{}{
	',': {}, '.': {}, '!': {}, '?': {}, ';': {}, ':': {},
	'"': {}, '\'': {}, '(': {}, ')': {}, '[': {}, ']': {}, '{': {}, '}': {}, '<': {}, '>': {},
	'，': {}, '。': {}, '！': {}, '？': {}, '；': {}, '：': {}, '、': {},
	'“': {}, '”': {}, '‘': {}, '’': {},
	'（': {}, '）': {}, '《': {}, '》': {},
}

func isSentenceTerminator(r rune) bool {
	_, ok := sentenceTerminators[r]
	return ok
}

func isClauseDelimiter(r rune) bool {
	_, ok := clauseDelimiters[r]
	return ok
}

// StripPunctuation removes formatting punctuation and keeps spaces.
func StripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		if _, ok := formattingPunctuation[r]; ok {
			return -1
		}
		return r
	}, text)
}

// normalizeSpaces trims text and collapses internal whitespace runs.
func normalizeSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// SplitSentences splits text after each run of sentence terminators. The
// terminators are kept on the segment they close.
func SplitSentences(text string) []string {
	runes := []rune(text)
	var (
		out     []string
		current strings.Builder
	)
	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			out = append(out, s)
		}
		current.Reset()
	}
	for i, r := range runes {
		current.WriteRune(r)
		if isSentenceTerminator(r) && (i+1 == len(runes) || !isSentenceTerminator(runes[i+1])) {
			flush()
		}
	}
	flush()
	return out
}

// splitClauses splits text on runs of clause delimiters, dropping them.
func splitClauses(text string) []string {
	return strings.FieldsFunc(text, isClauseDelimiter)
}

// joinText concatenates two fragments. Dense-script text is joined directly;
// word-separated text gets a single space so words are not fused.
func joinText(a, b string) string {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	switch {
	case a == "":
		return b
	case b == "":
		return a
	case IsDense(a + b):
		return a + b
	}
	return a + " " + b
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
