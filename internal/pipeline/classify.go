package pipeline

import (
	"math"
	"unicode"
	"unicode/utf8"

	"srtpost/internal/config"
)

// Dense-script code point range (CJK Unified Ideographs).
const (
	denseLow  = '\u4e00'
	denseHigh = '\u9fff'
)

// Profile is the language-specific limit pair applied to a text span.
type Profile struct {
	MaxChars int
	MaxCPS   float64
}

func isDenseRune(r rune) bool {
	return r >= denseLow && r <= denseHigh
}

func countDense(text string) int {
	n := 0
	for _, r := range text {
		if isDenseRune(r) {
			n++
		}
	}
	return n
}

// IsDense reports whether more than a third of the punctuation-stripped text
// consists of dense-script code points. Short or mixed text near the
// threshold may be misclassified.
func IsDense(text string) bool {
	clean := StripPunctuation(text)
	return countDense(clean)*3 > utf8.RuneCountInString(clean)
}

// CharCount counts reading units: dense-script code points for dense text,
// non-space runes otherwise.
func CharCount(text string) int {
	clean := StripPunctuation(text)
	if countDense(clean)*3 > utf8.RuneCountInString(clean) {
		return countDense(clean)
	}
	return stripWhitespaceCount(clean)
}

// ReadingSpeed returns characters per second, or +Inf when duration <= 0.
func ReadingSpeed(text string, duration float64) float64 {
	if duration <= 0 {
		return math.Inf(1)
	}
	return float64(CharCount(text)) / duration
}

// stripWhitespaceCount returns the number of non-whitespace runes in text.
func stripWhitespaceCount(text string) int {
	count := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			count++
		}
	}
	return count
}

// Classifier selects a limit profile per text span.
type Classifier struct {
	Dense Profile
	Word  Profile
}

// NewClassifier builds the dense and word-separated profiles from settings.
func NewClassifier(settings *config.SubtitleSettings) Classifier {
	return Classifier{
		Dense: Profile{MaxChars: settings.CJKCharsPerLine, MaxCPS: settings.CJKCPS},
		Word:  Profile{MaxChars: settings.LatinCharsPerLine, MaxCPS: settings.LatinCPS},
	}
}

// Profile returns the limits for text.
func (c Classifier) Profile(text string) Profile {
	if IsDense(text) {
		return c.Dense
	}
	return c.Word
}
