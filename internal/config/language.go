package config

import (
	"strings"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
)

// CJK language codes (first 3 chars of the code).
var cjkCodes = map[string]bool{
	"zho": true,
	"jpn": true,
	"kor": true,
	"chi": true,
	"zh":  true,
	"ja":  true,
	"ko":  true,
}

// IsCJK returns true if the language code or BCP 47 tag represents Chinese,
// Japanese, or Korean.
func IsCJK(langCode string) bool {
	code := strings.ToLower(strings.TrimSpace(langCode))
	if code == "" {
		return false
	}
	if tag, err := language.Parse(code); err == nil {
		base, _ := tag.Base()
		if cjkCodes[base.String()] {
			return true
		}
	}
	if len(code) > 3 {
		code = code[:3]
	}
	return cjkCodes[strings.TrimRight(code, "-_")]
}

// DetectLanguage guesses the dominant language of text. It returns
// language.Und when the text carries no recognisable script.
func DetectLanguage(text string) language.Tag {
	if strings.TrimSpace(text) == "" || whatlanggo.DetectScript(text) == nil {
		return language.Und
	}
	code := whatlanggo.Detect(text).Lang.Iso6391()
	if code == "" {
		return language.Und
	}
	tag, err := language.Parse(code)
	if err != nil {
		return language.Und
	}
	return tag
}
