package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const envPrefix = "SRTPOST_"

// applyEnv overrides settings from SRTPOST_* variables. Unparsable values are
// logged and ignored.
func (c *Config) applyEnv() {
	s := &c.Subtitles
	envFloat("MIN_DURATION", &s.MinSubtitleDuration)
	envFloat("MAX_DURATION", &s.MaxSubtitleDuration)
	envFloat("MIN_GAP", &s.MinSubtitleGap)
	envFloat("MAX_GAP", &s.MaxSubtitleGap)
	envFloat("MERGE_GAP", &s.MergeGapThreshold)
	envFloat("CJK_CPS", &s.CJKCPS)
	envFloat("LATIN_CPS", &s.LatinCPS)
	envInt("CJK_CHARS_PER_LINE", &s.CJKCharsPerLine)
	envInt("LATIN_CHARS_PER_LINE", &s.LatinCharsPerLine)
	envInt("BREAK_WINDOW", &s.BreakWindow)
	envInt("JOBS", &c.Worker.Jobs)
	if v, ok := lookup("EXTENSIONS"); ok {
		var exts []string
		for _, ext := range strings.Split(v, ",") {
			if ext = strings.TrimSpace(ext); ext != "" {
				exts = append(exts, ext)
			}
		}
		c.Worker.Extensions = exts
	}
	if v, ok := lookup("LOCK"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Worker.Lock = b
		} else {
			slog.Warn("ignoring invalid environment value", "key", envPrefix+"LOCK", "value", v)
		}
	}
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func envFloat(key string, dst *float64) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("ignoring invalid environment value", "key", envPrefix+key, "value", v)
		return
	}
	*dst = f
}

func envInt(key string, dst *int) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring invalid environment value", "key", envPrefix+key, "value", v)
		return
	}
	*dst = n
}
