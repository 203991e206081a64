package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// SubtitleSettings holds all subtitle post-processing parameters.
type SubtitleSettings struct {
	MinSubtitleDuration float64 `toml:"min_duration"`
	MaxSubtitleDuration float64 `toml:"max_duration"`
	MinSubtitleGap      float64 `toml:"min_gap"`
	MaxSubtitleGap      float64 `toml:"max_gap"`
	MergeGapThreshold   float64 `toml:"merge_gap"`
	CJKCPS              float64 `toml:"cjk_cps"`
	LatinCPS            float64 `toml:"latin_cps"`
	CJKCharsPerLine     int     `toml:"cjk_chars_per_line"`
	LatinCharsPerLine   int     `toml:"latin_chars_per_line"`
	// BreakWindow is the half-width of the dense-script break point search.
	BreakWindow int `toml:"break_window"`
}

// Worker holds file-level orchestration knobs.
type Worker struct {
	Jobs       int      `toml:"jobs"`
	Extensions []string `toml:"extensions"`
	Lock       bool     `toml:"lock"`
}

// Config holds the full application configuration.
type Config struct {
	Subtitles SubtitleSettings `toml:"subtitles"`
	Worker    Worker           `toml:"worker"`
}

// Default returns a Config with the built-in defaults.
func Default() *Config {
	return &Config{
		Subtitles: DefaultSubtitleSettings(),
		Worker: Worker{
			Jobs:       4,
			Extensions: []string{".srt"},
			Lock:       true,
		},
	}
}

// DefaultSubtitleSettings returns the engine limits used when nothing is overridden.
func DefaultSubtitleSettings() SubtitleSettings {
	return SubtitleSettings{
		MinSubtitleDuration: 0.8,
		MaxSubtitleDuration: 4.2,
		MinSubtitleGap:      0.05,
		MaxSubtitleGap:      0.12,
		MergeGapThreshold:   0.2,
		CJKCPS:              7.5,
		LatinCPS:            17.0,
		CJKCharsPerLine:     20,
		LatinCharsPerLine:   42,
		BreakWindow:         5,
	}
}

// Load builds a Config from defaults, an optional TOML file, a .env file in
// the working directory and SRTPOST_* environment variables, in that order.
// A missing file at path is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	// .env is optional; values already present in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SampleConfig returns an annotated TOML document with every default.
func SampleConfig() string {
	return sampleConfig
}
