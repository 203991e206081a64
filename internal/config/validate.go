package config

import (
	"errors"
	"fmt"
)

// ErrInvalidSettings is wrapped by every validation failure.
var ErrInvalidSettings = errors.New("invalid subtitle settings")

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.Subtitles.Validate(); err != nil {
		return err
	}
	if c.Worker.Jobs < 1 {
		return fmt.Errorf("worker.jobs must be at least 1, got %d", c.Worker.Jobs)
	}
	if len(c.Worker.Extensions) == 0 {
		return errors.New("worker.extensions must not be empty")
	}
	return nil
}

// Validate rejects limits the engine cannot honour.
func (s SubtitleSettings) Validate() error {
	switch {
	case s.MinSubtitleDuration <= 0:
		return fmt.Errorf("%w: min_duration must be positive", ErrInvalidSettings)
	case s.MaxSubtitleDuration < s.MinSubtitleDuration:
		return fmt.Errorf("%w: max_duration %.3f is below min_duration %.3f",
			ErrInvalidSettings, s.MaxSubtitleDuration, s.MinSubtitleDuration)
	case s.MinSubtitleGap < 0:
		return fmt.Errorf("%w: min_gap must not be negative", ErrInvalidSettings)
	case s.MaxSubtitleGap < s.MinSubtitleGap:
		return fmt.Errorf("%w: max_gap is below min_gap", ErrInvalidSettings)
	case s.MergeGapThreshold < 0:
		return fmt.Errorf("%w: merge_gap must not be negative", ErrInvalidSettings)
	case s.CJKCPS <= 0 || s.LatinCPS <= 0:
		return fmt.Errorf("%w: cps limits must be positive", ErrInvalidSettings)
	case s.CJKCharsPerLine < 1 || s.LatinCharsPerLine < 1:
		return fmt.Errorf("%w: chars per line must be at least 1", ErrInvalidSettings)
	case s.BreakWindow < 0:
		return fmt.Errorf("%w: break_window must not be negative", ErrInvalidSettings)
	}
	return nil
}
