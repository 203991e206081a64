package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// blankLine separates blocks; whitespace-only lines count as blank.
var blankLine = regexp.MustCompile(`\n[ \t]*\n`)

// timecodePattern matches HH:MM:SS,mmm. Hours are capped at six digits. A dot
// is accepted as the millisecond separator and short millisecond fields are
// read as fractions.
var timecodePattern = regexp.MustCompile(`^(\d{1,6}):(\d{1,2}):(\d{1,2})[,.](\d{1,3})$`)

var errTimecode = errors.New("invalid timecode")

// ParseTimecode converts HH:MM:SS,mmm to seconds.
func ParseTimecode(tc string) (float64, error) {
	m := timecodePattern.FindStringSubmatch(strings.TrimSpace(tc))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", errTimecode, tc)
	}
	var fields [4]int
	m[4] += strings.Repeat("0", 3-len(m[4]))
	for i, s := range m[1:] {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %w", errTimecode, tc, err)
		}
		fields[i] = n
	}
	h, mins, secs, ms := fields[0], fields[1], fields[2], fields[3]
	if mins > 59 || secs > 59 {
		return 0, fmt.Errorf("%w: %q", errTimecode, tc)
	}
	return float64(h*3600+mins*60+secs) + float64(ms)/1000, nil
}

// parseTimingLine reads "start --> end". Anything after the end timecode,
// such as position hints, is ignored.
func parseTimingLine(line string) (float64, float64, error) {
	left, right, ok := strings.Cut(line, "-->")
	if !ok {
		return 0, 0, errors.New("missing --> separator")
	}
	fields := strings.Fields(right)
	if len(fields) == 0 {
		return 0, 0, errors.New("missing end time")
	}
	start, err := ParseTimecode(left)
	if err != nil {
		return 0, 0, fmt.Errorf("start time: %w", err)
	}
	end, err := ParseTimecode(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("end time: %w", err)
	}
	return start, end, nil
}

func splitBlocks(data []byte) []string {
	s := strings.ReplaceAll(string(data), "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return blankLine.Split(s, -1)
}

// cleanText joins the text lines of a block with single spaces, normalizes
// to NFC and removes formatting punctuation.
func cleanText(lines []string) string {
	text := strings.Join(lines, " ")
	text = norm.NFC.String(text)
	return normalizeSpaces(StripPunctuation(text))
}

// Parse reads SRT data into a track. Parsing is tolerant: malformed blocks
// and blocks whose text is empty after cleaning are skipped and counted in
// rep, never returned as errors. A cue whose end precedes its start is
// repaired to zero length.
func Parse(data []byte, rep *Report) Track {
	blocks := splitBlocks(data)
	track := make(Track, 0, len(blocks))
	for n, block := range blocks {
		if rep != nil {
			rep.Blocks++
		}
		lines := strings.Split(strings.Trim(block, "\n"), "\n")
		if len(lines) < 3 || !strings.Contains(lines[1], "-->") {
			rep.warn(StageParse, WarnMalformedBlock, n+1, "expected index, timing and text lines")
			if rep != nil {
				rep.Skipped++
			}
			continue
		}

		start, end, err := parseTimingLine(lines[1])
		if err != nil {
			rep.warn(StageParse, WarnMalformedBlock, n+1, "%v", err)
			if rep != nil {
				rep.Skipped++
			}
			continue
		}

		text := cleanText(lines[2:])
		if text == "" {
			if rep != nil {
				rep.Dropped++
			}
			continue
		}

		if end < start {
			rep.warn(StageParse, WarnInvertedTiming, n+1, "end %s before start %s",
				FormatTimecode(end), FormatTimecode(start))
			end = start
		}

		track = append(track, Cue{Start: start, End: end, Text: text})
		if rep != nil {
			rep.Parsed++
		}
	}
	return track
}
