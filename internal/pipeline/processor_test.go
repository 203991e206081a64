package pipeline

import (
	"fmt"
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func srt(cues ...Cue) []byte {
	var sb strings.Builder
	for i, c := range cues {
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n\n", i+1, FormatTimecode(c.Start), FormatTimecode(c.End), c.Text)
	}
	return []byte(sb.String())
}

func TestProcess_Empty(t *testing.T) {
	out, rep := Process(nil, defaultSettings())
	if out != "" {
		t.Errorf("expected empty result for empty input, got %q", out)
	}
	if rep.Output != 0 || !rep.Clean() {
		t.Errorf("report = %+v", rep)
	}
}

func TestProcess_MergesDensePair(t *testing.T) {
	out, rep := Process(srt(Cue{0, 1, "你好"}, Cue{1.05, 2, "世界"}), defaultSettings())

	want := "1\n00:00:00,000 --> 00:00:02,000\n你好世界"
	if out != want {
		t.Errorf("Process =\n%s\nwant\n%s", out, want)
	}
	if rep.Merged != 1 || rep.Output != 1 {
		t.Errorf("report = %+v", rep)
	}
}

func TestProcess_SplitsLongDenseCue(t *testing.T) {
	out, rep := Process(srt(Cue{0, 4, strings.Repeat("中", 25)}), defaultSettings())

	want := "1\n00:00:00,000 --> 00:00:02,000\n" + strings.Repeat("中", 20) + "\n\n" +
		"2\n00:00:02,050 --> 00:00:04,000\n" + strings.Repeat("中", 5)
	if out != want {
		t.Errorf("Process =\n%s\nwant\n%s", out, want)
	}
	if rep.Split != 1 {
		t.Errorf("Split = %d, want 1", rep.Split)
	}
}

func TestProcess_Idempotent(t *testing.T) {
	compliant := srt(
		Cue{0, 2, "你好世界"},
		Cue{2.5, 4, "Hello world"},
		Cue{4.5, 6, "another line of text"},
	)
	first, rep := Process(compliant, defaultSettings())
	if first != strings.TrimSpace(string(compliant)) {
		t.Errorf("compliant input changed:\n%s", first)
	}
	if !rep.Clean() {
		t.Errorf("unexpected warnings: %v", rep.Warnings)
	}

	second, _ := Process([]byte(first), defaultSettings())
	if second != first {
		t.Errorf("second pass differs:\n%s\nfirst:\n%s", second, first)
	}
}

func TestProcess_Deterministic(t *testing.T) {
	in := srt(
		Cue{0, 3, "我们今天需要注意网络安全问题然后检查浏览器的设置是否正确并且确认服务器的配置"},
		Cue{2.9, 3.2, "好"},
		Cue{3.25, 9, "this is a rather long english sentence that keeps going well past the limit"},
	)
	first, _ := Process(in, defaultSettings())
	for range 5 {
		if got, _ := Process(in, defaultSettings()); got != first {
			t.Fatalf("output changed between runs:\n%s\nvs\n%s", got, first)
		}
	}
}

func TestProcess_Language(t *testing.T) {
	_, rep := Process(srt(
		Cue{0, 2, "The quick brown fox jumps over the lazy dog"},
		Cue{3, 5, "and then it runs away into the forest again"},
	), defaultSettings())
	if rep.Language != language.English {
		t.Errorf("Language = %v, want en", rep.Language)
	}
}

func TestProcessTrack_DoesNotModifyInput(t *testing.T) {
	in := Track{{0, 1, "你好"}, {1.05, 2, "世界"}}
	got, rep := ProcessTrack(in, defaultSettings())
	if len(got) != 1 || rep.Merged != 1 {
		t.Errorf("ProcessTrack = %+v, report %+v", got, rep)
	}
	if in[0] != (Cue{0, 1, "你好"}) || in[1] != (Cue{1.05, 2, "世界"}) {
		t.Errorf("input modified: %+v", in)
	}
}

// TestProcess_Properties checks the output guarantees on a set of messy inputs.
func TestProcess_Properties(t *testing.T) {
	settings := defaultSettings()
	inputs := map[string][]byte{
		"overlaps": srt(
			Cue{0, 3, "第一句话"},
			Cue{0.5, 1, "第二句话"},
			Cue{0.8, 5, "third line overlapping everything"},
			Cue{5, 5.01, "tiny"},
			Cue{5.02, 5.03, "tinier"},
		),
		"fast speech": srt(
			Cue{0, 0.5, "this line is far too fast to read comfortably at all"},
			Cue{0.55, 0.9, "我们今天需要注意网络安全问题"},
			Cue{0.95, 1.2, "and so is this"},
		),
		"long lines": srt(
			Cue{0, 6, "我们今天需要注意网络安全问题然后检查浏览器的设置是否正确并且确认服务器的配置没有任何风险，最后再下载安装需要的软件。"},
			Cue{6.1, 20, "this is a rather long english sentence that keeps going well past the limit, with clauses, and more clauses after that."},
		),
		"garbage mixed in": append(srt(
			Cue{0, 1, "ok"},
			Cue{1.1, 2, "，。"},
			Cue{3, 2, "inverted"},
		), []byte("junk\n\n9\nnot a time --> x\ntext\n")...),
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			track, _ := ProcessTrack(Parse(data, nil), settings)
			c := NewClassifier(settings)
			for i, cue := range track {
				if cue.End < cue.Start {
					t.Errorf("cue %d ends before it starts: %+v", i, cue)
				}
				d := cue.Duration()
				if d < settings.MinSubtitleDuration-1e-9 || d > settings.MaxSubtitleDuration+1e-9 {
					t.Errorf("cue %d duration %f out of bounds", i, d)
				}
				if n, limit := CharCount(cue.Text), c.Profile(cue.Text).MaxChars; n > limit {
					t.Errorf("cue %d has %d chars, limit %d: %q", i, n, limit, cue.Text)
				}
				if i == 0 {
					continue
				}
				prev := track[i-1]
				if cue.Start < prev.Start {
					t.Errorf("cue %d starts before cue %d", i, i-1)
				}
				if cue.Start-prev.End < settings.MinSubtitleGap-1e-9 {
					t.Errorf("gap before cue %d = %f", i, cue.Start-prev.End)
				}
			}
		})
	}
}
