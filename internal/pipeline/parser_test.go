package pipeline

import (
	"reflect"
	"testing"
)

func TestParseTimecode(t *testing.T) {
	tests := []struct {
		tc      string
		want    float64
		wantErr bool
	}{
		{"00:00:00,000", 0, false},
		{"00:00:01,500", 1.5, false},
		{"01:01:01,250", 3661.25, false},
		{"00:00:01.500", 1.5, false},
		{" 00:00:02,000 ", 2, false},
		{"00:00:01,5", 1.5, false},
		{"100:00:00,000", 360000, false},
		{"999999:00:00,000", 3599996400, false},
		{"99999999999999999999:00:00,000", 0, true},
		{"00:60:00,000", 0, true},
		{"00:00:01", 0, true},
		{"garbage", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTimecode(tt.tc)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimecode(%q) error = %v, wantErr %v", tt.tc, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !approx(got, tt.want) {
			t.Errorf("ParseTimecode(%q) = %f, want %f", tt.tc, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	data := "1\r\n00:00:01,000 --> 00:00:02,500\r\n你好，\r\n世界！\r\n\r\n" +
		"2\n00:00:03,000 --> 00:00:04,000\nHello,   world.\n\n" +
		"3\n00:00:05,000 --> 00:00:06,000 X1:10 X2:20\nwith position\n"

	rep := &Report{}
	got := Parse([]byte(data), rep)

	want := Track{
		{Start: 1, End: 2.5, Text: "你好 世界"},
		{Start: 3, End: 4, Text: "Hello world"},
		{Start: 5, End: 6, Text: "with position"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse = %+v, want %+v", got, want)
	}
	if rep.Blocks != 3 || rep.Parsed != 3 || rep.Skipped != 0 || rep.Dropped != 0 {
		t.Errorf("report = %+v", rep)
	}
}

func TestParse_Tolerant(t *testing.T) {
	data := "1\n00:00:01,000 --> 00:00:02,000\nfirst\n\n" +
		"garbage block\n\n" +
		"2\n00:00:03,000 00:00:04,000\nno arrow\n\n" +
		"3\n00:00:05,000 --> 00:00:06,000\n\n" +
		"4\nxx:00:05,000 --> 00:00:06,000\nbad time\n\n" +
		"5\n00:00:07,000 --> 00:00:08,000\n。！？\n\n" +
		"6\n00:00:09,000 --> 00:00:10,000\nlast\n"

	rep := &Report{}
	got := Parse([]byte(data), rep)

	want := Track{
		{Start: 1, End: 2, Text: "first"},
		{Start: 9, End: 10, Text: "last"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse = %+v, want %+v", got, want)
	}
	if rep.Skipped != 4 {
		t.Errorf("Skipped = %d, want 4", rep.Skipped)
	}
	if rep.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", rep.Dropped)
	}
	if rep.Count(WarnMalformedBlock) != 4 {
		t.Errorf("malformed warnings = %d, want 4", rep.Count(WarnMalformedBlock))
	}
}

func TestParse_InvertedTiming(t *testing.T) {
	rep := &Report{}
	got := Parse([]byte("1\n00:00:05,000 --> 00:00:04,000\ntext\n"), rep)
	if len(got) != 1 || got[0].Start != 5 || got[0].End != 5 {
		t.Fatalf("Parse = %+v, want one zero-length cue at 5s", got)
	}
	if rep.Count(WarnInvertedTiming) != 1 {
		t.Errorf("inverted timing warnings = %d, want 1", rep.Count(WarnInvertedTiming))
	}
}

func TestParse_NFC(t *testing.T) {
	// "e" followed by a combining acute accent.
	got := Parse([]byte("1\n00:00:01,000 --> 00:00:02,000\ncafe\u0301\n"), nil)
	if len(got) != 1 || got[0].Text != "caf\u00e9" {
		t.Errorf("Parse = %+v, want composed café", got)
	}
}

func TestParse_Empty(t *testing.T) {
	for _, data := range []string{"", "   \n\n  ", "\ufeff"} {
		if got := Parse([]byte(data), nil); len(got) != 0 {
			t.Errorf("Parse(%q) = %+v, want empty", data, got)
		}
	}
}
