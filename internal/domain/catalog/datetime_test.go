package catalog

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		text string
		want time.Time
	}{
		{"2026-09-15", date(2026, time.September, 15)},
		{"Date: 2026-9-5", date(2026, time.September, 5)},
		{"September 15, 2026", date(2026, time.September, 15)},
		{"Sep 3rd 2026", date(2026, time.September, 3)},
		{"15 September 2026", date(2026, time.September, 15)},
		{"3rd Oct, 2026", date(2026, time.October, 3)},
		{"15/9/2026", date(2026, time.September, 15)},
		{"15-09-2026", date(2026, time.September, 15)},
	}
	for _, tc := range cases {
		got, ok := ParseDate(tc.text)
		if !ok {
			t.Errorf("ParseDate(%q) did not match", tc.text)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseDate(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}

func TestParseDateRejects(t *testing.T) {
	for _, text := range []string{
		"",
		"next Tuesday",
		"2026-13-01",
		"2026-02-30",
		"31/11/2026",
	} {
		if _, ok := ParseDate(text); ok {
			t.Errorf("ParseDate(%q) matched, want no match", text)
		}
	}
}

func TestDefaultEventDate(t *testing.T) {
	now := time.Date(2026, time.August, 29, 18, 30, 0, 0, time.UTC)
	got := DefaultEventDate(now)
	want := date(2026, time.September, 29)
	if !got.Equal(want) {
		t.Errorf("DefaultEventDate = %s, want %s", got, want)
	}
}

func TestParseTimeRange(t *testing.T) {
	cases := []struct {
		text string
		want TimeRange
	}{
		{"09:00 - 12:00", TimeRange{Start: "09:00", End: "12:00"}},
		{"Time: 7:30am to 9:00am", TimeRange{Start: "07:30", End: "09:00"}},
		{"8:00pm – 10:00pm", TimeRange{Start: "20:00", End: "22:00"}},
		{"kickoff at 19:00", TimeRange{Start: "19:00", End: "21:00"}},
		{"starts 10:15", TimeRange{Start: "10:15", End: "12:15"}},
	}
	for _, tc := range cases {
		got, ok := ParseTimeRange(tc.text)
		if !ok {
			t.Errorf("ParseTimeRange(%q) did not match", tc.text)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeRange(%q) = %+v, want %+v", tc.text, got, tc.want)
		}
	}
}

func TestParseTimeRangeSynthesizedEndCap(t *testing.T) {
	got, ok := ParseTimeRange("doors at 21:30")
	if !ok {
		t.Fatal("expected a match")
	}
	if got != (TimeRange{Start: "21:30", End: "23:00"}) {
		t.Errorf("late start = %+v, want end capped at 23:00", got)
	}

	got, ok = ParseTimeRange("22:30 start")
	if !ok {
		t.Fatal("expected a match")
	}
	if got.End != "23:00" {
		t.Errorf("22:30 start got end %s, want 23:00", got.End)
	}
}

func TestParseTimeRangeDefault(t *testing.T) {
	got, ok := ParseTimeRange("sometime in the morning")
	if ok {
		t.Error("free text without a clock time should not report a match")
	}
	if got != DefaultTimeRange() {
		t.Errorf("default window = %+v, want %+v", got, DefaultTimeRange())
	}
}

func TestParseCoordinates(t *testing.T) {
	got := ParseCoordinates("22.2820, 114.1890")
	if got == nil {
		t.Fatal("expected coordinates")
	}
	if got.Latitude != 22.2820 || got.Longitude != 114.1890 {
		t.Errorf("got %+v", got)
	}

	if ParseCoordinates("no numbers here") != nil {
		t.Error("text without a pair should return nil")
	}
	if ParseCoordinates("123.0, 999.0") != nil {
		t.Error("out-of-range longitude should return nil")
	}
}
