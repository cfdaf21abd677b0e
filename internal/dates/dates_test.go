package dates

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func madrid(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	return loc
}

func TestToDateKey(t *testing.T) {
	loc := madrid(t)
	n := New(loc)

	ptr := time.Date(2025, 3, 4, 23, 30, 0, 0, loc)

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "iso date", value: "2025-09-01", want: "2025-09-01"},
		{name: "iso datetime", value: "2025-09-01T18:30:00", want: "2025-09-01"},
		{name: "iso datetime with zone", value: "2025-09-01T18:30:00Z", want: "2025-09-01"},
		{name: "iso datetime with fraction suffix", value: "2025-09-01T18:30:00.123+02:00", want: "2025-09-01"},
		{name: "day first", value: "01-09-2025", want: "2025-09-01"},
		{name: "padded string", value: "  2025-09-01 ", want: "2025-09-01"},
		{name: "time value", value: time.Date(2025, 9, 1, 18, 0, 0, 0, loc), want: "2025-09-01"},
		{name: "time pointer", value: &ptr, want: "2025-03-04"},
		{name: "timestamp", value: Timestamp{Seconds: 1756684800}, want: "2025-09-01"},
		{name: "timestamp pointer", value: &Timestamp{Seconds: 1756684800}, want: "2025-09-01"},
		{name: "timestamp object", value: map[string]any{"seconds": float64(1756684800), "nanoseconds": float64(0)}, want: "2025-09-01"},
		{name: "underscore timestamp object", value: map[string]any{"_seconds": int64(1756684800)}, want: "2025-09-01"},
		{name: "empty string", value: "", want: ""},
		{name: "garbage", value: "not a date", want: ""},
		{name: "bad month", value: "2025-13-01", want: ""},
		{name: "bad day first", value: "32-01-2025", want: ""},
		{name: "nil", value: nil, want: ""},
		{name: "zero time", value: time.Time{}, want: ""},
		{name: "nil time pointer", value: (*time.Time)(nil), want: ""},
		{name: "integer", value: 42, want: ""},
		{name: "object without seconds", value: map[string]any{"nanos": 1}, want: ""},
		{name: "fractional seconds", value: map[string]any{"seconds": 1.5}, want: ""},
		{name: "seconds beyond int64", value: map[string]any{"seconds": 1e19}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.ToDateKey(tt.value); got != tt.want {
				t.Errorf("ToDateKey(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestTimestampKeyUsesLocalDay(t *testing.T) {
	// 2025-08-31T23:30:00Z is already 1 September in Madrid (UTC+2).
	n := New(madrid(t))
	ts := Timestamp{Seconds: time.Date(2025, 8, 31, 23, 30, 0, 0, time.UTC).Unix()}

	if got := n.ToDateKey(ts); got != "2025-09-01" {
		t.Errorf("ToDateKey() = %q, want %q", got, "2025-09-01")
	}
	if got := New(time.UTC).ToDateKey(ts); got != "2025-08-31" {
		t.Errorf("ToDateKey() in UTC = %q, want %q", got, "2025-08-31")
	}
}

func TestNormalizeToStartOfDay(t *testing.T) {
	loc := madrid(t)
	n := New(loc)

	got, ok := n.NormalizeToStartOfDay("2025-10-26T15:45:00")
	if !ok {
		t.Fatal("NormalizeToStartOfDay() reported invalid input")
	}
	want := time.Date(2025, 10, 26, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("NormalizeToStartOfDay() = %v, want %v", got, want)
	}

	again, ok := n.NormalizeToStartOfDay(got)
	if !ok || !again.Equal(got) {
		t.Errorf("NormalizeToStartOfDay() is not idempotent: %v then %v", got, again)
	}

	if _, ok := n.NormalizeToStartOfDay("nope"); ok {
		t.Error("NormalizeToStartOfDay() accepted garbage")
	}
}

func TestKeyRoundTrip(t *testing.T) {
	n := New(madrid(t))
	start := n.Date(2024, 1, 1)

	for d := start; d.Year() < 2026; d = d.AddDate(0, 0, 1) {
		key := n.ToDateKey(d)
		back, ok := n.NormalizeToStartOfDay(key)
		if !ok {
			t.Fatalf("NormalizeToStartOfDay(%q) reported invalid input", key)
		}
		if !back.Equal(d) {
			t.Fatalf("round trip of %v through %q gave %v", d, key, back)
		}
	}
}

func TestKeyRoundTripAcrossShapes(t *testing.T) {
	loc := madrid(t)
	n := New(loc)
	local := time.Date(2025, 3, 30, 1, 30, 0, 0, loc)

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "time value", value: local, want: "2025-03-30"},
		{name: "timestamp", value: Timestamp{Seconds: 1756684800}, want: "2025-09-01"},
		{name: "timestamp late utc", value: Timestamp{Seconds: time.Date(2025, 8, 31, 23, 30, 0, 0, time.UTC).Unix()}, want: "2025-09-01"},
		{name: "timestamp pointer", value: &Timestamp{Seconds: 1756684800, Nanoseconds: 5}, want: "2025-09-01"},
		{name: "underscore object", value: map[string]any{"_seconds": int64(1756684800), "_nanoseconds": 0}, want: "2025-09-01"},
		{name: "seconds object", value: map[string]any{"seconds": float64(1756684800)}, want: "2025-09-01"},
		{name: "iso date", value: "2025-10-26", want: "2025-10-26"},
		{name: "iso with time", value: "2025-10-26T23:59:59", want: "2025-10-26"},
		{name: "iso with zone", value: "2025-10-26T08:00:00+02:00", want: "2025-10-26"},
		{name: "iso with space", value: "2025-10-26 07:15", want: "2025-10-26"},
		{name: "day first", value: "26-10-2025", want: "2025-10-26"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := n.ToDateKey(tt.value)
			if key != tt.want {
				t.Fatalf("ToDateKey(%v) = %q, want %q", tt.value, key, tt.want)
			}
			back, ok := n.ToDate(key)
			if !ok {
				t.Fatalf("ToDate(%q) reported invalid input", key)
			}
			if again := n.ToDateKey(back); again != key {
				t.Errorf("ToDateKey(ToDate(%q)) = %q, want %q", key, again, key)
			}
		})
	}
}

func TestToInt64(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   int64
		wantOK bool
	}{
		{name: "int", value: 7, want: 7, wantOK: true},
		{name: "whole float", value: float64(1756684800), want: 1756684800, wantOK: true},
		{name: "negative float", value: float64(-86400), want: -86400, wantOK: true},
		{name: "min int64 float", value: float64(math.MinInt64), want: math.MinInt64, wantOK: true},
		{name: "fraction", value: 1.5},
		{name: "two to the 63", value: float64(math.MaxInt64)},
		{name: "huge float", value: 1e19},
		{name: "huge negative float", value: -1e19},
		{name: "nan", value: math.NaN()},
		{name: "inf", value: math.Inf(1)},
		{name: "uint64 overflow", value: uint64(math.MaxUint64)},
		{name: "string", value: "12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toInt64(tt.value)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("toInt64(%v) = %d, %v, want %d, %v", tt.value, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	n := New(time.UTC)

	tests := []struct {
		name string
		a, b any
		want int
	}{
		{name: "before", a: "2025-01-01", b: "2025-01-02", want: -1},
		{name: "after", a: "02-01-2025", b: "2025-01-01", want: 1},
		{name: "same day different times", a: "2025-01-01T08:00:00", b: "2025-01-01T22:00:00", want: 0},
		{name: "invalid sorts last", a: "bad", b: "2025-01-01", want: 1},
		{name: "valid before invalid", a: "2025-01-01", b: nil, want: -1},
		{name: "both invalid", a: "bad", b: 3, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestNewNilLocation(t *testing.T) {
	if got := New(nil).Location(); got != time.Local {
		t.Errorf("New(nil).Location() = %v, want Local", got)
	}
}

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: ""},
		{name: "Local returns local", timezone: "Local"},
		{name: "UTC", timezone: "UTC"},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestValidTime(t *testing.T) {
	for _, s := range []string{"00:00", "09:15", "23:59"} {
		if !ValidTime(s) {
			t.Errorf("ValidTime(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "24:00", "9:15pm", "18h"} {
		if ValidTime(s) {
			t.Errorf("ValidTime(%q) = true, want false", s)
		}
	}
}

func TestRawYAML(t *testing.T) {
	n := New(time.UTC)

	var doc struct {
		A Raw `yaml:"a"`
		B Raw `yaml:"b"`
		C Raw `yaml:"c"`
		D Raw `yaml:"d"`
		E Raw `yaml:"e"`
	}
	src := `
a: 2025-09-01
b: "15-09-2025"
c:
  _seconds: 1756684800
  _nanoseconds: 0
d: ~
e: 2025-09-01T10:00:00Z
`
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}

	checks := []struct {
		name string
		raw  Raw
		want string
	}{
		{"unquoted date", doc.A, "2025-09-01"},
		{"day first string", doc.B, "2025-09-15"},
		{"timestamp object", doc.C, "2025-09-01"},
		{"null", doc.D, ""},
		{"unquoted datetime", doc.E, "2025-09-01"},
	}
	for _, c := range checks {
		if got := c.raw.Key(n); got != c.want {
			t.Errorf("%s: Key() = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestRawJSON(t *testing.T) {
	n := New(time.UTC)

	var doc struct {
		A Raw `json:"a"`
		B Raw `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a":"2025-09-01","b":{"seconds":1756684800}}`), &doc); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if got := doc.A.Key(n); got != "2025-09-01" {
		t.Errorf("A.Key() = %q, want %q", got, "2025-09-01")
	}
	if got := doc.B.Key(n); got != "2025-09-01" {
		t.Errorf("B.Key() = %q, want %q", got, "2025-09-01")
	}

	var bad struct {
		A Raw `json:"a"`
	}
	if err := json.Unmarshal([]byte(`{"a":[1,2]}`), &bad); err == nil {
		t.Error("json.Unmarshal() accepted an array date")
	}
}
