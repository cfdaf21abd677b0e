package models

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestWeekdayOf(t *testing.T) {
	tests := []struct {
		date time.Time
		want Weekday
	}{
		{time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC), Monday},
		{time.Date(2025, 9, 13, 0, 0, 0, 0, time.UTC), Saturday},
		{time.Date(2025, 9, 14, 23, 59, 0, 0, time.UTC), Sunday},
	}
	for _, tt := range tests {
		if got := WeekdayOf(tt.date); got != tt.want {
			t.Errorf("WeekdayOf(%s) = %v, want %v", tt.date.Format(time.DateOnly), got, tt.want)
		}
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want Weekday
	}{
		{"monday", Monday},
		{"Dilluns", Monday},
		{"dc", Wednesday},
		{"miércoles", Wednesday},
		{" SÁBADO ", Saturday},
		{"dg", Sunday},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekday(tt.in)
			if err != nil {
				t.Fatalf("ParseWeekday(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseWeekday(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if _, err := ParseWeekday("someday"); !errors.Is(err, ErrInvalidWeekday) {
		t.Errorf("ParseWeekday(someday) error = %v, want ErrInvalidWeekday", err)
	}
}

func TestParseWeekdays(t *testing.T) {
	got, err := ParseWeekdays("dl, dimecres,,fri")
	if err != nil {
		t.Fatal(err)
	}
	want := []Weekday{Monday, Wednesday, Friday}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseWeekdays() = %v, want %v", got, want)
	}

	if got, _ := ParseWeekdays(""); got != nil {
		t.Errorf("ParseWeekdays(\"\") = %v, want nil", got)
	}
}

func TestWeekdayText(t *testing.T) {
	b, err := Thursday.MarshalText()
	if err != nil || string(b) != "thursday" {
		t.Errorf("MarshalText() = %q, %v, want thursday", b, err)
	}
	if _, err := Weekday(9).MarshalText(); err == nil {
		t.Error("MarshalText() accepted an out-of-range weekday")
	}

	var d Weekday
	if err := d.UnmarshalText([]byte("dijous")); err != nil || d != Thursday {
		t.Errorf("UnmarshalText(dijous) = %v, %v, want thursday", d, err)
	}
}

func TestPeriodRangeDays(t *testing.T) {
	p := PeriodRange{
		Start: time.Date(2025, 1, 26, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC),
	}
	if got := len(p.Days()); got != 31 {
		t.Errorf("Days() = %d days, want 31", got)
	}
	if got := (PeriodRange{Start: p.End, End: p.Start}).Days(); got != nil {
		t.Errorf("inverted range Days() = %v, want nil", got)
	}
}
