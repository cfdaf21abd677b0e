package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Weekday is the single canonical day-of-week representation. Monday is the
// first day of the week, matching how schedules are entered and displayed.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var ErrInvalidWeekday = errors.New("invalid weekday")

// AllWeekdays lists the week in display order.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayNames = [...]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// weekdayAliases maps accent-folded lowercase names to weekdays. Stored data
// carries English, Catalan and Spanish names.
var weekdayAliases = map[string]Weekday{
	"monday": Monday, "mon": Monday, "dilluns": Monday, "dl": Monday, "lunes": Monday, "lun": Monday,
	"tuesday": Tuesday, "tue": Tuesday, "dimarts": Tuesday, "dt": Tuesday, "martes": Tuesday, "mar": Tuesday,
	"wednesday": Wednesday, "wed": Wednesday, "dimecres": Wednesday, "dc": Wednesday, "miercoles": Wednesday, "mie": Wednesday,
	"thursday": Thursday, "thu": Thursday, "dijous": Thursday, "dj": Thursday, "jueves": Thursday, "jue": Thursday,
	"friday": Friday, "fri": Friday, "divendres": Friday, "dv": Friday, "viernes": Friday, "vie": Friday,
	"saturday": Saturday, "sat": Saturday, "dissabte": Saturday, "ds": Saturday, "sabado": Saturday, "sab": Saturday,
	"sunday": Sunday, "sun": Sunday, "diumenge": Sunday, "dg": Sunday, "domingo": Sunday, "dom": Sunday,
}

// WeekdayOf converts a native weekday. This is the only conversion from
// time.Weekday (Sunday = 0) into the canonical Monday-first enum.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) IsWeekend() bool {
	return d == Saturday || d == Sunday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Title returns the capitalized English name, e.g. "Monday".
func (d Weekday) Title() string {
	s := d.String()
	if !d.Valid() {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseWeekday parses a day name in any of the supported languages,
// ignoring case and accents.
func ParseWeekday(s string) (Weekday, error) {
	key := foldName(s)
	if d, ok := weekdayAliases[key]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

// ParseWeekdays parses a comma-separated list of day names.
func ParseWeekdays(s string) ([]Weekday, error) {
	var days []Weekday
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		d, err := ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

func (d Weekday) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, int(d))
	}
	return []byte(d.String()), nil
}

func (d *Weekday) UnmarshalText(b []byte) error {
	parsed, err := ParseWeekday(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
