// Package dates turns the assorted date shapes found in stored records into
// midnight-local time values and canonical YYYY-MM-DD keys. Every date
// comparison in the scheduling core goes through a Normalizer, because values
// of different shapes carry different embedded times of day.
package dates

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jugucan/gymsched/internal/constants"
)

// Timestamp is an instant expressed as seconds since the Unix epoch, UTC.
type Timestamp struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int64 `json:"nanoseconds"`
}

// Normalizer converts date values in a fixed location.
type Normalizer struct {
	loc *time.Location
}

// New returns a Normalizer for loc. A nil loc means time.Local.
func New(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{loc: loc}
}

func (n *Normalizer) Location() *time.Location {
	return n.loc
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ToDate converts v into a time value. It accepts time.Time, *time.Time,
// Timestamp, *Timestamp, a map carrying seconds/nanoseconds, an ISO-like
// "YYYY-MM-DD[...]" string or a "DD-MM-YYYY" string. Any other shape, or an
// unparseable value, reports ok == false.
func (n *Normalizer) ToDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return *t, true
	case Timestamp:
		return time.Unix(t.Seconds, t.Nanoseconds).UTC(), true
	case *Timestamp:
		if t == nil {
			return time.Time{}, false
		}
		return time.Unix(t.Seconds, t.Nanoseconds).UTC(), true
	case map[string]any:
		ts, ok := timestampFromMap(t)
		if !ok {
			return time.Time{}, false
		}
		return time.Unix(ts.Seconds, ts.Nanoseconds).UTC(), true
	case string:
		return n.parseString(t)
	default:
		return time.Time{}, false
	}
}

// NormalizeToStartOfDay is ToDate with the time of day zeroed in the
// normalizer's location. Normalizing an already normalized value returns the
// same instant.
func (n *Normalizer) NormalizeToStartOfDay(v any) (time.Time, bool) {
	t, ok := n.ToDate(v)
	if !ok {
		return time.Time{}, false
	}
	return n.startOfDay(t), true
}

// ToDateKey returns the canonical YYYY-MM-DD key for v, or "" when v is invalid.
func (n *Normalizer) ToDateKey(v any) string {
	t, ok := n.NormalizeToStartOfDay(v)
	if !ok {
		return ""
	}
	return t.Format(constants.DateFormat)
}

// Compare orders two date values by calendar day. Invalid values sort after
// every valid one and compare equal to each other.
func (n *Normalizer) Compare(a, b any) int {
	ta, okA := n.NormalizeToStartOfDay(a)
	tb, okB := n.NormalizeToStartOfDay(b)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}
	return ta.Compare(tb)
}

// Date builds midnight of the given calendar day. Out-of-range months and
// days roll over the way time.Date does.
func (n *Normalizer) Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, n.loc)
}

func (n *Normalizer) startOfDay(t time.Time) time.Time {
	y, m, d := t.In(n.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, n.loc)
}

func (n *Normalizer) parseString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 10 {
		return time.Time{}, false
	}

	// DD-MM-YYYY
	if len(s) == 10 && s[2] == '-' && s[5] == '-' {
		t, err := time.ParseInLocation("02-01-2006", s, n.loc)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	if s[4] != '-' || s[7] != '-' {
		return time.Time{}, false
	}
	if len(s) == 10 {
		t, err := time.ParseInLocation(constants.DateFormat, s, n.loc)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, n.loc); err == nil {
			return t, true
		}
	}

	// Fall back to the date prefix for other ISO suffixes.
	if s[10] != 'T' && s[10] != ' ' {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(constants.DateFormat, s[:10], n.loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func timestampFromMap(m map[string]any) (Timestamp, bool) {
	secRaw, ok := m["seconds"]
	if !ok {
		secRaw, ok = m["_seconds"]
	}
	if !ok {
		return Timestamp{}, false
	}
	sec, ok := toInt64(secRaw)
	if !ok {
		return Timestamp{}, false
	}

	var nanos int64
	nanoRaw, ok := m["nanoseconds"]
	if !ok {
		nanoRaw, ok = m["_nanoseconds"]
	}
	if ok {
		if nanos, ok = toInt64(nanoRaw); !ok {
			return Timestamp{}, false
		}
	}
	return Timestamp{Seconds: sec, Nanoseconds: nanos}, true
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}

// LoadLocation loads an IANA timezone. "" and "Local" mean the system timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// ValidTime reports whether s is an HH:MM time of day.
func ValidTime(s string) bool {
	_, err := time.Parse(constants.TimeFormat, s)
	return err == nil
}

var std = New(nil)

// ToDate converts v using the system local timezone.
func ToDate(v any) (time.Time, bool) { return std.ToDate(v) }

// NormalizeToStartOfDay normalizes v using the system local timezone.
func NormalizeToStartOfDay(v any) (time.Time, bool) { return std.NormalizeToStartOfDay(v) }

// ToDateKey returns the canonical key for v using the system local timezone.
func ToDateKey(v any) string { return std.ToDateKey(v) }
