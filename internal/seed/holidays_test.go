package seed

import (
	"testing"
)

func TestEaster(t *testing.T) {
	tests := []struct {
		year int
		want string
	}{
		{2019, "2019-04-21"},
		{2024, "2024-03-31"},
		{2025, "2025-04-20"},
		{2026, "2026-04-05"},
		{2038, "2038-04-25"},
	}

	for _, tt := range tests {
		if got := dateKey(Easter(tt.year)); got != tt.want {
			t.Errorf("Easter(%d) = %s, want %s", tt.year, got, tt.want)
		}
	}
}

func TestCatalanHolidays(t *testing.T) {
	closures := CatalanHolidays(2025)
	if len(closures) != 14 {
		t.Fatalf("CatalanHolidays(2025) returned %d closures, want 14", len(closures))
	}

	byDate := map[string]string{}
	for i, c := range closures {
		if i > 0 && closures[i-1].Date >= c.Date {
			t.Errorf("closures not sorted at %d: %s >= %s", i, closures[i-1].Date, c.Date)
		}
		byDate[c.Date] = c.Reason
	}

	for _, date := range []string{"2025-01-01", "2025-04-18", "2025-04-21", "2025-09-11", "2025-12-26"} {
		if _, ok := byDate[date]; !ok {
			t.Errorf("CatalanHolidays(2025) missing %s", date)
		}
	}
	if got := byDate["2025-04-18"]; got != "Divendres Sant" {
		t.Errorf("2025-04-18 reason = %q, want Divendres Sant", got)
	}
}
