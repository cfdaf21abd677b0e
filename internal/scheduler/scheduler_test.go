package scheduler

import (
	"reflect"
	"testing"
	"time"

	"github.com/jugucan/gymsched/internal/models"
)

func slot(program, at, gym string) models.SessionSlot {
	return models.SessionSlot{ProgramID: program, Time: at, GymID: gym}
}

func programs(sessions []models.ResolvedSession) []string {
	var ids []string
	for _, s := range sessions {
		ids = append(ids, s.ProgramID+"@"+s.Time+"@"+s.GymID+"/"+string(s.Source))
	}
	return ids
}

var (
	v2024 = models.FixedSchedule{
		ID:        "v2024",
		StartDate: "2024-01-01",
		Schedule: models.WeekdaySchedule{
			models.Monday: {slot("bp120", "18:00", "gym_arbucies")},
			models.Friday: {slot("bc90", "19:00", "gym_hostalric")},
		},
	}
	v2025 = models.FixedSchedule{
		ID:        "v2025",
		StartDate: "2025-07-01",
		Schedule: models.WeekdaySchedule{
			models.Monday: {slot("bb62", "09:00", "gym_arbucies")},
		},
	}
)

func TestActiveSchedule(t *testing.T) {
	s := New(time.UTC)

	tests := []struct {
		name     string
		date     string
		versions []models.FixedSchedule
		wantID   string // program on Monday, "" for an empty schedule
	}{
		{name: "day before newer version", date: "2025-06-30", versions: []models.FixedSchedule{v2024, v2025}, wantID: "bp120"},
		{name: "newer version start day", date: "2025-07-01", versions: []models.FixedSchedule{v2024, v2025}, wantID: "bb62"},
		{name: "input order does not matter", date: "2025-07-01", versions: []models.FixedSchedule{v2025, v2024}, wantID: "bb62"},
		{name: "before earliest version", date: "2023-12-31", versions: []models.FixedSchedule{v2024, v2025}, wantID: ""},
		{name: "no versions", date: "2025-07-01", versions: nil, wantID: ""},
		{name: "day first start date", date: "2025-07-01", versions: []models.FixedSchedule{v2024, {StartDate: "01-07-2025", Schedule: v2025.Schedule}}, wantID: "bb62"},
		{name: "malformed start never active", date: "2025-07-01", versions: []models.FixedSchedule{{StartDate: "garbage", Schedule: v2025.Schedule}}, wantID: ""},
		{name: "malformed start does not hide valid", date: "2025-07-01", versions: []models.FixedSchedule{{StartDate: "garbage", Schedule: v2025.Schedule}, v2024}, wantID: "bp120"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ActiveSchedule(tt.date, tt.versions)
			if got == nil {
				t.Fatal("ActiveSchedule() returned nil map")
			}
			mon := got[models.Monday]
			if tt.wantID == "" {
				if len(got) != 0 {
					t.Errorf("ActiveSchedule() = %v, want empty", got)
				}
				return
			}
			if len(mon) != 1 || mon[0].ProgramID != tt.wantID {
				t.Errorf("ActiveSchedule() Monday = %v, want %s", mon, tt.wantID)
			}
		})
	}
}

func TestActiveScheduleDuplicateStartLaterWins(t *testing.T) {
	s := New(time.UTC)
	first := models.FixedSchedule{ID: "a", StartDate: "2025-01-01", Schedule: models.WeekdaySchedule{models.Monday: {slot("first", "10:00", "g")}}}
	second := models.FixedSchedule{ID: "b", StartDate: "2025-01-01", Schedule: models.WeekdaySchedule{models.Monday: {slot("second", "10:00", "g")}}}

	got := s.ActiveSchedule("2025-03-03", []models.FixedSchedule{first, second})
	if got[models.Monday][0].ProgramID != "second" {
		t.Errorf("ActiveSchedule() picked %s, want second", got[models.Monday][0].ProgramID)
	}
}

func TestActiveVersion(t *testing.T) {
	s := New(time.UTC)
	versions := []models.FixedSchedule{v2025, v2024}

	tests := []struct {
		date   any
		wantID string
		wantOK bool
	}{
		{"2023-12-31", "", false},
		{"2024-01-01", "v2024", true},
		{"30-06-2025", "v2024", true},
		{time.Date(2025, 7, 1, 23, 0, 0, 0, time.UTC), "v2025", true},
		{"not a date", "", false},
	}
	for _, tt := range tests {
		got, ok := s.ActiveVersion(tt.date, versions)
		if ok != tt.wantOK || got.ID != tt.wantID {
			t.Errorf("ActiveVersion(%v) = (%q, %v), want (%q, %v)", tt.date, got.ID, ok, tt.wantID, tt.wantOK)
		}
	}
}

func TestActiveOnInclusiveBounds(t *testing.T) {
	s := New(time.UTC)
	friday := models.RecurringSession{
		ID: "r1", ProgramID: "bp120", Time: "20:00", GymID: "gym_a",
		Days: []models.Weekday{models.Friday}, StartDate: "2025-09-19", EndDate: "2025-12-31",
	}
	// 2025-12-31 is a Wednesday; add it so the end bound is exercised.
	friday.Days = append(friday.Days, models.Wednesday)

	tests := []struct {
		date string
		want bool
	}{
		{"2025-09-19", true},
		{"2025-12-31", true},
		{"2025-09-12", false},
		{"2026-01-02", false},
		{"2025-09-20", false}, // Saturday
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got := len(s.ActiveOn(tt.date, []models.RecurringSession{friday})) == 1
			if got != tt.want {
				t.Errorf("ActiveOn(%s) active = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestActiveOnMalformedBounds(t *testing.T) {
	s := New(time.UTC)
	base := models.RecurringSession{ProgramID: "p", Time: "10:00", GymID: "g", Days: []models.Weekday{models.Monday}}

	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{name: "open ended", start: "2025-01-01", want: 1},
		{name: "malformed start", start: "soon", want: 0},
		{name: "empty start", start: "", want: 0},
		{name: "malformed end", start: "2025-01-01", end: "later", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			r.StartDate, r.EndDate = tt.start, tt.end
			if got := len(s.ActiveOn("2025-09-01", []models.RecurringSession{r})); got != tt.want {
				t.Errorf("ActiveOn() returned %d sessions, want %d", got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	s := New(time.UTC)
	monday := "2025-09-01"

	dup := models.RecurringSession{
		ID: "dup", ProgramID: "bp120", Time: "18:00", GymID: "gym_arbucies",
		Days: []models.Weekday{models.Monday}, StartDate: "2025-01-01",
	}
	extra := models.RecurringSession{
		ID: "extra", ProgramID: "bc90", Time: "20:00", GymID: "gym_hostalric",
		Days: []models.Weekday{models.Monday}, StartDate: "2025-01-01",
	}

	tests := []struct {
		name      string
		recurring []models.RecurringSession
		overrides []models.ScheduleOverride
		want      []string
	}{
		{
			name: "fixed only",
			want: []string{"bp120@18:00@gym_arbucies/fixed"},
		},
		{
			name:      "identical recurring slot deduplicated",
			recurring: []models.RecurringSession{dup},
			want:      []string{"bp120@18:00@gym_arbucies/fixed"},
		},
		{
			name:      "fixed then recurring",
			recurring: []models.RecurringSession{extra, dup},
			want:      []string{"bp120@18:00@gym_arbucies/fixed", "bc90@20:00@gym_hostalric/recurring"},
		},
		{
			name:      "empty override clears the day",
			recurring: []models.RecurringSession{extra},
			overrides: []models.ScheduleOverride{{Date: monday, Sessions: []models.SessionSlot{}}},
			want:      nil,
		},
		{
			name:      "override replaces without merging",
			recurring: []models.RecurringSession{extra},
			overrides: []models.ScheduleOverride{{Date: "01-09-2025", Sessions: []models.SessionSlot{slot("bb62", "10:00", "gym_x")}}},
			want:      []string{"bb62@10:00@gym_x/override"},
		},
		{
			name: "first override for a date wins",
			overrides: []models.ScheduleOverride{
				{Date: monday, Sessions: []models.SessionSlot{slot("one", "10:00", "g")}},
				{Date: monday, Sessions: []models.SessionSlot{slot("two", "10:00", "g")}},
			},
			want: []string{"one@10:00@g/override"},
		},
		{
			name:      "override on another date ignored",
			overrides: []models.ScheduleOverride{{Date: "2025-09-02"}},
			want:      []string{"bp120@18:00@gym_arbucies/fixed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := programs(s.Resolve(monday, []models.FixedSchedule{v2024}, tt.recurring, tt.overrides))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveIsStableAndPure(t *testing.T) {
	s := New(time.UTC)
	versions := []models.FixedSchedule{v2025, v2024}
	recurring := []models.RecurringSession{
		{ProgramID: "x", Time: "07:00", GymID: "g", Days: []models.Weekday{models.Monday}, StartDate: "2025-01-01"},
		{ProgramID: "y", Time: "06:00", GymID: "g", Days: []models.Weekday{models.Monday}, StartDate: "2025-01-01"},
	}

	first := s.Resolve("2025-09-01", versions, recurring, nil)
	second := s.Resolve("2025-09-01", versions, recurring, nil)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Resolve() not deterministic: %v then %v", first, second)
	}
	if versions[0].ID != "v2025" {
		t.Error("Resolve() reordered its input")
	}
	want := []string{"bb62@09:00@gym_arbucies/fixed", "x@07:00@g/recurring", "y@06:00@g/recurring"}
	if got := programs(first); !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() = %v, want %v", got, want)
	}
}

func TestResolveInvalidDate(t *testing.T) {
	s := New(time.UTC)
	if got := s.Resolve("not-a-date", []models.FixedSchedule{v2024}, nil, nil); len(got) != 0 {
		t.Errorf("Resolve() = %v, want no sessions", got)
	}
}

func TestIsOverridden(t *testing.T) {
	s := New(time.UTC)
	overrides := []models.ScheduleOverride{{Date: "2025-09-01"}}

	if !s.IsOverridden(time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC), overrides) {
		t.Error("IsOverridden() = false, want true")
	}
	if s.IsOverridden("2025-09-02", overrides) {
		t.Error("IsOverridden() = true, want false")
	}
}

func TestClassify(t *testing.T) {
	s := New(time.UTC)
	closures := []models.GymClosure{{Date: "2025-12-25", Reason: "Nadal"}}
	gyms := []models.Gym{
		{ID: "gym_a", Name: "Arbúcies", HolidaysTaken: []string{"2025-12-25", "2025-08-15"}},
		{ID: "gym_h", Name: "Hostalric", HolidaysTaken: []string{"2025-08-15"}},
	}
	missed := []models.MissedDay{
		{Date: "2025-08-15", Notes: "sick"},
		{Date: "2025-09-03", Notes: "sick"},
		{Date: "2025-09-03", Notes: "duplicate"},
	}

	tests := []struct {
		name   string
		date   string
		want   models.ExclusionReason
		detail string
	}{
		{name: "closure beats holiday", date: "2025-12-25", want: models.ReasonClosure, detail: "Nadal"},
		{name: "holiday beats missed", date: "2025-08-15", want: models.ReasonHoliday, detail: "Arbúcies, Hostalric"},
		{name: "missed with duplicates", date: "2025-09-03", want: models.ReasonMissed, detail: "sick"},
		{name: "ordinary day", date: "2025-09-04", want: models.ReasonNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Classify(tt.date, closures, gyms, missed)
			if got.Reason != tt.want {
				t.Errorf("Classify() reason = %q, want %q", got.Reason, tt.want)
			}
			if got.Excluded != (tt.want != models.ReasonNone) {
				t.Errorf("Classify() excluded = %v for reason %q", got.Excluded, got.Reason)
			}
			if got.Detail != tt.detail {
				t.Errorf("Classify() detail = %q, want %q", got.Detail, tt.detail)
			}
		})
	}
}

func TestClassifyToleratesMalformedRecords(t *testing.T) {
	s := New(time.UTC)
	got := s.Classify("2025-09-01",
		[]models.GymClosure{{Date: "whenever"}},
		[]models.Gym{{ID: "g", HolidaysTaken: []string{""}}},
		[]models.MissedDay{{Date: "??"}},
	)
	if got.Excluded {
		t.Errorf("Classify() = %+v, want not excluded", got)
	}
}
