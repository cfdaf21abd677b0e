package transfer

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jugucan/gymsched/internal/dates"
	"github.com/jugucan/gymsched/internal/models"
	"github.com/jugucan/gymsched/internal/storage"
	"github.com/jugucan/gymsched/internal/storage/sqlite"
)

const sampleDoc = `
version: 1
settings:
  timezone: UTC
  session_minutes: 55
programs:
  - id: bp120
    name: BodyPump 120
    short_name: BP
gyms:
  - id: gym_a
    name: Arbúcies
    work_days: [dilluns, dimecres, friday]
    vacation_days: 22
    holidays_taken: [2025-08-15, "15-10-2025"]
closures:
  - date: "25-12-2025"
    reason: Nadal
fixed_schedules:
  - id: v1
    start_date: 2025-01-01
    schedule:
      monday:
        - {program: bp120, time: "18:00", gym: gym_a}
recurring_sessions:
  - id: r1
    program: bp120
    time: "20:00"
    gym: gym_a
    days: [fri]
    start_date: "2025-09-19T00:00:00Z"
    end_date: ""
overrides:
  - date: {seconds: 1757327400, nanoseconds: 0}
    sessions: []
missed_days:
  - date: 2025-09-01
    notes: flu
  - date: not-a-date
    notes: broken
`

func setupStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func importSample(t *testing.T, store storage.Provider, opts Options) Result {
	t.Helper()
	doc, err := Decode(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	res, err := Import(doc, store, dates.New(time.UTC), opts)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	return res
}

func TestImportNormalizesDates(t *testing.T) {
	store := setupStore(t)
	res := importSample(t, store, Options{})

	if len(res.Skipped) != 1 {
		t.Errorf("Skipped = %v, want only the broken missed day", res.Skipped)
	}

	snap, err := storage.LoadSnapshot(store)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}

	gym := snap.Gyms[0]
	if want := []models.Weekday{models.Monday, models.Wednesday, models.Friday}; !reflect.DeepEqual(gym.WorkDays, want) {
		t.Errorf("WorkDays = %v, want %v", gym.WorkDays, want)
	}
	if want := []string{"2025-08-15", "2025-10-15"}; !reflect.DeepEqual(gym.HolidaysTaken, want) {
		t.Errorf("HolidaysTaken = %v, want %v", gym.HolidaysTaken, want)
	}
	if got := snap.Closures[0].Date; got != "2025-12-25" {
		t.Errorf("closure date = %q, want 2025-12-25", got)
	}
	if got := snap.RecurringSessions[0]; got.StartDate != "2025-09-19" || got.EndDate != "" {
		t.Errorf("recurring = %+v", got)
	}
	if got := snap.Overrides[0]; got.Date != "2025-09-08" || len(got.Sessions) != 0 {
		t.Errorf("override = %+v, want a cleared 2025-09-08", got)
	}
	if len(snap.MissedDays) != 1 || snap.MissedDays[0].GymID != models.AllGyms || snap.MissedDays[0].ID == "" {
		t.Errorf("missed days = %+v", snap.MissedDays)
	}

	settings, err := store.GetSettings()
	if err != nil || settings.SessionMinutes != 55 || settings.Timezone != "UTC" {
		t.Errorf("GetSettings() = %+v, %v", settings, err)
	}
}

func TestImportIsIdempotent(t *testing.T) {
	store := setupStore(t)
	importSample(t, store, Options{})
	first, _ := storage.LoadSnapshot(store)

	importSample(t, store, Options{})
	second, _ := storage.LoadSnapshot(store)

	if len(first.MissedDays) != len(second.MissedDays) || len(first.Overrides) != len(second.Overrides) ||
		len(first.FixedSchedules) != len(second.FixedSchedules) || len(first.Closures) != len(second.Closures) {
		t.Errorf("second import changed record counts: %+v -> %+v", first, second)
	}
}

func TestImportDryRun(t *testing.T) {
	store := setupStore(t)
	res := importSample(t, store, Options{DryRun: true, KeepSettings: true})

	if res.Written["gyms"] != 1 || res.Written["missed_days"] != 1 {
		t.Errorf("Written = %v", res.Written)
	}
	gyms, err := store.GetAllGyms()
	if err != nil {
		t.Fatalf("GetAllGyms() error = %v", err)
	}
	if len(gyms) != 0 {
		t.Errorf("dry run wrote %d gyms", len(gyms))
	}
}

func TestExportRoundTrip(t *testing.T) {
	src := setupStore(t)
	importSample(t, src, Options{})

	var buf bytes.Buffer
	if err := Export(&buf, src, dates.New(time.UTC), time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.Contains(buf.String(), "exported_at: \"2025-10-01T09:00:00Z\"") && !strings.Contains(buf.String(), "exported_at: 2025-10-01T09:00:00Z") {
		t.Errorf("export missing timestamp:\n%s", buf.String())
	}

	doc, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	dst := setupStore(t)
	res, err := Import(doc, dst, dates.New(time.UTC), Options{})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(res.Skipped) != 0 {
		t.Errorf("Skipped = %v", res.Skipped)
	}

	want, _ := storage.LoadSnapshot(src)
	got, _ := storage.LoadSnapshot(dst)
	if !reflect.DeepEqual(got.FixedSchedules, want.FixedSchedules) {
		t.Errorf("fixed schedules = %+v, want %+v", got.FixedSchedules, want.FixedSchedules)
	}
	if !reflect.DeepEqual(got.MissedDays, want.MissedDays) {
		t.Errorf("missed days = %+v, want %+v", got.MissedDays, want.MissedDays)
	}
	if !reflect.DeepEqual(got.Gyms, want.Gyms) {
		t.Errorf("gyms = %+v, want %+v", got.Gyms, want.Gyms)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty", in: ""},
		{name: "future version", in: "version: 9\n"},
		{name: "bad date shape", in: "closures:\n  - date: [1, 2]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.in)); err == nil {
				t.Errorf("Decode(%q) succeeded, want error", tt.in)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	in := `{"version": 1, "closures": [{"date": {"_seconds": 1757327400, "_nanoseconds": 0}, "reason": "x"}]}`
	doc, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := doc.Closures[0].Date.Key(dates.New(time.UTC)); got != "2025-09-08" {
		t.Errorf("closure key = %q, want 2025-09-08", got)
	}
}

func importText(t *testing.T, store storage.Provider, text string) Result {
	t.Helper()
	doc, err := Decode(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	res, err := Import(doc, store, dates.New(time.UTC), Options{})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	return res
}

func TestImportKeepsFirstRecordPerDate(t *testing.T) {
	const doc = `
version: 1
closures:
  - date: 2025-12-25
    reason: Nadal
  - date: "25-12-2025"
    reason: Christmas
overrides:
  - date: 2025-09-08
    sessions:
      - {program: bp120, time: "09:00", gym: gym_a}
  - date: "2025-09-08T10:00:00Z"
    sessions: []
missed_days:
  - date: 2025-09-01
    notes: flu
  - date: "01-09-2025"
    gym: gym_a
    notes: dentist
`
	store := setupStore(t)
	res := importText(t, store, doc)

	if len(res.Skipped) != 3 {
		t.Errorf("Skipped = %v, want one duplicate per collection", res.Skipped)
	}

	snap, err := storage.LoadSnapshot(store)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if len(snap.Closures) != 1 || snap.Closures[0].Reason != "Nadal" {
		t.Errorf("closures = %+v, want only Nadal", snap.Closures)
	}
	if len(snap.Overrides) != 1 || len(snap.Overrides[0].Sessions) != 1 || snap.Overrides[0].Sessions[0].Time != "09:00" {
		t.Errorf("overrides = %+v, want the 09:00 session", snap.Overrides)
	}
	if len(snap.MissedDays) != 1 || snap.MissedDays[0].Notes != "flu" || snap.MissedDays[0].GymID != models.AllGyms {
		t.Errorf("missed days = %+v, want the all-gyms flu entry", snap.MissedDays)
	}
}

func TestImportWithoutIDsIsIdempotent(t *testing.T) {
	const doc = `
version: 1
fixed_schedules:
  - start_date: 2025-01-01
    schedule:
      monday:
        - {program: bp120, time: "18:00", gym: gym_a}
  - start_date: 2025-09-01
    schedule:
      tuesday:
        - {program: bp120, time: "19:00", gym: gym_a}
recurring_sessions:
  - program: bp120
    time: "20:00"
    gym: gym_a
    days: [fri]
    start_date: 2025-09-19
missed_days:
  - date: 2025-09-02
`
	store := setupStore(t)
	importText(t, store, doc)
	first, err := storage.LoadSnapshot(store)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}

	importText(t, store, doc)
	second, err := storage.LoadSnapshot(store)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}

	if len(second.FixedSchedules) != 2 {
		t.Errorf("fixed schedules = %d, want 2", len(second.FixedSchedules))
	}
	if len(second.RecurringSessions) != 1 {
		t.Errorf("recurring sessions = %d, want 1", len(second.RecurringSessions))
	}
	if len(second.MissedDays) != 1 {
		t.Errorf("missed days = %d, want 1", len(second.MissedDays))
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second import changed the store:\n%+v\n->\n%+v", first, second)
	}
}

func TestFixedScheduleAliasOrder(t *testing.T) {
	fd := fixedDoc{ID: "v1", Schedule: map[string][]slotDoc{
		"monday":  {{Program: "a", Time: "18:00"}},
		"dilluns": {{Program: "b", Time: "18:00"}},
		"lunes":   {{Program: "c", Time: "18:00"}},
	}}

	for i := 0; i < 20; i++ {
		sched, err := fd.schedule()
		if err != nil {
			t.Fatalf("schedule() error = %v", err)
		}
		var got []string
		for _, s := range sched[models.Monday] {
			got = append(got, s.ProgramID)
		}
		if want := []string{"b", "c", "a"}; !reflect.DeepEqual(got, want) {
			t.Fatalf("monday programs = %v, want %v", got, want)
		}
	}

	bad := fixedDoc{ID: "v2", Schedule: map[string][]slotDoc{"someday": nil}}
	if _, err := bad.schedule(); err == nil {
		t.Error("schedule() accepted an unknown day")
	}
}
