package transfer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jugucan/gymsched/internal/constants"
	"github.com/jugucan/gymsched/internal/dates"
	"github.com/jugucan/gymsched/internal/logger"
	"github.com/jugucan/gymsched/internal/models"
	"github.com/jugucan/gymsched/internal/storage"
)

var ErrUnsupportedVersion = errors.New("unsupported document version")

// Export writes every collection of p to w.
func Export(w io.Writer, p storage.Provider, n *dates.Normalizer, now time.Time) error {
	snap, err := storage.LoadSnapshot(p)
	if err != nil {
		return err
	}
	settings, err := p.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	doc := fromSnapshot(n, snap, settings)
	doc.ExportedAt = now.Format(time.RFC3339)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return enc.Close()
}

// Decode reads a document. JSON input is accepted as well, being valid YAML.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return doc, errors.New("document is empty")
		}
		return doc, fmt.Errorf("failed to decode document: %w", err)
	}
	if doc.Version != 0 && doc.Version != DocumentVersion {
		return doc, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	return doc, nil
}

// Result counts what an import wrote and lists what it skipped.
type Result struct {
	Written map[string]int
	Skipped []string
}

func (r *Result) wrote(kind string) {
	r.Written[kind]++
}

func (r *Result) skip(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Skipped = append(r.Skipped, msg)
	logger.Warn("import skipped record", "reason", msg)
}

type Options struct {
	// DryRun validates and counts without writing.
	DryRun bool
	// KeepSettings leaves stored settings untouched.
	KeepSettings bool
}

// Import upserts every record of doc into p. Records are matched by id, and
// per-date records by their date key, so importing the same document twice
// leaves the store unchanged. Fixed schedules, recurring sessions and missed
// days without an id get one derived from their content. When a document
// holds several closures, overrides or missed days for one date the first is
// kept and the rest are skipped. Records with an unusable date are skipped
// and reported; storage errors abort the import.
func Import(doc Document, p storage.Provider, n *dates.Normalizer, opts Options) (Result, error) {
	res := Result{Written: map[string]int{}}
	save := func(kind string, fn func() error) error {
		if opts.DryRun {
			res.wrote(kind)
			return nil
		}
		if err := fn(); err != nil {
			return err
		}
		res.wrote(kind)
		return nil
	}

	if doc.Settings != nil && !opts.KeepSettings {
		settings := models.Settings(*doc.Settings)
		if settings.Timezone == "" {
			settings.Timezone = constants.DefaultTimezone
		}
		if settings.SessionMinutes <= 0 {
			settings.SessionMinutes = constants.DefaultSessionMinutes
		}
		if _, err := dates.LoadLocation(settings.Timezone); err != nil {
			res.skip("settings: %v", err)
		} else if err := save("settings", func() error { return p.SaveSettings(settings) }); err != nil {
			return res, err
		}
	}

	for _, pd := range doc.Programs {
		if pd.ID == "" {
			res.skip("program %q: missing id", pd.Name)
			continue
		}
		prog := models.Program{ID: pd.ID, Name: pd.Name, ShortName: pd.ShortName, Color: pd.Color, ReleaseDate: pd.ReleaseDate.Key(n)}
		if err := save("programs", func() error { return p.SaveProgram(prog) }); err != nil {
			return res, err
		}
	}

	for _, gd := range doc.Gyms {
		if gd.ID == "" {
			res.skip("gym %q: missing id", gd.Name)
			continue
		}
		days, err := parseWeekdays(gd.WorkDays)
		if err != nil {
			res.skip("gym %s: %v", gd.ID, err)
			continue
		}
		gym := models.Gym{ID: gd.ID, Name: gd.Name, WorkDays: days, VacationDays: gd.VacationDays, HolidaysTaken: []string{}}
		for _, h := range gd.HolidaysTaken {
			if key := h.Key(n); key != "" {
				gym.HolidaysTaken = append(gym.HolidaysTaken, key)
			} else {
				res.skip("gym %s: holiday %v is not a date", gd.ID, h.Value())
			}
		}
		if err := save("gyms", func() error { return p.SaveGym(gym) }); err != nil {
			return res, err
		}
	}

	seenClosures := map[string]bool{}
	for _, cd := range doc.Closures {
		key := cd.Date.Key(n)
		if key == "" {
			res.skip("closure %q: %v is not a date", cd.Reason, cd.Date.Value())
			continue
		}
		if seenClosures[key] {
			res.skip("closure %s: duplicate date, first record kept", key)
			continue
		}
		seenClosures[key] = true
		closure := models.GymClosure{Date: key, Reason: cd.Reason}
		if err := save("closures", func() error { return p.SaveClosure(closure) }); err != nil {
			return res, err
		}
	}

	for _, fd := range doc.FixedSchedules {
		key := fd.StartDate.Key(n)
		if key == "" {
			res.skip("fixed schedule %s: start date %v is not a date", fd.ID, fd.StartDate.Value())
			continue
		}
		sched, err := fd.schedule()
		if err != nil {
			res.skip("%v", err)
			continue
		}
		fixed := models.FixedSchedule{ID: idOrDerived(fd.ID, fixedParts(key, sched)...), StartDate: key, Schedule: sched}
		if err := save("fixed_schedules", func() error { return p.SaveFixedSchedule(fixed) }); err != nil {
			return res, err
		}
	}

	for _, rd := range doc.RecurringSessions {
		start := rd.StartDate.Key(n)
		if start == "" {
			res.skip("recurring session %s: start date %v is not a date", rd.ID, rd.StartDate.Value())
			continue
		}
		end := rd.EndDate.Key(n)
		if end == "" && !blank(rd.EndDate) {
			res.skip("recurring session %s: end date %v is not a date", rd.ID, rd.EndDate.Value())
			continue
		}
		days, err := parseWeekdays(rd.Days)
		if err != nil {
			res.skip("recurring session %s: %v", rd.ID, err)
			continue
		}
		rec := models.RecurringSession{
			ProgramID: rd.Program, Time: rd.Time, GymID: rd.Gym,
			Days: days, StartDate: start, EndDate: end, Notes: rd.Notes,
		}
		rec.ID = idOrDerived(rd.ID, "recurring", rec.ProgramID, rec.Time, rec.GymID,
			strings.Join(weekdayNames(rec.Days), ","), rec.StartDate, rec.EndDate)
		if err := save("recurring_sessions", func() error { return p.SaveRecurringSession(rec) }); err != nil {
			return res, err
		}
	}

	seenOverrides := map[string]bool{}
	for _, od := range doc.Overrides {
		key := od.Date.Key(n)
		if key == "" {
			res.skip("override: %v is not a date", od.Date.Value())
			continue
		}
		if seenOverrides[key] {
			res.skip("override %s: duplicate date, first record kept", key)
			continue
		}
		seenOverrides[key] = true
		o := models.ScheduleOverride{Date: key, Sessions: slotsFromDoc(od.Sessions)}
		if err := save("overrides", func() error { return p.SaveOverride(o) }); err != nil {
			return res, err
		}
	}

	seenMissed := map[string]bool{}
	for _, md := range doc.MissedDays {
		key := md.Date.Key(n)
		if key == "" {
			res.skip("missed day %s: %v is not a date", md.ID, md.Date.Value())
			continue
		}
		if seenMissed[key] {
			res.skip("missed day %s: duplicate date, first record kept", key)
			continue
		}
		seenMissed[key] = true
		gym := md.Gym
		if gym == "" {
			gym = models.AllGyms
		}
		m := models.MissedDay{ID: idOrDerived(md.ID, "missed", key), Date: key, GymID: gym, Notes: md.Notes}
		if err := save("missed_days", func() error { return p.SaveMissedDay(m) }); err != nil {
			return res, err
		}
	}

	return res, nil
}

// importNamespace seeds the ids derived for records imported without one.
var importNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("gymsched:import"))

// idOrDerived returns id, or a name-based UUID over parts so the same id-less
// record maps to the same row on every import.
func idOrDerived(id string, parts ...string) string {
	if id != "" {
		return id
	}
	return uuid.NewSHA1(importNamespace, []byte(strings.Join(parts, "\x1f"))).String()
}

func fixedParts(start string, sched models.WeekdaySchedule) []string {
	parts := []string{"fixed", start}
	for _, d := range models.AllWeekdays {
		for _, s := range sched[d] {
			parts = append(parts, d.String(), s.ProgramID, s.Time, s.GymID, s.Notes)
		}
	}
	return parts
}

// blank reports whether an optional date was left out.
func blank(r dates.Raw) bool {
	s, ok := r.Value().(string)
	return r.IsZero() || (ok && s == "")
}
