package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jugucan/gymsched/internal/constants"
	"github.com/jugucan/gymsched/internal/models"
)

// SQLStore implements the collection methods of Provider over database/sql.
// Queries are written with ? placeholders and rebound for the dialect.
// Backends embed it and add their own lifecycle.
type SQLStore struct {
	db     *sql.DB
	rebind func(string) string
}

// NewSQLStore wraps db. rebind may be nil when the driver accepts ?.
func NewSQLStore(db *sql.DB, rebind func(string) string) *SQLStore {
	if rebind == nil {
		rebind = func(q string) string { return q }
	}
	return &SQLStore{db: db, rebind: rebind}
}

// DollarPlaceholders rewrites ? placeholders as $1, $2, ... for PostgreSQL.
func DollarPlaceholders(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for _, r := range query {
		switch {
		case r == '\'':
			inQuote = !inQuote
			b.WriteRune(r)
		case r == '?' && !inQuote:
			n++
			b.WriteString("$" + strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s *SQLStore) DB() *sql.DB {
	return s.db
}

func (s *SQLStore) exec(query string, args ...any) error {
	_, err := s.db.Exec(s.rebind(query), args...)
	return err
}

func (s *SQLStore) query(query string, args ...any) (*sql.Rows, error) {
	return s.db.Query(s.rebind(query), args...)
}

func (s *SQLStore) queryRow(query string, args ...any) *sql.Row {
	return s.db.QueryRow(s.rebind(query), args...)
}

// deleteOne deletes by key and reports ErrNotFound when nothing matched.
func (s *SQLStore) deleteOne(what, query, key string) error {
	res, err := s.db.Exec(s.rebind(query), key)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", what, key, ErrNotFound)
	}
	return nil
}

func notFound(what, key string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %q: %w", what, key, ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Settings

func (s *SQLStore) GetSettings() (models.Settings, error) {
	rows, err := s.query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	defer rows.Close()

	settings := models.Settings{
		Timezone:       constants.DefaultTimezone,
		SessionMinutes: constants.DefaultSessionMinutes,
	}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, fmt.Errorf("failed to scan setting: %w", err)
		}
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingSessionMinutes:
			n, err := strconv.Atoi(value)
			if err != nil {
				return models.Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.SessionMinutes = n
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	if count == 0 {
		return settings, fmt.Errorf("settings: %w", ErrNotFound)
	}
	return settings, nil
}

func (s *SQLStore) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	upsert := s.rebind(`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`)
	values := map[string]string{
		constants.SettingTimezone:       settings.Timezone,
		constants.SettingSessionMinutes: strconv.Itoa(settings.SessionMinutes),
	}
	for key, value := range values {
		if _, err := tx.Exec(upsert, key, value); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}
	return tx.Commit()
}

// Programs

func (s *SQLStore) SaveProgram(p models.Program) error {
	err := s.exec(`INSERT INTO programs (id, name, short_name, color, release_date) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name, short_name = excluded.short_name,
			color = excluded.color, release_date = excluded.release_date`,
		p.ID, p.Name, p.ShortName, p.Color, p.ReleaseDate)
	if err != nil {
		return fmt.Errorf("failed to save program: %w", err)
	}
	return nil
}

func (s *SQLStore) GetProgram(id string) (models.Program, error) {
	var p models.Program
	err := s.queryRow("SELECT id, name, short_name, color, release_date FROM programs WHERE id = ?", id).
		Scan(&p.ID, &p.Name, &p.ShortName, &p.Color, &p.ReleaseDate)
	if err != nil {
		return models.Program{}, notFound("program", id, err)
	}
	return p, nil
}

func (s *SQLStore) GetAllPrograms() ([]models.Program, error) {
	rows, err := s.query("SELECT id, name, short_name, color, release_date FROM programs ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	defer rows.Close()

	var programs []models.Program
	for rows.Next() {
		var p models.Program
		if err := rows.Scan(&p.ID, &p.Name, &p.ShortName, &p.Color, &p.ReleaseDate); err != nil {
			return nil, fmt.Errorf("failed to scan program: %w", err)
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

func (s *SQLStore) DeleteProgram(id string) error {
	return s.deleteOne("program", "DELETE FROM programs WHERE id = ?", id)
}

// Gyms

func (s *SQLStore) SaveGym(g models.Gym) error {
	workDays, err := encodeJSON(orEmpty(g.WorkDays))
	if err != nil {
		return fmt.Errorf("failed to encode work days: %w", err)
	}
	holidays, err := encodeJSON(orEmpty(g.HolidaysTaken))
	if err != nil {
		return fmt.Errorf("failed to encode holidays: %w", err)
	}
	err = s.exec(`INSERT INTO gyms (id, name, work_days, vacation_days, holidays_taken) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name, work_days = excluded.work_days,
			vacation_days = excluded.vacation_days, holidays_taken = excluded.holidays_taken`,
		g.ID, g.Name, workDays, g.VacationDays, holidays)
	if err != nil {
		return fmt.Errorf("failed to save gym: %w", err)
	}
	return nil
}

const gymColumns = "id, name, work_days, vacation_days, holidays_taken"

func scanGym(sc interface{ Scan(...any) error }) (models.Gym, error) {
	var g models.Gym
	var workDays, holidays string
	if err := sc.Scan(&g.ID, &g.Name, &workDays, &g.VacationDays, &holidays); err != nil {
		return models.Gym{}, err
	}
	if err := json.Unmarshal([]byte(workDays), &g.WorkDays); err != nil {
		return models.Gym{}, fmt.Errorf("gym %s: invalid work days: %w", g.ID, err)
	}
	if err := json.Unmarshal([]byte(holidays), &g.HolidaysTaken); err != nil {
		return models.Gym{}, fmt.Errorf("gym %s: invalid holidays: %w", g.ID, err)
	}
	return g, nil
}

func (s *SQLStore) GetGym(id string) (models.Gym, error) {
	g, err := scanGym(s.queryRow("SELECT "+gymColumns+" FROM gyms WHERE id = ?", id))
	if err != nil {
		return models.Gym{}, notFound("gym", id, err)
	}
	return g, nil
}

func (s *SQLStore) GetAllGyms() ([]models.Gym, error) {
	rows, err := s.query("SELECT " + gymColumns + " FROM gyms ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list gyms: %w", err)
	}
	defer rows.Close()

	var gyms []models.Gym
	for rows.Next() {
		g, err := scanGym(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gym: %w", err)
		}
		gyms = append(gyms, g)
	}
	return gyms, rows.Err()
}

func (s *SQLStore) DeleteGym(id string) error {
	return s.deleteOne("gym", "DELETE FROM gyms WHERE id = ?", id)
}

// Closures

func (s *SQLStore) SaveClosure(c models.GymClosure) error {
	err := s.exec(`INSERT INTO gym_closures (date, reason) VALUES (?, ?)
		ON CONFLICT (date) DO UPDATE SET reason = excluded.reason`, c.Date, c.Reason)
	if err != nil {
		return fmt.Errorf("failed to save closure: %w", err)
	}
	return nil
}

func (s *SQLStore) GetAllClosures() ([]models.GymClosure, error) {
	rows, err := s.query("SELECT date, reason FROM gym_closures ORDER BY date")
	if err != nil {
		return nil, fmt.Errorf("failed to list closures: %w", err)
	}
	defer rows.Close()

	var closures []models.GymClosure
	for rows.Next() {
		var c models.GymClosure
		if err := rows.Scan(&c.Date, &c.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan closure: %w", err)
		}
		closures = append(closures, c)
	}
	return closures, rows.Err()
}

func (s *SQLStore) DeleteClosure(date string) error {
	return s.deleteOne("closure", "DELETE FROM gym_closures WHERE date = ?", date)
}

// Fixed schedules

func (s *SQLStore) SaveFixedSchedule(f models.FixedSchedule) error {
	schedule := f.Schedule
	if schedule == nil {
		schedule = models.WeekdaySchedule{}
	}
	body, err := encodeJSON(schedule)
	if err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}
	err = s.exec(`INSERT INTO fixed_schedules (id, start_date, schedule) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET start_date = excluded.start_date, schedule = excluded.schedule`,
		f.ID, f.StartDate, body)
	if err != nil {
		return fmt.Errorf("failed to save fixed schedule: %w", err)
	}
	return nil
}

func scanFixedSchedule(sc interface{ Scan(...any) error }) (models.FixedSchedule, error) {
	var f models.FixedSchedule
	var body string
	if err := sc.Scan(&f.ID, &f.StartDate, &body); err != nil {
		return models.FixedSchedule{}, err
	}
	if err := json.Unmarshal([]byte(body), &f.Schedule); err != nil {
		return models.FixedSchedule{}, fmt.Errorf("fixed schedule %s: invalid schedule: %w", f.ID, err)
	}
	return f, nil
}

func (s *SQLStore) GetFixedSchedule(id string) (models.FixedSchedule, error) {
	f, err := scanFixedSchedule(s.queryRow("SELECT id, start_date, schedule FROM fixed_schedules WHERE id = ?", id))
	if err != nil {
		return models.FixedSchedule{}, notFound("fixed schedule", id, err)
	}
	return f, nil
}

func (s *SQLStore) GetAllFixedSchedules() ([]models.FixedSchedule, error) {
	rows, err := s.query("SELECT id, start_date, schedule FROM fixed_schedules ORDER BY start_date, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list fixed schedules: %w", err)
	}
	defer rows.Close()

	var versions []models.FixedSchedule
	for rows.Next() {
		f, err := scanFixedSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fixed schedule: %w", err)
		}
		versions = append(versions, f)
	}
	return versions, rows.Err()
}

func (s *SQLStore) DeleteFixedSchedule(id string) error {
	return s.deleteOne("fixed schedule", "DELETE FROM fixed_schedules WHERE id = ?", id)
}

// Recurring sessions

const recurringColumns = "id, program_id, time, gym_id, days, start_date, end_date, notes"

func (s *SQLStore) SaveRecurringSession(r models.RecurringSession) error {
	days, err := encodeJSON(orEmpty(r.Days))
	if err != nil {
		return fmt.Errorf("failed to encode days: %w", err)
	}
	err = s.exec(`INSERT INTO recurring_sessions (`+recurringColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			program_id = excluded.program_id, time = excluded.time, gym_id = excluded.gym_id,
			days = excluded.days, start_date = excluded.start_date, end_date = excluded.end_date,
			notes = excluded.notes`,
		r.ID, r.ProgramID, r.Time, r.GymID, days, r.StartDate, r.EndDate, r.Notes)
	if err != nil {
		return fmt.Errorf("failed to save recurring session: %w", err)
	}
	return nil
}

func scanRecurring(sc interface{ Scan(...any) error }) (models.RecurringSession, error) {
	var r models.RecurringSession
	var days string
	if err := sc.Scan(&r.ID, &r.ProgramID, &r.Time, &r.GymID, &days, &r.StartDate, &r.EndDate, &r.Notes); err != nil {
		return models.RecurringSession{}, err
	}
	if err := json.Unmarshal([]byte(days), &r.Days); err != nil {
		return models.RecurringSession{}, fmt.Errorf("recurring session %s: invalid days: %w", r.ID, err)
	}
	return r, nil
}

func (s *SQLStore) GetRecurringSession(id string) (models.RecurringSession, error) {
	r, err := scanRecurring(s.queryRow("SELECT "+recurringColumns+" FROM recurring_sessions WHERE id = ?", id))
	if err != nil {
		return models.RecurringSession{}, notFound("recurring session", id, err)
	}
	return r, nil
}

func (s *SQLStore) GetAllRecurringSessions() ([]models.RecurringSession, error) {
	rows, err := s.query("SELECT " + recurringColumns + " FROM recurring_sessions ORDER BY start_date, time, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.RecurringSession
	for rows.Next() {
		r, err := scanRecurring(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring session: %w", err)
		}
		sessions = append(sessions, r)
	}
	return sessions, rows.Err()
}

func (s *SQLStore) DeleteRecurringSession(id string) error {
	return s.deleteOne("recurring session", "DELETE FROM recurring_sessions WHERE id = ?", id)
}

// Overrides

func (s *SQLStore) SaveOverride(o models.ScheduleOverride) error {
	body, err := encodeJSON(orEmpty(o.Sessions))
	if err != nil {
		return fmt.Errorf("failed to encode override sessions: %w", err)
	}
	err = s.exec(`INSERT INTO schedule_overrides (date, sessions) VALUES (?, ?)
		ON CONFLICT (date) DO UPDATE SET sessions = excluded.sessions`, o.Date, body)
	if err != nil {
		return fmt.Errorf("failed to save override: %w", err)
	}
	return nil
}

func scanOverride(sc interface{ Scan(...any) error }) (models.ScheduleOverride, error) {
	var o models.ScheduleOverride
	var body string
	if err := sc.Scan(&o.Date, &body); err != nil {
		return models.ScheduleOverride{}, err
	}
	if err := json.Unmarshal([]byte(body), &o.Sessions); err != nil {
		return models.ScheduleOverride{}, fmt.Errorf("override %s: invalid sessions: %w", o.Date, err)
	}
	if o.Sessions == nil {
		o.Sessions = []models.SessionSlot{}
	}
	return o, nil
}

func (s *SQLStore) GetOverride(date string) (models.ScheduleOverride, error) {
	o, err := scanOverride(s.queryRow("SELECT date, sessions FROM schedule_overrides WHERE date = ?", date))
	if err != nil {
		return models.ScheduleOverride{}, notFound("override", date, err)
	}
	return o, nil
}

func (s *SQLStore) GetAllOverrides() ([]models.ScheduleOverride, error) {
	rows, err := s.query("SELECT date, sessions FROM schedule_overrides ORDER BY date")
	if err != nil {
		return nil, fmt.Errorf("failed to list overrides: %w", err)
	}
	defer rows.Close()

	var overrides []models.ScheduleOverride
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}

func (s *SQLStore) DeleteOverride(date string) error {
	return s.deleteOne("override", "DELETE FROM schedule_overrides WHERE date = ?", date)
}

// Missed days

func (s *SQLStore) SaveMissedDay(m models.MissedDay) error {
	gymID := m.GymID
	if gymID == "" {
		gymID = models.AllGyms
	}
	err := s.exec(`INSERT INTO missed_days (date, id, gym_id, notes) VALUES (?, ?, ?, ?)
		ON CONFLICT (date) DO UPDATE SET gym_id = excluded.gym_id, notes = excluded.notes`,
		m.Date, m.ID, gymID, m.Notes)
	if err != nil {
		return fmt.Errorf("failed to save missed day: %w", err)
	}
	return nil
}

func (s *SQLStore) GetAllMissedDays() ([]models.MissedDay, error) {
	rows, err := s.query("SELECT id, date, gym_id, notes FROM missed_days ORDER BY date")
	if err != nil {
		return nil, fmt.Errorf("failed to list missed days: %w", err)
	}
	defer rows.Close()

	var missed []models.MissedDay
	for rows.Next() {
		var m models.MissedDay
		if err := rows.Scan(&m.ID, &m.Date, &m.GymID, &m.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan missed day: %w", err)
		}
		missed = append(missed, m)
	}
	return missed, rows.Err()
}

func (s *SQLStore) DeleteMissedDay(date string) error {
	return s.deleteOne("missed day", "DELETE FROM missed_days WHERE date = ?", date)
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
