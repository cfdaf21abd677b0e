package storage

import (
	"errors"

	"github.com/jugucan/gymsched/internal/models"
)

var ErrNotFound = errors.New("not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Programs
	SaveProgram(models.Program) error
	GetProgram(id string) (models.Program, error)
	GetAllPrograms() ([]models.Program, error)
	DeleteProgram(id string) error

	// Gyms
	SaveGym(models.Gym) error
	GetGym(id string) (models.Gym, error)
	GetAllGyms() ([]models.Gym, error)
	DeleteGym(id string) error

	// Closures are keyed by date; saving a closure for an existing date replaces it.
	SaveClosure(models.GymClosure) error
	GetAllClosures() ([]models.GymClosure, error)
	DeleteClosure(date string) error

	// Fixed schedule versions
	SaveFixedSchedule(models.FixedSchedule) error
	GetFixedSchedule(id string) (models.FixedSchedule, error)
	GetAllFixedSchedules() ([]models.FixedSchedule, error)
	DeleteFixedSchedule(id string) error

	// Recurring sessions
	SaveRecurringSession(models.RecurringSession) error
	GetRecurringSession(id string) (models.RecurringSession, error)
	GetAllRecurringSessions() ([]models.RecurringSession, error)
	DeleteRecurringSession(id string) error

	// Overrides are keyed by date.
	SaveOverride(models.ScheduleOverride) error
	GetOverride(date string) (models.ScheduleOverride, error)
	GetAllOverrides() ([]models.ScheduleOverride, error)
	DeleteOverride(date string) error

	// Missed days are keyed by date.
	SaveMissedDay(models.MissedDay) error
	GetAllMissedDays() ([]models.MissedDay, error)
	DeleteMissedDay(date string) error

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by the SQL backends.
type Migrator interface {
	Migrate(progress func(string)) error
	SchemaVersion() (current, latest int, err error)
}
