package storage

import (
	"fmt"

	"github.com/jugucan/gymsched/internal/models"
)

// LoadSnapshot reads every collection in full. Nothing is cached: each call
// sees the current contents of the store.
func LoadSnapshot(p Provider) (models.Snapshot, error) {
	var snap models.Snapshot
	var err error

	if snap.Programs, err = p.GetAllPrograms(); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load programs: %w", err)
	}
	if snap.Gyms, err = p.GetAllGyms(); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load gyms: %w", err)
	}
	if snap.Closures, err = p.GetAllClosures(); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load closures: %w", err)
	}
	if snap.FixedSchedules, err = p.GetAllFixedSchedules(); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load fixed schedules: %w", err)
	}
	if snap.RecurringSessions, err = p.GetAllRecurringSessions(); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load recurring sessions: %w", err)
	}
	if snap.Overrides, err = p.GetAllOverrides(); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load overrides: %w", err)
	}
	if snap.MissedDays, err = p.GetAllMissedDays(); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load missed days: %w", err)
	}
	return snap, nil
}
