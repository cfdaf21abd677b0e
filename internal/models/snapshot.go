package models

// Snapshot holds the full contents of every collection at one point in time.
// Resolution always runs against a snapshot the caller has just loaded.
type Snapshot struct {
	Programs          []Program
	Gyms              []Gym
	Closures          []GymClosure
	FixedSchedules    []FixedSchedule
	RecurringSessions []RecurringSession
	Overrides         []ScheduleOverride
	MissedDays        []MissedDay
}

func (s Snapshot) ProgramsByID() map[string]Program {
	m := make(map[string]Program, len(s.Programs))
	for _, p := range s.Programs {
		if _, ok := m[p.ID]; !ok {
			m[p.ID] = p
		}
	}
	return m
}

func (s Snapshot) GymsByID() map[string]Gym {
	m := make(map[string]Gym, len(s.Gyms))
	for _, g := range s.Gyms {
		if _, ok := m[g.ID]; !ok {
			m[g.ID] = g
		}
	}
	return m
}
