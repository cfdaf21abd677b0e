package models

// Program is reference data for a fitness program; sessions refer to it by ID.
type Program struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ShortName   string `json:"short_name"`
	Color       string `json:"color"`
	ReleaseDate string `json:"release_date,omitempty"`
}

// DisplayName prefers the short name.
func (p Program) DisplayName() string {
	if p.ShortName != "" {
		return p.ShortName
	}
	return p.Name
}

type Gym struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	WorkDays      []Weekday `json:"work_days"`
	VacationDays  int       `json:"vacation_days"`  // annual allotment
	HolidaysTaken []string  `json:"holidays_taken"` // date keys
}

// GymClosure is a calendar-wide non-working date, independent of any gym.
type GymClosure struct {
	Date   string `json:"date"`
	Reason string `json:"reason,omitempty"`
}

// AllGyms is the MissedDay.GymID sentinel for an absence covering every gym.
const AllGyms = "all"

type MissedDay struct {
	ID    string `json:"id"`
	Date  string `json:"date"` // YYYY-MM-DD format
	GymID string `json:"gym_id"`
	Notes string `json:"notes,omitempty"`
}
