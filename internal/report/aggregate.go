package report

import (
	"sort"

	"github.com/jugucan/gymsched/internal/models"
)

// GymCount is one gym's share of a period.
type GymCount struct {
	GymID string         `json:"gym_id"`
	Name  string         `json:"name"`
	Known bool           `json:"known"`
	Count int            `json:"count"`
	Daily map[string]int `json:"daily"` // date key -> sessions
}

type Summary struct {
	Period            models.PeriodRange             `json:"-"`
	PerGym            map[string]*GymCount           `json:"per_gym"`
	TotalSessions     int                            `json:"total_sessions"`
	TotalMinutes      int                            `json:"total_minutes"`
	TotalVacationDays int                            `json:"total_vacation_days"`
	WorkedDays        int                            `json:"worked_days"`
	ExcludedDays      map[models.ExclusionReason]int `json:"excluded_days"`
}

// Gyms returns the per-gym counts, known gyms first, each group by name.
func (s Summary) Gyms() []GymCount {
	out := make([]GymCount, 0, len(s.PerGym))
	for _, g := range s.PerGym {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Known != out[j].Known {
			return out[i].Known
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].GymID < out[j].GymID
	})
	return out
}

// Aggregate counts the sessions of every day in period. An excluded day
// contributes no sessions; when it was excluded as missed it adds one
// vacation day. Sessions naming a gym that is not in snap are still counted,
// under a bucket keyed by the raw gym id.
func (b *Builder) Aggregate(period models.PeriodRange, snap models.Snapshot) Summary {
	sum := Summary{
		Period:       period,
		PerGym:       make(map[string]*GymCount, len(snap.Gyms)),
		ExcludedDays: make(map[models.ExclusionReason]int),
	}
	for _, g := range snap.Gyms {
		if _, ok := sum.PerGym[g.ID]; ok {
			continue
		}
		sum.PerGym[g.ID] = &GymCount{GymID: g.ID, Name: g.Name, Known: true, Daily: make(map[string]int)}
	}

	for _, day := range period.Days() {
		ex := b.sched.ClassifySnapshot(day, snap)
		if ex.Excluded {
			sum.ExcludedDays[ex.Reason]++
			if ex.Reason == models.ReasonMissed {
				sum.TotalVacationDays++
			}
			continue
		}

		sessions := b.sched.ResolveSnapshot(day, snap)
		if len(sessions) > 0 {
			sum.WorkedDays++
		}
		key := b.sched.Dates().ToDateKey(day)
		for _, s := range sessions {
			g, ok := sum.PerGym[s.GymID]
			if !ok {
				g = &GymCount{GymID: s.GymID, Name: s.GymID, Daily: make(map[string]int)}
				sum.PerGym[s.GymID] = g
			}
			g.Count++
			g.Daily[key]++
			sum.TotalSessions++
			sum.TotalMinutes += b.sessionMinutes
		}
	}
	return sum
}
