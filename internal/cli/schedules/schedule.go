package schedules

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/jugucan/gymsched/internal/cli"
	"github.com/jugucan/gymsched/internal/models"
)

type ScheduleAddCmd struct {
	ID    string   `help:"Version id (generated when omitted)."`
	Start string   `help:"First day this version applies." required:""`
	Slots []string `help:"Weekly slot as weekday=program@HH:MM@gym. Repeatable." name:"slot" required:""`
}

func (c *ScheduleAddCmd) Run(ctx *cli.Context) error {
	start, err := ctx.ParseDate(c.Start)
	if err != nil {
		return err
	}
	sched, err := cli.BuildSchedule(c.Slots)
	if err != nil {
		return err
	}

	versions, err := ctx.Store.GetAllFixedSchedules()
	if err != nil {
		return fmt.Errorf("failed to get fixed schedules: %w", err)
	}
	for _, v := range versions {
		if v.ID != c.ID && ctx.Scheduler.Dates().ToDateKey(v.StartDate) == start {
			fmt.Printf("⚠️  Version %s also starts on %s; the one stored later wins.\n", v.ID, start)
		}
	}

	id := c.ID
	if id == "" {
		id = cli.NewID()
	}
	if err := ctx.Store.SaveFixedSchedule(models.FixedSchedule{ID: id, StartDate: start, Schedule: sched}); err != nil {
		return err
	}
	fmt.Printf("Saved fixed schedule %s starting %s\n", id, start)
	return nil
}

type ScheduleListCmd struct{}

func (c *ScheduleListCmd) Run(ctx *cli.Context) error {
	versions, err := ctx.Store.GetAllFixedSchedules()
	if err != nil {
		return fmt.Errorf("failed to get fixed schedules: %w", err)
	}
	if len(versions) == 0 {
		fmt.Println("No fixed schedules found")
		return nil
	}
	sort.SliceStable(versions, func(i, j int) bool {
		return ctx.Scheduler.Dates().Compare(versions[i].StartDate, versions[j].StartDate) < 0
	})

	active, hasActive := ctx.Scheduler.ActiveVersion(ctx.Today(), versions)
	rows := make([][]string, 0, len(versions))
	for _, v := range versions {
		count := 0
		for _, slots := range v.Schedule {
			count += len(slots)
		}
		marker := ""
		if hasActive && v.ID == active.ID {
			marker = "active"
		}
		rows = append(rows, []string{v.ID, v.StartDate, strconv.Itoa(count), marker})
	}
	fmt.Println(cli.Table([]string{"ID", "Start", "Slots", ""}, rows))
	return nil
}

type ScheduleShowCmd struct {
	Date string `arg:"" optional:"" help:"Show the version in effect on this date (defaults to today)."`
}

func (c *ScheduleShowCmd) Run(ctx *cli.Context) error {
	key, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	snap, err := ctx.Snapshot()
	if err != nil {
		return err
	}

	version, ok := ctx.Scheduler.ActiveVersion(key, snap.FixedSchedules)
	if !ok {
		fmt.Printf("No fixed schedule in effect on %s\n", key)
		return nil
	}
	sched := version.Schedule

	programs := snap.ProgramsByID()
	gyms := snap.GymsByID()
	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Fixed schedule %s (since %s) in effect on %s", version.ID, version.StartDate, key)))
	rows := [][]string{}
	for _, d := range models.AllWeekdays {
		for _, s := range sched[d] {
			program, gym := s.ProgramID, s.GymID
			if p, ok := programs[s.ProgramID]; ok {
				program = p.DisplayName()
			}
			if g, ok := gyms[s.GymID]; ok {
				gym = g.Name
			}
			rows = append(rows, []string{d.Title(), s.Time, program, gym, s.Notes})
		}
	}
	fmt.Println(cli.Table([]string{"Day", "Time", "Program", "Gym", "Notes"}, rows))
	return nil
}

type ScheduleDeleteCmd struct {
	ID string `arg:"" help:"Version id to delete."`
}

func (c *ScheduleDeleteCmd) Run(ctx *cli.Context) error {
	v, err := ctx.Store.GetFixedSchedule(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find fixed schedule with ID %s: %w", c.ID, err)
	}
	if err := ctx.Confirm(fmt.Sprintf("Delete the fixed schedule starting %s?", v.StartDate)); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	if err := ctx.Store.DeleteFixedSchedule(c.ID); err != nil {
		return fmt.Errorf("failed to delete fixed schedule: %w", err)
	}
	fmt.Printf("Deleted fixed schedule %s\n", c.ID)
	return nil
}
