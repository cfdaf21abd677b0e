package schedules

import (
	"fmt"

	"github.com/jugucan/gymsched/internal/cli"
	"github.com/jugucan/gymsched/internal/constants"
	"github.com/jugucan/gymsched/internal/dates"
	"github.com/jugucan/gymsched/internal/models"
)

type RecurringAddCmd struct {
	ID      string `help:"Session id (generated when omitted)."`
	Program string `help:"Program id." required:""`
	Time    string `help:"Start time (HH:MM)." required:""`
	Gym     string `help:"Gym id." required:""`
	Days    string `help:"Comma-separated weekdays, e.g. mon,wed or dl,dc." required:""`
	Start   string `help:"First day the session runs (defaults to today)."`
	End     string `help:"Last day the session runs. Omit for open-ended."`
	Notes   string `help:"Free-form notes."`
}

func (c *RecurringAddCmd) Run(ctx *cli.Context) error {
	if !dates.ValidTime(c.Time) {
		return fmt.Errorf("invalid time %q, use HH:MM", c.Time)
	}
	days, err := models.ParseWeekdays(c.Days)
	if err != nil {
		return err
	}
	if len(days) == 0 {
		return fmt.Errorf("at least one weekday is required")
	}

	start, err := ctx.ParseDate(c.Start)
	if err != nil {
		return err
	}
	end := ""
	if c.End != "" {
		if end, err = ctx.ParseDate(c.End); err != nil {
			return err
		}
		if end < start {
			return fmt.Errorf("end date %s is before start date %s", end, start)
		}
	}

	if _, err := ctx.Store.GetProgram(c.Program); err != nil {
		fmt.Printf("⚠️  Program %s is not in the catalog\n", c.Program)
	}
	if _, err := ctx.Store.GetGym(c.Gym); err != nil {
		fmt.Printf("⚠️  Gym %s is not in the catalog\n", c.Gym)
	}

	id := c.ID
	if id == "" {
		id = cli.NewID()
	}
	r := models.RecurringSession{
		ID:        id,
		ProgramID: c.Program,
		Time:      c.Time,
		GymID:     c.Gym,
		Days:      days,
		StartDate: start,
		EndDate:   end,
		Notes:     c.Notes,
	}
	if err := ctx.Store.SaveRecurringSession(r); err != nil {
		return err
	}
	fmt.Printf("Saved recurring session %s (%s on %s from %s)\n", id, cli.FormatSession(r.Slot()), cli.FormatWeekdays(days), start)
	return nil
}

type RecurringListCmd struct {
	Active bool `help:"Only show sessions running today."`
}

func (c *RecurringListCmd) Run(ctx *cli.Context) error {
	sessions, err := ctx.Store.GetAllRecurringSessions()
	if err != nil {
		return fmt.Errorf("failed to get recurring sessions: %w", err)
	}

	today := ctx.Today().Format(constants.DateFormat)
	rows := [][]string{}
	for _, r := range sessions {
		running := r.StartDate <= today && (r.EndDate == "" || r.EndDate >= today)
		if c.Active && !running {
			continue
		}
		end := r.EndDate
		if end == "" {
			end = "-"
		}
		rows = append(rows, []string{r.ID, cli.FormatSession(r.Slot()), cli.FormatWeekdays(r.Days), r.StartDate, end, r.Notes})
	}
	if len(rows) == 0 {
		fmt.Println("No recurring sessions found")
		return nil
	}
	fmt.Println(cli.Table([]string{"ID", "Session", "Days", "Start", "End", "Notes"}, rows))
	return nil
}

// RecurringEndCmd closes an open-ended session instead of deleting it, so
// past periods still report it.
type RecurringEndCmd struct {
	ID   string `arg:"" help:"Session id."`
	Date string `arg:"" optional:"" help:"Last day the session runs (defaults to today)."`
}

func (c *RecurringEndCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Store.GetRecurringSession(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find recurring session with ID %s: %w", c.ID, err)
	}
	end, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	if start := ctx.Scheduler.Dates().ToDateKey(r.StartDate); start != "" && end < start {
		return fmt.Errorf("end date %s is before start date %s", end, start)
	}
	r.EndDate = end
	if err := ctx.Store.SaveRecurringSession(r); err != nil {
		return err
	}
	fmt.Printf("Recurring session %s now ends on %s\n", r.ID, end)
	return nil
}

type RecurringDeleteCmd struct {
	ID string `arg:"" help:"Session id."`
}

func (c *RecurringDeleteCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Store.GetRecurringSession(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find recurring session with ID %s: %w", c.ID, err)
	}
	if err := ctx.Confirm(fmt.Sprintf("Delete recurring session %s? Past periods will no longer count it.", cli.FormatSession(r.Slot()))); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	if err := ctx.Store.DeleteRecurringSession(c.ID); err != nil {
		return fmt.Errorf("failed to delete recurring session: %w", err)
	}
	fmt.Printf("Deleted recurring session %s\n", c.ID)
	return nil
}
