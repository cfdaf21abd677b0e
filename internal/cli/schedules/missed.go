package schedules

import (
	"errors"
	"fmt"

	"github.com/jugucan/gymsched/internal/cli"
	"github.com/jugucan/gymsched/internal/models"
	"github.com/jugucan/gymsched/internal/storage"
)

type MissedAddCmd struct {
	Date  string `arg:"" optional:"" help:"Day missed (defaults to today)."`
	Gym   string `help:"Gym id, or 'all' when no gym was attended." default:"all"`
	Notes string `help:"Reason, e.g. sick leave."`
}

func (c *MissedAddCmd) Run(ctx *cli.Context) error {
	key, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	if c.Gym != models.AllGyms {
		if _, err := ctx.Store.GetGym(c.Gym); err != nil {
			return fmt.Errorf("failed to find gym with ID %s: %w", c.Gym, err)
		}
	}
	m := models.MissedDay{ID: cli.NewID(), Date: key, GymID: c.Gym, Notes: c.Notes}
	if err := ctx.Store.SaveMissedDay(m); err != nil {
		return err
	}
	fmt.Printf("✓ Marked %s as missed\n", key)
	return nil
}

type MissedRemoveCmd struct {
	Date string `arg:"" help:"Day to un-mark."`
}

func (c *MissedRemoveCmd) Run(ctx *cli.Context) error {
	key, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteMissedDay(key); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Printf("⊘ %s is not marked as missed\n", key)
			return nil
		}
		return fmt.Errorf("failed to delete missed day: %w", err)
	}
	fmt.Printf("Removed missed day %s\n", key)
	return nil
}

type MissedListCmd struct {
	Period string `arg:"" optional:"" help:"Only list days in this period (YYYY-MM)."`
}

func (c *MissedListCmd) Run(ctx *cli.Context) error {
	missed, err := ctx.Store.GetAllMissedDays()
	if err != nil {
		return fmt.Errorf("failed to get missed days: %w", err)
	}

	from, to := "", ""
	if c.Period != "" {
		b, err := ctx.Builder()
		if err != nil {
			return err
		}
		period, err := b.PeriodRangeFor(c.Period)
		if err != nil {
			return err
		}
		n := ctx.Scheduler.Dates()
		from, to = n.ToDateKey(period.Start), n.ToDateKey(period.End)
	}

	rows := [][]string{}
	for _, m := range missed {
		if from != "" && (m.Date < from || m.Date > to) {
			continue
		}
		rows = append(rows, []string{m.Date, m.GymID, m.Notes})
	}
	if len(rows) == 0 {
		fmt.Println("No missed days found")
		return nil
	}
	fmt.Println(cli.Table([]string{"Date", "Gym", "Notes"}, rows))
	return nil
}
