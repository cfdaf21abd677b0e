package reports

import (
	"fmt"
	"time"

	"github.com/jugucan/gymsched/internal/cli"
	"github.com/jugucan/gymsched/internal/models"
	"github.com/jugucan/gymsched/internal/report"
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD, DD-MM-YYYY, today, tomorrow, yesterday)."`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	key, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	snap, err := ctx.Snapshot()
	if err != nil {
		return err
	}
	b, err := ctx.Builder()
	if err != nil {
		return err
	}

	row := dayRow(ctx, b, key, snap)
	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s %s", row.Weekday.Title(), row.Date)))
	fmt.Printf("Type: %s\n", row.DayType)
	if row.Notes != "" {
		fmt.Printf("Notes: %s\n", row.Notes)
	}
	if len(row.Sessions) == 0 {
		fmt.Println(cli.MutedStyle.Render("No sessions."))
		return nil
	}
	fmt.Println(cli.SessionsTable(row.Sessions, snap.ProgramsByID(), snap.GymsByID()))
	fmt.Printf("Worked: %d min\n", row.Minutes)
	return nil
}

func dayRow(ctx *cli.Context, b *report.Builder, day any, snap models.Snapshot) report.Row {
	return b.BuildRow(day,
		ctx.Scheduler.ResolveSnapshot(day, snap),
		ctx.Scheduler.ClassifySnapshot(day, snap),
		ctx.Scheduler.IsOverridden(day, snap.Overrides),
		snap.ProgramsByID(), snap.GymsByID(),
	)
}

type WeekCmd struct {
	Date string `arg:"" optional:"" help:"Any date of the week to show (defaults to today)."`
}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	key, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	snap, err := ctx.Snapshot()
	if err != nil {
		return err
	}
	b, err := ctx.Builder()
	if err != nil {
		return err
	}

	rows := WeekRows(ctx, b, key, snap)
	total := 0
	for _, r := range rows {
		total += r.Minutes
	}
	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Week of %s", rows[0].Date)))
	fmt.Println(cli.RowsTable(rows))
	fmt.Printf("Worked: %d min (%.1f h)\n", total, float64(total)/60.0)
	return nil
}

// WeekRows returns Monday to Sunday of the week containing key.
func WeekRows(ctx *cli.Context, b *report.Builder, key string, snap models.Snapshot) []report.Row {
	day, _ := ctx.Scheduler.Dates().NormalizeToStartOfDay(key)
	monday := day.AddDate(0, 0, -int(models.WeekdayOf(day)))

	rows := make([]report.Row, 0, 7)
	for i := 0; i < 7; i++ {
		d := time.Date(monday.Year(), monday.Month(), monday.Day()+i, 0, 0, 0, 0, monday.Location())
		rows = append(rows, dayRow(ctx, b, d, snap))
	}
	return rows
}
