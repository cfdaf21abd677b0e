package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jugucan/gymsched/internal/cli"
	"github.com/jugucan/gymsched/internal/models"
	"github.com/jugucan/gymsched/internal/seed"
)

type ClosureAddCmd struct {
	Date   string `arg:"" help:"Closure date."`
	Reason string `arg:"" optional:"" help:"Why every gym is closed."`
}

func (c *ClosureAddCmd) Run(ctx *cli.Context) error {
	key, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveClosure(models.GymClosure{Date: key, Reason: c.Reason}); err != nil {
		return err
	}
	fmt.Printf("Added closure on %s\n", key)
	return nil
}

type ClosureListCmd struct {
	Year int `help:"Only show closures of this year."`
}

func (c *ClosureListCmd) Run(ctx *cli.Context) error {
	closures, err := ctx.Store.GetAllClosures()
	if err != nil {
		return fmt.Errorf("failed to get closures: %w", err)
	}
	sort.SliceStable(closures, func(i, j int) bool { return closures[i].Date < closures[j].Date })

	rows := [][]string{}
	prefix := ""
	if c.Year != 0 {
		prefix = strconv.Itoa(c.Year) + "-"
	}
	for _, cl := range closures {
		if !strings.HasPrefix(cl.Date, prefix) {
			continue
		}
		day, ok := ctx.Scheduler.Dates().NormalizeToStartOfDay(cl.Date)
		weekday := "?"
		if ok {
			weekday = models.WeekdayOf(day).Title()
		}
		rows = append(rows, []string{cl.Date, weekday, cl.Reason})
	}
	if len(rows) == 0 {
		fmt.Println("No closures found")
		return nil
	}
	fmt.Println(cli.Table([]string{"Date", "Day", "Reason"}, rows))
	return nil
}

type ClosureDeleteCmd struct {
	Date string `arg:"" help:"Closure date to delete."`
}

func (c *ClosureDeleteCmd) Run(ctx *cli.Context) error {
	key, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteClosure(key); err != nil {
		return fmt.Errorf("failed to delete closure: %w", err)
	}
	fmt.Printf("Deleted closure on %s\n", key)
	return nil
}

type ClosureSeedCmd struct {
	Year      int  `help:"Year to seed (defaults to the current one)."`
	Overwrite bool `help:"Replace the reason of closures that already exist."`
}

func (c *ClosureSeedCmd) Run(ctx *cli.Context) error {
	year := c.Year
	if year == 0 {
		year = ctx.Today().Year()
	}

	existing, err := ctx.Store.GetAllClosures()
	if err != nil {
		return fmt.Errorf("failed to get closures: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, cl := range existing {
		have[ctx.Scheduler.Dates().ToDateKey(cl.Date)] = true
	}

	added := 0
	for _, cl := range seed.CatalanHolidays(year) {
		if have[cl.Date] && !c.Overwrite {
			continue
		}
		if err := ctx.Store.SaveClosure(cl); err != nil {
			return err
		}
		added++
	}
	fmt.Printf("Seeded %d public holiday closure(s) for %d\n", added, year)
	return nil
}
