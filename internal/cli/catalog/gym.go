package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/jugucan/gymsched/internal/cli"
	"github.com/jugucan/gymsched/internal/models"
	"github.com/jugucan/gymsched/internal/storage"
)

type GymAddCmd struct {
	ID           string `arg:"" help:"Gym id, e.g. gym_a."`
	Name         string `arg:"" help:"Display name."`
	WorkDays     string `help:"Comma-separated weekdays worked at this gym (mon,wed or dilluns,dimecres)."`
	VacationDays int    `help:"Annual vacation allotment in days." default:"0"`
}

func (c *GymAddCmd) Run(ctx *cli.Context) error {
	days, err := models.ParseWeekdays(c.WorkDays)
	if err != nil {
		return err
	}
	if c.VacationDays < 0 {
		return fmt.Errorf("vacation days cannot be negative")
	}

	gym := models.Gym{ID: c.ID, Name: c.Name, WorkDays: days, VacationDays: c.VacationDays, HolidaysTaken: []string{}}
	existing, err := ctx.Store.GetGym(c.ID)
	switch {
	case err == nil:
		gym.HolidaysTaken = existing.HolidaysTaken
	case !errors.Is(err, storage.ErrNotFound):
		return err
	}

	if err := ctx.Store.SaveGym(gym); err != nil {
		return err
	}
	fmt.Printf("Saved gym: %s (%s)\n", gym.Name, gym.ID)
	return nil
}

type GymListCmd struct{}

func (c *GymListCmd) Run(ctx *cli.Context) error {
	gyms, err := ctx.Store.GetAllGyms()
	if err != nil {
		return fmt.Errorf("failed to get gyms: %w", err)
	}
	if len(gyms) == 0 {
		fmt.Println("No gyms found")
		return nil
	}
	sort.SliceStable(gyms, func(i, j int) bool { return gyms[i].ID < gyms[j].ID })

	rows := make([][]string, 0, len(gyms))
	for _, g := range gyms {
		rows = append(rows, []string{g.ID, g.Name, cli.FormatWeekdays(g.WorkDays), strconv.Itoa(g.VacationDays), strconv.Itoa(len(g.HolidaysTaken))})
	}
	fmt.Println(cli.Table([]string{"ID", "Name", "Work days", "Vacation", "Taken"}, rows))
	return nil
}

type GymDeleteCmd struct {
	ID string `arg:"" help:"Gym id to delete."`
}

func (c *GymDeleteCmd) Run(ctx *cli.Context) error {
	g, err := ctx.Store.GetGym(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find gym with ID %s: %w", c.ID, err)
	}
	if err := ctx.Confirm(fmt.Sprintf("Delete gym %s? Its sessions keep counting under the raw id.", g.Name)); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	if err := ctx.Store.DeleteGym(c.ID); err != nil {
		return fmt.Errorf("failed to delete gym: %w", err)
	}
	fmt.Printf("Deleted gym: %s (ID: %s)\n", g.Name, c.ID)
	return nil
}

type GymHolidayAddCmd struct {
	Gym   string   `arg:"" help:"Gym id."`
	Dates []string `arg:"" help:"Dates taken as holiday."`
}

func (c *GymHolidayAddCmd) Run(ctx *cli.Context) error {
	g, err := ctx.Store.GetGym(c.Gym)
	if err != nil {
		return fmt.Errorf("failed to find gym with ID %s: %w", c.Gym, err)
	}
	added := 0
	for _, d := range c.Dates {
		key, err := ctx.ParseDate(d)
		if err != nil {
			return err
		}
		if slices.Contains(g.HolidaysTaken, key) {
			continue
		}
		g.HolidaysTaken = append(g.HolidaysTaken, key)
		added++
	}
	sort.Strings(g.HolidaysTaken)
	if err := ctx.Store.SaveGym(g); err != nil {
		return err
	}
	fmt.Printf("Added %d holiday(s) to %s\n", added, g.Name)
	return nil
}

type GymHolidayRemoveCmd struct {
	Gym   string   `arg:"" help:"Gym id."`
	Dates []string `arg:"" help:"Dates to remove."`
}

func (c *GymHolidayRemoveCmd) Run(ctx *cli.Context) error {
	g, err := ctx.Store.GetGym(c.Gym)
	if err != nil {
		return fmt.Errorf("failed to find gym with ID %s: %w", c.Gym, err)
	}
	remove := map[string]bool{}
	for _, d := range c.Dates {
		key, err := ctx.ParseDate(d)
		if err != nil {
			return err
		}
		remove[key] = true
	}
	kept := g.HolidaysTaken[:0]
	for _, h := range g.HolidaysTaken {
		if !remove[ctx.Scheduler.Dates().ToDateKey(h)] {
			kept = append(kept, h)
		}
	}
	removed := len(g.HolidaysTaken) - len(kept)
	g.HolidaysTaken = kept
	if err := ctx.Store.SaveGym(g); err != nil {
		return err
	}
	fmt.Printf("Removed %d holiday(s) from %s\n", removed, g.Name)
	return nil
}

// VacationBalance is a gym's allotment against the holidays taken in a year.
type VacationBalance struct {
	Gym       models.Gym
	Year      int
	Taken     []string
	Remaining int
}

// Balance counts the holidays of g that fall in year.
func Balance(ctx *cli.Context, g models.Gym, year int) VacationBalance {
	b := VacationBalance{Gym: g, Year: year}
	prefix := strconv.Itoa(year) + "-"
	for _, h := range g.HolidaysTaken {
		if key := ctx.Scheduler.Dates().ToDateKey(h); strings.HasPrefix(key, prefix) {
			b.Taken = append(b.Taken, key)
		}
	}
	sort.Strings(b.Taken)
	b.Remaining = g.VacationDays - len(b.Taken)
	return b
}

type GymVacationCmd struct {
	Gym  string `arg:"" optional:"" help:"Gym id (all gyms when omitted)."`
	Year int    `help:"Calendar year (defaults to the current one)."`
}

func (c *GymVacationCmd) Run(ctx *cli.Context) error {
	year := c.Year
	if year == 0 {
		year = ctx.Today().Year()
	}

	var gyms []models.Gym
	if c.Gym != "" {
		g, err := ctx.Store.GetGym(c.Gym)
		if err != nil {
			return fmt.Errorf("failed to find gym with ID %s: %w", c.Gym, err)
		}
		gyms = []models.Gym{g}
	} else {
		all, err := ctx.Store.GetAllGyms()
		if err != nil {
			return fmt.Errorf("failed to get gyms: %w", err)
		}
		gyms = all
	}

	rows := make([][]string, 0, len(gyms))
	for _, g := range gyms {
		b := Balance(ctx, g, year)
		remaining := strconv.Itoa(b.Remaining)
		if b.Remaining < 0 {
			remaining = cli.WarnStyle.Render(remaining)
		}
		rows = append(rows, []string{g.Name, strconv.Itoa(g.VacationDays), strconv.Itoa(len(b.Taken)), remaining})
	}
	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Vacation %d", year)))
	fmt.Println(cli.Table([]string{"Gym", "Allotment", "Taken", "Remaining"}, rows))
	return nil
}
