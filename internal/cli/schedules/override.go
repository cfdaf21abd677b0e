package schedules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jugucan/gymsched/internal/cli"
	"github.com/jugucan/gymsched/internal/models"
	"github.com/jugucan/gymsched/internal/storage"
)

// OverrideSetCmd replaces everything scheduled on a date. Passing no
// sessions clears the day.
type OverrideSetCmd struct {
	Date     string   `arg:"" help:"Date to override."`
	Sessions []string `arg:"" optional:"" help:"Sessions as program@HH:MM@gym."`
}

func (c *OverrideSetCmd) Run(ctx *cli.Context) error {
	key, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}

	sessions := make([]models.SessionSlot, 0, len(c.Sessions))
	for _, spec := range c.Sessions {
		slot, err := cli.ParseSession(spec)
		if err != nil {
			return err
		}
		sessions = append(sessions, slot)
	}

	if existing, err := ctx.Store.GetOverride(key); err == nil {
		fmt.Printf("Replacing existing override on %s (%d sessions)\n", key, len(existing.Sessions))
	}
	if err := ctx.Store.SaveOverride(models.ScheduleOverride{Date: key, Sessions: sessions}); err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Printf("Cleared all sessions on %s\n", key)
		return nil
	}
	fmt.Printf("Override saved for %s with %d sessions\n", key, len(sessions))
	return nil
}

// OverrideClearCmd removes the override so the regular schedule applies again.
type OverrideClearCmd struct {
	Date string `arg:"" help:"Date whose override is removed."`
}

func (c *OverrideClearCmd) Run(ctx *cli.Context) error {
	key, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteOverride(key); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Printf("⊘ No override on %s\n", key)
			return nil
		}
		return fmt.Errorf("failed to delete override: %w", err)
	}
	fmt.Printf("Removed override on %s\n", key)
	return nil
}

type OverrideListCmd struct{}

func (c *OverrideListCmd) Run(ctx *cli.Context) error {
	overrides, err := ctx.Store.GetAllOverrides()
	if err != nil {
		return fmt.Errorf("failed to get overrides: %w", err)
	}
	if len(overrides) == 0 {
		fmt.Println("No overrides found")
		return nil
	}
	rows := make([][]string, 0, len(overrides))
	for _, o := range overrides {
		if len(o.Sessions) == 0 {
			rows = append(rows, []string{o.Date, "(cleared)"})
			continue
		}
		specs := make([]string, len(o.Sessions))
		for i, s := range o.Sessions {
			specs[i] = cli.FormatSession(s)
		}
		rows = append(rows, []string{o.Date, strings.Join(specs, ", ")})
	}
	fmt.Println(cli.Table([]string{"Date", "Sessions"}, rows))
	return nil
}

// OverrideShowCmd prints the resolved sessions for a date and where each
// one came from.
type OverrideShowCmd struct {
	Date string `arg:"" optional:"" help:"Date to resolve (defaults to today)."`
}

func (c *OverrideShowCmd) Run(ctx *cli.Context) error {
	key, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	snap, err := ctx.Snapshot()
	if err != nil {
		return err
	}

	sessions := ctx.Scheduler.ResolveSnapshot(key, snap)
	if ctx.Scheduler.IsOverridden(key, snap.Overrides) {
		fmt.Printf("%s is overridden\n", key)
	}
	if len(sessions) == 0 {
		fmt.Printf("No sessions on %s\n", key)
		return nil
	}
	fmt.Println(cli.SessionsTable(sessions, snap.ProgramsByID(), snap.GymsByID()))
	return nil
}
