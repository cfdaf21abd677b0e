package settings

import (
	"fmt"

	"github.com/jugucan/gymsched/internal/cli"
	"github.com/jugucan/gymsched/internal/dates"
)

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	fmt.Println("Current Settings:")
	fmt.Printf("  Timezone:        %s\n", settings.Timezone)
	fmt.Printf("  Session Minutes: %d\n", settings.SessionMinutes)
	return nil
}

type SettingsSetCmd struct {
	Timezone       *string `name:"tz" help:"Stored IANA timezone used to interpret dates, or 'Local'."`
	SessionMinutes *int    `help:"Worked minutes credited per session."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	updated := false
	if c.Timezone != nil {
		if _, err := dates.LoadLocation(*c.Timezone); err != nil {
			return err
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.SessionMinutes != nil {
		if *c.SessionMinutes <= 0 {
			return fmt.Errorf("session minutes must be positive, got %d", *c.SessionMinutes)
		}
		settings.SessionMinutes = *c.SessionMinutes
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --tz or --session-minutes.")
	}

	return nil
}
