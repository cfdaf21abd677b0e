package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jugucan/gymsched/internal/cli"
	"github.com/jugucan/gymsched/internal/models"
	"github.com/jugucan/gymsched/internal/storage"
)

type ProgramAddCmd struct {
	ID          string `arg:"" help:"Program id, e.g. bp120."`
	Name        string `arg:"" help:"Display name."`
	ShortName   string `help:"Short label used in reports." name:"short"`
	Color       string `help:"Color label, e.g. #e03c31."`
	ReleaseDate string `help:"Release date (YYYY-MM-DD)." name:"release"`
}

func (c *ProgramAddCmd) Run(ctx *cli.Context) error {
	p := models.Program{ID: c.ID, Name: c.Name, ShortName: c.ShortName, Color: c.Color}
	if c.ReleaseDate != "" {
		key, err := ctx.ParseDate(c.ReleaseDate)
		if err != nil {
			return err
		}
		p.ReleaseDate = key
	}

	_, err := ctx.Store.GetProgram(c.ID)
	exists := err == nil
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	if err := ctx.Store.SaveProgram(p); err != nil {
		return err
	}
	if exists {
		fmt.Printf("Updated program: %s (%s)\n", p.Name, p.ID)
	} else {
		fmt.Printf("Added program: %s (%s)\n", p.Name, p.ID)
	}
	return nil
}

type ProgramListCmd struct{}

func (c *ProgramListCmd) Run(ctx *cli.Context) error {
	programs, err := ctx.Store.GetAllPrograms()
	if err != nil {
		return fmt.Errorf("failed to get programs: %w", err)
	}
	if len(programs) == 0 {
		fmt.Println("No programs found")
		return nil
	}
	sort.SliceStable(programs, func(i, j int) bool { return programs[i].ID < programs[j].ID })

	rows := make([][]string, 0, len(programs))
	for _, p := range programs {
		rows = append(rows, []string{p.ID, p.Name, p.ShortName, p.Color, p.ReleaseDate})
	}
	fmt.Println(cli.Table([]string{"ID", "Name", "Short", "Color", "Released"}, rows))
	return nil
}

type ProgramDeleteCmd struct {
	ID string `arg:"" help:"Program id to delete."`
}

func (c *ProgramDeleteCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Store.GetProgram(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find program with ID %s: %w", c.ID, err)
	}
	if err := ctx.Confirm(fmt.Sprintf("Delete program %s? Sessions naming it will show as unknown.", p.Name)); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	if err := ctx.Store.DeleteProgram(c.ID); err != nil {
		return fmt.Errorf("failed to delete program: %w", err)
	}
	fmt.Printf("Deleted program: %s (ID: %s)\n", p.Name, c.ID)
	return nil
}
