package data

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jugucan/gymsched/internal/cli"
	"github.com/jugucan/gymsched/internal/transfer"
)

type ExportCmd struct {
	Output string `short:"o" help:"Write to this file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	var w io.Writer = os.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", c.Output, err)
		}
		defer f.Close()
		w = f
	}

	if err := transfer.Export(w, ctx.Store, ctx.Scheduler.Dates(), ctx.CurrentTime()); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if c.Output != "" {
		fmt.Printf("✓ Exported to %s\n", c.Output)
	}
	return nil
}

type ImportCmd struct {
	File         string `arg:"" help:"YAML or JSON document to import." type:"existingfile"`
	DryRun       bool   `help:"Validate and count records without writing."`
	KeepSettings bool   `help:"Do not overwrite stored settings."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.File, err)
	}
	defer f.Close()

	doc, err := transfer.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}

	if !c.DryRun {
		ctx.PerformAutomaticBackup()
	}
	res, err := transfer.Import(doc, ctx.Store, ctx.Scheduler.Dates(), transfer.Options{
		DryRun:       c.DryRun,
		KeepSettings: c.KeepSettings,
	})
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	verb := "Imported"
	if c.DryRun {
		verb = "Would import"
	}
	kinds := make([]string, 0, len(res.Written))
	for k := range res.Written {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Printf("✓ %s %d %s\n", verb, res.Written[k], k)
	}
	for _, s := range res.Skipped {
		fmt.Printf("⚠️  Skipped: %s\n", s)
	}
	if len(res.Written) == 0 && len(res.Skipped) == 0 {
		fmt.Println("Nothing to import")
	}
	return nil
}
