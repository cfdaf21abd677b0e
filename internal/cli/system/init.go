package system

import (
	"fmt"
	"os"

	"github.com/jugucan/gymsched/internal/cli"
	"github.com/jugucan/gymsched/internal/storage"
	"github.com/jugucan/gymsched/internal/storage/postgres"
)

type InitCmd struct {
	Force bool `help:"Delete an existing SQLite database before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	sqlite := !postgres.IsConnString(path) && path != "postgresql"

	if c.Force && sqlite {
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Confirm(fmt.Sprintf("Delete the existing database at %s?", path)); err != nil {
				return err
			}
			ctx.PerformAutomaticBackup()
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	fmt.Printf("Initialized gymsched storage at: %s\n", path)
	fmt.Println("Next: add programs and gyms, then a fixed schedule:")
	fmt.Println("  gymsched program add bp120 \"BodyPump 120\"")
	fmt.Println("  gymsched gym add gym_a \"Arbúcies\" --work-days mon,wed,fri")
	fmt.Println("  gymsched schedule add --start 2025-09-01 --slot monday=bp120@18:00@gym_a")
	return nil
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return fmt.Errorf("storage backend does not support migrations")
	}

	before, _, err := m.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if err := m.Migrate(func(msg string) { fmt.Println(msg) }); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	after, _, err := m.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if after == before {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSchema migrated from version %d to %d.\n", before, after)
	}
	return nil
}
