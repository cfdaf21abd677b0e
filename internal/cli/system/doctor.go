package system

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jugucan/gymsched/internal/backup"
	"github.com/jugucan/gymsched/internal/cli"
	"github.com/jugucan/gymsched/internal/dates"
	"github.com/jugucan/gymsched/internal/storage"
	"github.com/jugucan/gymsched/internal/storage/postgres"
	"github.com/jugucan/gymsched/internal/validation"
)

// errWarning marks a check that found something worth fixing but not broken.
var errWarning = errors.New("warning")

type check struct {
	name    string
	needsDB bool
	run     func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Backups present", run: checkBackupsPresent},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Clock/timezone", needsDB: true, run: checkClockTimezone},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	failed := false
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n   Error: %v\n", err)
		failed = true
		dbReachable = false
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case errors.Is(err, errWarning):
			fmt.Printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			fmt.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			failed = true
		}
	}

	fmt.Println()
	if failed {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if s, ok := ctx.Store.(interface{ DB() *sql.DB }); ok {
		var one int
		if err := s.DB().QueryRow("SELECT 1").Scan(&one); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return nil
	}
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	switch {
	case current > latest:
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	case current < latest:
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'gymsched migrate')", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	if postgres.IsConnString(path) || path == "postgresql" {
		return nil
	}
	backups, err := backup.NewManager(path).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("%w: no backups found, consider 'gymsched backup create'", errWarning)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	snap, err := ctx.Snapshot()
	if err != nil {
		return err
	}
	result := validation.New(ctx.Scheduler.Dates()).Validate(snap)
	if result.HasConflicts() {
		return fmt.Errorf("%w: %d integrity warning(s), see 'gymsched validate'", errWarning, len(result.Conflicts))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if _, err := dates.LoadLocation(settings.Timezone); err != nil {
		return err
	}
	return nil
}

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.Snapshot()
	if err != nil {
		return err
	}

	fmt.Println("Validating schedule data...")
	result := validation.New(ctx.Scheduler.Dates()).Validate(snap)
	fmt.Println()
	fmt.Print(result.FormatReport())
	if !result.HasConflicts() {
		fmt.Println()
	}
	// Warnings only: resolution tolerates every flagged record.
	return nil
}
