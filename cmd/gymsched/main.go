package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/jugucan/gymsched/internal/cli"
	"github.com/jugucan/gymsched/internal/cli/backups"
	"github.com/jugucan/gymsched/internal/cli/catalog"
	"github.com/jugucan/gymsched/internal/cli/data"
	"github.com/jugucan/gymsched/internal/cli/reports"
	"github.com/jugucan/gymsched/internal/cli/schedules"
	"github.com/jugucan/gymsched/internal/cli/settings"
	"github.com/jugucan/gymsched/internal/cli/system"
	"github.com/jugucan/gymsched/internal/constants"
	"github.com/jugucan/gymsched/internal/dates"
	apperrors "github.com/jugucan/gymsched/internal/errors"
	"github.com/jugucan/gymsched/internal/keyring"
	"github.com/jugucan/gymsched/internal/logger"
	"github.com/jugucan/gymsched/internal/scheduler"
	"github.com/jugucan/gymsched/internal/storage"
	"github.com/jugucan/gymsched/internal/storage/postgres"
	"github.com/jugucan/gymsched/internal/storage/sqlite"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite database path or PostgreSQL connection string. PostgreSQL passwords must NOT be embedded; use the OS keyring, GYMSCHED_DB_CONNECTION or .pgpass." type:"string" default:"${default_config}"`
	Debug    bool   `help:"Mirror debug logs to stderr."`
	Timezone string `help:"IANA timezone overriding the stored setting."`
	Yes      bool   `short:"y" help:"Answer yes to confirmation prompts."`

	Init     system.InitCmd     `cmd:"" help:"Initialize gymsched storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Check stored schedules for conflicts."`
	Tui      system.TuiCmd      `cmd:"" help:"Browse periods interactively." default:"1"`

	Day    reports.DayCmd    `cmd:"" help:"Show the sessions of a day."`
	Week   reports.WeekCmd   `cmd:"" help:"Show the week containing a day."`
	Report reports.ReportCmd `cmd:"" help:"Summarize a 26th-to-25th period."`

	Program struct {
		Add    catalog.ProgramAddCmd    `cmd:"" help:"Add or update a program."`
		List   catalog.ProgramListCmd   `cmd:"" help:"List programs."`
		Delete catalog.ProgramDeleteCmd `cmd:"" help:"Delete a program."`
	} `cmd:"" help:"Manage fitness programs."`
	Gym struct {
		Add     catalog.GymAddCmd    `cmd:"" help:"Add or update a gym."`
		List    catalog.GymListCmd   `cmd:"" help:"List gyms."`
		Delete  catalog.GymDeleteCmd `cmd:"" help:"Delete a gym."`
		Holiday struct {
			Add    catalog.GymHolidayAddCmd    `cmd:"" help:"Record vacation days taken at a gym."`
			Remove catalog.GymHolidayRemoveCmd `cmd:"" help:"Remove recorded vacation days."`
		} `cmd:"" help:"Manage per-gym vacation days."`
		Vacation catalog.GymVacationCmd `cmd:"" help:"Show the vacation balance per gym."`
	} `cmd:"" help:"Manage gyms."`
	Closure struct {
		Add    catalog.ClosureAddCmd    `cmd:"" help:"Add a day when every gym is closed."`
		List   catalog.ClosureListCmd   `cmd:"" help:"List closures."`
		Delete catalog.ClosureDeleteCmd `cmd:"" help:"Delete a closure."`
		Seed   catalog.ClosureSeedCmd   `cmd:"" help:"Add the Catalan public holidays of a year."`
	} `cmd:"" help:"Manage gym closures."`

	Schedule struct {
		Add    schedules.ScheduleAddCmd    `cmd:"" help:"Add a fixed schedule version."`
		List   schedules.ScheduleListCmd   `cmd:"" help:"List fixed schedule versions."`
		Show   schedules.ScheduleShowCmd   `cmd:"" help:"Show the version in effect on a date."`
		Delete schedules.ScheduleDeleteCmd `cmd:"" help:"Delete a fixed schedule version."`
	} `cmd:"" help:"Manage fixed weekly schedules."`
	Recurring struct {
		Add    schedules.RecurringAddCmd    `cmd:"" help:"Add a recurring session."`
		List   schedules.RecurringListCmd   `cmd:"" help:"List recurring sessions."`
		End    schedules.RecurringEndCmd    `cmd:"" help:"Set the last day of a recurring session."`
		Delete schedules.RecurringDeleteCmd `cmd:"" help:"Delete a recurring session."`
	} `cmd:"" help:"Manage recurring sessions."`
	Override struct {
		Set   schedules.OverrideSetCmd   `cmd:"" help:"Replace the sessions of a date."`
		Clear schedules.OverrideClearCmd `cmd:"" help:"Remove the override of a date."`
		List  schedules.OverrideListCmd  `cmd:"" help:"List overrides."`
		Show  schedules.OverrideShowCmd  `cmd:"" help:"Show the resolved sessions of a date."`
	} `cmd:"" help:"Manage per-date overrides."`
	Missed struct {
		Add    schedules.MissedAddCmd    `cmd:"" help:"Mark a day as missed."`
		Remove schedules.MissedRemoveCmd `cmd:"" help:"Un-mark a missed day."`
		List   schedules.MissedListCmd   `cmd:"" help:"List missed days."`
	} `cmd:"" help:"Manage missed days."`

	Settings struct {
		Show settings.SettingsShowCmd `cmd:"" help:"Show settings." default:"1"`
		Set  settings.SettingsSetCmd  `cmd:"" help:"Update settings."`
	} `cmd:"" help:"Manage application settings."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string, password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	} `cmd:"" help:"Manage the connection string kept in the OS keyring."`

	Export data.ExportCmd `cmd:"" help:"Export all data as YAML."`
	Import data.ImportCmd `cmd:"" help:"Import a YAML or JSON document."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Session schedule and period reports for a fitness instructor working across gyms"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	configPath := expandHome(CLI.Config)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir(configPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Logging disabled: %v\n", err)
	}

	store, err := openStore(configPath, CLI.Config == constants.DefaultConfigPath)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	command := ctx.Command()
	if needsStore(command) {
		if err := store.Load(); err != nil {
			if errors.Is(err, sqlite.ErrNotInitialized) {
				err = apperrors.WithHint(err, "run 'gymsched init' to create the database")
			}
			apperrors.Fatal(err)
		}
	}

	loc, err := location(store, CLI.Timezone, needsStore(command))
	if err != nil {
		apperrors.Fatal(err)
	}
	logger.Debug("Running command", "command", command, "config", store.GetConfigPath(), "timezone", loc.String())

	appCtx := &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(loc),
		Yes:       CLI.Yes,
		Now:       time.Now,
	}
	if err := ctx.Run(appCtx); err != nil {
		if errors.Is(err, cli.ErrAborted) {
			fmt.Println("Aborted.")
			return
		}
		apperrors.Fatal(err)
	}
}

// openStore picks the backend: a PostgreSQL URL in --config, then the keyring,
// then GYMSCHED_DB_CONNECTION, and finally the SQLite file.
func openStore(config string, defaultConfig bool) (storage.Provider, error) {
	if postgres.IsConnString(config) {
		if _, err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, apperrors.WithHint(err, "store it with 'gymsched keyring set', export GYMSCHED_DB_CONNECTION, or use ~/.pgpass")
			}
			return nil, err
		}
		return postgres.New(config), nil
	}
	if !defaultConfig {
		return sqlite.NewStore(config), nil
	}

	if connStr, err := keyring.ConnectionString(); err == nil {
		logger.Debug("Using connection string from keyring")
		return postgres.New(connStr), nil
	} else if !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("Keyring lookup failed", "error", err)
	}
	if connStr := os.Getenv(constants.EnvDBConnection); connStr != "" {
		if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, fmt.Errorf("%s: %w", constants.EnvDBConnection, err)
		}
		logger.Debug("Using connection string from environment")
		return postgres.New(connStr), nil
	}
	return sqlite.NewStore(config), nil
}

// needsStore reports whether the database must be loaded before command runs.
// init creates it, doctor reports on it and keyring never touches it.
func needsStore(command string) bool {
	name := strings.Fields(command)
	if len(name) == 0 {
		return true
	}
	switch name[0] {
	case "init", "doctor", "keyring":
		return false
	}
	return true
}

// location resolves the timezone: the flag wins, then the stored setting.
func location(store storage.Provider, flag string, loaded bool) (*time.Location, error) {
	if flag != "" {
		return dates.LoadLocation(flag)
	}
	if !loaded {
		return time.Local, nil
	}
	settings, err := store.GetSettings()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return time.Local, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return dates.LoadLocation(settings.Timezone)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// configDir is where logs and backups live. PostgreSQL setups fall back to
// the default SQLite location's directory.
func configDir(config string) string {
	if postgres.IsConnString(config) {
		return filepath.Dir(expandHome(constants.DefaultConfigPath))
	}
	return filepath.Dir(config)
}
