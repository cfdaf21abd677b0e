package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/jugucan/gymsched/internal/backup"
	"github.com/jugucan/gymsched/internal/constants"
	"github.com/jugucan/gymsched/internal/logger"
	"github.com/jugucan/gymsched/internal/models"
	"github.com/jugucan/gymsched/internal/report"
	"github.com/jugucan/gymsched/internal/scheduler"
	"github.com/jugucan/gymsched/internal/storage"
	"github.com/jugucan/gymsched/internal/storage/postgres"
)

var ErrAborted = errors.New("aborted")

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler

	// Yes skips confirmation prompts.
	Yes bool
	// Now is read once per command; tests pin it.
	Now func() time.Time
}

// CurrentTime returns the pinned clock, falling back to time.Now.
func (c *Context) CurrentTime() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Today returns midnight of the current day in the scheduler's timezone.
func (c *Context) Today() time.Time {
	t, _ := c.Scheduler.Dates().NormalizeToStartOfDay(c.CurrentTime())
	return t
}

// Builder returns a report builder crediting the stored session length.
func (c *Context) Builder() (*report.Builder, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return report.New(c.Scheduler, settings.SessionMinutes), nil
}

func (c *Context) Snapshot() (models.Snapshot, error) {
	snap, err := storage.LoadSnapshot(c.Store)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load schedule data: %w", err)
	}
	return snap, nil
}

// ParseDate resolves a date argument to a key. Empty means today; "today",
// "tomorrow" and "yesterday" are relative to the current day.
func (c *Context) ParseDate(arg string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "", "today", "avui":
		return c.Today().Format(constants.DateFormat), nil
	case "tomorrow", "dema", "demà":
		return c.Today().AddDate(0, 0, 1).Format(constants.DateFormat), nil
	case "yesterday", "ahir":
		return c.Today().AddDate(0, 0, -1).Format(constants.DateFormat), nil
	}
	key := c.Scheduler.Dates().ToDateKey(arg)
	if key == "" {
		return "", fmt.Errorf("invalid date %q, use YYYY-MM-DD or DD-MM-YYYY", arg)
	}
	return key, nil
}

// PerformAutomaticBackup snapshots the SQLite database before a destructive
// command. Failures are logged and never interrupt the command.
func (c *Context) PerformAutomaticBackup() {
	path := c.Store.GetConfigPath()
	if postgres.IsConnString(path) || path == "postgresql" {
		return
	}
	if _, err := backup.NewManager(path).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Confirm asks a yes/no question unless --yes was given.
func (c *Context) Confirm(title string) error {
	if c.Yes {
		return nil
	}
	ok := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(huh.ThemeBase())
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive form error: %w", err)
	}
	if !ok {
		return ErrAborted
	}
	return nil
}

func NewID() string {
	return uuid.NewString()
}
