package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jugucan/gymsched/internal/logger"
	"github.com/jugucan/gymsched/internal/models"
	"github.com/jugucan/gymsched/internal/report"
	"github.com/jugucan/gymsched/internal/scheduler"
	"github.com/jugucan/gymsched/internal/storage"
	"github.com/jugucan/gymsched/internal/tui/components/days"
	"github.com/jugucan/gymsched/internal/tui/components/summary"
	"github.com/jugucan/gymsched/internal/validation"
)

type SessionState int

const (
	StateSummary SessionState = iota
	StateDays
	stateCount
)

var tabTitles = [...]string{"Summary", "Days"}

// chromeHeight is the space taken by tabs, header, warning and help.
const chromeHeight = 7

type Model struct {
	store     storage.Provider
	scheduler *scheduler.Scheduler
	now       func() time.Time

	state    SessionState
	keys     KeyMap
	help     help.Model
	quitting bool
	width    int
	height   int

	token   string
	period  models.PeriodRange
	rows    []report.Row
	loadErr error

	summaryModel summary.Model
	daysModel    days.Model

	validationWarning   string
	validationConflicts []validation.Conflict
}

// NewModel opens the browser on the period containing now.
func NewModel(store storage.Provider, sched *scheduler.Scheduler, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	m := Model{
		store:        store,
		scheduler:    sched,
		now:          now,
		state:        StateSummary,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		summaryModel: summary.New(0, 0),
		daysModel:    days.New(nil, 0, 0),
	}
	m.token = m.currentToken()
	m.load()
	return m
}

func (m Model) currentToken() string {
	today, _ := m.scheduler.Dates().NormalizeToStartOfDay(m.now())
	return report.CurrentPeriodToken(today)
}

// load rebuilds the period from a fresh snapshot so edits made from another
// terminal show up on reload.
func (m *Model) load() {
	snap, err := storage.LoadSnapshot(m.store)
	if err != nil {
		m.fail(err)
		return
	}
	settings, err := m.store.GetSettings()
	if err != nil {
		m.fail(err)
		return
	}

	b := report.New(m.scheduler, settings.SessionMinutes)
	period, err := b.PeriodRangeFor(m.token)
	if err != nil {
		m.fail(err)
		return
	}

	m.loadErr = nil
	m.period = period
	m.rows = b.BuildRows(period, snap)
	m.summaryModel.SetSummary(b.Aggregate(period, snap), b.SessionMinutes())
	m.daysModel.SetRows(m.rows)
	m.updateValidationStatus(snap)
}

func (m *Model) fail(err error) {
	logger.Error("Failed to load period", "period", m.token, "error", err)
	m.loadErr = err
}

func (m *Model) shift(delta int) {
	token, err := report.ShiftToken(m.token, delta)
	if err != nil {
		m.fail(err)
		return
	}
	m.token = token
	m.load()
}

func (m *Model) updateValidationStatus(snap models.Snapshot) {
	result := validation.New(m.scheduler.Dates()).Validate(snap)
	m.validationConflicts = result.Conflicts
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d data conflict(s), run 'gymsched validate'", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}

// Token returns the period being shown.
func (m Model) Token() string {
	return m.token
}

func (m Model) ShortHelp() []key.Binding {
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return nil
}
