// Package report turns resolved days into period summaries and per-day rows.
package report

import (
	"github.com/jugucan/gymsched/internal/constants"
	"github.com/jugucan/gymsched/internal/scheduler"
)

type Builder struct {
	sched          *scheduler.Scheduler
	sessionMinutes int
}

// New returns a Builder crediting sessionMinutes per session. Zero or a
// negative value falls back to the default session length.
func New(sched *scheduler.Scheduler, sessionMinutes int) *Builder {
	if sessionMinutes <= 0 {
		sessionMinutes = constants.DefaultSessionMinutes
	}
	return &Builder{sched: sched, sessionMinutes: sessionMinutes}
}

func (b *Builder) SessionMinutes() int {
	return b.sessionMinutes
}

func (b *Builder) Scheduler() *scheduler.Scheduler {
	return b.sched
}
