package reports

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jugucan/gymsched/internal/cli"
	"github.com/jugucan/gymsched/internal/constants"
	"github.com/jugucan/gymsched/internal/report"
)

type ReportCmd struct {
	Period string `arg:"" optional:"" help:"Closing month of the period (YYYY-MM). Defaults to the current period."`
	Prev   int    `help:"Show the period this many months before." short:"p" default:"0"`
	Rows   bool   `help:"Also print one row per day."`
	JSON   bool   `help:"Print JSON instead of tables." name:"json"`
}

type reportJSON struct {
	Period         string         `json:"period"`
	Start          string         `json:"start"`
	End            string         `json:"end"`
	Label          string         `json:"label"`
	SessionMinutes int            `json:"session_minutes"`
	Summary        report.Summary `json:"summary"`
	Rows           []report.Row   `json:"rows,omitempty"`
}

func (c *ReportCmd) Run(ctx *cli.Context) error {
	token := c.Period
	if token == "" {
		token = report.CurrentPeriodToken(ctx.Today())
	}
	if c.Prev != 0 {
		shifted, err := report.ShiftToken(token, -c.Prev)
		if err != nil {
			return err
		}
		token = shifted
	}

	b, err := ctx.Builder()
	if err != nil {
		return err
	}
	period, err := b.PeriodRangeFor(token)
	if err != nil {
		return err
	}
	snap, err := ctx.Snapshot()
	if err != nil {
		return err
	}

	summary := b.Aggregate(period, snap)
	var rows []report.Row
	if c.Rows {
		rows = b.BuildRows(period, snap)
	}

	if c.JSON {
		out := reportJSON{
			Period:         period.Token,
			Start:          period.Start.Format(constants.DateFormat),
			End:            period.End.Format(constants.DateFormat),
			Label:          period.Label,
			SessionMinutes: b.SessionMinutes(),
			Summary:        summary,
			Rows:           rows,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Print(cli.SummaryText(summary, b.SessionMinutes()))
	if c.Rows {
		fmt.Println()
		fmt.Println(cli.RowsTable(rows))
	}
	return nil
}
