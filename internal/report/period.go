package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/jugucan/gymsched/internal/constants"
	"github.com/jugucan/gymsched/internal/models"
)

var ErrInvalidPeriodToken = errors.New("invalid period token")

// PeriodRangeFor returns the period closing in the month named by token
// (YYYY-MM): the 26th of the previous month through the 25th of that month.
func (b *Builder) PeriodRangeFor(token string) (models.PeriodRange, error) {
	month, err := time.Parse(constants.MonthFormat, token)
	if err != nil {
		return models.PeriodRange{}, fmt.Errorf("%w %q: expected YYYY-MM", ErrInvalidPeriodToken, token)
	}

	n := b.sched.Dates()
	start := n.Date(month.Year(), month.Month()-1, constants.PeriodStartDay)
	end := n.Date(month.Year(), month.Month(), constants.PeriodEndDay)
	return models.PeriodRange{
		Token: month.Format(constants.MonthFormat),
		Start: start,
		End:   end,
		Label: fmt.Sprintf("%s - %s", start.Format("2 Jan 2006"), end.Format("2 Jan 2006")),
	}, nil
}

// CurrentPeriodToken returns the token of the period containing now. From
// the 26th onwards a date belongs to the period closing next month.
func CurrentPeriodToken(now time.Time) string {
	y, m, d := now.Date()
	month := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	if d >= constants.PeriodStartDay {
		month = month.AddDate(0, 1, 0)
	}
	return month.Format(constants.MonthFormat)
}

// ShiftToken moves a period token by delta months.
func ShiftToken(token string, delta int) (string, error) {
	month, err := time.Parse(constants.MonthFormat, token)
	if err != nil {
		return "", fmt.Errorf("%w %q: expected YYYY-MM", ErrInvalidPeriodToken, token)
	}
	return month.AddDate(0, delta, 0).Format(constants.MonthFormat), nil
}
