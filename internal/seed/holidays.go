// Package seed computes public holidays to preload as gym closures.
package seed

import (
	"sort"
	"time"

	"github.com/jugucan/gymsched/internal/constants"
	"github.com/jugucan/gymsched/internal/models"
)

type fixedHoliday struct {
	month time.Month
	day   int
	name  string
}

// Catalonia, regional calendar. Local holidays vary per town and are added by hand.
var catalanFixed = []fixedHoliday{
	{time.January, 1, "Cap d'Any"},
	{time.January, 6, "Reis"},
	{time.May, 1, "Festa del Treball"},
	{time.June, 24, "Sant Joan"},
	{time.August, 15, "L'Assumpció"},
	{time.September, 11, "Diada Nacional de Catalunya"},
	{time.October, 12, "Festa Nacional d'Espanya"},
	{time.November, 1, "Tots Sants"},
	{time.December, 6, "Dia de la Constitució"},
	{time.December, 8, "La Immaculada"},
	{time.December, 25, "Nadal"},
	{time.December, 26, "Sant Esteve"},
}

// CatalanHolidays returns the regional public holidays of year as closures,
// sorted by date.
func CatalanHolidays(year int) []models.GymClosure {
	byDate := make(map[string]string, len(catalanFixed)+2)
	for _, h := range catalanFixed {
		byDate[dateKey(time.Date(year, h.month, h.day, 12, 0, 0, 0, time.UTC))] = h.name
	}

	easter := Easter(year)
	byDate[dateKey(easter.AddDate(0, 0, -2))] = "Divendres Sant"
	byDate[dateKey(easter.AddDate(0, 0, 1))] = "Dilluns de Pasqua Florida"

	out := make([]models.GymClosure, 0, len(byDate))
	for date, name := range byDate {
		out = append(out, models.GymClosure{Date: date, Reason: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Easter returns Easter Sunday (Gregorian, Meeus/Jones/Butcher) at noon UTC.
func Easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	n := h + l - 7*m + 114

	return time.Date(year, time.Month(n/31), n%31+1, 12, 0, 0, 0, time.UTC)
}

func dateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}
