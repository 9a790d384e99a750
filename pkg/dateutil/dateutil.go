package dateutil

import (
	"time"
)

// The UK fiscal year runs from 6 April to the following 5 April, both days
// inclusive.

// FiscalYearStart returns 6 April of the given start year.
func FiscalYearStart(year int) time.Time {
	return time.Date(year, time.April, 6, 0, 0, 0, 0, time.UTC)
}

// FiscalYearEnd returns 5 April of the year following the given start year.
func FiscalYearEnd(year int) time.Time {
	return time.Date(year+1, time.April, 5, 0, 0, 0, 0, time.UTC)
}

// FiscalYearFor returns the start year of the fiscal year containing the
// given date.
func FiscalYearFor(date time.Time) int {
	year := date.Year()
	if date.Before(FiscalYearStart(year)) {
		return year - 1
	}
	return year
}

// InFiscalYear reports whether the date falls within the fiscal year with the
// given start year.
func InFiscalYear(date time.Time, year int) bool {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	start := FiscalYearStart(year)
	end := FiscalYearEnd(year)
	if day.Equal(start) || day.Equal(end) {
		return true
	}
	return day.After(start) && day.Before(end)
}

// Age calculates the whole-year age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// IsSameDay reports whether two instants fall on the same calendar day.
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// AddYears adds a specified number of years to a date
func AddYears(date time.Time, years int) time.Time {
	return date.AddDate(years, 0, 0)
}
