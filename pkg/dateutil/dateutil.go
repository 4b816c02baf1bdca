package dateutil

import (
	"time"
)

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// AgeAtYearEnd calculates the age a person reaches by December 31 of the
// given tax year. Qualifying-child tests (Child Tax Credit) use age at
// year-end, which reduces to the difference of calendar years.
func AgeAtYearEnd(birthDate time.Time, taxYear int) int {
	return taxYear - birthDate.Year()
}

// YearEnd returns December 31 of the given tax year in UTC.
func YearEnd(taxYear int) time.Time {
	return time.Date(taxYear, time.December, 31, 0, 0, 0, 0, time.UTC)
}
