package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAge(t *testing.T) {
	tests := []struct {
		name      string
		birthDate time.Time
		atDate    time.Time
		expected  int
	}{
		{
			name:      "birthday already passed this year",
			birthDate: time.Date(2010, 3, 15, 0, 0, 0, 0, time.UTC),
			atDate:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			expected:  15,
		},
		{
			name:      "birthday later this year",
			birthDate: time.Date(2010, 9, 15, 0, 0, 0, 0, time.UTC),
			atDate:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			expected:  14,
		},
		{
			name:      "same day as birthday",
			birthDate: time.Date(2010, 6, 1, 0, 0, 0, 0, time.UTC),
			atDate:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			expected:  15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Age(tt.birthDate, tt.atDate))
		})
	}
}

func TestAgeAtYearEnd(t *testing.T) {
	// Born late in the year still counts the full year difference: a child
	// born December 2009 turns 16 during 2025 and is 16 at year-end.
	dob := time.Date(2009, 12, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 16, AgeAtYearEnd(dob, 2025))

	// Born January 2009 is also 16 at the end of 2025.
	dob = time.Date(2009, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 16, AgeAtYearEnd(dob, 2025))
}

func TestYearEnd(t *testing.T) {
	end := YearEnd(2025)
	assert.Equal(t, 2025, end.Year())
	assert.Equal(t, time.December, end.Month())
	assert.Equal(t, 31, end.Day())
}
