package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 2.35, Round2(2.346))
	assert.Equal(t, 2.34, Round2(2.344))
	assert.Equal(t, -1.5, Round2(-1.499))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 100.0, Round2(99.999))
}

func TestHoursBetween(t *testing.T) {
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 2.0, HoursBetween(start, start.Add(2*time.Hour)))
	assert.Equal(t, 1.5, HoursBetween(start, start.Add(90*time.Minute)))
	assert.Equal(t, 0.25, HoursBetween(start, start.Add(15*time.Minute)))
	// 100 minutes is 1.666..h, rounded to 2 decimals.
	assert.Equal(t, 1.67, HoursBetween(start, start.Add(100*time.Minute)))
	assert.Equal(t, 0.0, HoursBetween(start, start))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$15000.50", FormatCurrency(15000.5))
	assert.Equal(t, "$0.00", FormatCurrency(0))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2026-03-02", FormatDate(time.Date(2026, time.March, 2, 23, 59, 0, 0, time.UTC)))
}

func TestGenerateMembershipNumber(t *testing.T) {
	now := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^GM-260302-\d{4}$`)

	for i := 0; i < 20; i++ {
		number := GenerateMembershipNumber(now)
		assert.Regexp(t, pattern, number)
	}
}
