package utils

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// DateLayout is the calendar-date wire format (membership start/end dates,
// session dates, staff birth dates).
const DateLayout = "2006-01-02"

// Round2 rounds a float to 2 decimal places. All money and hour values in
// the system are exposed with 2 fractional digits.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// HoursBetween returns the hour delta between two timestamps rounded to
// 2 decimals. Used for session pay computation whenever an end time is set.
func HoursBetween(start, end time.Time) float64 {
	return Round2(end.Sub(start).Hours())
}

// FormatCurrency renders a money value with 2 fractional digits.
func FormatCurrency(amount float64) string {
	return fmt.Sprintf("$%.2f", Round2(amount))
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// GenerateMembershipNumber produces a human-readable membership number,
// e.g. "GM-250831-4821". Uniqueness is enforced by the database constraint;
// the random suffix keeps collisions within a day unlikely.
func GenerateMembershipNumber(now time.Time) string {
	return fmt.Sprintf("GM-%s-%04d", now.Format("060102"), rand.Intn(10000))
}
