// Package quarter derives the calendar-quarter bucket keys used to scope
// conservation votes and donations.
package quarter

import (
	"fmt"
	"time"
)

// ForTime returns the quarter key for t, formatted "YYYY-Qn".
// Months 1-3 map to Q1, 4-6 to Q2, 7-9 to Q3, 10-12 to Q4.
func ForTime(t time.Time) string {
	q := (int(t.Month())-1)/3 + 1
	return fmt.Sprintf("%d-Q%d", t.Year(), q)
}

// Current returns the quarter key for the current wall-clock time.
// The vote-cast path and the ranking path both call this, so a request
// landing exactly on a quarter boundary is bucketed by whichever side
// computed "now" first.
func Current() string {
	return ForTime(time.Now())
}
