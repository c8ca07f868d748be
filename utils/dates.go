// utils/dates.go
package utils

import (
	"fmt"
	"math"
	"time"
)

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// DaysUntil returns the number of days from now until t, rounded up.
// A deadline later today counts as 0, tomorrow as 1, yesterday as -1.
func DaysUntil(t, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}

// CompletionLabel renders a report's completion deadline for display.
func CompletionLabel(completionDate *time.Time, now time.Time) string {
	if completionDate == nil {
		return "No deadline"
	}
	days := DaysUntil(*completionDate, now)
	switch {
	case days < 0:
		return fmt.Sprintf("%d days overdue", -days)
	case days == 0:
		return "Due today"
	default:
		return fmt.Sprintf("%d days left", days)
	}
}
