package tracking

import (
	"fmt"
	"time"
)

// overdueAfterMinutes is how long an open activity may run before it is
// flagged.
const overdueAfterMinutes = 30

// Elapsed is a formatted duration between two instants.
type Elapsed struct {
	Text      string
	IsOverdue bool
}

// FormatElapsed renders the whole minutes from start to end as "HH:MM".
// Durations above 30 minutes are overdue. Negative spans render as "00:00".
func FormatElapsed(start, end time.Time) Elapsed {
	minutes := minutesBetween(start, end)
	overdue := minutes > overdueAfterMinutes
	if minutes < 0 {
		minutes = 0
	}
	return Elapsed{
		Text:      fmt.Sprintf("%02d:%02d", minutes/60, minutes%60),
		IsOverdue: overdue,
	}
}
