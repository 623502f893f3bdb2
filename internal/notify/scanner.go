package notify

import (
	"time"

	"github.com/nhle/remind/internal/model"
)

// DueReminders returns the reminders that qualify for a notification at
// the given instant: not completed, not yet notified, and due at or
// before now but less than window ago. The bounded window keeps a long
// absence from turning into a storm of stale alerts on reopen — anything
// older is silently skipped and never retroactively notified.
func DueReminders(reminders []model.Reminder, now time.Time, window time.Duration) []model.Reminder {
	var due []model.Reminder
	for _, r := range reminders {
		if r.IsCompleted || r.WasNotified {
			continue
		}
		age := now.Sub(r.DueDateTime)
		if age >= 0 && age < window {
			due = append(due, r)
		}
	}
	return due
}
