package notify

import (
	"testing"
	"time"

	"github.com/nhle/remind/internal/model"
)

var dueAt = time.Date(2025, time.March, 15, 9, 0, 0, 0, time.Local)

const window = 60 * time.Second

func dueReminder(id string) model.Reminder {
	return model.Reminder{
		ID:          id,
		Title:       id,
		DueDateTime: dueAt,
		Priority:    model.PriorityMedium,
		CreatedAt:   dueAt.Add(-time.Hour),
	}
}

func TestDueRemindersWindow(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"exactly at due time", dueAt, true},
		{"mid window", dueAt.Add(30 * time.Second), true},
		{"last instant of window", dueAt.Add(59 * time.Second), true},
		{"window expired", dueAt.Add(60 * time.Second), false},
		{"long overdue", dueAt.Add(48 * time.Hour), false},
		{"before due time", dueAt.Add(-time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DueReminders([]model.Reminder{dueReminder("a")}, tt.at, window)
			if qualified := len(got) == 1; qualified != tt.want {
				t.Errorf("scan at %v: qualified=%v, want %v", tt.at, qualified, tt.want)
			}
		})
	}
}

func TestDueRemindersSkipsCompletedAndNotified(t *testing.T) {
	completed := dueReminder("completed")
	completed.IsCompleted = true

	notified := dueReminder("notified")
	notified.WasNotified = true

	fresh := dueReminder("fresh")

	got := DueReminders([]model.Reminder{completed, notified, fresh}, dueAt, window)
	if len(got) != 1 || got[0].ID != "fresh" {
		t.Errorf("DueReminders = %v, want only 'fresh'", got)
	}
}

func TestDueRemindersRearmedAfterEdit(t *testing.T) {
	// A reminder that already fired but was rescheduled (edit resets
	// WasNotified) qualifies again at its new due time.
	r := dueReminder("rescheduled")
	r.WasNotified = false
	r.DueDateTime = dueAt.Add(2 * time.Hour)

	if got := DueReminders([]model.Reminder{r}, dueAt, window); len(got) != 0 {
		t.Errorf("qualified before new due time: %v", got)
	}
	if got := DueReminders([]model.Reminder{r}, r.DueDateTime, window); len(got) != 1 {
		t.Errorf("did not qualify at new due time")
	}
}
