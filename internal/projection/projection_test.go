package projection

import (
	"fmt"
	"testing"
	"time"

	"github.com/nhle/remind/internal/model"
)

var testNow = time.Date(2025, time.March, 15, 9, 0, 30, 0, time.Local)

func rem(id string, due time.Time, completed bool) model.Reminder {
	return model.Reminder{
		ID:          id,
		Title:       id,
		DueDateTime: due,
		IsCompleted: completed,
		Priority:    model.PriorityMedium,
		CreatedAt:   testNow.Add(-24 * time.Hour),
	}
}

func TestFilter(t *testing.T) {
	reminders := []model.Reminder{
		{ID: "a", Title: "Buy milk"},
		{ID: "b", Title: "Call mom", Notes: "about the PARTY"},
		{ID: "c", Title: "Gym", Labels: []string{"Party", "health"}},
		{ID: "d", Title: "Taxes"},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"a", "b", "c", "d"}},
		{"milk", []string{"a"}},
		{"party", []string{"b", "c"}},
		{"PARTY", []string{"b", "c"}},
		{"nothing-matches", nil},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("query=%q", tt.query), func(t *testing.T) {
			got := Filter(reminders, tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d results, want %d", len(got), len(tt.want))
			}
			for i, r := range got {
				if r.ID != tt.want[i] {
					t.Errorf("result[%d] = %s, want %s", i, r.ID, tt.want[i])
				}
			}
		})
	}
}

func TestTodaySortedAscending(t *testing.T) {
	reminders := []model.Reminder{
		rem("evening", testNow.Add(10*time.Hour), false),
		rem("morning", testNow.Add(-2*time.Hour), false),
		rem("noon", testNow.Add(3*time.Hour), false),
		rem("done-today", testNow.Add(time.Hour), true),
		rem("tomorrow", testNow.Add(24*time.Hour), false),
	}

	got := Today(reminders, testNow)
	want := []string{"morning", "noon", "evening"}
	if len(got) != len(want) {
		t.Fatalf("got %d reminders, want %d", len(got), len(want))
	}
	for i, r := range got {
		if r.ID != want[i] {
			t.Errorf("today[%d] = %s, want %s", i, r.ID, want[i])
		}
	}
}

func TestUpcomingCappedAndSorted(t *testing.T) {
	var reminders []model.Reminder
	// Eight future reminders, inserted out of order.
	for _, d := range []int{5, 2, 8, 1, 7, 3, 6, 4} {
		reminders = append(reminders,
			rem(fmt.Sprintf("day+%d", d), testNow.AddDate(0, 0, d), false))
	}
	// These must never show up.
	reminders = append(reminders,
		rem("today", testNow.Add(time.Hour), false),
		rem("past", testNow.AddDate(0, 0, -1), false),
		rem("done", testNow.AddDate(0, 0, 2), true),
	)

	got := Upcoming(reminders, testNow)
	if len(got) != UpcomingLimit {
		t.Fatalf("got %d upcoming, want %d", len(got), UpcomingLimit)
	}
	for i, r := range got {
		want := fmt.Sprintf("day+%d", i+1)
		if r.ID != want {
			t.Errorf("upcoming[%d] = %s, want %s", i, r.ID, want)
		}
	}
}

func TestPartitionsAreDisjoint(t *testing.T) {
	reminders := []model.Reminder{
		rem("a", testNow.Add(time.Hour), false),
		rem("b", testNow.AddDate(0, 0, 1), false),
		rem("c", testNow.AddDate(0, 0, 2), true),
		rem("d", testNow.Add(-time.Hour), true),
	}

	seen := map[string]string{}
	record := func(list []model.Reminder, name string) {
		for _, r := range list {
			if prev, ok := seen[r.ID]; ok {
				t.Errorf("reminder %s appears in both %s and %s", r.ID, prev, name)
			}
			seen[r.ID] = name
		}
	}

	record(Today(reminders, testNow), "today")
	record(Upcoming(reminders, testNow), "upcoming")
	record(Completed(reminders), "completed")
}

func TestCompletedOrderedByCreationDesc(t *testing.T) {
	base := testNow.Add(-72 * time.Hour)
	reminders := []model.Reminder{
		{ID: "oldest", IsCompleted: true, CreatedAt: base},
		{ID: "newest", IsCompleted: true, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "middle", IsCompleted: true, CreatedAt: base.Add(time.Hour)},
		{ID: "open", IsCompleted: false, CreatedAt: base.Add(3 * time.Hour)},
	}

	got := Completed(reminders)
	want := []string{"newest", "middle", "oldest"}
	if len(got) != len(want) {
		t.Fatalf("got %d completed, want %d", len(got), len(want))
	}
	for i, r := range got {
		if r.ID != want[i] {
			t.Errorf("completed[%d] = %s, want %s", i, r.ID, want[i])
		}
	}
}

func TestMonthGridShape(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		anchor := time.Date(2025, month, 1, 0, 0, 0, 0, time.Local)
		days := MonthGrid(nil, anchor, testNow)

		if len(days)%7 != 0 {
			t.Errorf("%s: grid has %d days, not a multiple of 7", month, len(days))
		}
		if days[0].Date.Weekday() != time.Sunday {
			t.Errorf("%s: grid starts on %s, want Sunday", month, days[0].Date.Weekday())
		}
		if last := days[len(days)-1].Date.Weekday(); last != time.Saturday {
			t.Errorf("%s: grid ends on %s, want Saturday", month, last)
		}

		first, lastOfMonth := false, false
		monthEnd := anchor.AddDate(0, 1, -1)
		for _, d := range days {
			if d.Date.Month() == month && d.Date.Day() == 1 {
				first = true
			}
			if d.Date.Month() == month && d.Date.Day() == monthEnd.Day() {
				lastOfMonth = true
			}
			if got := d.Date.Month() == month; got != d.InMonth {
				t.Errorf("%s: day %s InMonth = %v", month, d.Date, d.InMonth)
			}
		}
		if !first || !lastOfMonth {
			t.Errorf("%s: grid missing first (%v) or last (%v) day of month", month, first, lastOfMonth)
		}
	}
}

func TestMonthGridCellContents(t *testing.T) {
	due := time.Date(2025, time.March, 20, 14, 0, 0, 0, time.Local)
	reminders := []model.Reminder{
		rem("visible", due, false),
		rem("hidden-completed", due, true),
	}

	days := MonthGrid(reminders, testNow, testNow)
	for _, d := range days {
		if d.Date.Day() == 20 && d.InMonth {
			if len(d.Reminders) != 1 || d.Reminders[0].ID != "visible" {
				t.Fatalf("cell for Mar 20 = %v, want only 'visible'", d.Reminders)
			}
		}
		if d.IsToday != (d.Date.Day() == 15 && d.InMonth) {
			t.Errorf("IsToday wrong for %s", d.Date)
		}
	}
}

func TestMonthNavigation(t *testing.T) {
	// Jan 31 anchors must not skip February in either direction.
	jan31 := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.Local)
	if got := NextMonth(jan31); got.Month() != time.February {
		t.Errorf("NextMonth(Jan 31) = %s, want February", got.Month())
	}

	mar31 := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.Local)
	if got := PrevMonth(mar31); got.Month() != time.February {
		t.Errorf("PrevMonth(Mar 31) = %s, want February", got.Month())
	}

	if got := CurrentMonth(testNow); got.Month() != time.March || got.Day() != 1 {
		t.Errorf("CurrentMonth = %s, want March 1", got)
	}

	// A full year of NextMonth comes back around.
	anchor := CurrentMonth(testNow)
	for i := 0; i < 12; i++ {
		anchor = NextMonth(anchor)
	}
	if anchor.Month() != time.March || anchor.Year() != 2026 {
		t.Errorf("12 x NextMonth = %s, want March 2026", anchor)
	}
}
