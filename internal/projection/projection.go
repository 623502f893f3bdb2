// Package projection derives the display views from the reminder
// collection. Everything here is pure: given the same collection, wall
// clock, and search query, the same lists come back, and nothing is
// mutated.
package projection

import (
	"sort"
	"strings"
	"time"

	"github.com/nhle/remind/internal/model"
)

// UpcomingLimit caps the "Coming Up Soon" strip on the today view.
const UpcomingLimit = 5

// Filter returns the reminders matching the search query with a
// case-insensitive substring check against title, notes, and labels.
// An empty query passes everything through.
func Filter(reminders []model.Reminder, query string) []model.Reminder {
	query = strings.TrimSpace(query)
	if query == "" {
		return reminders
	}

	q := strings.ToLower(query)
	var out []model.Reminder
	for _, r := range reminders {
		if matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r model.Reminder, q string) bool {
	if strings.Contains(strings.ToLower(r.Title), q) {
		return true
	}
	if r.Notes != "" && strings.Contains(strings.ToLower(r.Notes), q) {
		return true
	}
	for _, l := range r.Labels {
		if strings.Contains(strings.ToLower(l), q) {
			return true
		}
	}
	return false
}

// Today returns the incomplete reminders due on the same calendar day
// as now, earliest first.
func Today(reminders []model.Reminder, now time.Time) []model.Reminder {
	var out []model.Reminder
	for _, r := range reminders {
		if !r.IsCompleted && sameDay(r.DueDateTime, now) {
			out = append(out, r)
		}
	}
	sortByDue(out)
	return out
}

// Upcoming returns the incomplete reminders due strictly after now on a
// later calendar day, earliest first, capped at UpcomingLimit.
func Upcoming(reminders []model.Reminder, now time.Time) []model.Reminder {
	var out []model.Reminder
	for _, r := range reminders {
		if r.IsCompleted || sameDay(r.DueDateTime, now) {
			continue
		}
		if r.DueDateTime.After(now) {
			out = append(out, r)
		}
	}
	sortByDue(out)
	if len(out) > UpcomingLimit {
		out = out[:UpcomingLimit]
	}
	return out
}

// Completed returns the completed reminders, most recently created
// first. Completion time is not tracked, so creation time is the best
// available ordering.
func Completed(reminders []model.Reminder) []model.Reminder {
	var out []model.Reminder
	for _, r := range reminders {
		if r.IsCompleted {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Day is one cell of the calendar month grid.
type Day struct {
	Date    time.Time
	InMonth bool
	IsToday bool

	// Reminders holds the incomplete reminders due on this day,
	// earliest first. Completed reminders never appear on the grid.
	Reminders []model.Reminder
}

// MonthGrid lays out the month containing anchor as full Sunday-start
// weeks: from the Sunday on or before the 1st through the Saturday on
// or after the month's last day. The result length is always a multiple
// of seven.
func MonthGrid(reminders []model.Reminder, anchor, now time.Time) []Day {
	monthStart := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, int(time.Saturday-monthEnd.Weekday()))

	var days []Day
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		var due []model.Reminder
		for _, r := range reminders {
			if !r.IsCompleted && sameDay(r.DueDateTime, d) {
				due = append(due, r)
			}
		}
		sortByDue(due)

		days = append(days, Day{
			Date:      d,
			InMonth:   d.Month() == monthStart.Month(),
			IsToday:   sameDay(d, now),
			Reminders: due,
		})
	}
	return days
}

// NextMonth advances the calendar anchor by one month. The anchor is
// normalized to the first of the month so day-of-month overflow can
// never skip a month.
func NextMonth(anchor time.Time) time.Time {
	return monthOf(anchor).AddDate(0, 1, 0)
}

// PrevMonth retreats the calendar anchor by one month.
func PrevMonth(anchor time.Time) time.Time {
	return monthOf(anchor).AddDate(0, -1, 0)
}

// CurrentMonth returns the anchor for the month containing now.
func CurrentMonth(now time.Time) time.Time {
	return monthOf(now)
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sortByDue(rs []model.Reminder) {
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].DueDateTime.Before(rs[j].DueDateTime)
	})
}
