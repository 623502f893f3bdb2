package store

import (
	"context"

	"github.com/nhle/remind/internal/model"
)

// Store defines the persistence interface for the reminder collection.
// The whole collection is the unit of persistence: every save replaces
// the previous snapshot.
type Store interface {
	// LoadReminders returns the persisted collection. A missing or
	// unreadable snapshot yields an empty collection, not an error.
	LoadReminders(ctx context.Context) ([]model.Reminder, error)

	// SaveReminders replaces the persisted collection.
	SaveReminders(ctx context.Context, reminders []model.Reminder) error

	Close() error
}
