// Package reminder owns the canonical in-memory reminder collection and
// its mutation rules. Persistence is write-through and best-effort:
// every mutation saves the full collection, and a failed save is logged
// rather than surfaced. The in-memory state stays authoritative for the
// session.
package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nhle/remind/internal/model"
	"github.com/nhle/remind/internal/store"
)

// saveTimeout bounds a single background persistence write.
const saveTimeout = 5 * time.Second

// Repository is the single source of truth for the reminder collection.
// It is safe for concurrent use; the due-check poller reads and mutates
// it from its own goroutine.
type Repository struct {
	mu        sync.Mutex
	reminders []model.Reminder
	store     store.Store
	now       func() time.Time
}

// New creates a Repository backed by the given store. The clock is
// injectable for tests; nil means time.Now.
func New(s store.Store, now func() time.Time) *Repository {
	if now == nil {
		now = time.Now
	}
	return &Repository{
		reminders: []model.Reminder{},
		store:     s,
		now:       now,
	}
}

// Load performs the one-shot startup read. Until it completes the
// repository is simply empty, which renders the same as "no reminders
// yet".
func (r *Repository) Load(ctx context.Context) error {
	loaded, err := r.store.LoadReminders(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.reminders = loaded
	r.mu.Unlock()
	return nil
}

// Create builds a new reminder from the form, appends it to the
// collection, and persists.
func (r *Repository) Create(form model.FormData) model.Reminder {
	rem := model.Reminder{
		ID:          uuid.New().String(),
		Title:       form.Title,
		Notes:       form.Notes,
		DueDateTime: form.DueDateTime,
		Priority:    form.Priority,
		Labels:      model.ParseLabels(form.Labels),
		Color:       form.Color,
		CreatedAt:   r.now(),
	}

	r.mu.Lock()
	r.reminders = append(r.reminders, rem)
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.persist(snapshot)
	return rem
}

// Update replaces all user-editable fields on the matching reminder and
// re-arms the due notification by resetting WasNotified. The reset is
// unconditional: a reminder whose due time was moved after it already
// fired must notify again at the new time. Returns false if the id is
// not present.
func (r *Repository) Update(id string, form model.FormData) (model.Reminder, bool) {
	r.mu.Lock()
	idx := r.indexLocked(id)
	if idx < 0 {
		r.mu.Unlock()
		return model.Reminder{}, false
	}

	rem := &r.reminders[idx]
	rem.Title = form.Title
	rem.Notes = form.Notes
	rem.DueDateTime = form.DueDateTime
	rem.Priority = form.Priority
	rem.Labels = model.ParseLabels(form.Labels)
	rem.Color = form.Color
	rem.WasNotified = false

	updated := *rem
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.persist(snapshot)
	return updated, true
}

// ToggleComplete flips the completion state of the matching reminder.
// The returned reminder carries the new state, so a false→true
// transition is visible to the caller (which may celebrate).
func (r *Repository) ToggleComplete(id string) (model.Reminder, bool) {
	r.mu.Lock()
	idx := r.indexLocked(id)
	if idx < 0 {
		r.mu.Unlock()
		return model.Reminder{}, false
	}

	r.reminders[idx].IsCompleted = !r.reminders[idx].IsCompleted
	toggled := r.reminders[idx]
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.persist(snapshot)
	return toggled, true
}

// Delete removes the reminder permanently and reports whether anything
// was removed. Confirmation is the caller's job.
func (r *Repository) Delete(id string) bool {
	r.mu.Lock()
	idx := r.indexLocked(id)
	if idx < 0 {
		r.mu.Unlock()
		return false
	}

	r.reminders = append(r.reminders[:idx], r.reminders[idx+1:]...)
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.persist(snapshot)
	return true
}

// MarkNotified records that the due notification fired for this
// reminder. Idempotent; unknown ids are a no-op.
func (r *Repository) MarkNotified(id string) {
	r.mu.Lock()
	idx := r.indexLocked(id)
	if idx < 0 || r.reminders[idx].WasNotified {
		r.mu.Unlock()
		return
	}

	r.reminders[idx].WasNotified = true
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.persist(snapshot)
}

// Get returns the reminder with the given id.
func (r *Repository) Get(id string) (model.Reminder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return model.Reminder{}, false
	}
	return r.reminders[idx], true
}

// All returns a snapshot copy of the collection.
func (r *Repository) All() []model.Reminder {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Len returns the number of reminders.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reminders)
}

// Stats returns how many reminders are completed out of the total.
func (r *Repository) Stats() (completed, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rem := range r.reminders {
		if rem.IsCompleted {
			completed++
		}
	}
	return completed, len(r.reminders)
}

// indexLocked returns the position of the reminder with the given id,
// or -1. Callers must hold mu.
func (r *Repository) indexLocked(id string) int {
	for i := range r.reminders {
		if r.reminders[i].ID == id {
			return i
		}
	}
	return -1
}

// snapshotLocked copies the collection. Callers must hold mu.
func (r *Repository) snapshotLocked() []model.Reminder {
	out := make([]model.Reminder, len(r.reminders))
	copy(out, r.reminders)
	return out
}

// persist writes the snapshot through to the store. Fire-and-forget
// from the caller's perspective: failures are logged and swallowed, and
// the next mutation writes the full collection again anyway.
func (r *Repository) persist(snapshot []model.Reminder) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := r.store.SaveReminders(ctx, snapshot); err != nil {
		log.Error("persisting reminders", "count", len(snapshot), "err", err)
	}
}
