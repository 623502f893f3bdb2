package reminder_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/nhle/remind/internal/model"
	"github.com/nhle/remind/internal/reminder"
	"github.com/nhle/remind/tests/testutil"
)

var testNow = time.Date(2025, time.March, 15, 9, 0, 0, 0, time.Local)

func fixedClock() time.Time { return testNow }

func newTestRepo(t *testing.T) *reminder.Repository {
	t.Helper()
	return reminder.New(testutil.NewTestStore(t), fixedClock)
}

func milkForm() model.FormData {
	return model.FormData{
		Title:       "Buy milk",
		Notes:       "the oat kind",
		DueDateTime: testNow.Add(time.Hour),
		Priority:    model.PriorityHigh,
		Labels:      "errands, groceries",
		Color:       "#FF69B4",
	}
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	repo := newTestRepo(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		r := repo.Create(milkForm())
		if r.ID == "" {
			t.Fatal("created reminder has empty id")
		}
		if seen[r.ID] {
			t.Fatalf("duplicate id %s", r.ID)
		}
		seen[r.ID] = true
	}

	if repo.Len() != 50 {
		t.Errorf("Len() = %d, want 50", repo.Len())
	}
}

func TestCreateSetsDefaults(t *testing.T) {
	repo := newTestRepo(t)

	r := repo.Create(milkForm())
	if r.IsCompleted {
		t.Error("new reminder is completed")
	}
	if r.WasNotified {
		t.Error("new reminder is marked notified")
	}
	if !r.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v, want %v", r.CreatedAt, testNow)
	}
	if want := []string{"errands", "groceries"}; !reflect.DeepEqual(r.Labels, want) {
		t.Errorf("Labels = %v, want %v", r.Labels, want)
	}
}

func TestUpdateReplacesFieldsAndRearmsNotification(t *testing.T) {
	repo := newTestRepo(t)
	created := repo.Create(milkForm())

	// Simulate the notification having fired.
	repo.MarkNotified(created.ID)
	if r, _ := repo.Get(created.ID); !r.WasNotified {
		t.Fatal("MarkNotified did not stick")
	}

	form := model.FormData{
		Title:       "Buy oat milk",
		Notes:       "",
		DueDateTime: testNow.Add(4 * time.Hour),
		Priority:    model.PriorityLow,
		Labels:      " groceries ,, ",
		Color:       "",
	}
	updated, ok := repo.Update(created.ID, form)
	if !ok {
		t.Fatal("Update reported not found")
	}

	if updated.Title != "Buy oat milk" || updated.Priority != model.PriorityLow {
		t.Errorf("fields not replaced: %+v", updated)
	}
	if !updated.DueDateTime.Equal(form.DueDateTime) {
		t.Errorf("DueDateTime = %v, want %v", updated.DueDateTime, form.DueDateTime)
	}
	if want := []string{"groceries"}; !reflect.DeepEqual(updated.Labels, want) {
		t.Errorf("Labels = %v, want %v", updated.Labels, want)
	}
	if updated.WasNotified {
		t.Error("edit did not reset WasNotified")
	}
	if updated.ID != created.ID || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("edit changed immutable fields")
	}
}

func TestUpdateUnknownID(t *testing.T) {
	repo := newTestRepo(t)
	repo.Create(milkForm())

	if _, ok := repo.Update("no-such-id", milkForm()); ok {
		t.Error("Update of unknown id reported success")
	}
	if repo.Len() != 1 {
		t.Errorf("Len() = %d after failed update, want 1", repo.Len())
	}
}

func TestToggleCompleteIsAnInvolution(t *testing.T) {
	repo := newTestRepo(t)
	created := repo.Create(milkForm())

	once, ok := repo.ToggleComplete(created.ID)
	if !ok || !once.IsCompleted {
		t.Fatalf("first toggle: ok=%v completed=%v", ok, once.IsCompleted)
	}

	twice, ok := repo.ToggleComplete(created.ID)
	if !ok || twice.IsCompleted {
		t.Fatalf("second toggle: ok=%v completed=%v", ok, twice.IsCompleted)
	}
	if twice.IsCompleted != created.IsCompleted {
		t.Error("double toggle did not restore original state")
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	created := repo.Create(milkForm())

	if !repo.Delete(created.ID) {
		t.Fatal("Delete reported nothing removed")
	}
	if repo.Delete(created.ID) {
		t.Error("second Delete reported success")
	}
	if repo.Len() != 0 {
		t.Errorf("Len() = %d after delete, want 0", repo.Len())
	}
}

func TestMarkNotifiedIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	created := repo.Create(milkForm())

	repo.MarkNotified(created.ID)
	repo.MarkNotified(created.ID)
	repo.MarkNotified("no-such-id")

	r, ok := repo.Get(created.ID)
	if !ok || !r.WasNotified {
		t.Errorf("WasNotified = %v, want true", r.WasNotified)
	}
}

func TestStats(t *testing.T) {
	repo := newTestRepo(t)
	a := repo.Create(milkForm())
	repo.Create(milkForm())
	repo.Create(milkForm())
	repo.ToggleComplete(a.ID)

	completed, total := repo.Stats()
	if completed != 1 || total != 3 {
		t.Errorf("Stats() = (%d, %d), want (1, 3)", completed, total)
	}
}

func TestMutationsPersistThroughStore(t *testing.T) {
	s := testutil.NewTestStore(t)
	repo := reminder.New(s, fixedClock)

	created := repo.Create(milkForm())
	other := repo.Create(milkForm())
	repo.ToggleComplete(created.ID)
	repo.Delete(other.ID)

	// A second repository over the same store sees the final state.
	fresh := reminder.New(s, fixedClock)
	if err := fresh.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if fresh.Len() != 1 {
		t.Fatalf("reloaded Len() = %d, want 1", fresh.Len())
	}
	r, ok := fresh.Get(created.ID)
	if !ok {
		t.Fatal("reloaded repository missing surviving reminder")
	}
	if !r.IsCompleted {
		t.Error("completion state did not survive the round trip")
	}
	if want := []string{"errands", "groceries"}; !reflect.DeepEqual(r.Labels, want) {
		t.Errorf("reloaded Labels = %v, want %v", r.Labels, want)
	}
}

func TestAllReturnsSnapshot(t *testing.T) {
	repo := newTestRepo(t)
	repo.Create(milkForm())

	snapshot := repo.All()
	snapshot[0].Title = "mutated"

	r, _ := repo.Get(snapshot[0].ID)
	if r.Title == "mutated" {
		t.Error("mutating the snapshot changed repository state")
	}
}
