package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/nhle/remind/internal/model"
	"github.com/nhle/remind/internal/reminder"
	"github.com/nhle/remind/tests/testutil"
)

func newTestPoller(t *testing.T, d Delivery, at time.Time) (*Poller, *reminder.Repository) {
	t.Helper()

	clock := func() time.Time { return at }
	repo := reminder.New(testutil.NewTestStore(t), clock)
	p := New(repo, d, 10*time.Second, window, clock)
	return p, repo
}

func TestScanNotifiesExactlyOnce(t *testing.T) {
	delivery := &NopDelivery{State: PermissionGranted}
	p, repo := newTestPoller(t, delivery, dueAt.Add(30*time.Second))

	created := repo.Create(model.FormData{
		Title:       "Buy milk",
		DueDateTime: dueAt,
		Priority:    model.PriorityMedium,
	})

	p.scanOnce()
	p.scanOnce()

	if len(delivery.Sent) != 1 || delivery.Sent[0] != "Buy milk" {
		t.Fatalf("Sent = %v, want exactly one 'Buy milk'", delivery.Sent)
	}
	if r, _ := repo.Get(created.ID); !r.WasNotified {
		t.Error("reminder not marked notified")
	}

	select {
	case msg := <-p.resultCh:
		if len(msg.Notified) != 1 || msg.Notified[0].ID != created.ID {
			t.Errorf("DueMsg = %v, want the created reminder", msg.Notified)
		}
	default:
		t.Error("no DueMsg sent after a successful scan")
	}
}

func TestScanSkipsCompleted(t *testing.T) {
	delivery := &NopDelivery{State: PermissionGranted}
	p, repo := newTestPoller(t, delivery, dueAt)

	created := repo.Create(model.FormData{
		Title:       "Already handled",
		DueDateTime: dueAt,
		Priority:    model.PriorityMedium,
	})
	repo.ToggleComplete(created.ID)

	p.scanOnce()

	if len(delivery.Sent) != 0 {
		t.Errorf("Sent = %v, want nothing for a completed reminder", delivery.Sent)
	}
}

func TestDeliveryFailureDoesNotBlockBatch(t *testing.T) {
	delivery := &NopDelivery{State: PermissionGranted, Err: errors.New("dbus unavailable")}
	p, repo := newTestPoller(t, delivery, dueAt)

	first := repo.Create(model.FormData{
		Title:       "first",
		DueDateTime: dueAt,
		Priority:    model.PriorityMedium,
	})
	second := repo.Create(model.FormData{
		Title:       "second",
		DueDateTime: dueAt,
		Priority:    model.PriorityMedium,
	})

	p.scanOnce()

	// Neither was marked: the failed attempt must not consume the
	// one-shot, so both retry on the next tick.
	for _, id := range []string{first.ID, second.ID} {
		if r, _ := repo.Get(id); r.WasNotified {
			t.Errorf("reminder %s marked notified despite delivery failure", r.Title)
		}
	}

	delivery.Err = nil
	p.scanOnce()

	if len(delivery.Sent) != 2 {
		t.Fatalf("Sent = %v, want both reminders after recovery", delivery.Sent)
	}
	for _, id := range []string{first.ID, second.ID} {
		if r, _ := repo.Get(id); !r.WasNotified {
			t.Errorf("reminder %s not marked after successful retry", r.Title)
		}
	}
}

func TestStartRequiresPermission(t *testing.T) {
	delivery := &NopDelivery{State: PermissionDenied}
	p, _ := newTestPoller(t, delivery, dueAt)

	if cmd := p.Start(); cmd != nil {
		t.Error("Start returned a command without granted permission")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	delivery := &NopDelivery{State: PermissionGranted}
	p, _ := newTestPoller(t, delivery, dueAt)

	if cmd := p.Start(); cmd == nil {
		t.Fatal("Start returned nil with granted permission")
	}
	p.Stop()
	p.Stop()
}
