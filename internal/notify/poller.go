package notify

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nhle/remind/internal/model"
	"github.com/nhle/remind/internal/reminder"
)

// notifyTitle is the fixed title for every due-reminder notification.
const notifyTitle = "✨ Reminder time!"

// DueMsg is a tea.Msg sent after a scan that fired at least one
// notification, so the UI can refresh.
type DueMsg struct {
	Notified []model.Reminder
}

// Poller runs the recurring due-time check on its own goroutine and
// bridges results back into the Bubble Tea runtime through a channel.
type Poller struct {
	repo     *reminder.Repository
	delivery Delivery
	interval time.Duration
	window   time.Duration
	now      func() time.Time

	resultCh chan DueMsg
	stopCh   chan struct{}
	mu       sync.Mutex
	running  bool
}

// New creates a Poller scanning every interval with the given detection
// window. The clock is injectable for tests; nil means time.Now.
func New(
	repo *reminder.Repository,
	delivery Delivery,
	interval, window time.Duration,
	now func() time.Time,
) *Poller {
	if now == nil {
		now = time.Now
	}
	return &Poller{
		repo:     repo,
		delivery: delivery,
		interval: interval,
		window:   window,
		now:      now,
		resultCh: make(chan DueMsg, 16),
		stopCh:   make(chan struct{}),
	}
}

// Start launches the polling goroutine and returns a subscription
// command that waits for the first result. Starting requires granted
// permission; otherwise nothing runs and nil is returned.
func (p *Poller) Start() tea.Cmd {
	if p.delivery.PermissionState() != PermissionGranted {
		return nil
	}

	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return p.waitForDue()
	}
	p.running = true
	p.mu.Unlock()

	go p.run()
	return p.waitForDue()
}

// Stop tears the polling goroutine down. Safe to call more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.running = false
}

// WaitForNextDue returns a command that waits for the next scan result.
// Call it after handling a DueMsg to keep listening.
func (p *Poller) WaitForNextDue() tea.Cmd {
	return p.waitForDue()
}

// run is the polling loop. Each tick scans a snapshot of the collection
// and fires notifications for whatever just became due.
func (p *Poller) run() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Catch anything already in the window at startup.
	p.scanOnce()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			if p.delivery.PermissionState() != PermissionGranted {
				continue
			}
			p.scanOnce()
		}
	}
}

// scanOnce notifies every qualifying reminder and marks it notified.
// Delivery failures are logged per reminder and skip only the mark for
// that reminder, so one failure never blocks the rest of the batch; the
// failed one retries on the next tick while it remains in the window.
func (p *Poller) scanOnce() {
	now := p.now()
	due := DueReminders(p.repo.All(), now, p.window)
	if len(due) == 0 {
		return
	}

	var notified []model.Reminder
	for _, r := range due {
		if err := p.delivery.Notify(notifyTitle, r.Title); err != nil {
			log.Error("delivering notification", "id", r.ID, "title", r.Title, "err", err)
			continue
		}
		p.repo.MarkNotified(r.ID)
		notified = append(notified, r)
	}

	log.Debug("due scan", "at", now, "due", len(due), "notified", len(notified))

	if len(notified) > 0 {
		p.sendResult(DueMsg{Notified: notified})
	}
}

// sendResult sends a DueMsg without blocking the poller.
func (p *Poller) sendResult(msg DueMsg) {
	select {
	case p.resultCh <- msg:
	default:
		// Drop if the channel is full; the UI refreshes on the next one.
	}
}

// waitForDue returns a tea.Cmd that waits for the next scan result.
func (p *Poller) waitForDue() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-p.resultCh
		if !ok {
			return nil
		}
		return result
	}
}
