package services

import (
	"sync"
	"time"
)

// Payment check states as reported by the tracker.
const (
	CheckStatusProcessing = "processing"
	CheckStatusPaid       = "paid"
	CheckStatusFailed     = "failed"
)

// PaymentCheck is the in-flight state of one simulated payment.
type PaymentCheck struct {
	Status     string    `json:"status"`
	StartTime  time.Time `json:"start_time"`
	LastUpdate time.Time `json:"last_update"`
}

// PaymentTracker holds the per-order payment-check state the status
// endpoint consults while a simulation is running. It is injected into
// the components that need it; swapping the in-process implementation
// for a shared cache only requires another implementation of this
// interface.
type PaymentTracker interface {
	Begin(orderNumber string)
	Resolve(orderNumber, status string)
	Get(orderNumber string) (PaymentCheck, bool)
	ActiveCount() int
	Snapshot() map[string]PaymentCheck
}

type memoryPaymentTracker struct {
	mu     sync.RWMutex
	checks map[string]PaymentCheck
}

// NewPaymentTracker returns an in-process tracker keyed by order
// number. State is lost on restart; in-flight simulations are
// best-effort by design.
func NewPaymentTracker() PaymentTracker {
	return &memoryPaymentTracker{
		checks: make(map[string]PaymentCheck),
	}
}

func (t *memoryPaymentTracker) Begin(orderNumber string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.checks[orderNumber] = PaymentCheck{
		Status:     CheckStatusProcessing,
		StartTime:  now,
		LastUpdate: now,
	}
}

func (t *memoryPaymentTracker) Resolve(orderNumber, status string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	check, ok := t.checks[orderNumber]
	if !ok {
		check = PaymentCheck{StartTime: time.Now()}
	}
	check.Status = status
	check.LastUpdate = time.Now()
	t.checks[orderNumber] = check
}

func (t *memoryPaymentTracker) Get(orderNumber string) (PaymentCheck, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	check, ok := t.checks[orderNumber]
	return check, ok
}

func (t *memoryPaymentTracker) ActiveCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for _, check := range t.checks {
		if check.Status == CheckStatusProcessing {
			count++
		}
	}
	return count
}

func (t *memoryPaymentTracker) Snapshot() map[string]PaymentCheck {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]PaymentCheck, len(t.checks))
	for k, v := range t.checks {
		out[k] = v
	}
	return out
}
