package sync

import (
	"sync"

	"go.uber.org/zap"
)

// Status represents the externally visible state of a sync pass
type Status string

const (
	StatusSyncing Status = "SYNCING"
	StatusSuccess Status = "SUCCESS"
	StatusError   Status = "ERROR"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	return s == StatusSyncing || s == StatusSuccess || s == StatusError
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// Listener receives sync status notifications. The message is empty unless
// the status carries detail (an error description, a push-phase summary).
type Listener func(status Status, message string)

type subscription struct {
	id int
	fn Listener
}

// Notifier delivers sync status events to subscribers synchronously and in
// subscription order. A subscriber that panics is logged and skipped;
// delivery always continues to the remaining subscribers.
type Notifier struct {
	mu     sync.Mutex
	logger *zap.Logger
	nextID int
	subs   []subscription
}

// NewNotifier creates a new status notifier
func NewNotifier(logger *zap.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// Subscribe registers a listener and returns a function that removes it
func (n *Notifier) Subscribe(fn Listener) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	n.subs = append(n.subs, subscription{id: id, fn: fn})

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, sub := range n.subs {
			if sub.id == id {
				n.subs = append(n.subs[:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

// Notify delivers a status event to every subscriber in subscription order
func (n *Notifier) Notify(status Status, message string) {
	n.mu.Lock()
	subs := make([]subscription, len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, sub := range subs {
		n.deliver(sub, status, message)
	}
}

// deliver dispatches one event to one subscriber, recovering panics so a
// failing subscriber cannot abort delivery to the others
func (n *Notifier) deliver(sub subscription, status Status, message string) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("sync status subscriber panicked",
				zap.String("status", status.String()),
				zap.Any("panic", r),
			)
		}
	}()

	sub.fn(status, message)
}
