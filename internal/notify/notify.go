// Package notify carries the transient user-visible notifications the study
// store emits for every mutation, the service-side analogue of UI toasts.
package notify

import "github.com/rs/zerolog"

// Notification describes one completed store action.
// Destructive marks deletions for distinguished presentation.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Destructive bool   `json:"destructive,omitempty"`
}

// Notifier receives notifications. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

// Bus is a lightweight in-process pub-sub implementation backed by a
// buffered channel. Publish never blocks; when the buffer is full the
// notification is dropped (notifications are transient by contract).
type Bus struct {
	ch chan Notification
}

// NewBus creates a bus with the given buffer size.
func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = 16
	}
	return &Bus{ch: make(chan Notification, buffer)}
}

// Notify implements Notifier.
func (b *Bus) Notify(n Notification) {
	select {
	case b.ch <- n:
	default:
	}
}

// Subscribe returns a read-only channel for consumers.
func (b *Bus) Subscribe() <-chan Notification {
	return b.ch
}

// LogNotifier writes notifications to a zerolog logger.
type LogNotifier struct {
	Log zerolog.Logger
}

// Notify implements Notifier.
func (l LogNotifier) Notify(n Notification) {
	ev := l.Log.Info()
	if n.Destructive {
		ev = l.Log.Warn()
	}
	ev.Str("title", n.Title).Str("description", n.Description).Msg("notification")
}

// Multi fans one notification out to several notifiers.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(n Notification) {
	for _, sub := range m {
		sub.Notify(n)
	}
}

// Discard drops all notifications. Useful in tests and the CLI.
type Discard struct{}

// Notify implements Notifier.
func (Discard) Notify(Notification) {}
