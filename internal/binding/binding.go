// Package binding ties a typed in-memory value to one named storage slot,
// with load-state tracking, same-process subscriber notification and
// application of external (cross-process) slot changes.
package binding

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/studysmarter/studysmarter/internal/slot"
	"github.com/studysmarter/studysmarter/internal/writequeue"
)

// Binding binds one value of type T to one slot key. All methods are safe
// for concurrent use. Persistence is last-write-wins: writes are serialized
// per key through the write queue, failures are reported to the queue's
// error handler and the in-memory value is kept (optimistic update).
type Binding[T any] struct {
	key     string
	initial T
	store   slot.Store // nil means no storage available; writes are refused
	queue   *writequeue.Queue
	log     zerolog.Logger

	mu      sync.Mutex
	value   T
	loading bool
	subs    []func(T)
}

// New creates a binding for key with initial as the fallback value.
// The binding reports Loading() == true until Load is called.
func New[T any](store slot.Store, queue *writequeue.Queue, key string, initial T, log zerolog.Logger) *Binding[T] {
	return &Binding[T]{
		key:     key,
		initial: initial,
		store:   store,
		queue:   queue,
		log:     log,
		value:   initial,
		loading: true,
	}
}

// Load performs the initial read. Absent or unparseable content falls back
// to the initial value with a warning; read failures are non-fatal. After
// Load returns, Loading reports false for the binding's lifetime.
func (b *Binding[T]) Load(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	defer func() { b.loading = false }()

	if b.store == nil {
		return
	}
	payload, ok, err := b.store.Read(ctx, b.key)
	if err != nil {
		b.log.Warn().Err(err).Str("slot", b.key).Msg("slot read failed, using initial value")
		return
	}
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		b.log.Warn().Err(err).Str("slot", b.key).Msg("slot payload unreadable, using initial value")
		return
	}
	b.value = v
}

// Loading reports whether the initial read attempt has resolved yet.
// State observed while Loading is true is not yet authoritative.
func (b *Binding[T]) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// Get returns the current in-memory value.
func (b *Binding[T]) Get() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Set replaces the value and persists it.
func (b *Binding[T]) Set(ctx context.Context, v T) {
	b.Update(ctx, func(T) T { return v })
}

// Update applies fn to the latest in-memory value (atomic read-modify-write
// under the binding mutex), persists the result and notifies subscribers.
// Without a backing store the write is refused with a warning and has no
// effect, including on the in-memory value.
func (b *Binding[T]) Update(ctx context.Context, fn func(T) T) {
	if b.store == nil {
		b.log.Warn().Str("slot", b.key).Msg("write refused: no storage available")
		return
	}

	b.mu.Lock()
	next := fn(b.value)
	payload, err := json.Marshal(next)
	if err != nil {
		b.mu.Unlock()
		b.log.Warn().Err(err).Str("slot", b.key).Msg("slot serialization failed, value unchanged")
		return
	}
	b.value = next
	subs := b.subs
	b.mu.Unlock()

	b.persist(ctx, payload)
	for _, fn := range subs {
		fn(next)
	}
}

func (b *Binding[T]) persist(ctx context.Context, payload []byte) {
	write := func(ctx context.Context) error {
		return b.store.Write(ctx, b.key, payload)
	}
	if b.queue == nil {
		if err := write(ctx); err != nil {
			b.log.Warn().Err(err).Str("slot", b.key).Msg("slot write failed, in-memory state kept")
		}
		return
	}
	// Fire-and-forget, ordered per slot key. The queue's error handler
	// logs failures; the optimistic in-memory update stands either way.
	if err := b.queue.Submit(ctx, b.key, writequeue.JobFunc(write)); err != nil {
		b.log.Warn().Err(err).Str("slot", b.key).Msg("slot write not enqueued, in-memory state kept")
	}
}

// Subscribe registers fn to be called with each new value, whether produced
// by a local update or an external change.
func (b *Binding[T]) Subscribe(fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// ApplyExternal applies a storage-change notification from another process.
// A nil payload (slot cleared) or an unparseable one resets to the initial
// value. Nothing is written back.
func (b *Binding[T]) ApplyExternal(payload []byte) {
	next := b.initial
	if payload != nil {
		var v T
		if err := json.Unmarshal(payload, &v); err != nil {
			b.log.Warn().Err(err).Str("slot", b.key).Msg("external slot change unreadable, resetting to initial value")
		} else {
			next = v
		}
	}

	b.mu.Lock()
	b.value = next
	subs := b.subs
	b.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// Flush blocks until every previously submitted persist for this slot has
// completed. Used at shutdown and in tests.
func (b *Binding[T]) Flush(ctx context.Context) error {
	if b.queue == nil {
		return nil
	}
	return b.queue.Barrier(ctx, b.key)
}

// Key returns the slot key this binding is bound to.
func (b *Binding[T]) Key() string { return b.key }
