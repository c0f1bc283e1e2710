package slot

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ChangeFunc receives the key and the new payload of a changed slot.
// payload is nil when the slot was cleared.
type ChangeFunc func(key string, payload []byte)

// Watcher polls a set of slots and reports payload changes, the local
// analogue of a browser storage event: a second process bound to the same
// slot converges without an explicit local write.
type Watcher struct {
	store    Store
	keys     []string
	interval time.Duration
	log      zerolog.Logger

	mu       sync.Mutex
	lastSeen map[string][]byte
	onChange []ChangeFunc
}

// NewWatcher creates a watcher over the given slot keys.
func NewWatcher(store Store, keys []string, interval time.Duration, log zerolog.Logger) *Watcher {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Watcher{
		store:    store,
		keys:     append([]string(nil), keys...),
		interval: interval,
		log:      log,
		lastSeen: make(map[string][]byte),
	}
}

// OnChange registers fn to be called for every observed slot change.
// Must be called before Start.
func (w *Watcher) OnChange(fn ChangeFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, fn)
}

// Prime records the current payloads as already seen so Start only reports
// changes made after this call.
func (w *Watcher) Prime(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, key := range w.keys {
		payload, ok, err := w.store.Read(ctx, key)
		if err != nil || !ok {
			w.lastSeen[key] = nil
			continue
		}
		w.lastSeen[key] = payload
	}
}

// Start polls until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	for _, key := range w.keys {
		payload, ok, err := w.store.Read(ctx, key)
		if err != nil {
			w.log.Warn().Err(err).Str("slot", key).Msg("watch read failed")
			continue
		}
		if !ok {
			payload = nil
		}

		w.mu.Lock()
		prev, seen := w.lastSeen[key]
		changed := !seen || !bytes.Equal(prev, payload)
		if changed {
			w.lastSeen[key] = payload
		}
		handlers := w.onChange
		w.mu.Unlock()

		if !changed {
			continue
		}
		for _, fn := range handlers {
			fn(key, payload)
		}
	}
}

// Observe updates the watcher's view of a slot after a local write so the
// originating process does not re-notify itself, mirroring the browser
// behaviour where the storage event only fires in other tabs.
func (w *Watcher) Observe(key string, payload []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastSeen[key] = append([]byte(nil), payload...)
}

// ObserveStore wraps st so every local write is recorded via Observe before
// the next poll can mistake it for an external change.
func (w *Watcher) ObserveStore(st Store) Store {
	return &observedStore{Store: st, w: w}
}

type observedStore struct {
	Store
	w *Watcher
}

func (o *observedStore) Write(ctx context.Context, key string, payload []byte) error {
	if err := o.Store.Write(ctx, key, payload); err != nil {
		return err
	}
	o.w.Observe(key, payload)
	return nil
}

func (o *observedStore) Delete(ctx context.Context, key string) error {
	if err := o.Store.Delete(ctx, key); err != nil {
		return err
	}
	o.w.Observe(key, nil)
	return nil
}
