// Package slot persists named slots of raw JSON, the durable substrate
// beneath the binding layer. Implementations live in this package
// (file-per-slot and sqlite-backed).
package slot

import "context"

// Store maps slot keys to raw JSON payloads.
type Store interface {
	// Read returns the payload for key. ok is false when the slot is absent.
	Read(ctx context.Context, key string) (payload []byte, ok bool, err error)
	// Write replaces the payload for key, creating the slot if needed.
	Write(ctx context.Context, key string, payload []byte) error
	// Delete removes the slot. Deleting an absent slot is not an error.
	Delete(ctx context.Context, key string) error
	// Keys lists all slot keys currently present.
	Keys(ctx context.Context) ([]string, error)
}
