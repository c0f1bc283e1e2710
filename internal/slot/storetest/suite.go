package storetest

import (
	"context"
	"testing"

	"github.com/studysmarter/studysmarter/internal/slot"
)

// Run exercises a minimal compliance suite against a slot.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) slot.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	// Absent slot
	if _, ok, err := s.Read(ctx, "studySmarter_decks"); err != nil || ok {
		t.Fatalf("Read absent: ok=%v err=%v", ok, err)
	}

	// Write then read back
	payload := []byte(`[{"id":"d1","name":"Biology"}]`)
	if err := s.Write(ctx, "studySmarter_decks", payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, ok, err := s.Read(ctx, "studySmarter_decks")
	if err != nil || !ok {
		t.Fatalf("Read after write: ok=%v err=%v", ok, err)
	}
	if string(got) != string(payload) {
		t.Fatalf("Read mismatch: got %s want %s", got, payload)
	}

	// Overwrite
	if err := s.Write(ctx, "studySmarter_decks", []byte(`[]`)); err != nil {
		t.Fatalf("Overwrite: %v", err)
	}
	if got, _, _ := s.Read(ctx, "studySmarter_decks"); string(got) != `[]` {
		t.Fatalf("Overwrite read mismatch: got %s", got)
	}

	// Second slot is independent
	if err := s.Write(ctx, "studySmarter_flashcards", []byte(`[1]`)); err != nil {
		t.Fatalf("Write second slot: %v", err)
	}
	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("Keys: got %v, want two slots", keys)
	}

	// Delete is idempotent
	if err := s.Delete(ctx, "studySmarter_flashcards"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "studySmarter_flashcards"); err != nil {
		t.Fatalf("Delete absent: %v", err)
	}
	if _, ok, _ := s.Read(ctx, "studySmarter_flashcards"); ok {
		t.Fatalf("Read after delete: slot still present")
	}
}
