package study

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studysmarter/studysmarter/internal/model"
	"github.com/studysmarter/studysmarter/internal/notify"
	"github.com/studysmarter/studysmarter/internal/slot"
)

func newTestStore(t *testing.T) (*Store, slot.Store) {
	t.Helper()
	fs, err := slot.NewFileStore(t.TempDir())
	require.NoError(t, err)
	s := NewStore(context.Background(), fs, nil, nil, zerolog.Nop())
	return s, fs
}

func TestStore_LoadingResolvesAfterConstruction(t *testing.T) {
	s, _ := newTestStore(t)
	assert.False(t, s.Loading())
}

func TestStore_AddDeck(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	desc := "cells and such"
	d := s.AddDeck(ctx, "Biology", &desc)
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, "Biology", d.Name)
	assert.Equal(t, d.CreatedAt, d.UpdatedAt)

	got, ok := s.GetDeckByID(d.ID)
	require.True(t, ok)
	assert.Equal(t, d, got)
}

func TestStore_UpdateDeckPreservesIdentity(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	d := s.AddDeck(ctx, "Biology", nil)

	// Deterministic clock: the update happens strictly later.
	later := d.UpdatedAt.Add(time.Second)
	s.now = func() time.Time { return later }

	name := "X"
	s.UpdateDeck(ctx, d.ID, model.DeckPatch{Name: &name})

	got, ok := s.GetDeckByID(d.ID)
	require.True(t, ok)
	assert.Equal(t, "X", got.Name)
	assert.Equal(t, d.ID, got.ID)
	assert.Equal(t, d.CreatedAt, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(d.UpdatedAt), "UpdatedAt must be strictly later")
}

func TestStore_UpdateDeckMissingIDIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	d := s.AddDeck(ctx, "Biology", nil)
	name := "X"
	s.UpdateDeck(ctx, "nonexistent", model.DeckPatch{Name: &name})

	got, ok := s.GetDeckByID(d.ID)
	require.True(t, ok)
	assert.Equal(t, d, got)
	assert.Len(t, s.ListDecks(), 1)
}

func TestStore_CascadeDelete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	d := s.AddDeck(ctx, "Biology", nil)
	other := s.AddDeck(ctx, "History", nil)
	for i := 0; i < 3; i++ {
		s.AddFlashcard(ctx, "q", "a", d.ID)
	}
	keep := s.AddFlashcard(ctx, "q", "a", other.ID)

	s.DeleteDeck(ctx, d.ID)

	_, ok := s.GetDeckByID(d.ID)
	assert.False(t, ok, "deck must be gone")
	assert.Empty(t, s.GetFlashcardsByDeckID(d.ID), "owned flashcards must be gone")

	// Unrelated data untouched.
	_, ok = s.GetDeckByID(other.ID)
	assert.True(t, ok)
	assert.Equal(t, []model.Flashcard{keep}, s.GetFlashcardsByDeckID(other.ID))
}

func TestStore_FlashcardCRUD(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	d := s.AddDeck(ctx, "Biology", nil)
	fc := s.AddFlashcard(ctx, "Capital of France?", "Paris", d.ID)

	later := fc.UpdatedAt.Add(time.Second)
	s.now = func() time.Time { return later }

	answer := "Paris, France"
	s.UpdateFlashcard(ctx, fc.ID, model.FlashcardPatch{Answer: &answer})
	got, ok := s.GetFlashcardByID(fc.ID)
	require.True(t, ok)
	assert.Equal(t, "Paris, France", got.Answer)
	assert.Equal(t, "Capital of France?", got.Question)
	assert.Equal(t, d.ID, got.DeckID)
	assert.True(t, got.UpdatedAt.After(fc.UpdatedAt))

	s.DeleteFlashcard(ctx, fc.ID)
	_, ok = s.GetFlashcardByID(fc.ID)
	assert.False(t, ok)
}

func TestStore_MissingFlashcardOpsAreNoops(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	d := s.AddDeck(ctx, "Biology", nil)
	fc := s.AddFlashcard(ctx, "q", "a", d.ID)

	q := "changed"
	s.UpdateFlashcard(ctx, "nonexistent", model.FlashcardPatch{Question: &q})
	s.DeleteFlashcard(ctx, "nonexistent")

	assert.Equal(t, []model.Flashcard{fc}, s.ListFlashcards())
}

func TestStore_Search(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	d := s.AddDeck(ctx, "Biology", nil)
	fc := s.AddFlashcard(ctx, "What is Photosynthesis?", "A process in plants", d.ID)
	s.AddFlashcard(ctx, "Capital of France?", "Paris", d.ID)

	assert.Equal(t, []model.Flashcard{fc}, s.SearchFlashcards("photo"), "case-insensitive question match")
	assert.Equal(t, []model.Flashcard{fc}, s.SearchFlashcards("PROCESS"), "case-insensitive answer match")
	assert.Empty(t, s.SearchFlashcards(""))
	assert.Empty(t, s.SearchFlashcards("   "))
	assert.Empty(t, s.SearchFlashcards("no such text"))
}

// Scenario from the product flow: create deck, add card, practice lookup,
// cascade delete.
func TestStore_Scenario(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	d1 := s.AddDeck(ctx, "Biology", nil)
	f1 := s.AddFlashcard(ctx, "Capital of France?", "Paris", d1.ID)

	assert.Equal(t, []model.Flashcard{f1}, s.GetFlashcardsByDeckID(d1.ID))

	s.DeleteDeck(ctx, d1.ID)
	_, ok := s.GetFlashcardByID(f1.ID)
	assert.False(t, ok)
	_, ok = s.GetDeckByID(d1.ID)
	assert.False(t, ok)
}

func TestStore_PersistsAcrossReload(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs, err := slot.NewFileStore(dir)
	require.NoError(t, err)
	s1 := NewStore(ctx, fs, nil, nil, zerolog.Nop())
	d := s1.AddDeck(ctx, "Biology", nil)
	fc := s1.AddFlashcard(ctx, "q", "a", d.ID)

	// Fresh store over the same directory simulates a restart.
	fs2, err := slot.NewFileStore(dir)
	require.NoError(t, err)
	s2 := NewStore(ctx, fs2, nil, nil, zerolog.Nop())

	gotDeck, ok := s2.GetDeckByID(d.ID)
	require.True(t, ok)
	assert.Equal(t, d.ID, gotDeck.ID)
	assert.Equal(t, d.Name, gotDeck.Name)
	assert.True(t, d.CreatedAt.Equal(gotDeck.CreatedAt))

	gotCard, ok := s2.GetFlashcardByID(fc.ID)
	require.True(t, ok)
	assert.Equal(t, fc.Question, gotCard.Question)
	assert.Equal(t, fc.DeckID, gotCard.DeckID)
}

func TestStore_CorruptSlotFallsBackToEmpty(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs, err := slot.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, fs.Write(ctx, DecksSlot, []byte(`{"not":"an array"`)))

	s := NewStore(ctx, fs, nil, nil, zerolog.Nop())
	assert.Empty(t, s.ListDecks())
	assert.False(t, s.Loading())
}

func TestStore_Notifications(t *testing.T) {
	fs, err := slot.NewFileStore(t.TempDir())
	require.NoError(t, err)
	bus := notify.NewBus(16)
	ctx := context.Background()
	s := NewStore(ctx, fs, nil, bus, zerolog.Nop())

	d := s.AddDeck(ctx, "Biology", nil)
	n := <-bus.Subscribe()
	assert.Equal(t, "Deck Created", n.Title)
	assert.Contains(t, n.Description, "Biology")
	assert.False(t, n.Destructive)

	s.DeleteDeck(ctx, d.ID)
	n = <-bus.Subscribe()
	assert.Equal(t, "Deck Deleted", n.Title)
	assert.True(t, n.Destructive, "deletions carry the destructive flag")
}

func TestStore_ExternalChangeUpdatesState(t *testing.T) {
	s, _ := newTestStore(t)

	payload := []byte(`[{"id":"d-ext","name":"From another tab","createdAt":"2026-08-30T10:00:00Z","updatedAt":"2026-08-30T10:00:00Z"}]`)
	s.ApplyExternalChange(DecksSlot, payload)

	got, ok := s.GetDeckByID("d-ext")
	require.True(t, ok)
	assert.Equal(t, "From another tab", got.Name)

	// Cleared slot resets to the initial empty collection.
	s.ApplyExternalChange(DecksSlot, nil)
	assert.Empty(t, s.ListDecks())
}

func TestStore_SubscribeFiresOnMutations(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	calls := 0
	s.Subscribe(func() { calls++ })

	d := s.AddDeck(ctx, "Biology", nil)
	s.AddFlashcard(ctx, "q", "a", d.ID)
	assert.Equal(t, 2, calls)

	s.DeleteDeck(ctx, d.ID) // touches both collections
	assert.Equal(t, 4, calls)
}

func TestSortByUpdatedAt(t *testing.T) {
	t0 := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	decks := []model.Deck{
		{ID: "old", UpdatedAt: t0},
		{ID: "new", UpdatedAt: t0.Add(time.Hour)},
		{ID: "mid", UpdatedAt: t0.Add(time.Minute)},
	}
	SortDecksByUpdatedAt(decks)
	assert.Equal(t, "new", decks[0].ID)
	assert.Equal(t, "mid", decks[1].ID)
	assert.Equal(t, "old", decks[2].ID)
}
