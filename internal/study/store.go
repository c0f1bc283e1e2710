// Package study implements the domain store: deck and flashcard CRUD, the
// deck->flashcard cascade-delete invariant and substring search, layered on
// two slot bindings.
package study

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/studysmarter/studysmarter/internal/binding"
	"github.com/studysmarter/studysmarter/internal/model"
	"github.com/studysmarter/studysmarter/internal/notify"
	"github.com/studysmarter/studysmarter/internal/slot"
	"github.com/studysmarter/studysmarter/internal/writequeue"
)

// Slot keys. The payloads are plain JSON arrays with no envelope; a
// structurally incompatible stored value is replaced with an empty array at
// next read.
const (
	DecksSlot      = "studySmarter_decks"
	FlashcardsSlot = "studySmarter_flashcards"
)

// SlotKeys lists every slot the store persists to, in a stable order.
func SlotKeys() []string { return []string{DecksSlot, FlashcardsSlot} }

// Store owns both collections in memory and is the sole writer to storage.
// The store mutex makes multi-slot transitions (cascade delete) atomic to
// every reader going through the store; no reader can observe the deck gone
// while its flashcards remain, or vice versa.
type Store struct {
	mu       sync.Mutex
	decks    *binding.Binding[[]model.Deck]
	cards    *binding.Binding[[]model.Flashcard]
	notifier notify.Notifier
	log      zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewStore builds the store over st, binds both slots and performs the
// initial load. A nil notifier discards notifications.
func NewStore(ctx context.Context, st slot.Store, q *writequeue.Queue, notifier notify.Notifier, log zerolog.Logger) *Store {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	s := &Store{
		decks:    binding.New(st, q, DecksSlot, []model.Deck{}, log),
		cards:    binding.New(st, q, FlashcardsSlot, []model.Flashcard{}, log),
		notifier: notifier,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
	s.decks.Load(ctx)
	s.cards.Load(ctx)
	return s
}

// Loading reports whether either binding's initial read has not resolved.
func (s *Store) Loading() bool {
	return s.decks.Loading() || s.cards.Loading()
}

// Subscribe registers fn to run after any collection change, local or
// external. Used by consumers that re-render from store state.
// fn runs with the store mutex held and must not call back into the store.
func (s *Store) Subscribe(fn func()) {
	s.decks.Subscribe(func([]model.Deck) { fn() })
	s.cards.Subscribe(func([]model.Flashcard) { fn() })
}

// ApplyExternalChange routes a storage-change notification from another
// process to the affected binding. Unknown keys are ignored.
func (s *Store) ApplyExternalChange(key string, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch key {
	case DecksSlot:
		s.decks.ApplyExternal(payload)
	case FlashcardsSlot:
		s.cards.ApplyExternal(payload)
	}
}

// Flush blocks until all pending slot persists have completed.
func (s *Store) Flush(ctx context.Context) error {
	if err := s.decks.Flush(ctx); err != nil {
		return err
	}
	return s.cards.Flush(ctx)
}

// --- Deck operations ---

// AddDeck creates a deck and returns it.
func (s *Store) AddDeck(ctx context.Context, name string, description *string) model.Deck {
	s.mu.Lock()
	now := s.now()
	deck := model.Deck{
		ID:          s.newID(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.decks.Update(ctx, func(cur []model.Deck) []model.Deck {
		return append(append([]model.Deck(nil), cur...), deck)
	})
	s.mu.Unlock()

	s.notifier.Notify(notify.Notification{
		Title:       "Deck Created",
		Description: fmt.Sprintf("Deck %q has been successfully created.", deck.Name),
	})
	return deck
}

// UpdateDeck merges patch into the matching deck and refreshes UpdatedAt.
// A missing id is a silent no-op.
func (s *Store) UpdateDeck(ctx context.Context, id string, patch model.DeckPatch) {
	s.mu.Lock()
	now := s.now()
	s.decks.Update(ctx, func(cur []model.Deck) []model.Deck {
		out := append([]model.Deck(nil), cur...)
		for i := range out {
			if out[i].ID != id {
				continue
			}
			if patch.Name != nil {
				out[i].Name = *patch.Name
			}
			if patch.Description != nil {
				out[i].Description = patch.Description
			}
			out[i].UpdatedAt = now
		}
		return out
	})
	s.mu.Unlock()

	s.notifier.Notify(notify.Notification{
		Title:       "Deck Updated",
		Description: "Deck has been successfully updated.",
	})
}

// DeleteDeck removes the deck and every flashcard referencing it as one
// observable transition.
func (s *Store) DeleteDeck(ctx context.Context, id string) {
	s.mu.Lock()
	s.decks.Update(ctx, func(cur []model.Deck) []model.Deck {
		out := cur[:0:0]
		for _, d := range cur {
			if d.ID != id {
				out = append(out, d)
			}
		}
		return out
	})
	s.cards.Update(ctx, func(cur []model.Flashcard) []model.Flashcard {
		out := cur[:0:0]
		for _, fc := range cur {
			if fc.DeckID != id {
				out = append(out, fc)
			}
		}
		return out
	})
	s.mu.Unlock()

	s.notifier.Notify(notify.Notification{
		Title:       "Deck Deleted",
		Description: "Deck and its flashcards have been deleted.",
		Destructive: true,
	})
}

// GetDeckByID returns the deck and whether it exists.
func (s *Store) GetDeckByID(id string) (model.Deck, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.decks.Get() {
		if d.ID == id {
			return d, true
		}
	}
	return model.Deck{}, false
}

// ListDecks returns a copy of the deck collection, unordered.
func (s *Store) ListDecks() []model.Deck {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Deck(nil), s.decks.Get()...)
}

// --- Flashcard operations ---

// AddFlashcard creates a flashcard and returns it. The deckID is accepted
// as given; referential checks are the caller's responsibility.
func (s *Store) AddFlashcard(ctx context.Context, question, answer, deckID string) model.Flashcard {
	s.mu.Lock()
	now := s.now()
	fc := model.Flashcard{
		ID:        s.newID(),
		Question:  question,
		Answer:    answer,
		DeckID:    deckID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.cards.Update(ctx, func(cur []model.Flashcard) []model.Flashcard {
		return append(append([]model.Flashcard(nil), cur...), fc)
	})
	s.mu.Unlock()

	s.notifier.Notify(notify.Notification{
		Title:       "Flashcard Added",
		Description: "Flashcard has been successfully added.",
	})
	return fc
}

// UpdateFlashcard merges patch into the matching flashcard and refreshes
// UpdatedAt. A missing id is a silent no-op. DeckID is never changed.
func (s *Store) UpdateFlashcard(ctx context.Context, id string, patch model.FlashcardPatch) {
	s.mu.Lock()
	now := s.now()
	s.cards.Update(ctx, func(cur []model.Flashcard) []model.Flashcard {
		out := append([]model.Flashcard(nil), cur...)
		for i := range out {
			if out[i].ID != id {
				continue
			}
			if patch.Question != nil {
				out[i].Question = *patch.Question
			}
			if patch.Answer != nil {
				out[i].Answer = *patch.Answer
			}
			out[i].UpdatedAt = now
		}
		return out
	})
	s.mu.Unlock()

	s.notifier.Notify(notify.Notification{
		Title:       "Flashcard Updated",
		Description: "Flashcard has been successfully updated.",
	})
}

// DeleteFlashcard removes the flashcard by id; missing ids no-op.
func (s *Store) DeleteFlashcard(ctx context.Context, id string) {
	s.mu.Lock()
	s.cards.Update(ctx, func(cur []model.Flashcard) []model.Flashcard {
		out := cur[:0:0]
		for _, fc := range cur {
			if fc.ID != id {
				out = append(out, fc)
			}
		}
		return out
	})
	s.mu.Unlock()

	s.notifier.Notify(notify.Notification{
		Title:       "Flashcard Deleted",
		Description: "Flashcard has been deleted.",
		Destructive: true,
	})
}

// GetFlashcardByID returns the flashcard and whether it exists.
func (s *Store) GetFlashcardByID(id string) (model.Flashcard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fc := range s.cards.Get() {
		if fc.ID == id {
			return fc, true
		}
	}
	return model.Flashcard{}, false
}

// GetFlashcardsByDeckID returns the flashcards owned by deckID, unordered.
func (s *Store) GetFlashcardsByDeckID(deckID string) []model.Flashcard {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Flashcard
	for _, fc := range s.cards.Get() {
		if fc.DeckID == deckID {
			out = append(out, fc)
		}
	}
	return out
}

// ListFlashcards returns a copy of the flashcard collection, unordered.
func (s *Store) ListFlashcards() []model.Flashcard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Flashcard(nil), s.cards.Get()...)
}

// --- Presentation helpers ---

// SortDecksByUpdatedAt orders decks most recently updated first.
func SortDecksByUpdatedAt(decks []model.Deck) {
	sort.SliceStable(decks, func(i, j int) bool {
		return decks[i].UpdatedAt.After(decks[j].UpdatedAt)
	})
}

// SortFlashcardsByUpdatedAt orders flashcards most recently updated first.
func SortFlashcardsByUpdatedAt(cards []model.Flashcard) {
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].UpdatedAt.After(cards[j].UpdatedAt)
	})
}
