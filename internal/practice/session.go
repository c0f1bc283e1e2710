// Package practice runs an in-memory review session over a deck's
// flashcards: sequential or shuffled order, answer reveal, and clamped
// navigation. Sessions hold a snapshot of the cards; store changes made
// while practicing do not alter a running session.
package practice

import (
	"math/rand"

	"github.com/studysmarter/studysmarter/internal/model"
)

// Session is a single practice run. Not safe for concurrent use; a session
// belongs to one practicing caller.
type Session struct {
	original []model.Flashcard // insertion order snapshot
	cards    []model.Flashcard // current review order
	index    int
	revealed bool
	shuffled bool
	rng      *rand.Rand
}

// NewSession snapshots cards in their given order.
func NewSession(cards []model.Flashcard) *Session {
	return &Session{
		original: append([]model.Flashcard(nil), cards...),
		cards:    append([]model.Flashcard(nil), cards...),
	}
}

// NewShuffledSession starts with shuffling already enabled, seeded for
// reproducibility in tests (seed 0 uses an arbitrary source).
func NewShuffledSession(cards []model.Flashcard, seed int64) *Session {
	s := NewSession(cards)
	s.rng = rand.New(rand.NewSource(seed))
	s.ToggleShuffle()
	return s
}

// Len returns the number of cards in the session.
func (s *Session) Len() int { return len(s.cards) }

// Position returns the 1-based position of the current card, 0 when empty.
func (s *Session) Position() int {
	if len(s.cards) == 0 {
		return 0
	}
	return s.index + 1
}

// Shuffled reports whether shuffle mode is on.
func (s *Session) Shuffled() bool { return s.shuffled }

// Current returns the card under review.
func (s *Session) Current() (model.Flashcard, bool) {
	if len(s.cards) == 0 {
		return model.Flashcard{}, false
	}
	return s.cards[s.index], true
}

// Revealed reports whether the current card's answer is shown.
func (s *Session) Revealed() bool { return s.revealed }

// Reveal shows the current card's answer.
func (s *Session) Reveal() { s.revealed = true }

// Next advances to the next card and hides the answer. At the last card it
// stays put and reports false.
func (s *Session) Next() bool {
	if s.index >= len(s.cards)-1 {
		return false
	}
	s.index++
	s.revealed = false
	return true
}

// Prev steps back to the previous card and hides the answer. At the first
// card it stays put and reports false.
func (s *Session) Prev() bool {
	if s.index <= 0 {
		return false
	}
	s.index--
	s.revealed = false
	return true
}

// Restart returns to the first card with the answer hidden, keeping the
// current order.
func (s *Session) Restart() {
	s.index = 0
	s.revealed = false
}

// ToggleShuffle flips shuffle mode and restarts: enabling reshuffles the
// cards, disabling restores insertion order.
func (s *Session) ToggleShuffle() {
	s.shuffled = !s.shuffled
	if s.shuffled {
		s.cards = append([]model.Flashcard(nil), s.original...)
		s.shuffle(s.cards)
	} else {
		s.cards = append([]model.Flashcard(nil), s.original...)
	}
	s.Restart()
}

func (s *Session) shuffle(cards []model.Flashcard) {
	swap := func(i, j int) { cards[i], cards[j] = cards[j], cards[i] }
	if s.rng != nil {
		s.rng.Shuffle(len(cards), swap)
		return
	}
	rand.Shuffle(len(cards), swap)
}
