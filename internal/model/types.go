package model

import "time"

// Deck is a named collection of flashcards.
type Deck struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Flashcard is a question/answer pair belonging to exactly one deck.
// DeckID is fixed at creation and never rewritten afterwards.
type Flashcard struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	DeckID    string    `json:"deckId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeckPatch carries optional field updates for a deck. Nil means "leave as is".
type DeckPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// FlashcardPatch carries optional field updates for a flashcard.
type FlashcardPatch struct {
	Question *string `json:"question,omitempty"`
	Answer   *string `json:"answer,omitempty"`
}
