// Package concepts suggests related concepts for a flashcard through a
// generative-text backend. The request is a single non-cancelable call from
// the product's perspective: no retry, failure surfaces as the error
// message for the caller to display.
package concepts

import "context"

// Input names the concept to expand and the flashcard content it came from.
type Input struct {
	Concept          string `json:"concept"`
	FlashcardContent string `json:"flashcardContent"`
}

// Output is the structured expansion result.
type Output struct {
	RelatedConcepts []string `json:"relatedConcepts"`
	Explanation     string   `json:"explanation"`
}

// Expander produces concept expansions.
type Expander interface {
	Expand(ctx context.Context, in Input) (*Output, error)
}
