package study

import (
	"strings"

	"github.com/studysmarter/studysmarter/internal/model"
)

// SearchFlashcards returns flashcards whose question or answer contains
// query, case-insensitively. An empty or whitespace-only query yields an
// empty result, not "match all".
func (s *Store) SearchFlashcards(query string) []model.Flashcard {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	needle := strings.ToLower(query)

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Flashcard
	for _, fc := range s.cards.Get() {
		if strings.Contains(strings.ToLower(fc.Question), needle) ||
			strings.Contains(strings.ToLower(fc.Answer), needle) {
			out = append(out, fc)
		}
	}
	return out
}
