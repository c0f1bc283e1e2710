package api

import (
	"net/http"

	respond "github.com/studysmarter/studysmarter/internal/api/respond"
	"github.com/studysmarter/studysmarter/internal/study"
)

type SearchHandler struct {
	store *study.Store
}

func NewSearchHandler(store *study.Store) *SearchHandler { return &SearchHandler{store: store} }

// HandleSearch GET /api/search?q=
//
// Case-insensitive substring match over flashcard questions and answers.
// A blank query returns an empty result set, never the full collection.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	cards := h.store.SearchFlashcards(query)
	study.SortFlashcardsByUpdatedAt(cards)
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"flashcards": cards, "count": len(cards)})
}
