package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/studysmarter/studysmarter/internal/api/respond"
	"github.com/studysmarter/studysmarter/internal/model"
	"github.com/studysmarter/studysmarter/internal/study"
)

type FlashcardHandler struct {
	store *study.Store
}

func NewFlashcardHandler(store *study.Store) *FlashcardHandler {
	return &FlashcardHandler{store: store}
}

// CreateFlashcard POST /api/decks/{deckId}/flashcards
func (h *FlashcardHandler) CreateFlashcard(w http.ResponseWriter, r *http.Request) {
	deckID := mux.Vars(r)["deckId"]
	var req struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	// The store accepts any deck id; the nested route checks it.
	if _, ok := h.store.GetDeckByID(deckID); !ok {
		respond.WriteNotFound(w, "deck not found")
		return
	}
	if err := model.ValidateFlashcardForm(req.Question, req.Answer); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	card := h.store.AddFlashcard(r.Context(), req.Question, req.Answer, deckID)
	respond.WriteJSON(w, http.StatusCreated, card)
}

// ListDeckFlashcards GET /api/decks/{deckId}/flashcards
func (h *FlashcardHandler) ListDeckFlashcards(w http.ResponseWriter, r *http.Request) {
	deckID := mux.Vars(r)["deckId"]
	if _, ok := h.store.GetDeckByID(deckID); !ok {
		respond.WriteNotFound(w, "deck not found")
		return
	}
	cards := h.store.GetFlashcardsByDeckID(deckID)
	study.SortFlashcardsByUpdatedAt(cards)
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"flashcards": cards, "count": len(cards)})
}

// GetFlashcard GET /api/flashcards/{flashcardId}
func (h *FlashcardHandler) GetFlashcard(w http.ResponseWriter, r *http.Request) {
	cardID := mux.Vars(r)["flashcardId"]
	card, ok := h.store.GetFlashcardByID(cardID)
	if !ok {
		respond.WriteNotFound(w, "flashcard not found")
		return
	}
	respond.WriteJSON(w, http.StatusOK, card)
}

// UpdateFlashcard PATCH /api/flashcards/{flashcardId}
func (h *FlashcardHandler) UpdateFlashcard(w http.ResponseWriter, r *http.Request) {
	cardID := mux.Vars(r)["flashcardId"]
	var patch model.FlashcardPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	existing, ok := h.store.GetFlashcardByID(cardID)
	if !ok {
		respond.WriteNotFound(w, "flashcard not found")
		return
	}
	question := existing.Question
	if patch.Question != nil {
		question = *patch.Question
	}
	answer := existing.Answer
	if patch.Answer != nil {
		answer = *patch.Answer
	}
	if err := model.ValidateFlashcardForm(question, answer); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	h.store.UpdateFlashcard(r.Context(), cardID, patch)
	card, _ := h.store.GetFlashcardByID(cardID)
	respond.WriteJSON(w, http.StatusOK, card)
}

// DeleteFlashcard DELETE /api/flashcards/{flashcardId}
func (h *FlashcardHandler) DeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	cardID := mux.Vars(r)["flashcardId"]
	if _, ok := h.store.GetFlashcardByID(cardID); !ok {
		respond.WriteNotFound(w, "flashcard not found")
		return
	}
	h.store.DeleteFlashcard(r.Context(), cardID)
	w.WriteHeader(http.StatusNoContent)
}
