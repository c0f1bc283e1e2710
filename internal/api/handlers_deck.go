package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/studysmarter/studysmarter/internal/api/respond"
	"github.com/studysmarter/studysmarter/internal/model"
	"github.com/studysmarter/studysmarter/internal/study"
)

// DeckHandler is a thin HTTP transport over the study store.
type DeckHandler struct {
	store *study.Store
}

func NewDeckHandler(store *study.Store) *DeckHandler { return &DeckHandler{store: store} }

// CreateDeck POST /api/decks
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		Description *string `json:"description,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := model.ValidateDeckForm(req.Name, req.Description); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	deck := h.store.AddDeck(r.Context(), req.Name, req.Description)
	respond.WriteJSON(w, http.StatusCreated, deck)
}

// ListDecks GET /api/decks
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	decks := h.store.ListDecks()
	study.SortDecksByUpdatedAt(decks)
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"decks": decks, "count": len(decks)})
}

// GetDeck GET /api/decks/{deckId}
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	deckID := mux.Vars(r)["deckId"]
	deck, ok := h.store.GetDeckByID(deckID)
	if !ok {
		respond.WriteNotFound(w, "deck not found")
		return
	}
	respond.WriteJSON(w, http.StatusOK, deck)
}

// UpdateDeck PATCH /api/decks/{deckId}
func (h *DeckHandler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	deckID := mux.Vars(r)["deckId"]
	var patch model.DeckPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	existing, ok := h.store.GetDeckByID(deckID)
	if !ok {
		respond.WriteNotFound(w, "deck not found")
		return
	}
	// Validate the deck as it would look after the patch.
	name := existing.Name
	if patch.Name != nil {
		name = *patch.Name
	}
	description := existing.Description
	if patch.Description != nil {
		description = patch.Description
	}
	if err := model.ValidateDeckForm(name, description); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	h.store.UpdateDeck(r.Context(), deckID, patch)
	deck, _ := h.store.GetDeckByID(deckID)
	respond.WriteJSON(w, http.StatusOK, deck)
}

// DeleteDeck DELETE /api/decks/{deckId}
//
// Deletes the deck and every flashcard that belongs to it.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	deckID := mux.Vars(r)["deckId"]
	if _, ok := h.store.GetDeckByID(deckID); !ok {
		respond.WriteNotFound(w, "deck not found")
		return
	}
	h.store.DeleteDeck(r.Context(), deckID)
	w.WriteHeader(http.StatusNoContent)
}
