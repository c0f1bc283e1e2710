package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/studysmarter/studysmarter/internal/api/recovery"
	"github.com/studysmarter/studysmarter/internal/concepts"
	"github.com/studysmarter/studysmarter/internal/study"
)

// NewRouter creates the HTTP router with all API routes.
func NewRouter(store *study.Store, expander concepts.Expander) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)

	// Create handlers
	healthHandler := NewHealthHandler()
	deckHandler := NewDeckHandler(store)
	cardHandler := NewFlashcardHandler(store)
	searchHandler := NewSearchHandler(store)
	expandHandler := NewExpandHandler(expander)

	// Health and metrics endpoints
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Deck endpoints
	router.HandleFunc("/api/decks", deckHandler.CreateDeck).Methods("POST")
	router.HandleFunc("/api/decks", deckHandler.ListDecks).Methods("GET")
	router.HandleFunc("/api/decks/{deckId}", deckHandler.GetDeck).Methods("GET")
	router.HandleFunc("/api/decks/{deckId}", deckHandler.UpdateDeck).Methods("PATCH")
	router.HandleFunc("/api/decks/{deckId}", deckHandler.DeleteDeck).Methods("DELETE")

	// Flashcard endpoints
	router.HandleFunc("/api/decks/{deckId}/flashcards", cardHandler.CreateFlashcard).Methods("POST")
	router.HandleFunc("/api/decks/{deckId}/flashcards", cardHandler.ListDeckFlashcards).Methods("GET")
	router.HandleFunc("/api/flashcards/{flashcardId}", cardHandler.GetFlashcard).Methods("GET")
	router.HandleFunc("/api/flashcards/{flashcardId}", cardHandler.UpdateFlashcard).Methods("PATCH")
	router.HandleFunc("/api/flashcards/{flashcardId}", cardHandler.DeleteFlashcard).Methods("DELETE")

	// Search endpoint
	router.HandleFunc("/api/search", searchHandler.HandleSearch).Methods("GET")

	// Concept expansion endpoint
	router.HandleFunc("/api/expand", expandHandler.HandleExpand).Methods("POST")

	return router
}
