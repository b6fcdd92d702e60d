package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/api/decks", s.handleListDecks)
	r.Post("/api/decks", s.handleCreateDeck)
	r.Delete("/api/decks/{name}", s.handleDeleteDeck)
	r.Get("/api/problems", s.handleListProblems)
	r.Post("/api/problems", s.handleCreateProblem)
	r.Get("/api/tags", s.handleListTags)
	r.Post("/api/tags", s.handleCreateTag)
	r.Get("/ws", s.Hub.ServeWS)

	return r
}
