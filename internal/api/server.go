package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"mathdeck/internal/logger"
	"mathdeck/internal/services"
)

// Server is the local HTTP surface the desktop UI talks to. It only
// calls the service layer; it never touches the storage file directly.
type Server struct {
	Decks    services.DeckService
	Problems services.ProblemService
	Tags     services.TagService
	Hub      *ChangeHub

	validate *validator.Validate
}

// NewServer creates a Server wired to the given services.
func NewServer(decks services.DeckService, problems services.ProblemService, tags services.TagService, hub *ChangeHub) *Server {
	return &Server{
		Decks:    decks,
		Problems: problems,
		Tags:     tags,
		Hub:      hub,
		validate: validator.New(),
	}
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}
