package api

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"mathdeck/internal/errors"
	"mathdeck/internal/logger"
	"mathdeck/internal/models"
)

type createDeckRequest struct {
	Name string `json:"name" validate:"required"`
}

type createTagRequest struct {
	Name string `json:"name" validate:"required"`
}

type createProblemRequest struct {
	Question string   `json:"question" validate:"required"`
	Answer   string   `json:"answer"`
	Deck     string   `json:"deck" validate:"required"`
	Tags     []string `json:"tags"`
}

type problemResponse struct {
	ID           int64    `json:"id"`
	DeckID       int64    `json:"deck_id"`
	Question     string   `json:"question"`
	Answer       string   `json:"answer"`
	CreationDate string   `json:"creation_date"`
	Topic        *string  `json:"topic"`
	ReviewCount  *int     `json:"review_count"`
}

func (s *Server) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewValidationError("body", "invalid JSON")
	}
	if err := s.validate.Struct(dst); err != nil {
		return errors.NewValidationError("body", err.Error())
	}
	return nil
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := s.Decks.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if decks == nil {
		decks = []models.Deck{}
	}
	respondJSON(w, r, http.StatusOK, decks)
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var req createDeckRequest
	if err := s.decode(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Decks.Add(r.Context(), req.Name); err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("deck created: %s", req.Name)
	respondJSON(w, r, http.StatusCreated, map[string]string{"name": req.Name})
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	// chi hands back the raw path segment, so "Linear%20Algebra" must be
	// unescaped before it can match a stored deck name.
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		handleError(w, r, errors.NewValidationError("name", "invalid URL escaping"))
		return
	}
	if err := s.Decks.Remove(r.Context(), name); err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("deck removed: %s", name)
	respondJSON(w, r, http.StatusNoContent, nil)
}

func (s *Server) handleListProblems(w http.ResponseWriter, r *http.Request) {
	var (
		problems []models.Problem
		err      error
	)
	if deck := r.URL.Query().Get("deck"); deck != "" {
		problems, err = s.Problems.ByDeck(r.Context(), deck)
	} else {
		problems, err = s.Problems.All(r.Context())
	}
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := make([]problemResponse, 0, len(problems))
	for _, p := range problems {
		content, err := s.Problems.DecodeContent(p)
		if err != nil {
			handleError(w, r, err)
			return
		}
		resp = append(resp, problemResponse{
			ID:           p.ID,
			DeckID:       p.DeckID,
			Question:     content.Question,
			Answer:       content.Answer,
			CreationDate: p.CreationDate,
			Topic:        p.Topic,
			ReviewCount:  p.ReviewCount,
		})
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleCreateProblem(w http.ResponseWriter, r *http.Request) {
	var req createProblemRequest
	if err := s.decode(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	content := models.ProblemContent{Question: req.Question, Answer: req.Answer}
	id, err := s.Problems.Add(r.Context(), content, req.Deck, req.Tags)
	if err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("problem created: id=%d, deck=%s", id, req.Deck)
	respondJSON(w, r, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.Tags.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	respondJSON(w, r, http.StatusOK, tags)
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if err := s.decode(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Tags.Add(r.Context(), req.Name); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, map[string]string{"name": req.Name})
}
