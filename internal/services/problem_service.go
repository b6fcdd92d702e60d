package services

import (
	"context"
	"encoding/json"
	"strings"

	"mathdeck/internal/bus"
	"mathdeck/internal/errors"
	"mathdeck/internal/logger"
	"mathdeck/internal/models"
	"mathdeck/internal/repository"
)

// ProblemService handles problem creation and querying. The content
// blob stored in the repository is the JSON encoding of a
// question/answer pair; this service owns the encode/decode.
type ProblemService interface {
	Add(ctx context.Context, content models.ProblemContent, deckName string, tags []string) (int64, error)
	All(ctx context.Context) ([]models.Problem, error)
	ByDeck(ctx context.Context, deckName string) ([]models.Problem, error)
	DecodeContent(p models.Problem) (models.ProblemContent, error)
}

type problemService struct {
	repo repository.ProblemRepository
	bus  *bus.Bus
}

// NewProblemService creates a new ProblemService
func NewProblemService(repo repository.ProblemRepository, b *bus.Bus) ProblemService {
	return &problemService{repo: repo, bus: b}
}

func (s *problemService) Add(ctx context.Context, content models.ProblemContent, deckName string, tags []string) (int64, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(content.Question) == "" {
		return 0, errors.NewValidationError("question", "must not be empty")
	}
	deckName = strings.TrimSpace(deckName)
	if deckName == "" {
		return 0, errors.NewValidationError("deck_name", "must not be empty")
	}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return 0, errors.NewValidationError("tags", "must not contain empty names")
		}
	}

	blob, err := json.Marshal(content)
	if err != nil {
		return 0, errors.NewInternalError(err)
	}

	id, createdTags, err := s.repo.Insert(ctx, string(blob), deckName, tags)
	if err != nil {
		switch errors.CodeOf(err) {
		case errors.CodeDeckNotFound, errors.CodeDuplicateProblem, errors.CodeCorruptState:
			return 0, err
		}
		log.Error("failed to add problem: %v", err)
		return 0, errors.NewInternalError(err)
	}

	s.bus.Publish(bus.ProblemsChanged)
	if len(createdTags) > 0 {
		s.bus.Publish(bus.TagsChanged)
	}
	return id, nil
}

func (s *problemService) All(ctx context.Context) ([]models.Problem, error) {
	problems, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return problems, nil
}

func (s *problemService) ByDeck(ctx context.Context, deckName string) ([]models.Problem, error) {
	problems, err := s.repo.ListByDeck(ctx, deckName)
	if err != nil {
		if errors.CodeOf(err) == errors.CodeDeckNotFound {
			return nil, err
		}
		return nil, errors.NewInternalError(err)
	}
	return problems, nil
}

func (s *problemService) DecodeContent(p models.Problem) (models.ProblemContent, error) {
	var content models.ProblemContent
	if err := json.Unmarshal([]byte(p.Content), &content); err != nil {
		return models.ProblemContent{}, errors.NewCorruptState("problem content is not valid JSON")
	}
	return content, nil
}
