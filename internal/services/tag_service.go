package services

import (
	"context"
	"strings"

	"mathdeck/internal/bus"
	"mathdeck/internal/errors"
	"mathdeck/internal/logger"
	"mathdeck/internal/models"
	"mathdeck/internal/repository"
)

// TagService handles tag creation and listing. Adding an existing tag
// succeeds without creating a duplicate row.
type TagService interface {
	Add(ctx context.Context, name string) error
	List(ctx context.Context) ([]models.Tag, error)
}

type tagService struct {
	repo repository.TagRepository
	bus  *bus.Bus
}

// NewTagService creates a new TagService
func NewTagService(repo repository.TagRepository, b *bus.Bus) TagService {
	return &tagService{repo: repo, bus: b}
}

func (s *tagService) Add(ctx context.Context, name string) error {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return errors.NewValidationError("tag_name", "must not be empty")
	}

	created, err := s.repo.Upsert(ctx, name)
	if err != nil {
		log.Error("failed to add tag: %v", err)
		return errors.NewInternalError(err)
	}
	if created {
		s.bus.Publish(bus.TagsChanged)
	}
	return nil
}

func (s *tagService) List(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.repo.List(ctx)
	if err != nil {
		if errors.CodeOf(err) == errors.CodeCorruptTagRecord {
			return nil, err
		}
		return nil, errors.NewInternalError(err)
	}
	return tags, nil
}
