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

// DeckService owns the mutate-then-publish sequence for decks: every
// successful write is followed by a decks-changed notification so that
// subscribed views refresh their cached deck lists.
type DeckService interface {
	Add(ctx context.Context, name string) error
	Remove(ctx context.Context, name string) error
	List(ctx context.Context) ([]models.Deck, error)
	Exists(ctx context.Context, name string) (bool, error)
	NameByID(ctx context.Context, id int64) (string, error)
}

type deckService struct {
	repo repository.DeckRepository
	bus  *bus.Bus
}

// NewDeckService creates a new DeckService
func NewDeckService(repo repository.DeckRepository, b *bus.Bus) DeckService {
	return &deckService{repo: repo, bus: b}
}

func (s *deckService) Add(ctx context.Context, name string) error {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return errors.NewValidationError("deck_name", "must not be empty")
	}

	// The UNIQUE constraint is the authoritative guard; this is only a
	// cheaper path to the friendly error.
	exists, err := s.repo.Exists(ctx, name)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if exists {
		return errors.NewDuplicateDeck(name)
	}

	if _, err := s.repo.Insert(ctx, name); err != nil {
		if errors.CodeOf(err) == errors.CodeDuplicateDeck {
			return err
		}
		log.Error("failed to add deck: %v", err)
		return errors.NewInternalError(err)
	}

	s.bus.Publish(bus.DecksChanged)
	return nil
}

func (s *deckService) Remove(ctx context.Context, name string) error {
	log := logger.FromContext(ctx)

	// Same normalization as Add, so a deck added as "Algebra" can be
	// removed as " Algebra ".
	name = strings.TrimSpace(name)

	if err := s.repo.Delete(ctx, name); err != nil {
		switch errors.CodeOf(err) {
		case errors.CodeDeckNotEmpty, errors.CodeDeckNotFound:
			return err
		}
		log.Error("failed to remove deck: %v", err)
		return errors.NewInternalError(err)
	}

	s.bus.Publish(bus.DecksChanged)
	return nil
}

func (s *deckService) List(ctx context.Context) ([]models.Deck, error) {
	decks, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return decks, nil
}

func (s *deckService) Exists(ctx context.Context, name string) (bool, error) {
	exists, err := s.repo.Exists(ctx, strings.TrimSpace(name))
	if err != nil {
		return false, errors.NewInternalError(err)
	}
	return exists, nil
}

func (s *deckService) NameByID(ctx context.Context, id int64) (string, error) {
	name, err := s.repo.NameByID(ctx, id)
	if err != nil {
		if errors.CodeOf(err) == errors.CodeDeckNotFound {
			return "", err
		}
		return "", errors.NewInternalError(err)
	}
	return name, nil
}
