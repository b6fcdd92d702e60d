package repository

import (
	"context"

	"mathdeck/internal/models"
)

// DeckRepository handles deck data access
type DeckRepository interface {
	Exists(ctx context.Context, name string) (bool, error)
	Insert(ctx context.Context, name string) (int64, error)
	List(ctx context.Context) ([]models.Deck, error)
	Delete(ctx context.Context, name string) error
	NameByID(ctx context.Context, id int64) (string, error)
}

// TagRepository handles tag data access
type TagRepository interface {
	// Upsert inserts the trimmed tag name if absent. Reports whether a
	// row was actually created; an existing tag is not an error.
	Upsert(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]models.Tag, error)
}

// ProblemRepository handles problem data access
type ProblemRepository interface {
	// Insert stores a problem with its owning deck and optional tags as
	// one transaction. Returns the new problem id and the names of any
	// tags that did not exist before the call.
	Insert(ctx context.Context, content string, deckName string, tags []string) (int64, []string, error)
	List(ctx context.Context) ([]models.Problem, error)
	ListByDeck(ctx context.Context, deckName string) ([]models.Problem, error)
}
