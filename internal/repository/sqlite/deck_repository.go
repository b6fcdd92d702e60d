package sqlite

import (
	"context"
	"database/sql"
	"errors"

	apperrors "mathdeck/internal/errors"
	"mathdeck/internal/logger"
	"mathdeck/internal/models"
	"mathdeck/internal/repository"
)

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Exists(ctx context.Context, name string) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("checking deck existence: name=%s", name)

	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT deck_id FROM decks WHERE deck_name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		log.Error("failed to check deck existence: %v", err)
		return false, err
	}
	return true, nil
}

func (r *deckRepository) Insert(ctx context.Context, name string) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: name=%s", name)

	res, err := r.db.ExecContext(ctx, `INSERT INTO decks (deck_name) VALUES (?)`, name)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("deck already exists: name=%s", name)
			return 0, apperrors.NewDuplicateDeck(name)
		}
		log.Error("failed to insert deck: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get deck id: %v", err)
		return 0, err
	}
	log.Debug("deck inserted: id=%d", id)
	return id, nil
}

func (r *deckRepository) List(ctx context.Context) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("listing decks")

	rows, err := r.db.QueryContext(ctx, `SELECT deck_id, deck_name FROM decks`)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	defer rows.Close()
	var decks []models.Deck
	for rows.Next() {
		var d models.Deck
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		decks = append(decks, d)
	}
	log.Debug("found %d decks", len(decks))
	return decks, rows.Err()
}

func (r *deckRepository) Delete(ctx context.Context, name string) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("deleting deck: name=%s", name)

	res, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE deck_name = ?`, name)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Debug("deck still referenced by problems: name=%s", name)
			return apperrors.NewDeckNotEmpty(name)
		}
		log.Error("failed to delete deck: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		log.Error("failed to get affected rows: %v", err)
		return err
	}
	if n == 0 {
		log.Debug("deck not found for delete: name=%s", name)
		return apperrors.NewDeckNotFound(name)
	}
	log.Debug("deck deleted: name=%s", name)
	return nil
}

func (r *deckRepository) NameByID(ctx context.Context, id int64) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting deck name: id=%d", id)

	var name string
	err := r.db.QueryRowContext(ctx, `SELECT deck_name FROM decks WHERE deck_id = ?`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%d", id)
		return "", apperrors.NewDeckNotFound(id)
	}
	if err != nil {
		log.Error("failed to get deck name: %v", err)
		return "", err
	}
	return name, nil
}
