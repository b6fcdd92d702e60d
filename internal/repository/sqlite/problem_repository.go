package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	apperrors "mathdeck/internal/errors"
	"mathdeck/internal/logger"
	"mathdeck/internal/models"
	"mathdeck/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// Creation dates are calendar dates, set once per add call.
const dateLayout = "2006-01-02"

var problemColumns = []string{
	"problem_id", "problem_topic", "problem_review_count", "problem_last_review_date",
	"problem_feedback", "problem_src", "problem_deck", "problem_content", "problem_creation_date",
}

type problemRepository struct {
	db *sql.DB
}

// NewProblemRepository creates a new ProblemRepository implementation
func NewProblemRepository(db *sql.DB) repository.ProblemRepository {
	return &problemRepository{db: db}
}

func (r *problemRepository) Insert(ctx context.Context, content string, deckName string, tags []string) (int64, []string, error) {
	log := logger.FromContext(ctx).WithPrefix("problem_repo")
	log.Debug("inserting problem: deck=%s, tags=%d", deckName, len(tags))

	// Trim and dedupe up front: one link row per (problem, tag) pair,
	// however many spellings the caller passed.
	names := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		name := strings.TrimSpace(tag)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	var id int64
	var createdTags []string

	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		// Tags first, so every link target exists before linking.
		for _, name := range names {
			res, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO tags (tag_name) VALUES (?)`, name)
			if err != nil {
				return err
			}
			if n, err := res.RowsAffected(); err == nil && n > 0 {
				createdTags = append(createdTags, name)
			}
		}

		var deckID int64
		err := tx.QueryRowContext(ctx, `SELECT deck_id FROM decks WHERE deck_name = ?`, deckName).Scan(&deckID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewDeckNotFound(deckName)
		}
		if err != nil {
			return err
		}

		// One timestamp for the whole logical call.
		creationDate := time.Now().Format(dateLayout)

		res, err := tx.ExecContext(ctx, `
INSERT INTO problems (problem_content, problem_deck, problem_creation_date)
VALUES (?, ?, ?)
`, content, deckID, creationDate)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.NewDuplicateProblem()
			}
			return err
		}
		id, err = res.LastInsertId()
		if err != nil {
			return err
		}

		for _, tag := range tags {
			name := strings.TrimSpace(tag)
			var tagID int64
			err := tx.QueryRowContext(ctx, `SELECT tag_id FROM tags WHERE tag_name = ?`, name).Scan(&tagID)
			if errors.Is(err, sql.ErrNoRows) {
				// Cannot happen after the upsert above; the store is lying to us.
				return apperrors.NewCorruptState(fmt.Sprintf("tag %q vanished while linking problem %d", name, id))
			}
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `INSERT INTO problems_tags (problem_id, tag_id) VALUES (?, ?)`, id, tagID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.CodeCorruptState {
			log.Error("corrupt state inserting problem: %v", err)
		} else {
			log.Debug("problem insert failed: %v", err)
		}
		return 0, nil, err
	}

	log.Debug("problem inserted: id=%d, new_tags=%d", id, len(createdTags))
	return id, createdTags, nil
}

func (r *problemRepository) List(ctx context.Context) ([]models.Problem, error) {
	log := logger.FromContext(ctx).WithPrefix("problem_repo")
	log.Debug("listing all problems")

	query := sqlBuilder.Select(problemColumns...).From("problems")
	return r.queryProblems(ctx, query)
}

func (r *problemRepository) ListByDeck(ctx context.Context, deckName string) ([]models.Problem, error) {
	log := logger.FromContext(ctx).WithPrefix("problem_repo")
	log.Debug("listing problems: deck=%s", deckName)

	var deckID int64
	err := r.db.QueryRowContext(ctx, `SELECT deck_id FROM decks WHERE deck_name = ?`, deckName).Scan(&deckID)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: name=%s", deckName)
		return nil, apperrors.NewDeckNotFound(deckName)
	}
	if err != nil {
		log.Error("failed to resolve deck: %v", err)
		return nil, err
	}

	query := sqlBuilder.Select(problemColumns...).From("problems").
		Where(squirrel.Eq{"problem_deck": deckID})
	return r.queryProblems(ctx, query)
}

func (r *problemRepository) queryProblems(ctx context.Context, query squirrel.SelectBuilder) ([]models.Problem, error) {
	log := logger.FromContext(ctx).WithPrefix("problem_repo")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query problems: %v", err)
		return nil, err
	}
	defer rows.Close()
	var problems []models.Problem
	for rows.Next() {
		var p models.Problem
		var creationDate sql.NullString
		if err := rows.Scan(&p.ID, &p.Topic, &p.ReviewCount, &p.LastReviewDate,
			&p.Feedback, &p.Src, &p.DeckID, &p.Content, &creationDate); err != nil {
			log.Error("failed to scan problem row: %v", err)
			return nil, err
		}
		if creationDate.Valid {
			p.CreationDate = creationDate.String
		}
		problems = append(problems, p)
	}
	log.Debug("found %d problems", len(problems))
	return problems, rows.Err()
}
