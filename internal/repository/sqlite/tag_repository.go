package sqlite

import (
	"context"
	"database/sql"
	"strings"

	apperrors "mathdeck/internal/errors"
	"mathdeck/internal/logger"
	"mathdeck/internal/models"
	"mathdeck/internal/repository"
)

type tagRepository struct {
	db *sql.DB
}

// NewTagRepository creates a new TagRepository implementation
func NewTagRepository(db *sql.DB) repository.TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Upsert(ctx context.Context, name string) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("tag_repo")
	name = strings.TrimSpace(name)
	log.Debug("upserting tag: name=%s", name)

	res, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO tags (tag_name) VALUES (?)`, name)
	if err != nil {
		log.Error("failed to upsert tag: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		log.Error("failed to get affected rows: %v", err)
		return false, err
	}
	created := n > 0
	log.Debug("tag upserted: name=%s, created=%v", name, created)
	return created, nil
}

func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	log := logger.FromContext(ctx).WithPrefix("tag_repo")
	log.Debug("listing tags")

	rows, err := r.db.QueryContext(ctx, `SELECT tag_id, tag_name FROM tags`)
	if err != nil {
		log.Error("failed to list tags: %v", err)
		return nil, err
	}
	defer rows.Close()
	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		var name sql.NullString
		if err := rows.Scan(&t.ID, &name); err != nil {
			log.Error("failed to scan tag row: %v", err)
			return nil, err
		}
		// A stored tag with no usable name is a data-integrity fault.
		if !name.Valid || name.String == "" {
			log.Error("corrupt tag record: id=%d", t.ID)
			return nil, apperrors.NewCorruptTagRecord(t.ID)
		}
		t.Name = name.String
		tags = append(tags, t)
	}
	log.Debug("found %d tags", len(tags))
	return tags, rows.Err()
}
