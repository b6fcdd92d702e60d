package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	apperrors "mathdeck/internal/errors"
	"mathdeck/internal/repository"
	"mathdeck/internal/repository/sqlite"
	"mathdeck/internal/testutil"
)

type TagRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.TagRepository
}

func (s *TagRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewTagRepository(s.db)
}

func (s *TagRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *TagRepositorySuite) TestUpsertTrimsAndIsIdempotent() {
	ctx := context.Background()

	created, err := s.repo.Upsert(ctx, "fractions")
	s.Require().NoError(err)
	s.Assert().True(created)

	created, err = s.repo.Upsert(ctx, " fractions ")
	s.Require().NoError(err)
	s.Assert().False(created)

	tags, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(tags, 1)
	s.Assert().Equal("fractions", tags[0].Name)
}

func (s *TagRepositorySuite) TestListEmpty() {
	tags, err := s.repo.List(context.Background())
	s.Require().NoError(err)
	s.Assert().Empty(tags)
}

func (s *TagRepositorySuite) TestListCorruptRecord() {
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx, `INSERT INTO tags (tag_name) VALUES ('')`)
	s.Require().NoError(err)

	_, err = s.repo.List(ctx)
	s.Require().Error(err)
	s.Assert().Equal(apperrors.CodeCorruptTagRecord, apperrors.CodeOf(err))
}

func (s *TagRepositorySuite) TestListFreshSnapshot() {
	ctx := context.Background()

	_, err := s.repo.Upsert(ctx, "easy")
	s.Require().NoError(err)

	tags, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(tags, 1)

	_, err = s.repo.Upsert(ctx, "hard")
	s.Require().NoError(err)

	// Re-invoking yields the new state.
	tags, err = s.repo.List(ctx)
	s.Require().NoError(err)
	s.Assert().Len(tags, 2)
}

func TestTagRepositorySuite(t *testing.T) {
	suite.Run(t, new(TagRepositorySuite))
}
