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

type DeckRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.DeckRepository
}

func (s *DeckRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewDeckRepository(s.db)
}

func (s *DeckRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *DeckRepositorySuite) TestInsertAndExists() {
	ctx := context.Background()

	exists, err := s.repo.Exists(ctx, "Algebra")
	s.Require().NoError(err)
	s.Assert().False(exists)

	id, err := s.repo.Insert(ctx, "Algebra")
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))

	exists, err = s.repo.Exists(ctx, "Algebra")
	s.Require().NoError(err)
	s.Assert().True(exists)

	// Exact, case-sensitive match only.
	exists, err = s.repo.Exists(ctx, "algebra")
	s.Require().NoError(err)
	s.Assert().False(exists)
}

func (s *DeckRepositorySuite) TestInsertDuplicate() {
	ctx := context.Background()

	_, err := s.repo.Insert(ctx, "Algebra")
	s.Require().NoError(err)

	_, err = s.repo.Insert(ctx, "Algebra")
	s.Require().Error(err)
	s.Assert().Equal(apperrors.CodeDuplicateDeck, apperrors.CodeOf(err))
}

func (s *DeckRepositorySuite) TestList() {
	ctx := context.Background()

	decks, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Assert().Empty(decks)

	_, err = s.repo.Insert(ctx, "Algebra")
	s.Require().NoError(err)
	_, err = s.repo.Insert(ctx, "Geometry")
	s.Require().NoError(err)

	decks, err = s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(decks, 2)

	names := []string{decks[0].Name, decks[1].Name}
	s.Assert().Contains(names, "Algebra")
	s.Assert().Contains(names, "Geometry")
}

func (s *DeckRepositorySuite) TestDeleteRestrictedWhileReferenced() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, "Algebra")
	s.Require().NoError(err)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO problems (problem_content, problem_deck, problem_creation_date)
		VALUES (?, ?, ?)
	`, `{"question":"q","answer":"a"}`, id, "2026-01-15")
	s.Require().NoError(err)

	err = s.repo.Delete(ctx, "Algebra")
	s.Require().Error(err)
	s.Assert().Equal(apperrors.CodeDeckNotEmpty, apperrors.CodeOf(err))

	// The deck must survive the failed delete.
	decks, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(decks, 1)
	s.Assert().Equal("Algebra", decks[0].Name)
}

func (s *DeckRepositorySuite) TestDeleteMissing() {
	err := s.repo.Delete(context.Background(), "Nope")
	s.Require().Error(err)
	s.Assert().Equal(apperrors.CodeDeckNotFound, apperrors.CodeOf(err))
}

func (s *DeckRepositorySuite) TestDeleteEmptyDeck() {
	ctx := context.Background()

	_, err := s.repo.Insert(ctx, "Algebra")
	s.Require().NoError(err)

	err = s.repo.Delete(ctx, "Algebra")
	s.Require().NoError(err)

	exists, err := s.repo.Exists(ctx, "Algebra")
	s.Require().NoError(err)
	s.Assert().False(exists)
}

func (s *DeckRepositorySuite) TestNameByID() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, "Algebra")
	s.Require().NoError(err)

	name, err := s.repo.NameByID(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal("Algebra", name)

	_, err = s.repo.NameByID(ctx, id+999)
	s.Require().Error(err)
	s.Assert().Equal(apperrors.CodeDeckNotFound, apperrors.CodeOf(err))
}

func TestDeckRepositorySuite(t *testing.T) {
	suite.Run(t, new(DeckRepositorySuite))
}
