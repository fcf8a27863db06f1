package repository

import (
	"context"
	"fmt"
	"testing"

	"deckvault/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileDeckReport(t *testing.T, repo ReportRepository, deckID, reporter string) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &models.DeckReport{
		ID:         uuid.NewString(),
		DeckID:     deckID,
		ReportedBy: reporter,
		Reason:     models.ReportReasonSpam,
	}))
}

func TestReportRepository_CountsDistinctReportersNotRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewReportRepository(db)
	seedDeck(t, db, "deck-1", "alice")

	// The same user filing three reports counts once.
	for i := 0; i < 3; i++ {
		fileDeckReport(t, repo, "deck-1", "bob")
	}
	count, err := repo.CountDistinctDeckReporters(context.Background(), "deck-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	for i := 0; i < 4; i++ {
		fileDeckReport(t, repo, "deck-1", fmt.Sprintf("user-%d", i))
	}
	count, err = repo.CountDistinctDeckReporters(context.Background(), "deck-1")
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestReportRepository_CommentReportsDoNotCountAgainstDeck(t *testing.T) {
	db := newTestDB(t)
	repo := NewReportRepository(db)
	seedDeck(t, db, "deck-1", "alice")
	seedComment(t, db, "c-1", "deck-1", "bob")

	require.NoError(t, repo.Create(context.Background(), &models.DeckReport{
		ID:         uuid.NewString(),
		DeckID:     "deck-1",
		CommentID:  "c-1",
		ReportedBy: "carol",
		Reason:     models.ReportReasonOther,
	}))
	fileDeckReport(t, repo, "deck-1", "dave")

	deckCount, err := repo.CountDistinctDeckReporters(context.Background(), "deck-1")
	require.NoError(t, err)
	assert.Equal(t, 1, deckCount)

	commentCount, err := repo.CountDistinctCommentReporters(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, 1, commentCount)
}
