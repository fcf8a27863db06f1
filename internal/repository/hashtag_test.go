package repository

import (
	"context"
	"testing"
	"time"

	"deckvault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashtagRepository_ListDeckHashtagsSince(t *testing.T) {
	db := newTestDB(t)
	repo := NewHashtagRepository(db)

	now := time.Now().UTC()
	cutoff := now.AddDate(0, 0, -30)

	seedDeck(t, db, "recent", "alice", func(d *models.PublishedDeck) {
		d.Hashtags = []string{"#event", "#anniversary"}
	})
	seedDeck(t, db, "old", "alice", func(d *models.PublishedDeck) {
		d.Hashtags = []string{"#stale"}
		d.PublishedAt = cutoff.AddDate(0, 0, -1)
	})
	seedDeck(t, db, "unlisted", "alice", func(d *models.PublishedDeck) {
		d.Hashtags = []string{"#hidden"}
		d.IsUnlisted = true
	})
	seedDeck(t, db, "deleted", "alice", func(d *models.PublishedDeck) {
		d.Hashtags = []string{"#gone"}
		d.IsDeleted = true
	})
	seedDeck(t, db, "untagged", "alice", func(d *models.PublishedDeck) {
		d.Hashtags = nil
	})

	lists, err := repo.ListDeckHashtagsSince(context.Background(), cutoff)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, []string{"#event", "#anniversary"}, lists[0])
}

func TestHashtagRepository_UpsertSummaryOverwrites(t *testing.T) {
	db := newTestDB(t)
	repo := NewHashtagRepository(db)
	ctx := context.Background()

	first := &models.PopularHashtagSummary{
		PeriodDays:   30,
		Hashtags:     []models.PopularHashtag{{Hashtag: "#a", Count: 3}},
		AggregatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.UpsertSummary(ctx, first))

	second := &models.PopularHashtagSummary{
		PeriodDays:   30,
		Hashtags:     []models.PopularHashtag{{Hashtag: "#b", Count: 7}},
		AggregatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.UpsertSummary(ctx, second))

	got, err := repo.GetSummary(ctx, 30)
	require.NoError(t, err)
	require.Len(t, got.Hashtags, 1)
	assert.Equal(t, "#b", got.Hashtags[0].Hashtag)
	assert.Equal(t, 7, got.Hashtags[0].Count)

	var rows int64
	require.NoError(t, db.Model(&models.PopularHashtagSummary{}).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestHashtagRepository_GetSummary_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewHashtagRepository(db)

	_, err := repo.GetSummary(context.Background(), 7)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
