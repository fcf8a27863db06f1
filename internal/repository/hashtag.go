package repository

import (
	"context"
	"errors"
	"time"

	"deckvault/internal/cache"
	"deckvault/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HashtagRepository defines persistence operations for popular hashtag
// aggregation summaries.
type HashtagRepository interface {
	ListDeckHashtagsSince(ctx context.Context, since time.Time) ([][]string, error)
	UpsertSummary(ctx context.Context, summary *models.PopularHashtagSummary) error
	GetSummary(ctx context.Context, periodDays int) (*models.PopularHashtagSummary, error)
}

type hashtagRepository struct {
	db *gorm.DB
}

// NewHashtagRepository creates a new hashtag repository.
func NewHashtagRepository(db *gorm.DB) HashtagRepository {
	return &hashtagRepository{db: db}
}

// ListDeckHashtagsSince returns the hashtag list of every publicly visible
// deck published at or after since. Hashtags are stored as JSON arrays, so
// counting happens in the aggregation service, not in SQL.
func (r *hashtagRepository) ListDeckHashtagsSince(ctx context.Context, since time.Time) ([][]string, error) {
	var decks []models.PublishedDeck
	if err := readDB(r.db).WithContext(ctx).
		Select("id", "hashtags").
		Where("is_deleted = ? AND is_unlisted = ? AND published_at >= ?", false, false, since).
		Find(&decks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	out := make([][]string, 0, len(decks))
	for _, d := range decks {
		if len(d.Hashtags) > 0 {
			out = append(out, d.Hashtags)
		}
	}
	return out, nil
}

// UpsertSummary replaces the summary row for the summary's period.
func (r *hashtagRepository) UpsertSummary(ctx context.Context, summary *models.PopularHashtagSummary) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "period_days"}},
			DoUpdates: clause.AssignmentColumns([]string{"hashtags", "aggregated_at"}),
		}).
		Create(summary).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePopularHashtags(ctx, summary.PeriodDays)
	return nil
}

func (r *hashtagRepository) GetSummary(ctx context.Context, periodDays int) (*models.PopularHashtagSummary, error) {
	var summary models.PopularHashtagSummary
	err := cache.Aside(ctx, cache.PopularHashtagKey(periodDays), &summary, cache.PopularHashtagTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).
			Where("period_days = ?", periodDays).
			First(&summary).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("HashtagSummary", periodDays)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
