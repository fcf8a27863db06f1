package repository

import (
	"context"

	"deckvault/internal/models"

	"gorm.io/gorm"
)

// ReportRepository defines persistence operations for moderation reports.
// Reports are append-only; moderation decisions are derived from distinct
// reporter counts, never from row counts.
type ReportRepository interface {
	Create(ctx context.Context, report *models.DeckReport) error
	CountDistinctDeckReporters(ctx context.Context, deckID string) (int, error)
	CountDistinctCommentReporters(ctx context.Context, commentID string) (int, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.DeckReport) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reportRepository) CountDistinctDeckReporters(ctx context.Context, deckID string) (int, error) {
	return r.countDistinct(ctx, "deck_id = ? AND (comment_id = '' OR comment_id IS NULL)", deckID)
}

func (r *reportRepository) CountDistinctCommentReporters(ctx context.Context, commentID string) (int, error) {
	return r.countDistinct(ctx, "comment_id = ?", commentID)
}

func (r *reportRepository) countDistinct(ctx context.Context, cond string, arg string) (int, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.DeckReport{}).
		Where(cond, arg).
		Distinct("reported_by").
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return int(count), nil
}
