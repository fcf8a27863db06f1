package repository

import (
	"context"
	"errors"

	"deckvault/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for deck comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.DeckComment) error
	GetByID(ctx context.Context, id string) (*models.DeckComment, error)
	GetByIDAny(ctx context.Context, id string) (*models.DeckComment, error)
	ListByDeck(ctx context.Context, deckID string, page, perPage int) ([]*models.DeckComment, models.PageInfo, error)
	SoftDelete(ctx context.Context, id string) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.DeckComment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*models.DeckComment, error) {
	var comment models.DeckComment
	if err := readDB(r.db).WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

// GetByIDAny fetches a comment regardless of its hidden flag. Moderation
// needs to see hidden comments so late reports still validate.
func (r *commentRepository) GetByIDAny(ctx context.Context, id string) (*models.DeckComment, error) {
	var comment models.DeckComment
	if err := readDB(r.db).WithContext(ctx).
		Where("id = ?", id).
		First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByDeck(ctx context.Context, deckID string, page, perPage int) ([]*models.DeckComment, models.PageInfo, error) {
	query := readDB(r.db).WithContext(ctx).
		Model(&models.DeckComment{}).
		Where("deck_id = ? AND is_deleted = ?", deckID, false).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, models.PageInfo{}, models.NewInternalError(err)
	}

	var comments []*models.DeckComment
	if err := query.
		Order("created_at ASC, id ASC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&comments).Error; err != nil {
		return nil, models.PageInfo{}, models.NewInternalError(err)
	}

	return comments, models.NewPageInfo(page, perPage, total), nil
}

func (r *commentRepository) SoftDelete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&models.DeckComment{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	return nil
}
