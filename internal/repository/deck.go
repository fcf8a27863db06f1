// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"deckvault/internal/cache"
	"deckvault/internal/models"

	"gorm.io/gorm"
)

// ListDecksParams are the filters and window for a deck listing.
type ListDecksParams struct {
	Page     int
	PerPage  int
	Hashtag  string
	SongID   string
	DeckType string

	// Sort selects the listing order: published_at (default), view_count
	// or like_count. Order is asc or desc (default desc).
	Sort  string
	Order string

	// CurrentUserUID is used both for liked_by_current_user enrichment
	// and for the unlisted-deck visibility rule.
	CurrentUserUID string
}

// DeckRepository defines persistence operations for published decks and
// their engagement records. Counter mutations happen inside transactions
// so the membership row and the denormalized count never diverge.
type DeckRepository interface {
	Create(ctx context.Context, deck *models.PublishedDeck) error
	GetByID(ctx context.Context, id string, currentUserUID string) (*models.PublishedDeck, error)
	GetByIDAny(ctx context.Context, id string) (*models.PublishedDeck, error)
	List(ctx context.Context, params ListDecksParams) ([]*models.PublishedDeck, models.PageInfo, error)
	ListByUser(ctx context.Context, ownerUID string, params ListDecksParams) ([]*models.PublishedDeck, models.PageInfo, error)
	ListLikedBy(ctx context.Context, uid string, params ListDecksParams) ([]*models.PublishedDeck, models.PageInfo, error)
	Update(ctx context.Context, deck *models.PublishedDeck) error
	SoftDelete(ctx context.Context, id string) error
	Hide(ctx context.Context, id string) error

	AddLike(ctx context.Context, deckID, uid string) (added bool, likeCount int, err error)
	RemoveLike(ctx context.Context, deckID, uid string) (removed bool, likeCount int, err error)
	RecordView(ctx context.Context, deckID, uid string) (counted bool, viewCount int, err error)
	HasLiked(ctx context.Context, deckID, uid string) (bool, error)
	LikedDeckIDs(ctx context.Context, uid string, deckIDs []string) ([]string, error)
}

type deckRepository struct {
	db *gorm.DB
}

// NewDeckRepository creates a new deck repository.
func NewDeckRepository(db *gorm.DB) DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Create(ctx context.Context, deck *models.PublishedDeck) error {
	err := r.db.WithContext(ctx).Create(deck).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("a deck with this ID already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *deckRepository) GetByID(ctx context.Context, id string, currentUserUID string) (*models.PublishedDeck, error) {
	var deck models.PublishedDeck
	if err := readDB(r.db).WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&deck).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Deck", id)
		}
		return nil, models.NewInternalError(err)
	}

	if currentUserUID != "" {
		liked, err := r.HasLiked(ctx, id, currentUserUID)
		if err != nil {
			return nil, err
		}
		deck.LikedByCurrentUser = liked
	}
	return &deck, nil
}

// GetByIDAny fetches a deck regardless of its soft-delete flag. Moderation
// needs this so reports against hidden decks still resolve their target.
func (r *deckRepository) GetByIDAny(ctx context.Context, id string) (*models.PublishedDeck, error) {
	var deck models.PublishedDeck
	if err := readDB(r.db).WithContext(ctx).
		Where("id = ?", id).
		First(&deck).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Deck", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &deck, nil
}

// visibleDecks restricts a query to decks the given viewer may see in
// listings: not deleted, and not unlisted unless the viewer owns them.
func visibleDecks(db *gorm.DB, viewerUID string) *gorm.DB {
	db = db.Where("is_deleted = ?", false)
	if viewerUID == "" {
		return db.Where("is_unlisted = ?", false)
	}
	return db.Where("is_unlisted = ? OR published_decks.user_id = ?", false, viewerUID)
}

func (r *deckRepository) List(ctx context.Context, params ListDecksParams) ([]*models.PublishedDeck, models.PageInfo, error) {
	query := visibleDecks(readDB(r.db).WithContext(ctx).Model(&models.PublishedDeck{}), params.CurrentUserUID)

	if tag := models.NormalizeHashtag(params.Hashtag); tag != "" {
		// Hashtags are stored as a JSON array; match the quoted element.
		query = query.Where("hashtags LIKE ?", `%"`+tag+`"%`)
	}
	if params.SongID != "" {
		query = query.Where("song_id = ?", params.SongID)
	}
	if params.DeckType != "" {
		query = query.Where("deck_type = ?", params.DeckType)
	}

	return r.paginate(ctx, query, params, listOrder(params))
}

// listOrder maps the sort params onto a SQL clause. The column and
// direction are whitelisted here, never interpolated from user input.
func listOrder(params ListDecksParams) string {
	column := "published_at"
	switch params.Sort {
	case "view_count", "like_count":
		column = params.Sort
	}
	direction := "DESC"
	if params.Order == "asc" {
		direction = "ASC"
	}
	return column + " " + direction + ", id DESC"
}

func (r *deckRepository) ListByUser(ctx context.Context, ownerUID string, params ListDecksParams) ([]*models.PublishedDeck, models.PageInfo, error) {
	query := readDB(r.db).WithContext(ctx).
		Model(&models.PublishedDeck{}).
		Where("user_id = ? AND is_deleted = ?", ownerUID, false)

	// Unlisted decks only show up in the owner's own listing.
	if params.CurrentUserUID != ownerUID {
		query = query.Where("is_unlisted = ?", false)
	}

	return r.paginate(ctx, query, params, "published_at DESC, id DESC")
}

func (r *deckRepository) ListLikedBy(ctx context.Context, uid string, params ListDecksParams) ([]*models.PublishedDeck, models.PageInfo, error) {
	query := visibleDecks(
		readDB(r.db).WithContext(ctx).
			Model(&models.PublishedDeck{}).
			Joins("JOIN deck_likes ON deck_likes.deck_id = published_decks.id").
			Where("deck_likes.user_id = ?", uid),
		params.CurrentUserUID,
	)

	return r.paginate(ctx, query, params, "deck_likes.created_at DESC, published_decks.id DESC")
}

func (r *deckRepository) paginate(ctx context.Context, query *gorm.DB, params ListDecksParams, order string) ([]*models.PublishedDeck, models.PageInfo, error) {
	// New session so the count and the page query don't share statement state.
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, models.PageInfo{}, models.NewInternalError(err)
	}

	var decks []*models.PublishedDeck
	offset := (params.Page - 1) * params.PerPage
	if err := query.
		Order(order).
		Limit(params.PerPage).
		Offset(offset).
		Find(&decks).Error; err != nil {
		return nil, models.PageInfo{}, models.NewInternalError(err)
	}

	if err := r.markLiked(ctx, decks, params.CurrentUserUID); err != nil {
		return nil, models.PageInfo{}, err
	}

	return decks, models.NewPageInfo(params.Page, params.PerPage, total), nil
}

func (r *deckRepository) markLiked(ctx context.Context, decks []*models.PublishedDeck, uid string) error {
	if uid == "" || len(decks) == 0 {
		return nil
	}
	ids := make([]string, len(decks))
	for i, d := range decks {
		ids[i] = d.ID
	}
	likedIDs, err := r.LikedDeckIDs(ctx, uid, ids)
	if err != nil {
		return err
	}
	liked := make(map[string]struct{}, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = struct{}{}
	}
	for _, d := range decks {
		_, d.LikedByCurrentUser = liked[d.ID]
	}
	return nil
}

func (r *deckRepository) Update(ctx context.Context, deck *models.PublishedDeck) error {
	if err := r.db.WithContext(ctx).Save(deck).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateDeck(ctx, deck.ID)
	return nil
}

func (r *deckRepository) SoftDelete(ctx context.Context, id string) error {
	err := runInTx(ctx, r.db, func(tx *gorm.DB) error {
		result := tx.Model(&models.PublishedDeck{}).
			Where("id = ? AND is_deleted = ?", id, false).
			Update("is_deleted", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Deck", id)
		}
		// Cascade: comments on a deleted deck are no longer served, and
		// engagement rows are gone for good.
		if err := tx.Model(&models.DeckComment{}).
			Where("deck_id = ?", id).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Where("deck_id = ?", id).Delete(&models.DeckLike{}).Error; err != nil {
			return err
		}
		return tx.Where("deck_id = ?", id).Delete(&models.DeckView{}).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateDeck(ctx, id)
	return nil
}

// Hide soft-deletes a deck and its comments when moderation escalates.
// Unlike SoftDelete it leaves the engagement rows in place, and hiding a
// deck that is already hidden is a no-op so a retried escalation is safe.
func (r *deckRepository) Hide(ctx context.Context, id string) error {
	err := runInTx(ctx, r.db, func(tx *gorm.DB) error {
		result := tx.Model(&models.PublishedDeck{}).
			Where("id = ? AND is_deleted = ?", id, false).
			Update("is_deleted", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.PublishedDeck{}).
				Where("id = ?", id).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return models.NewNotFoundError("Deck", id)
			}
			return nil
		}
		return tx.Model(&models.DeckComment{}).
			Where("deck_id = ?", id).
			Update("is_deleted", true).Error
	})
	if err != nil {
		return wrapTxError(err)
	}
	cache.InvalidateDeck(ctx, id)
	return nil
}

// AddLike records a like and bumps the counter in one transaction. The
// insert races are settled by the unique (deck_id, user_id) index: only
// the inserting transaction increments the counter, so double likes from
// the same user leave the count unchanged.
func (r *deckRepository) AddLike(ctx context.Context, deckID, uid string) (bool, int, error) {
	var added bool
	var likeCount int

	err := runInTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := lockDeck(tx, deckID); err != nil {
			return err
		}

		result := tx.Exec(
			`INSERT INTO deck_likes (deck_id, user_id, created_at)
			 VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT (deck_id, user_id) DO NOTHING`,
			deckID, uid,
		)
		if result.Error != nil {
			return result.Error
		}
		added = result.RowsAffected > 0

		if added {
			if err := tx.Model(&models.PublishedDeck{}).
				Where("id = ?", deckID).
				Update("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.PublishedDeck{}).
			Where("id = ?", deckID).
			Pluck("like_count", &likeCount).Error
	})
	if err != nil {
		return false, 0, wrapTxError(err)
	}

	cache.InvalidateDeck(ctx, deckID)
	return added, likeCount, nil
}

// RemoveLike deletes the like record and decrements the counter, clamped
// at zero. Removing a like that was never recorded is a no-op.
func (r *deckRepository) RemoveLike(ctx context.Context, deckID, uid string) (bool, int, error) {
	var removed bool
	var likeCount int

	err := runInTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := lockDeck(tx, deckID); err != nil {
			return err
		}

		result := tx.Where("deck_id = ? AND user_id = ?", deckID, uid).
			Delete(&models.DeckLike{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected > 0

		if removed {
			if err := tx.Model(&models.PublishedDeck{}).
				Where("id = ?", deckID).
				Update("like_count", gorm.Expr("CASE WHEN like_count > 0 THEN like_count - 1 ELSE 0 END")).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.PublishedDeck{}).
			Where("id = ?", deckID).
			Pluck("like_count", &likeCount).Error
	})
	if err != nil {
		return false, 0, wrapTxError(err)
	}

	cache.InvalidateDeck(ctx, deckID)
	return removed, likeCount, nil
}

// RecordView counts one view per (deck, user) pair for all time. Repeat
// views return counted=false and leave the counter alone.
func (r *deckRepository) RecordView(ctx context.Context, deckID, uid string) (bool, int, error) {
	var counted bool
	var viewCount int

	err := runInTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := lockDeck(tx, deckID); err != nil {
			return err
		}

		result := tx.Exec(
			`INSERT INTO deck_views (deck_id, user_id, created_at)
			 VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT (deck_id, user_id) DO NOTHING`,
			deckID, uid,
		)
		if result.Error != nil {
			return result.Error
		}
		counted = result.RowsAffected > 0

		if counted {
			if err := tx.Model(&models.PublishedDeck{}).
				Where("id = ?", deckID).
				Update("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.PublishedDeck{}).
			Where("id = ?", deckID).
			Pluck("view_count", &viewCount).Error
	})
	if err != nil {
		return false, 0, wrapTxError(err)
	}

	cache.InvalidateDeck(ctx, deckID)
	return counted, viewCount, nil
}

func (r *deckRepository) HasLiked(ctx context.Context, deckID, uid string) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.DeckLike{}).
		Where("deck_id = ? AND user_id = ?", deckID, uid).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *deckRepository) LikedDeckIDs(ctx context.Context, uid string, deckIDs []string) ([]string, error) {
	if len(deckIDs) == 0 {
		return nil, nil
	}
	var liked []string
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.DeckLike{}).
		Where("user_id = ? AND deck_id IN ?", uid, deckIDs).
		Pluck("deck_id", &liked).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return liked, nil
}

// lockDeck loads the target deck inside the transaction, failing with
// NotFound for missing or deleted decks before any counter work happens.
func lockDeck(tx *gorm.DB, deckID string) error {
	var deck models.PublishedDeck
	if err := tx.Select("id").
		Where("id = ? AND is_deleted = ?", deckID, false).
		First(&deck).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Deck", deckID)
		}
		return err
	}
	return nil
}

func wrapTxError(err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.NewInternalError(err)
}
