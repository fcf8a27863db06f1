package service

import (
	"context"
	"strings"

	"deckvault/internal/models"
	"deckvault/internal/repository"

	"github.com/google/uuid"
)

const maxCommentLen = 1000

// CommentService handles comments on published decks.
type CommentService struct {
	commentRepo repository.CommentRepository
	deckRepo    repository.DeckRepository
	userRepo    repository.UserRepository
}

// NewCommentService creates a CommentService.
func NewCommentService(commentRepo repository.CommentRepository, deckRepo repository.DeckRepository, userRepo repository.UserRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, deckRepo: deckRepo, userRepo: userRepo}
}

// CreateComment posts a comment on a deck.
func (s *CommentService) CreateComment(ctx context.Context, deckID, uid, text string) (*models.DeckComment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if len(text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 1000 characters)")
	}

	if _, err := s.deckRepo.GetByID(ctx, deckID, ""); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	comment := &models.DeckComment{
		ID:       uuid.NewString(),
		DeckID:   deckID,
		UserID:   user.UID,
		UserName: user.DisplayName,
		Text:     text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns a page of a deck's visible comments, oldest first.
func (s *CommentService) ListComments(ctx context.Context, deckID string, page, perPage int) ([]*models.DeckComment, models.PageInfo, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	if _, err := s.deckRepo.GetByID(ctx, deckID, ""); err != nil {
		return nil, models.PageInfo{}, err
	}
	return s.commentRepo.ListByDeck(ctx, deckID, page, perPage)
}

// DeleteComment hides a comment. The comment author and the deck owner
// may both delete it.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, uid string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != uid {
		deck, err := s.deckRepo.GetByID(ctx, comment.DeckID, "")
		if err != nil {
			return err
		}
		if deck.UserID != uid {
			return models.NewForbiddenError("Only the comment author or the deck owner can delete a comment")
		}
	}
	return s.commentRepo.SoftDelete(ctx, commentID)
}
