package server

import (
	"deckvault/internal/models"

	"github.com/gofiber/fiber/v2"
)

// defaultCommentsPerPage is the page size for comment listings when the
// client does not ask for one.
const defaultCommentsPerPage = 10

// CommentListResponse is the API response for paginated comment listings.
type CommentListResponse struct {
	Comments []*models.DeckComment `json:"comments"`
	PageInfo models.PageInfo       `json:"page_info"`
}

// CreateComment handles POST /api/decks/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	deckID, err := s.parseDeckID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(ctx, deckID, s.currentUID(c), req.Text)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /api/decks/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	deckID, err := s.parseDeckID(c)
	if err != nil {
		return nil
	}
	page := parsePagination(c, defaultCommentsPerPage)

	comments, pageInfo, err := s.commentService.ListComments(ctx, deckID, page.Page, page.PerPage)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(CommentListResponse{Comments: comments, PageInfo: pageInfo})
}

// DeleteComment handles DELETE /api/decks/:id/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if _, err := s.parseDeckID(c); err != nil {
		return nil
	}
	commentID, err := s.parseCommentID(c)
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(ctx, commentID, s.currentUID(c)); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
