package server

import (
	"deckvault/internal/models"

	"github.com/gofiber/fiber/v2"
)

// reportRequest is the request body shared by deck and comment reports.
type reportRequest struct {
	Reason  string `json:"reason"`
	Details string `json:"details"`
}

// ReportDeck handles POST /api/decks/:id/report
func (s *Server) ReportDeck(c *fiber.Ctx) error {
	ctx := c.UserContext()
	deckID, err := s.parseDeckID(c)
	if err != nil {
		return nil
	}

	var req reportRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	report, err := s.moderationService.ReportDeck(ctx, deckID, s.currentUID(c), req.Reason, req.Details)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// ReportComment handles POST /api/decks/:id/comments/:commentId/report
func (s *Server) ReportComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	deckID, err := s.parseDeckID(c)
	if err != nil {
		return nil
	}
	commentID, err := s.parseCommentID(c)
	if err != nil {
		return nil
	}

	var req reportRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	report, err := s.moderationService.ReportComment(ctx, deckID, commentID, s.currentUID(c), req.Reason, req.Details)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}
