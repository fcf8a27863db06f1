package server

import (
	"deckvault/internal/models"
	"deckvault/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPopularHashtags handles GET /api/decks/hashtags
func (s *Server) GetPopularHashtags(c *fiber.Ctx) error {
	ctx := c.UserContext()

	periodDays := c.QueryInt("period_days", service.DefaultHashtagPeriodDays)
	if periodDays < 1 {
		return models.RespondWithError(c, models.NewValidationError("period_days must be positive"))
	}

	summary, err := s.hashtagService.PopularHashtags(ctx, periodDays)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(summary)
}
