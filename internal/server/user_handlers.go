package server

import (
	"deckvault/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := s.userService.GetProfile(ctx, s.currentUID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me. It creates the profile record
// on first call, so clients use it to sync the display name after sign-in.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		DisplayName string `json:"display_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.SyncProfile(ctx, s.currentUID(c), req.DisplayName)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(user)
}
