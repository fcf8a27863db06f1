package server

import (
	"deckvault/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ImageUploadResponse is the API response after staging an image.
// The token is exchanged for a permanent URL when the deck is published.
type ImageUploadResponse struct {
	Token string `json:"token"`
}

// UploadImage handles POST /api/images/upload
func (s *Server) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	token, err := s.assets.Stage(file.Header.Get("Content-Type"), src)
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	return c.Status(fiber.StatusCreated).JSON(ImageUploadResponse{Token: token})
}

// DiscardImage handles DELETE /api/images/:token, dropping a staged upload
// that will not be published. Discarding an unknown token succeeds so
// clients can retry cleanup.
func (s *Server) DiscardImage(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return models.RespondWithError(c, models.NewValidationError("Image token is required"))
	}

	if err := s.assets.DiscardStaged(token); err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
