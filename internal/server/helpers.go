package server

import (
	"errors"
	"strings"

	"deckvault/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed page/per_page query parameters. Values are
// passed through as-is; the service layer clamps them.
type Pagination struct {
	Page    int
	PerPage int
}

// parsePagination extracts page and per_page query parameters with the given default size.
func parsePagination(c *fiber.Ctx, defaultPerPage int) Pagination {
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", defaultPerPage)
	return Pagination{Page: page, PerPage: perPage}
}

// currentUID returns the authenticated user's UID set by AuthRequired.
func (s *Server) currentUID(c *fiber.Ctx) string {
	uid, _ := c.Locals("userID").(string)
	return uid
}

// parseDeckID extracts the :id route parameter.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseDeckID(c *fiber.Ctx) (string, error) {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		_ = models.RespondWithError(c, models.NewValidationError("Invalid deck ID"))
		return "", errResponseWritten
	}
	return id, nil
}

// parseCommentID extracts the :commentId route parameter, same contract as parseDeckID.
func (s *Server) parseCommentID(c *fiber.Ctx) (string, error) {
	id := strings.TrimSpace(c.Params("commentId"))
	if id == "" {
		_ = models.RespondWithError(c, models.NewValidationError("Invalid comment ID"))
		return "", errResponseWritten
	}
	return id, nil
}
