package server

import (
	"deckvault/internal/models"
	"deckvault/internal/service"

	"github.com/gofiber/fiber/v2"
)

// DeckListResponse is the API response for paginated deck listings.
type DeckListResponse struct {
	Decks    []*models.PublishedDeck `json:"decks"`
	PageInfo models.PageInfo         `json:"page_info"`
}

// PublishDeck handles POST /api/decks/publish
func (s *Server) PublishDeck(c *fiber.Ctx) error {
	ctx := c.UserContext()
	uid := s.currentUID(c)

	var req struct {
		ID          string             `json:"id"`
		Deck        models.DeckPayload `json:"deck"`
		Comment     string             `json:"comment"`
		Hashtags    []string           `json:"hashtags"`
		ImageTokens []string           `json:"image_tokens"`
		Thumbnail   string             `json:"thumbnail"`
		IsUnlisted  bool               `json:"is_unlisted"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	deck, err := s.deckService.PublishDeck(ctx, service.PublishDeckInput{
		ID:          req.ID,
		UserID:      uid,
		Payload:     req.Deck,
		Comment:     req.Comment,
		Hashtags:    req.Hashtags,
		ImageTokens: req.ImageTokens,
		Thumbnail:   req.Thumbnail,
		IsUnlisted:  req.IsUnlisted,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(deck)
}

// GetDecks handles GET /api/decks
func (s *Server) GetDecks(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, service.DefaultPerPage)

	decks, pageInfo, err := s.deckService.ListDecks(ctx, service.ListDecksInput{
		Page:           page.Page,
		PerPage:        page.PerPage,
		Hashtag:        c.Query("hashtag"),
		SongID:         c.Query("song_id"),
		DeckType:       c.Query("deck_type"),
		Sort:           c.Query("sort"),
		Order:          c.Query("order"),
		CurrentUserUID: s.currentUID(c),
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(DeckListResponse{Decks: decks, PageInfo: pageInfo})
}

// GetMyDecks handles GET /api/decks/me
func (s *Server) GetMyDecks(c *fiber.Ctx) error {
	ctx := c.UserContext()
	uid := s.currentUID(c)
	page := parsePagination(c, service.DefaultPerPage)

	decks, pageInfo, err := s.deckService.ListUserDecks(ctx, uid, service.ListDecksInput{
		Page:           page.Page,
		PerPage:        page.PerPage,
		CurrentUserUID: uid,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(DeckListResponse{Decks: decks, PageInfo: pageInfo})
}

// GetLikedDecks handles GET /api/decks/me/likes
func (s *Server) GetLikedDecks(c *fiber.Ctx) error {
	ctx := c.UserContext()
	uid := s.currentUID(c)
	page := parsePagination(c, service.DefaultPerPage)

	decks, pageInfo, err := s.deckService.ListLikedDecks(ctx, uid, service.ListDecksInput{
		Page:           page.Page,
		PerPage:        page.PerPage,
		CurrentUserUID: uid,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(DeckListResponse{Decks: decks, PageInfo: pageInfo})
}

// GetDeck handles GET /api/decks/:id
func (s *Server) GetDeck(c *fiber.Ctx) error {
	ctx := c.UserContext()
	deckID, err := s.parseDeckID(c)
	if err != nil {
		return nil
	}

	deck, err := s.deckService.GetDeck(ctx, deckID, s.currentUID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(deck)
}

// DeleteDeck handles DELETE /api/decks/:id
func (s *Server) DeleteDeck(c *fiber.Ctx) error {
	ctx := c.UserContext()
	deckID, err := s.parseDeckID(c)
	if err != nil {
		return nil
	}

	if err := s.deckService.DeleteDeck(ctx, deckID, s.currentUID(c)); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// LikeDeck handles POST /api/decks/:id/like
func (s *Server) LikeDeck(c *fiber.Ctx) error {
	ctx := c.UserContext()
	deckID, err := s.parseDeckID(c)
	if err != nil {
		return nil
	}

	result, err := s.deckService.LikeDeck(ctx, deckID, s.currentUID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(result)
}

// UnlikeDeck handles DELETE /api/decks/:id/like
func (s *Server) UnlikeDeck(c *fiber.Ctx) error {
	ctx := c.UserContext()
	deckID, err := s.parseDeckID(c)
	if err != nil {
		return nil
	}

	result, err := s.deckService.UnlikeDeck(ctx, deckID, s.currentUID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(result)
}

// ViewDeck handles POST /api/decks/:id/view
func (s *Server) ViewDeck(c *fiber.Ctx) error {
	ctx := c.UserContext()
	deckID, err := s.parseDeckID(c)
	if err != nil {
		return nil
	}

	result, err := s.deckService.ViewDeck(ctx, deckID, s.currentUID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(result)
}
