// Package service implements the application's business logic on top of
// the repository layer.
package service

import (
	"context"
	"log/slog"
	"time"

	"deckvault/internal/models"
	"deckvault/internal/observability"
	"deckvault/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

const (
	deckIDLength      = 21
	maxDeckNameLen    = 255
	maxDeckCommentLen = 1000
	deckSlotCount     = 18
	maxDeckImages     = 3
	maxHashtags       = 10

	// MaxPerPage caps page sizes for all deck listings.
	MaxPerPage = 100
	// DefaultPerPage is used when the client does not ask for a size.
	DefaultPerPage = 20
)

// AssetMover moves staged uploads into a deck's storage and cleans them up
// when the deck goes away or a publish has to be undone.
type AssetMover interface {
	MoveStaged(deckID string, tokens []string) ([]string, error)
	Delete(url string) error
	DeleteAllForDeck(deckID string) error
}

// DeckService coordinates deck publication, engagement, and lifecycle.
type DeckService struct {
	deckRepo repository.DeckRepository
	userRepo repository.UserRepository
	assets   AssetMover
}

// NewDeckService creates a DeckService.
func NewDeckService(deckRepo repository.DeckRepository, userRepo repository.UserRepository, assets AssetMover) *DeckService {
	return &DeckService{deckRepo: deckRepo, userRepo: userRepo, assets: assets}
}

// PublishDeckInput is the payload for publishing a deck. The ID is chosen
// by the client; publishing an ID that is already taken fails with Conflict.
type PublishDeckInput struct {
	ID          string
	UserID      string
	Payload     models.DeckPayload
	Comment     string
	Hashtags    []string
	ImageTokens []string
	Thumbnail   string
	IsUnlisted  bool
}

// ListDecksInput is the window and filter set for deck listings.
type ListDecksInput struct {
	Page           int
	PerPage        int
	Hashtag        string
	SongID         string
	DeckType       string
	Sort           string
	Order          string
	CurrentUserUID string
}

func (in *ListDecksInput) clamp() {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PerPage < 1 {
		in.PerPage = DefaultPerPage
	}
	if in.PerPage > MaxPerPage {
		in.PerPage = MaxPerPage
	}
}

// PublishDeck validates the payload and the requested deck ID, moves
// staged images into place, and stores the publication. If the store fails
// after images were moved, the images are removed again so no orphaned
// files remain.
func (s *DeckService) PublishDeck(ctx context.Context, in PublishDeckInput) (*models.PublishedDeck, error) {
	span, ctx := observability.NewSpan(ctx, "DeckService.PublishDeck")
	defer span.End()
	span.AddAttributes(attribute.String("deck.id", in.ID))

	deck, err := s.publishDeck(ctx, in)
	if err != nil {
		span.SetError(err)
	}
	return deck, err
}

func (s *DeckService) publishDeck(ctx context.Context, in PublishDeckInput) (*models.PublishedDeck, error) {
	if len(in.ID) != deckIDLength {
		return nil, models.NewValidationError("Deck ID must be exactly 21 characters")
	}
	if err := validateDeckPayload(in.Payload); err != nil {
		return nil, err
	}
	if len(in.Comment) > maxDeckCommentLen {
		return nil, models.NewValidationError("Comment too long (max 1000 characters)")
	}
	if len(in.ImageTokens) > maxDeckImages {
		return nil, models.NewValidationError("Too many images (max 3)")
	}
	if len(in.Hashtags) > maxHashtags {
		return nil, models.NewValidationError("Too many hashtags (max 10)")
	}

	user, err := s.userRepo.GetByUID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	hashtags := make([]string, 0, len(in.Hashtags))
	for _, tag := range in.Hashtags {
		if normalized := models.NormalizeHashtag(tag); normalized != "" {
			hashtags = append(hashtags, normalized)
		}
	}

	var imageURLs []string
	if len(in.ImageTokens) > 0 {
		imageURLs, err = s.assets.MoveStaged(in.ID, in.ImageTokens)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	deck := &models.PublishedDeck{
		ID:          in.ID,
		UserID:      user.UID,
		UserName:    user.DisplayName,
		Payload:     in.Payload,
		Comment:     in.Comment,
		Hashtags:    hashtags,
		ImageURLs:   imageURLs,
		Thumbnail:   in.Thumbnail,
		SongID:      in.Payload.SongID,
		DeckType:    in.Payload.DeckType,
		IsUnlisted:  in.IsUnlisted,
		PublishedAt: time.Now().UTC(),
	}

	if err := s.deckRepo.Create(ctx, deck); err != nil {
		// Roll back the already-moved assets by deletion so a failed
		// publish leaves no files behind.
		for _, url := range imageURLs {
			if cleanupErr := s.assets.Delete(url); cleanupErr != nil {
				observability.GlobalLogger.WarnContext(ctx, "failed to clean up image for unpublished deck",
					slog.String("deck_id", in.ID),
					slog.String("url", url),
					slog.String("error", cleanupErr.Error()),
				)
			}
		}
		return nil, err
	}

	return deck, nil
}

func validateDeckPayload(payload models.DeckPayload) error {
	if payload.Name == "" {
		return models.NewValidationError("Deck name is required")
	}
	if len(payload.Name) > maxDeckNameLen {
		return models.NewValidationError("Deck name too long (max 255 characters)")
	}
	if len(payload.Slots) != deckSlotCount {
		return models.NewValidationError("A deck must have exactly 18 slots")
	}
	seen := make(map[int]bool, deckSlotCount)
	for _, slot := range payload.Slots {
		if slot.SlotID < 0 || slot.SlotID >= deckSlotCount {
			return models.NewValidationError("Slot IDs must be between 0 and 17")
		}
		if seen[slot.SlotID] {
			return models.NewValidationError("Duplicate slot ID in deck")
		}
		seen[slot.SlotID] = true
	}
	if payload.AceSlotID != nil && (*payload.AceSlotID < 0 || *payload.AceSlotID >= deckSlotCount) {
		return models.NewValidationError("Ace slot must reference a valid slot")
	}
	return nil
}

// GetDeck fetches a deck and, for signed-in viewers, records the view.
// Unlisted decks are reachable by direct link, so no owner check applies
// here; only deleted decks are withheld.
func (s *DeckService) GetDeck(ctx context.Context, deckID, viewerUID string) (*models.PublishedDeck, error) {
	deck, err := s.deckRepo.GetByID(ctx, deckID, viewerUID)
	if err != nil {
		return nil, err
	}

	if viewerUID != "" && viewerUID != deck.UserID {
		counted, viewCount, err := s.deckRepo.RecordView(ctx, deckID, viewerUID)
		if err != nil {
			// Views are best-effort; the fetch itself already succeeded.
			observability.GlobalLogger.WarnContext(ctx, "failed to record view",
				slog.String("deck_id", deckID),
				slog.String("error", err.Error()),
			)
		} else {
			deck.ViewCount = viewCount
			if counted {
				observability.RecordEngagement("view", "counted")
			} else {
				observability.RecordEngagement("view", "duplicate")
			}
		}
	}

	return deck, nil
}

// ListDecks returns a page of publicly visible decks.
func (s *DeckService) ListDecks(ctx context.Context, in ListDecksInput) ([]*models.PublishedDeck, models.PageInfo, error) {
	in.clamp()
	switch in.Sort {
	case "", "published_at", "view_count", "like_count":
	default:
		return nil, models.PageInfo{}, models.NewValidationError("Invalid sort field: " + in.Sort)
	}
	switch in.Order {
	case "", "asc", "desc":
	default:
		return nil, models.PageInfo{}, models.NewValidationError("Invalid sort order: " + in.Order)
	}
	return s.deckRepo.List(ctx, repository.ListDecksParams{
		Page:           in.Page,
		PerPage:        in.PerPage,
		Hashtag:        in.Hashtag,
		SongID:         in.SongID,
		DeckType:       in.DeckType,
		Sort:           in.Sort,
		Order:          in.Order,
		CurrentUserUID: in.CurrentUserUID,
	})
}

// ListUserDecks returns a page of one user's decks.
func (s *DeckService) ListUserDecks(ctx context.Context, ownerUID string, in ListDecksInput) ([]*models.PublishedDeck, models.PageInfo, error) {
	in.clamp()
	return s.deckRepo.ListByUser(ctx, ownerUID, repository.ListDecksParams{
		Page:           in.Page,
		PerPage:        in.PerPage,
		CurrentUserUID: in.CurrentUserUID,
	})
}

// ListLikedDecks returns the decks a user liked, most recently liked first.
func (s *DeckService) ListLikedDecks(ctx context.Context, uid string, in ListDecksInput) ([]*models.PublishedDeck, models.PageInfo, error) {
	in.clamp()
	return s.deckRepo.ListLikedBy(ctx, uid, repository.ListDecksParams{
		Page:           in.Page,
		PerPage:        in.PerPage,
		CurrentUserUID: in.CurrentUserUID,
	})
}

// LikeResult reports the outcome of a like or unlike call.
type LikeResult struct {
	Changed   bool `json:"changed"`
	LikeCount int  `json:"like_count"`
	Liked     bool `json:"liked"`
}

// LikeDeck records a like. Liking a deck twice is a no-op reported via
// Changed=false, never an error.
func (s *DeckService) LikeDeck(ctx context.Context, deckID, uid string) (*LikeResult, error) {
	added, count, err := s.deckRepo.AddLike(ctx, deckID, uid)
	if err != nil {
		return nil, err
	}
	if added {
		observability.RecordEngagement("like", "added")
	} else {
		observability.RecordEngagement("like", "duplicate")
	}
	return &LikeResult{Changed: added, LikeCount: count, Liked: true}, nil
}

// UnlikeDeck removes a like. Unliking a deck that was never liked is a
// no-op reported via Changed=false.
func (s *DeckService) UnlikeDeck(ctx context.Context, deckID, uid string) (*LikeResult, error) {
	removed, count, err := s.deckRepo.RemoveLike(ctx, deckID, uid)
	if err != nil {
		return nil, err
	}
	if removed {
		observability.RecordEngagement("unlike", "removed")
	} else {
		observability.RecordEngagement("unlike", "absent")
	}
	return &LikeResult{Changed: removed, LikeCount: count, Liked: false}, nil
}

// ViewResult reports the outcome of an explicit view call.
type ViewResult struct {
	Counted   bool `json:"counted"`
	ViewCount int  `json:"view_count"`
}

// ViewDeck counts a view once per viewer. Views of a viewer's own decks
// are never counted.
func (s *DeckService) ViewDeck(ctx context.Context, deckID, viewerUID string) (*ViewResult, error) {
	deck, err := s.deckRepo.GetByID(ctx, deckID, "")
	if err != nil {
		return nil, err
	}
	if viewerUID == deck.UserID {
		return &ViewResult{Counted: false, ViewCount: deck.ViewCount}, nil
	}

	counted, count, err := s.deckRepo.RecordView(ctx, deckID, viewerUID)
	if err != nil {
		return nil, err
	}
	if counted {
		observability.RecordEngagement("view", "counted")
	} else {
		observability.RecordEngagement("view", "duplicate")
	}
	return &ViewResult{Counted: counted, ViewCount: count}, nil
}

// DeleteDeck soft-deletes a deck and removes its stored images. Only the
// owner may delete a deck.
func (s *DeckService) DeleteDeck(ctx context.Context, deckID, uid string) error {
	span, ctx := observability.NewSpan(ctx, "DeckService.DeleteDeck")
	defer span.End()
	span.AddAttributes(attribute.String("deck.id", deckID))

	if err := s.deleteDeck(ctx, deckID, uid); err != nil {
		span.SetError(err)
		return err
	}
	return nil
}

func (s *DeckService) deleteDeck(ctx context.Context, deckID, uid string) error {
	deck, err := s.deckRepo.GetByID(ctx, deckID, "")
	if err != nil {
		return err
	}
	if deck.UserID != uid {
		return models.NewForbiddenError("Only the deck owner can delete it")
	}

	if err := s.deckRepo.SoftDelete(ctx, deckID); err != nil {
		return err
	}

	if err := s.assets.DeleteAllForDeck(deckID); err != nil {
		// The deck row is already gone from listings; leftover files are
		// an operator cleanup concern, not a request failure.
		observability.GlobalLogger.WarnContext(ctx, "failed to delete deck images",
			slog.String("deck_id", deckID),
			slog.String("error", err.Error()),
		)
	}
	return nil
}
