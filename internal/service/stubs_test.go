package service

import (
	"context"
	"time"

	"deckvault/internal/models"
	"deckvault/internal/repository"
)

// deckRepoStub is a stub for repository.DeckRepository.
type deckRepoStub struct {
	createFn       func(context.Context, *models.PublishedDeck) error
	getByIDFn      func(context.Context, string, string) (*models.PublishedDeck, error)
	getByIDAnyFn   func(context.Context, string) (*models.PublishedDeck, error)
	listFn         func(context.Context, repository.ListDecksParams) ([]*models.PublishedDeck, models.PageInfo, error)
	listByUserFn   func(context.Context, string, repository.ListDecksParams) ([]*models.PublishedDeck, models.PageInfo, error)
	listLikedByFn  func(context.Context, string, repository.ListDecksParams) ([]*models.PublishedDeck, models.PageInfo, error)
	updateFn       func(context.Context, *models.PublishedDeck) error
	softDeleteFn   func(context.Context, string) error
	hideFn         func(context.Context, string) error
	addLikeFn      func(context.Context, string, string) (bool, int, error)
	removeLikeFn   func(context.Context, string, string) (bool, int, error)
	recordViewFn   func(context.Context, string, string) (bool, int, error)
	hasLikedFn     func(context.Context, string, string) (bool, error)
	likedDeckIDsFn func(context.Context, string, []string) ([]string, error)
}

func (s *deckRepoStub) Create(ctx context.Context, deck *models.PublishedDeck) error {
	return s.createFn(ctx, deck)
}
func (s *deckRepoStub) GetByID(ctx context.Context, id, uid string) (*models.PublishedDeck, error) {
	return s.getByIDFn(ctx, id, uid)
}
func (s *deckRepoStub) GetByIDAny(ctx context.Context, id string) (*models.PublishedDeck, error) {
	return s.getByIDAnyFn(ctx, id)
}
func (s *deckRepoStub) List(ctx context.Context, p repository.ListDecksParams) ([]*models.PublishedDeck, models.PageInfo, error) {
	return s.listFn(ctx, p)
}
func (s *deckRepoStub) ListByUser(ctx context.Context, uid string, p repository.ListDecksParams) ([]*models.PublishedDeck, models.PageInfo, error) {
	return s.listByUserFn(ctx, uid, p)
}
func (s *deckRepoStub) ListLikedBy(ctx context.Context, uid string, p repository.ListDecksParams) ([]*models.PublishedDeck, models.PageInfo, error) {
	return s.listLikedByFn(ctx, uid, p)
}
func (s *deckRepoStub) Update(ctx context.Context, deck *models.PublishedDeck) error {
	return s.updateFn(ctx, deck)
}
func (s *deckRepoStub) SoftDelete(ctx context.Context, id string) error {
	return s.softDeleteFn(ctx, id)
}
func (s *deckRepoStub) Hide(ctx context.Context, id string) error {
	return s.hideFn(ctx, id)
}
func (s *deckRepoStub) AddLike(ctx context.Context, deckID, uid string) (bool, int, error) {
	return s.addLikeFn(ctx, deckID, uid)
}
func (s *deckRepoStub) RemoveLike(ctx context.Context, deckID, uid string) (bool, int, error) {
	return s.removeLikeFn(ctx, deckID, uid)
}
func (s *deckRepoStub) RecordView(ctx context.Context, deckID, uid string) (bool, int, error) {
	return s.recordViewFn(ctx, deckID, uid)
}
func (s *deckRepoStub) HasLiked(ctx context.Context, deckID, uid string) (bool, error) {
	return s.hasLikedFn(ctx, deckID, uid)
}
func (s *deckRepoStub) LikedDeckIDs(ctx context.Context, uid string, ids []string) ([]string, error) {
	return s.likedDeckIDsFn(ctx, uid, ids)
}

func noopDeckRepo() *deckRepoStub {
	return &deckRepoStub{
		createFn: func(_ context.Context, _ *models.PublishedDeck) error { return nil },
		getByIDFn: func(_ context.Context, id, _ string) (*models.PublishedDeck, error) {
			return &models.PublishedDeck{ID: id, UserID: "owner", PublishedAt: time.Now()}, nil
		},
		getByIDAnyFn: func(_ context.Context, id string) (*models.PublishedDeck, error) {
			return &models.PublishedDeck{ID: id, UserID: "owner", PublishedAt: time.Now()}, nil
		},
		listFn: func(_ context.Context, _ repository.ListDecksParams) ([]*models.PublishedDeck, models.PageInfo, error) {
			return nil, models.PageInfo{}, nil
		},
		listByUserFn: func(_ context.Context, _ string, _ repository.ListDecksParams) ([]*models.PublishedDeck, models.PageInfo, error) {
			return nil, models.PageInfo{}, nil
		},
		listLikedByFn: func(_ context.Context, _ string, _ repository.ListDecksParams) ([]*models.PublishedDeck, models.PageInfo, error) {
			return nil, models.PageInfo{}, nil
		},
		updateFn:     func(_ context.Context, _ *models.PublishedDeck) error { return nil },
		softDeleteFn: func(_ context.Context, _ string) error { return nil },
		hideFn:       func(_ context.Context, _ string) error { return nil },
		addLikeFn:    func(_ context.Context, _, _ string) (bool, int, error) { return true, 1, nil },
		removeLikeFn: func(_ context.Context, _, _ string) (bool, int, error) { return true, 0, nil },
		recordViewFn: func(_ context.Context, _, _ string) (bool, int, error) { return true, 1, nil },
		hasLikedFn:   func(_ context.Context, _, _ string) (bool, error) { return false, nil },
		likedDeckIDsFn: func(_ context.Context, _ string, _ []string) ([]string, error) {
			return nil, nil
		},
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByUIDFn func(context.Context, string) (*models.User, error)
	upsertFn   func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	return s.getByUIDFn(ctx, uid)
}
func (s *userRepoStub) Upsert(ctx context.Context, user *models.User) error {
	return s.upsertFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByUIDFn: func(_ context.Context, uid string) (*models.User, error) {
			return &models.User{UID: uid, DisplayName: "Player " + uid}, nil
		},
		upsertFn: func(_ context.Context, _ *models.User) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.DeckComment) error
	getByIDFn    func(context.Context, string) (*models.DeckComment, error)
	getByIDAnyFn func(context.Context, string) (*models.DeckComment, error)
	listByDeckFn func(context.Context, string, int, int) ([]*models.DeckComment, models.PageInfo, error)
	softDeleteFn func(context.Context, string) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.DeckComment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id string) (*models.DeckComment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) GetByIDAny(ctx context.Context, id string) (*models.DeckComment, error) {
	return s.getByIDAnyFn(ctx, id)
}
func (s *commentRepoStub) ListByDeck(ctx context.Context, deckID string, page, perPage int) ([]*models.DeckComment, models.PageInfo, error) {
	return s.listByDeckFn(ctx, deckID, page, perPage)
}
func (s *commentRepoStub) SoftDelete(ctx context.Context, id string) error {
	return s.softDeleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.DeckComment) error { return nil },
		getByIDFn: func(_ context.Context, id string) (*models.DeckComment, error) {
			return &models.DeckComment{ID: id, DeckID: "deck-1", UserID: "author"}, nil
		},
		getByIDAnyFn: func(_ context.Context, id string) (*models.DeckComment, error) {
			return &models.DeckComment{ID: id, DeckID: "deck-1", UserID: "author"}, nil
		},
		listByDeckFn: func(_ context.Context, _ string, _, _ int) ([]*models.DeckComment, models.PageInfo, error) {
			return nil, models.PageInfo{}, nil
		},
		softDeleteFn: func(_ context.Context, _ string) error { return nil },
	}
}

// reportRepoStub is a stub for repository.ReportRepository.
type reportRepoStub struct {
	createFn                func(context.Context, *models.DeckReport) error
	countDeckReportersFn    func(context.Context, string) (int, error)
	countCommentReportersFn func(context.Context, string) (int, error)
}

func (s *reportRepoStub) Create(ctx context.Context, r *models.DeckReport) error {
	return s.createFn(ctx, r)
}
func (s *reportRepoStub) CountDistinctDeckReporters(ctx context.Context, deckID string) (int, error) {
	return s.countDeckReportersFn(ctx, deckID)
}
func (s *reportRepoStub) CountDistinctCommentReporters(ctx context.Context, commentID string) (int, error) {
	return s.countCommentReportersFn(ctx, commentID)
}

func noopReportRepo() *reportRepoStub {
	return &reportRepoStub{
		createFn:                func(_ context.Context, _ *models.DeckReport) error { return nil },
		countDeckReportersFn:    func(_ context.Context, _ string) (int, error) { return 1, nil },
		countCommentReportersFn: func(_ context.Context, _ string) (int, error) { return 1, nil },
	}
}

// hashtagRepoStub is a stub for repository.HashtagRepository.
type hashtagRepoStub struct {
	listSinceFn     func(context.Context, time.Time) ([][]string, error)
	upsertSummaryFn func(context.Context, *models.PopularHashtagSummary) error
	getSummaryFn    func(context.Context, int) (*models.PopularHashtagSummary, error)
}

func (s *hashtagRepoStub) ListDeckHashtagsSince(ctx context.Context, since time.Time) ([][]string, error) {
	return s.listSinceFn(ctx, since)
}
func (s *hashtagRepoStub) UpsertSummary(ctx context.Context, summary *models.PopularHashtagSummary) error {
	return s.upsertSummaryFn(ctx, summary)
}
func (s *hashtagRepoStub) GetSummary(ctx context.Context, periodDays int) (*models.PopularHashtagSummary, error) {
	return s.getSummaryFn(ctx, periodDays)
}

// assetMoverStub is a stub for AssetMover.
type assetMoverStub struct {
	moveStagedFn       func(string, []string) ([]string, error)
	deleteFn           func(string) error
	deleteAllForDeckFn func(string) error
}

func (s *assetMoverStub) MoveStaged(deckID string, tokens []string) ([]string, error) {
	return s.moveStagedFn(deckID, tokens)
}
func (s *assetMoverStub) Delete(url string) error {
	return s.deleteFn(url)
}
func (s *assetMoverStub) DeleteAllForDeck(deckID string) error {
	return s.deleteAllForDeckFn(deckID)
}

func noopAssetMover() *assetMoverStub {
	return &assetMoverStub{
		moveStagedFn: func(deckID string, tokens []string) ([]string, error) {
			urls := make([]string, len(tokens))
			for i, tok := range tokens {
				urls[i] = "/assets/decks/" + deckID + "/" + tok
			}
			return urls, nil
		},
		deleteFn:           func(_ string) error { return nil },
		deleteAllForDeckFn: func(_ string) error { return nil },
	}
}

// notifierSpy records moderation notifications for assertions.
type notifierSpy struct {
	deckReports    []string
	commentReports []string
	deckHides      []string
	commentHides   []string
}

func (n *notifierSpy) NotifyDeckReported(_ context.Context, deckID, _, _, _ string) {
	n.deckReports = append(n.deckReports, deckID)
}
func (n *notifierSpy) NotifyCommentReported(_ context.Context, _, commentID, _, _, _ string) {
	n.commentReports = append(n.commentReports, commentID)
}
func (n *notifierSpy) NotifyDeckAutoHidden(_ context.Context, deckID string, _ int) {
	n.deckHides = append(n.deckHides, deckID)
}
func (n *notifierSpy) NotifyCommentAutoHidden(_ context.Context, _, commentID string, _ int) {
	n.commentHides = append(n.commentHides, commentID)
}
