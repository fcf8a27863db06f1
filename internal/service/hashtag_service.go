package service

import (
	"context"
	"sort"
	"time"

	"deckvault/internal/models"
	"deckvault/internal/observability"
	"deckvault/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

const (
	// DefaultHashtagPeriodDays is the aggregation lookback window.
	DefaultHashtagPeriodDays = 30
	// DefaultHashtagLimit is how many ranked hashtags a summary keeps.
	DefaultHashtagLimit = 50
)

// HashtagService computes and serves popular hashtag rankings.
type HashtagService struct {
	hashtagRepo repository.HashtagRepository
	now         func() time.Time
}

// NewHashtagService creates a HashtagService.
func NewHashtagService(hashtagRepo repository.HashtagRepository) *HashtagService {
	return &HashtagService{hashtagRepo: hashtagRepo, now: time.Now}
}

// Aggregate recomputes the ranking over decks published in the last
// periodDays days and overwrites the stored summary. Ties are broken by
// hashtag text so the ranking is stable between runs.
func (s *HashtagService) Aggregate(ctx context.Context, periodDays, limit int) (*models.PopularHashtagSummary, error) {
	span, ctx := observability.NewSpan(ctx, "HashtagService.Aggregate")
	defer span.End()
	span.AddAttributes(attribute.Int("aggregate.period_days", periodDays))

	summary, err := s.aggregate(ctx, periodDays, limit)
	if err != nil {
		span.SetError(err)
	}
	return summary, err
}

func (s *HashtagService) aggregate(ctx context.Context, periodDays, limit int) (*models.PopularHashtagSummary, error) {
	if periodDays < 1 {
		periodDays = DefaultHashtagPeriodDays
	}
	if limit < 1 {
		limit = DefaultHashtagLimit
	}

	start := s.now()
	since := start.UTC().AddDate(0, 0, -periodDays)

	lists, err := s.hashtagRepo.ListDeckHashtagsSince(ctx, since)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, tags := range lists {
		// A deck counts once per hashtag even if the tag repeats.
		seen := make(map[string]bool, len(tags))
		for _, tag := range tags {
			normalized := models.NormalizeHashtag(tag)
			if normalized == "" || seen[normalized] {
				continue
			}
			seen[normalized] = true
			counts[normalized]++
		}
	}

	ranked := make([]models.PopularHashtag, 0, len(counts))
	for tag, count := range counts {
		ranked = append(ranked, models.PopularHashtag{Hashtag: tag, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Hashtag < ranked[j].Hashtag
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	summary := &models.PopularHashtagSummary{
		PeriodDays:   periodDays,
		Hashtags:     ranked,
		AggregatedAt: start.UTC(),
	}
	if err := s.hashtagRepo.UpsertSummary(ctx, summary); err != nil {
		return nil, err
	}

	observability.HashtagAggregationDuration.Observe(time.Since(start).Seconds())
	return summary, nil
}

// PopularHashtags returns the stored ranking for the period. A missing
// summary means no aggregation has run yet; callers get an empty ranking
// rather than an error.
func (s *HashtagService) PopularHashtags(ctx context.Context, periodDays int) (*models.PopularHashtagSummary, error) {
	if periodDays < 1 {
		periodDays = DefaultHashtagPeriodDays
	}
	summary, err := s.hashtagRepo.GetSummary(ctx, periodDays)
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "NOT_FOUND" {
			return &models.PopularHashtagSummary{PeriodDays: periodDays, Hashtags: []models.PopularHashtag{}}, nil
		}
		return nil, err
	}
	return summary, nil
}
