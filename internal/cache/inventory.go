package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix           = "user:%s"
	DeckKeyPrefix           = "deck:%s"
	DeckListKeyPrefix       = "decks:%s"
	PopularHashtagKeyPrefix = "hashtags:popular:%d"
)

const (
	UserTTL           = 5 * time.Minute
	DeckTTL           = 10 * time.Minute
	DeckListTTL       = 1 * time.Minute
	PopularHashtagTTL = 30 * time.Minute
)

func UserKey(uid string) string {
	return fmt.Sprintf(UserKeyPrefix, uid)
}

func DeckKey(deckID string) string {
	return fmt.Sprintf(DeckKeyPrefix, deckID)
}

func DeckListKey(queryHash string) string {
	return fmt.Sprintf(DeckListKeyPrefix, queryHash)
}

func PopularHashtagKey(periodDays int) string {
	return fmt.Sprintf(PopularHashtagKeyPrefix, periodDays)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, uid string) {
	Invalidate(ctx, UserKey(uid))
}

func InvalidateDeck(ctx context.Context, deckID string) {
	Invalidate(ctx, DeckKey(deckID))
}

func InvalidatePopularHashtags(ctx context.Context, periodDays int) {
	Invalidate(ctx, PopularHashtagKey(periodDays))
}
