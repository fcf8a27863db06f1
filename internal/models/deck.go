// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// DeckSlot is a single card slot in the published payload.
type DeckSlot struct {
	SlotID     int     `json:"slotId"`
	CardID     *string `json:"cardId"`
	LimitBreak int     `json:"limitBreak,omitempty"`
}

// DeckPayload is the deck configuration embedded in a publication.
// It is stored as a JSON document; the server never interprets card IDs.
type DeckPayload struct {
	Name      string     `json:"name"`
	Slots     []DeckSlot `json:"slots"`
	AceSlotID *int       `json:"aceSlotId"`
	DeckType  string     `json:"deckType,omitempty"`
	SongID    string     `json:"songId,omitempty"`
	Score     int        `json:"score,omitempty"`
	Memo      string     `json:"memo,omitempty"`
}

// PublishedDeck is a deck publication with its engagement counters.
// LikeCount and ViewCount are only ever mutated together with their
// membership records inside a repository transaction.
type PublishedDeck struct {
	ID        string      `gorm:"primaryKey;size:21" json:"id"`
	UserID    string      `gorm:"not null;index" json:"user_id"`
	UserName  string      `gorm:"not null" json:"user_name"`
	Payload   DeckPayload `gorm:"serializer:json" json:"deck"`
	Comment   string      `json:"comment,omitempty"`
	Hashtags  []string    `gorm:"serializer:json" json:"hashtags"`
	ImageURLs []string    `gorm:"serializer:json" json:"image_urls,omitempty"`
	Thumbnail string      `json:"thumbnail,omitempty"`

	// Denormalized from the payload for filtered listings.
	SongID   string `gorm:"index" json:"-"`
	DeckType string `gorm:"index" json:"-"`

	IsUnlisted bool `gorm:"not null;default:false" json:"is_unlisted"`
	IsDeleted  bool `gorm:"not null;default:false;index" json:"-"`

	ViewCount int `gorm:"not null;default:0" json:"view_count"`
	LikeCount int `gorm:"not null;default:0" json:"like_count"`

	// LikedByCurrentUser is computed per request, never persisted.
	LikedByCurrentUser bool `gorm:"-" json:"liked_by_current_user"`

	PublishedAt time.Time `gorm:"not null;index" json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeckLike records that a user liked a deck.
// The (DeckID, UserID) pair is unique; the index doubles as the
// existence check inside the counter transaction.
type DeckLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DeckID    string    `gorm:"not null;uniqueIndex:idx_deck_user_like;size:21" json:"deck_id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_deck_user_like" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// DeckView records that a user viewed a deck. One row per (deck, user)
// pair, created on first view and never removed.
type DeckView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DeckID    string    `gorm:"not null;uniqueIndex:idx_deck_user_view;size:21" json:"deck_id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_deck_user_view" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
