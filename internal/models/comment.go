package models

import (
	"time"
)

// DeckComment is a comment on a published deck. Comments are soft-deleted
// (IsDeleted) by their author or by moderation; rows are never removed.
type DeckComment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	DeckID    string    `gorm:"not null;index;size:21" json:"deck_id"`
	UserID    string    `gorm:"not null" json:"user_id"`
	UserName  string    `gorm:"not null" json:"user_name"`
	Text      string    `gorm:"not null" json:"text"`
	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
}
