package models

import (
	"time"
)

// Report reasons accepted from clients.
const (
	ReportReasonInappropriate = "inappropriate_content"
	ReportReasonSpam          = "spam"
	ReportReasonCopyright     = "copyright"
	ReportReasonOther         = "other"
)

// ValidReportReason reports whether reason is one of the accepted values.
func ValidReportReason(reason string) bool {
	switch reason {
	case ReportReasonInappropriate, ReportReasonSpam, ReportReasonCopyright, ReportReasonOther:
		return true
	}
	return false
}

// DeckReport is a user report against a deck or, when CommentID is set,
// against a single comment on that deck. Rows are append-only; the same
// user may file several rows against one target, but moderation counts
// distinct reporters, not rows.
type DeckReport struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	DeckID     string    `gorm:"not null;index;size:21" json:"deck_id"`
	CommentID  string    `gorm:"index;size:36" json:"comment_id,omitempty"`
	ReportedBy string    `gorm:"not null" json:"reported_by"`
	Reason     string    `gorm:"not null" json:"reason"`
	Details    string    `json:"details,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
