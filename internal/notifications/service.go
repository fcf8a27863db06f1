package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"deckvault/internal/observability"
)

// NotificationService fans moderation events out to the configured Sender
// and the Redis moderation channel. Every method is best-effort: failures
// are logged and swallowed so the originating request never fails because
// an alert could not be delivered.
type NotificationService struct {
	sender   Sender
	notifier *Notifier
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(sender Sender, notifier *Notifier) *NotificationService {
	return &NotificationService{sender: sender, notifier: notifier}
}

type moderationEvent struct {
	Event     string `json:"event"`
	DeckID    string `json:"deck_id"`
	CommentID string `json:"comment_id,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Reporter  string `json:"reporter,omitempty"`
}

// NotifyDeckReported alerts operators that a deck has been reported.
func (s *NotificationService) NotifyDeckReported(ctx context.Context, deckID, reporter, reason, details string) {
	body := fmt.Sprintf("Deck: %s\nReporter: %s\nReason: %s", deckID, reporter, reason)
	if details != "" {
		body += "\nDetails: " + details
	}
	s.deliver(ctx, "Deck reported", body, moderationEvent{
		Event:    "deck_reported",
		DeckID:   deckID,
		Reason:   reason,
		Reporter: reporter,
	})
}

// NotifyCommentReported alerts operators that a comment has been reported.
func (s *NotificationService) NotifyCommentReported(ctx context.Context, deckID, commentID, reporter, reason, details string) {
	body := fmt.Sprintf("Deck: %s\nComment: %s\nReporter: %s\nReason: %s", deckID, commentID, reporter, reason)
	if details != "" {
		body += "\nDetails: " + details
	}
	s.deliver(ctx, "Comment reported", body, moderationEvent{
		Event:     "comment_reported",
		DeckID:    deckID,
		CommentID: commentID,
		Reason:    reason,
		Reporter:  reporter,
	})
}

// NotifyDeckAutoHidden alerts operators that a deck crossed the report
// threshold and was hidden pending review.
func (s *NotificationService) NotifyDeckAutoHidden(ctx context.Context, deckID string, reporterCount int) {
	body := fmt.Sprintf("Deck: %s\nDistinct reporters: %d\nThe deck is hidden pending review.", deckID, reporterCount)
	s.deliver(ctx, "Deck auto-hidden", body, moderationEvent{
		Event:  "deck_auto_hidden",
		DeckID: deckID,
	})
}

// NotifyCommentAutoHidden alerts operators that a comment crossed the
// report threshold and was hidden pending review.
func (s *NotificationService) NotifyCommentAutoHidden(ctx context.Context, deckID, commentID string, reporterCount int) {
	body := fmt.Sprintf("Deck: %s\nComment: %s\nDistinct reporters: %d\nThe comment is hidden pending review.", deckID, commentID, reporterCount)
	s.deliver(ctx, "Comment auto-hidden", body, moderationEvent{
		Event:     "comment_auto_hidden",
		DeckID:    deckID,
		CommentID: commentID,
	})
}

func (s *NotificationService) deliver(ctx context.Context, title, body string, event moderationEvent) {
	if s.sender != nil {
		if err := s.sender.Send(ctx, title, body); err != nil {
			observability.GlobalLogger.WarnContext(ctx, "moderation alert delivery failed",
				slog.String("event", event.Event),
				slog.String("deck_id", event.DeckID),
				slog.String("error", err.Error()),
			)
		}
	}
	if s.notifier != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			return
		}
		if err := s.notifier.PublishModeration(ctx, string(payload)); err != nil {
			observability.GlobalLogger.WarnContext(ctx, "moderation event publish failed",
				slog.String("event", event.Event),
				slog.String("error", err.Error()),
			)
		}
	}
}
