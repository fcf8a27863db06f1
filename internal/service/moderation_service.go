package service

import (
	"context"

	"deckvault/internal/models"
	"deckvault/internal/observability"
	"deckvault/internal/repository"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// AutoHideThreshold is the number of distinct reporters at which a target
// is hidden pending review.
const AutoHideThreshold = 5

// ModerationNotifier receives moderation events. Delivery is best-effort;
// implementations must not return errors that should fail the report.
type ModerationNotifier interface {
	NotifyDeckReported(ctx context.Context, deckID, reporter, reason, details string)
	NotifyCommentReported(ctx context.Context, deckID, commentID, reporter, reason, details string)
	NotifyDeckAutoHidden(ctx context.Context, deckID string, reporterCount int)
	NotifyCommentAutoHidden(ctx context.Context, deckID, commentID string, reporterCount int)
}

// ModerationService records reports and applies the auto-hide policy.
// Reports are always recorded first; escalation runs afterwards, so a
// failed escalation never loses the report.
type ModerationService struct {
	reportRepo  repository.ReportRepository
	deckRepo    repository.DeckRepository
	commentRepo repository.CommentRepository
	notifier    ModerationNotifier
}

// NewModerationService creates a ModerationService.
func NewModerationService(
	reportRepo repository.ReportRepository,
	deckRepo repository.DeckRepository,
	commentRepo repository.CommentRepository,
	notifier ModerationNotifier,
) *ModerationService {
	return &ModerationService{
		reportRepo:  reportRepo,
		deckRepo:    deckRepo,
		commentRepo: commentRepo,
		notifier:    notifier,
	}
}

// ReportDeck files a report against a deck. When the distinct reporter
// count reaches the threshold, the deck and its comments are soft-deleted.
// Decks that are already hidden take the report but are not re-escalated.
func (s *ModerationService) ReportDeck(ctx context.Context, deckID, reporterUID, reason, details string) (*models.DeckReport, error) {
	span, ctx := observability.NewSpan(ctx, "ModerationService.ReportDeck")
	defer span.End()
	span.AddAttributes(attribute.String("deck.id", deckID))

	report, err := s.reportDeck(ctx, deckID, reporterUID, reason, details)
	if err != nil {
		span.SetError(err)
	}
	return report, err
}

func (s *ModerationService) reportDeck(ctx context.Context, deckID, reporterUID, reason, details string) (*models.DeckReport, error) {
	if !models.ValidReportReason(reason) {
		return nil, models.NewValidationError("Invalid report reason")
	}

	deck, err := s.deckRepo.GetByIDAny(ctx, deckID)
	if err != nil {
		return nil, err
	}
	if deck.UserID == reporterUID {
		return nil, models.NewValidationError("You cannot report your own deck")
	}

	report := &models.DeckReport{
		ID:         uuid.NewString(),
		DeckID:     deckID,
		ReportedBy: reporterUID,
		Reason:     reason,
		Details:    details,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	observability.RecordReport("deck", reason)
	s.notifier.NotifyDeckReported(ctx, deckID, reporterUID, reason, details)

	count, err := s.reportRepo.CountDistinctDeckReporters(ctx, deckID)
	if err != nil {
		// The report is stored; escalation will catch up on the next one.
		return report, nil
	}
	if count >= AutoHideThreshold && !deck.IsDeleted {
		if err := s.deckRepo.Hide(ctx, deckID); err == nil {
			observability.RecordEscalation("deck")
			s.notifier.NotifyDeckAutoHidden(ctx, deckID, count)
		}
	}

	return report, nil
}

// ReportComment files a report against a comment. Hidden comments still
// accept reports so the audit trail stays complete, but they are not
// re-escalated.
func (s *ModerationService) ReportComment(ctx context.Context, deckID, commentID, reporterUID, reason, details string) (*models.DeckReport, error) {
	span, ctx := observability.NewSpan(ctx, "ModerationService.ReportComment")
	defer span.End()
	span.AddAttributes(
		attribute.String("deck.id", deckID),
		attribute.String("comment.id", commentID),
	)

	report, err := s.reportComment(ctx, deckID, commentID, reporterUID, reason, details)
	if err != nil {
		span.SetError(err)
	}
	return report, err
}

func (s *ModerationService) reportComment(ctx context.Context, deckID, commentID, reporterUID, reason, details string) (*models.DeckReport, error) {
	if !models.ValidReportReason(reason) {
		return nil, models.NewValidationError("Invalid report reason")
	}

	comment, err := s.commentRepo.GetByIDAny(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.DeckID != deckID {
		return nil, models.NewNotFoundError("Comment", commentID)
	}
	if comment.UserID == reporterUID {
		return nil, models.NewValidationError("You cannot report your own comment")
	}

	report := &models.DeckReport{
		ID:         uuid.NewString(),
		DeckID:     deckID,
		CommentID:  commentID,
		ReportedBy: reporterUID,
		Reason:     reason,
		Details:    details,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	observability.RecordReport("comment", reason)
	s.notifier.NotifyCommentReported(ctx, deckID, commentID, reporterUID, reason, details)

	count, err := s.reportRepo.CountDistinctCommentReporters(ctx, commentID)
	if err != nil {
		return report, nil
	}
	if count >= AutoHideThreshold && !comment.IsDeleted {
		if err := s.commentRepo.SoftDelete(ctx, commentID); err == nil {
			observability.RecordEscalation("comment")
			s.notifier.NotifyCommentAutoHidden(ctx, deckID, commentID, count)
		}
	}

	return report, nil
}
