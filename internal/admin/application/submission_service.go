package application

import (
	"context"

	"github.com/elysian-fields/feedback-services/api/internal/media"
	"github.com/elysian-fields/feedback-services/api/internal/public/domain"
	"go.uber.org/zap"
)

// SubmissionReader is the read port of the record store: a finite,
// newest-first listing that re-reads current state on every call.
type SubmissionReader interface {
	List(ctx context.Context, limit int) ([]domain.Submission, error)
}

// SubmissionQueryService serves the admin review listing.
type SubmissionQueryService interface {
	List(ctx context.Context, limit int) []domain.Submission
}

// NewSubmissionQueryService builds the admin listing service.
func NewSubmissionQueryService(records SubmissionReader, logger *zap.Logger) SubmissionQueryService {
	return &submissionQueryService{records: records, logger: logger}
}

type submissionQueryService struct {
	records SubmissionReader
	logger  *zap.Logger
}

// List returns up to limit submissions, newest first, with every stored
// attachment reference rewritten into a directly viewable URL. Read
// failures are swallowed and logged so a storage outage degrades the admin
// view to an empty listing instead of breaking it.
func (s *submissionQueryService) List(ctx context.Context, limit int) []domain.Submission {
	submissions, err := s.records.List(ctx, limit)
	if err != nil {
		s.logger.Error("submission listing failed; returning empty result", zap.Error(err))
		return []domain.Submission{}
	}

	for i := range submissions {
		submissions[i].BeforeURL = media.ViewURL(submissions[i].BeforeURL)
		submissions[i].AfterURL = media.ViewURL(submissions[i].AfterURL)
	}
	return submissions
}
