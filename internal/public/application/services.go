package application

import (
	"context"
	"io"
	"time"

	"github.com/elysian-fields/feedback-services/api/internal/public/domain"
)

// SubmissionRecorder is the write port of the record store. Append is not
// retried here; at-least-once semantics under client retry are accepted.
type SubmissionRecorder interface {
	Append(ctx context.Context, submission *domain.Submission) error
}

// BlobStore persists attachment bytes and returns a URL the stored blob can
// later be viewed at.
type BlobStore interface {
	Upload(ctx context.Context, upload BlobUpload) (string, error)
}

// TicketIssuer is implemented by blob store backends that support the
// direct upload mode, where bytes travel from the client straight to the
// backend using a signed write capability.
type TicketIssuer interface {
	IssueTicket(ctx context.Context, req TicketRequest) (domain.UploadTicket, error)
}

// BlobUpload carries one attachment through the proxied upload path.
type BlobUpload struct {
	Kind        string
	Filename    string
	ContentType string
	Data        io.Reader
}

// TicketRequest describes the object a client wants to upload directly.
type TicketRequest struct {
	Filename    string
	ContentType string
	Kind        string
}

// SubmissionCommandService handles the intake use-case.
type SubmissionCommandService interface {
	Submit(ctx context.Context, cmd SubmitSubmissionCommand) (*domain.Submission, error)
}

// SubmitSubmissionCommand captures anonymous form input together with the
// attachment URLs the orchestrator already resolved (either may be empty).
type SubmitSubmissionCommand struct {
	Input     domain.SubmissionInput
	BeforeURL string
	AfterURL  string
}

// NewSubmissionCommandService wires the command service to a record store.
func NewSubmissionCommandService(records SubmissionRecorder) SubmissionCommandService {
	return &submissionCommandService{records: records}
}

type submissionCommandService struct {
	records SubmissionRecorder
}

// Submit validates the raw input, stamps the server-side fields and appends
// one immutable record. Validation failures never reach the record store.
func (s *submissionCommandService) Submit(ctx context.Context, cmd SubmitSubmissionCommand) (*domain.Submission, error) {
	submission, err := domain.ValidateSubmission(cmd.Input)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	submission.Timestamp = now.Format(time.RFC3339)
	submission.CreatedAt = now.UnixMilli()
	// Submitting the form is itself the loyalty opt-in.
	submission.JoinedLoyalty = true
	submission.BeforeURL = cmd.BeforeURL
	submission.AfterURL = cmd.AfterURL

	if err := s.records.Append(ctx, &submission); err != nil {
		return nil, err
	}
	return &submission, nil
}
