package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/elysian-fields/feedback-services/api/internal/public/domain"
)

type stubReader struct {
	submissions []domain.Submission
	err         error
	lastLimit   int
}

func (s *stubReader) List(_ context.Context, limit int) ([]domain.Submission, error) {
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.submissions, nil
}

func TestListNormalizesAttachmentURLs(t *testing.T) {
	reader := &stubReader{submissions: []domain.Submission{
		{
			EmailAddress: "a@example.com",
			BeforeURL:    "https://drive.google.com/file/d/1AbCdEfG/view?usp=sharing",
			AfterURL:     "https://storage.googleapis.com/bucket/uploads/after.jpg",
		},
		{EmailAddress: "b@example.com"},
	}}
	service := NewSubmissionQueryService(reader, zap.NewNop())

	submissions := service.List(context.Background(), 25)
	require.Len(t, submissions, 2)
	assert.Equal(t, 25, reader.lastLimit)
	assert.Equal(t, "https://drive.google.com/uc?export=view&id=1AbCdEfG", submissions[0].BeforeURL)
	assert.Equal(t, "https://storage.googleapis.com/bucket/uploads/after.jpg", submissions[0].AfterURL)
	assert.Empty(t, submissions[1].BeforeURL)
}

func TestListSwallowsReadFailures(t *testing.T) {
	reader := &stubReader{err: errors.New("spreadsheet unreachable")}
	service := NewSubmissionQueryService(reader, zap.NewNop())

	submissions := service.List(context.Background(), 10)
	require.NotNil(t, submissions)
	assert.Empty(t, submissions)
}
