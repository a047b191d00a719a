package application

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultUploadGuard bounds the client-visible wait for the proxied
// attachment pair. Expiry abandons the wait only; an in-flight backend
// write may still land afterwards.
const DefaultUploadGuard = 12 * time.Second

// AttachmentService coordinates the proxied upload mode: zero to two
// attachments per submission, uploaded concurrently, the pair raced against
// one wall-clock guard. Attachments are strictly best-effort; a failed or
// timed-out upload leaves its URL empty and never fails the submission.
type AttachmentService struct {
	blobs  BlobStore
	guard  time.Duration
	logger *zap.Logger
}

// NewAttachmentService builds an orchestrator over the configured blob
// store. A non-positive guard falls back to DefaultUploadGuard.
func NewAttachmentService(blobs BlobStore, guard time.Duration, logger *zap.Logger) *AttachmentService {
	if guard <= 0 {
		guard = DefaultUploadGuard
	}
	return &AttachmentService{blobs: blobs, guard: guard, logger: logger}
}

type attachmentResult struct {
	side string
	url  string
}

// Resolve uploads the provided attachments (either may be nil) and returns
// the view URLs, empty where the upload was skipped, failed or outlived the
// guard. Each side is fault-isolated from the other.
func (s *AttachmentService) Resolve(ctx context.Context, before, after *BlobUpload) (beforeURL, afterURL string) {
	if before == nil && after == nil {
		return "", ""
	}

	guardCtx, cancel := context.WithTimeout(ctx, s.guard)
	defer cancel()

	results := make(chan attachmentResult, 2)
	var group errgroup.Group
	if before != nil {
		upload := *before
		group.Go(func() error {
			results <- attachmentResult{side: "before", url: s.uploadOne(guardCtx, "before", upload)}
			return nil
		})
	}
	if after != nil {
		upload := *after
		group.Go(func() error {
			results <- attachmentResult{side: "after", url: s.uploadOne(guardCtx, "after", upload)}
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = group.Wait()
	}()

	select {
	case <-done:
	case <-guardCtx.Done():
		s.logger.Warn("attachment upload guard expired; continuing without pending attachments",
			zap.Duration("guard", s.guard))
	}

	// Collect whatever finished in time. Late results stay in the buffered
	// channel and are dropped with the goroutines.
	for {
		select {
		case res := <-results:
			switch res.side {
			case "before":
				beforeURL = res.url
			case "after":
				afterURL = res.url
			}
		default:
			return beforeURL, afterURL
		}
	}
}

func (s *AttachmentService) uploadOne(ctx context.Context, side string, upload BlobUpload) string {
	url, err := s.blobs.Upload(ctx, upload)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn("attachment upload timed out", zap.String("side", side))
		} else {
			s.logger.Warn("attachment upload failed", zap.String("side", side), zap.Error(err))
		}
		return ""
	}
	return url
}
