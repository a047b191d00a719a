package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubBlobStore scripts an outcome per attachment kind.
type stubBlobStore struct {
	mu      sync.Mutex
	delays  map[string]time.Duration
	errs    map[string]error
	uploads []string
}

func (s *stubBlobStore) Upload(ctx context.Context, upload BlobUpload) (string, error) {
	s.mu.Lock()
	delay := s.delays[upload.Kind]
	err := s.errs[upload.Kind]
	s.uploads = append(s.uploads, upload.Kind)
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", err
	}
	return "https://cdn.example.com/" + upload.Kind + ".jpg", nil
}

func upload(kind string) *BlobUpload {
	return &BlobUpload{
		Kind:        kind,
		Filename:    kind + ".jpg",
		ContentType: "image/jpeg",
		Data:        strings.NewReader("fake bytes"),
	}
}

func TestResolveBothSucceed(t *testing.T) {
	store := &stubBlobStore{}
	service := NewAttachmentService(store, time.Second, zap.NewNop())

	before, after := service.Resolve(context.Background(), upload("before"), upload("after"))

	assert.Equal(t, "https://cdn.example.com/before.jpg", before)
	assert.Equal(t, "https://cdn.example.com/after.jpg", after)
	assert.ElementsMatch(t, []string{"before", "after"}, store.uploads)
}

func TestResolveNoAttachments(t *testing.T) {
	store := &stubBlobStore{}
	service := NewAttachmentService(store, time.Second, zap.NewNop())

	before, after := service.Resolve(context.Background(), nil, nil)

	assert.Empty(t, before)
	assert.Empty(t, after)
	assert.Empty(t, store.uploads, "no backend call without attachments")
}

func TestResolveSingleSide(t *testing.T) {
	store := &stubBlobStore{}
	service := NewAttachmentService(store, time.Second, zap.NewNop())

	before, after := service.Resolve(context.Background(), upload("before"), nil)

	assert.Equal(t, "https://cdn.example.com/before.jpg", before)
	assert.Empty(t, after)
}

func TestResolveFailureIsolated(t *testing.T) {
	store := &stubBlobStore{errs: map[string]error{"before": errors.New("backend exploded")}}
	service := NewAttachmentService(store, time.Second, zap.NewNop())

	before, after := service.Resolve(context.Background(), upload("before"), upload("after"))

	assert.Empty(t, before, "failed side resolves to empty URL")
	assert.Equal(t, "https://cdn.example.com/after.jpg", after, "healthy side is unaffected")
}

func TestResolveGuardExpiry(t *testing.T) {
	store := &stubBlobStore{delays: map[string]time.Duration{"before": 5 * time.Second}}
	service := NewAttachmentService(store, 50*time.Millisecond, zap.NewNop())

	start := time.Now()
	before, after := service.Resolve(context.Background(), upload("before"), upload("after"))

	assert.Empty(t, before, "slow side is abandoned")
	assert.Equal(t, "https://cdn.example.com/after.jpg", after, "fast side still lands")
	require.Less(t, time.Since(start), time.Second, "guard bounds the wait")
}

func TestResolveGuardExpiryBothSlow(t *testing.T) {
	store := &stubBlobStore{delays: map[string]time.Duration{
		"before": 5 * time.Second,
		"after":  5 * time.Second,
	}}
	service := NewAttachmentService(store, 50*time.Millisecond, zap.NewNop())

	before, after := service.Resolve(context.Background(), upload("before"), upload("after"))
	assert.Empty(t, before)
	assert.Empty(t, after)
}

func TestNewAttachmentServiceDefaultGuard(t *testing.T) {
	service := NewAttachmentService(&stubBlobStore{}, 0, zap.NewNop())
	assert.Equal(t, DefaultUploadGuard, service.guard)
}
