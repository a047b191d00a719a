// Package gcs implements the direct-signed-URL variant of the blob store.
// Attachment bytes travel straight between the client and the bucket; this
// process only mints write capabilities and computes view URLs.
package gcs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"

	"github.com/elysian-fields/feedback-services/api/internal/public/application"
	"github.com/elysian-fields/feedback-services/api/internal/public/domain"
)

const (
	// uploadURLTTL bounds how long an issued write capability stays valid.
	uploadURLTTL = 10 * time.Minute
	// viewURLTTL is the read-capability lifetime on private buckets.
	viewURLTTL = 7 * 24 * time.Hour

	objectCacheControl = "public, max-age=31536000, immutable"
)

// Config carries the credential material and bucket identity.
type Config struct {
	Bucket      string
	ClientEmail string
	PrivateKey  []byte
	PublicRead  bool
}

// BlobStore issues upload tickets and, for completeness, supports the
// proxied byte path against the same bucket.
type BlobStore struct {
	client *storage.Client
	cfg    Config
	logger *zap.Logger
}

// NewBlobStore wraps an authenticated storage client. The client is built
// once at process start and reused for the process lifetime.
func NewBlobStore(client *storage.Client, cfg Config, logger *zap.Logger) *BlobStore {
	return &BlobStore{client: client, cfg: cfg, logger: logger}
}

// IssueTicket generates a unique object path, signs a write URL scoped to
// that exact path and content type, and computes the eventual view URL.
func (s *BlobStore) IssueTicket(ctx context.Context, req application.TicketRequest) (domain.UploadTicket, error) {
	if err := s.checkConfig(); err != nil {
		return domain.UploadTicket{}, err
	}
	if _, err := s.client.Bucket(s.cfg.Bucket).Attrs(ctx); err != nil {
		return domain.UploadTicket{}, domain.NewBackendError(fmt.Sprintf("bucket %s not found", s.cfg.Bucket), err)
	}

	objectPath := application.NewObjectPath(req.Kind, req.Filename)
	uploadURL, err := storage.SignedURL(s.cfg.Bucket, objectPath, &storage.SignedURLOptions{
		GoogleAccessID: s.cfg.ClientEmail,
		PrivateKey:     s.cfg.PrivateKey,
		Scheme:         storage.SigningSchemeV4,
		Method:         http.MethodPut,
		Expires:        time.Now().Add(uploadURLTTL),
		ContentType:    req.ContentType,
	})
	if err != nil {
		return domain.UploadTicket{}, domain.NewBackendError("sign upload url", err)
	}

	viewURL, err := s.viewURL(objectPath)
	if err != nil {
		return domain.UploadTicket{}, err
	}

	return domain.UploadTicket{
		UploadURL:  uploadURL,
		ViewURL:    viewURL,
		ObjectPath: objectPath,
	}, nil
}

// Upload writes the bytes server-side and returns the view URL. No request
// path reaches this when the signed-URL backend is configured, since the
// intake handler rejects multipart bodies outright in that mode; it exists
// for parity with the other blob store variants and for offline tooling.
func (s *BlobStore) Upload(ctx context.Context, upload application.BlobUpload) (string, error) {
	if err := s.checkConfig(); err != nil {
		return "", err
	}

	objectPath := application.NewObjectPath(upload.Kind, upload.Filename)
	writer := s.client.Bucket(s.cfg.Bucket).Object(objectPath).NewWriter(ctx)
	writer.ContentType = upload.ContentType
	writer.CacheControl = objectCacheControl
	if _, err := io.Copy(writer, upload.Data); err != nil {
		writer.Close()
		return "", domain.NewBackendError("write object", err)
	}
	if err := writer.Close(); err != nil {
		return "", domain.NewBackendError("write object", err)
	}

	return s.viewURL(objectPath)
}

// viewURL is a deterministic public path when the bucket is world-readable
// and a long-lived signed read capability otherwise.
func (s *BlobStore) viewURL(objectPath string) (string, error) {
	if s.cfg.PublicRead {
		return publicObjectURL(s.cfg.Bucket, objectPath), nil
	}

	signed, err := storage.SignedURL(s.cfg.Bucket, objectPath, &storage.SignedURLOptions{
		GoogleAccessID: s.cfg.ClientEmail,
		PrivateKey:     s.cfg.PrivateKey,
		Scheme:         storage.SigningSchemeV4,
		Method:         http.MethodGet,
		Expires:        time.Now().Add(viewURLTTL),
	})
	if err != nil {
		return "", domain.NewBackendError("sign view url", err)
	}
	return signed, nil
}

func (s *BlobStore) checkConfig() error {
	if s.cfg.Bucket == "" {
		return domain.NewConfigError("bucket name is not set")
	}
	if s.cfg.ClientEmail == "" || len(s.cfg.PrivateKey) == 0 {
		return domain.NewConfigError("storage credentials are not set")
	}
	return nil
}

func publicObjectURL(bucket, objectPath string) string {
	segments := strings.Split(objectPath, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, strings.Join(segments, "/"))
}
