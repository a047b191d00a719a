// Package drive implements the shared-drive variant of the blob store.
package drive

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/elysian-fields/feedback-services/api/internal/media"
	"github.com/elysian-fields/feedback-services/api/internal/public/application"
	"github.com/elysian-fields/feedback-services/api/internal/public/domain"
)

// BlobStore uploads attachment bytes through the drive API and shares the
// resulting file with anyone holding the link.
type BlobStore struct {
	service  *drive.Service
	folderID string
	logger   *zap.Logger
}

// NewBlobStore binds the store to an authenticated drive service and an
// optional parent folder.
func NewBlobStore(service *drive.Service, folderID string, logger *zap.Logger) *BlobStore {
	return &BlobStore{service: service, folderID: folderID, logger: logger}
}

// Upload creates the file, grants anyone-with-the-link read access and
// returns the inline-view URL form. The default share-page URL is not used
// because it does not render inline.
func (s *BlobStore) Upload(ctx context.Context, upload application.BlobUpload) (string, error) {
	name := upload.Filename
	if name == "" {
		name = application.NewObjectPath(upload.Kind, "")
	}

	file := &drive.File{
		Name:     name,
		MimeType: upload.ContentType,
	}
	if s.folderID != "" {
		file.Parents = []string{s.folderID}
	}

	created, err := s.service.Files.Create(file).
		Media(upload.Data, googleapi.ContentType(upload.ContentType)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", domain.NewBackendError("drive create file", err)
	}
	if created.Id == "" {
		return "", domain.NewBackendError("drive create file", errNoFileID)
	}

	permission := &drive.Permission{Role: "reader", Type: "anyone"}
	if _, err := s.service.Permissions.Create(created.Id, permission).Context(ctx).Do(); err != nil {
		return "", domain.NewBackendError("drive share file", err)
	}

	s.logger.Debug("attachment stored on shared drive", zap.String("fileId", created.Id))
	return media.DriveInlineURL(created.Id), nil
}

var errNoFileID = errors.New("file creation returned no identifier")
