package mongo

import (
	"context"
	"io"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/elysian-fields/feedback-services/api/internal/public/application"
	"github.com/elysian-fields/feedback-services/api/internal/public/domain"
)

// GridFSBlobStore keeps attachment bytes in the same database the
// submission records live in. View URLs point back at this service's
// /media/{id} route, which streams the stored file.
type GridFSBlobStore struct {
	bucket        *gridfs.Bucket
	files         *mongo.Collection
	publicBaseURL string
	logger        *zap.Logger
}

// NewGridFSBlobStore builds the document-database file-storage variant.
func NewGridFSBlobStore(db *mongo.Database, publicBaseURL string, logger *zap.Logger) (*GridFSBlobStore, error) {
	bucket, err := gridfs.NewBucket(db)
	if err != nil {
		return nil, domain.NewBackendError("gridfs bucket", err)
	}
	return &GridFSBlobStore{
		bucket:        bucket,
		files:         db.Collection("fs.files"),
		publicBaseURL: strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
		logger:        logger,
	}, nil
}

// Upload stores the attachment bytes and returns the view URL. After the
// write it re-reads the file document to recover the canonical identity;
// if that lookup fails the URL is constructed deterministically from the
// upload result instead of failing the whole submission.
func (s *GridFSBlobStore) Upload(ctx context.Context, upload application.BlobUpload) (string, error) {
	name := application.NewObjectPath(upload.Kind, upload.Filename)

	uploadOpts := options.GridFSUpload().SetMetadata(bson.M{"contentType": upload.ContentType})
	fileID, err := s.bucket.UploadFromStream(name, upload.Data, uploadOpts)
	if err != nil {
		return "", domain.NewBackendError("gridfs upload", err)
	}

	var doc struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := s.files.FindOne(ctx, bson.M{"_id": fileID}).Decode(&doc); err != nil {
		s.logger.Warn("stored file metadata lookup failed; using constructed URL",
			zap.String("path", name), zap.Error(err))
		return s.viewURL(fileID), nil
	}
	return s.viewURL(doc.ID), nil
}

// Open returns a read stream plus content type for a stored file.
func (s *GridFSBlobStore) Open(id string) (io.ReadCloser, string, error) {
	fileID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, "", err
	}

	stream, err := s.bucket.OpenDownloadStream(fileID)
	if err != nil {
		return nil, "", domain.NewBackendError("gridfs open", err)
	}

	contentType := "application/octet-stream"
	if file := stream.GetFile(); file != nil && len(file.Metadata) > 0 {
		var meta struct {
			ContentType string `bson:"contentType"`
		}
		if err := bson.Unmarshal(file.Metadata, &meta); err == nil && meta.ContentType != "" {
			contentType = meta.ContentType
		}
	}
	return stream, contentType, nil
}

func (s *GridFSBlobStore) viewURL(fileID primitive.ObjectID) string {
	return s.publicBaseURL + "/media/" + fileID.Hex()
}
