package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/elysian-fields/feedback-services/api/internal/public/domain"
)

// SubmissionRepository persists feedback submissions as documents in a
// single collection. It backs both the public append path and the admin
// listing path.
type SubmissionRepository struct {
	submissions *mongo.Collection
}

// NewSubmissionRepository binds the repository to the configured
// collection. An empty collection name is reported on first use, not here,
// so construction stays infallible like the other adapters.
func NewSubmissionRepository(db *mongo.Database, collection string) *SubmissionRepository {
	if collection == "" {
		return &SubmissionRepository{}
	}
	return &SubmissionRepository{submissions: db.Collection(collection)}
}

// Append writes one immutable submission document.
func (r *SubmissionRepository) Append(ctx context.Context, submission *domain.Submission) error {
	if r.submissions == nil {
		return domain.NewConfigError("submission collection is not configured")
	}

	doc := newSubmissionDocument(submission)
	result, err := r.submissions.InsertOne(ctx, doc)
	if err != nil {
		return domain.NewBackendError("mongo insert submission", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		submission.ID = id.Hex()
	}
	return nil
}

// List returns up to limit submissions ordered by the createdAt key,
// descending. Ties are broken arbitrarily but stably by the cursor.
func (r *SubmissionRepository) List(ctx context.Context, limit int) ([]domain.Submission, error) {
	if r.submissions == nil {
		return nil, domain.NewConfigError("submission collection is not configured")
	}
	if limit <= 0 {
		return []domain.Submission{}, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.submissions.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, domain.NewBackendError("mongo list submissions", err)
	}
	defer cursor.Close(ctx)

	submissions := make([]domain.Submission, 0, limit)
	for cursor.Next(ctx) {
		var doc SubmissionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, domain.NewBackendError("mongo decode submission", err)
		}
		submissions = append(submissions, mapSubmissionDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, domain.NewBackendError("mongo list submissions", err)
	}
	return submissions, nil
}
