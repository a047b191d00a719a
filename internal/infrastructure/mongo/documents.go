package mongo

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/elysian-fields/feedback-services/api/internal/public/domain"
)

// SubmissionDocument is the MongoDB schema for one feedback submission.
// createdAt is the explicit numeric sort key (unix milliseconds); the
// optional URLs are loose pointers and are never validated against the
// blob store.
type SubmissionDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Timestamp        string             `bson:"timestamp"`
	PurchaseLocation string             `bson:"purchaseLocation"`
	NPSScore         int                `bson:"npsScore"`
	FeedbackDetail   string             `bson:"feedbackDetail"`
	SkinConcern      string             `bson:"skinConcern"`
	EmailAddress     string             `bson:"emailAddress"`
	JoinedLoyalty    bool               `bson:"joinedLoyalty"`
	BeforeURL        string             `bson:"beforeUrl,omitempty"`
	AfterURL         string             `bson:"afterUrl,omitempty"`
	CreatedAt        int64              `bson:"createdAt"`
}

func newSubmissionDocument(submission *domain.Submission) SubmissionDocument {
	return SubmissionDocument{
		Timestamp:        submission.Timestamp,
		PurchaseLocation: submission.PurchaseLocation,
		NPSScore:         submission.NPSScore,
		FeedbackDetail:   submission.FeedbackDetail,
		SkinConcern:      submission.SkinConcern,
		EmailAddress:     submission.EmailAddress,
		JoinedLoyalty:    submission.JoinedLoyalty,
		BeforeURL:        submission.BeforeURL,
		AfterURL:         submission.AfterURL,
		CreatedAt:        submission.CreatedAt,
	}
}

func mapSubmissionDocument(doc SubmissionDocument) domain.Submission {
	return domain.Submission{
		ID:               doc.ID.Hex(),
		Timestamp:        doc.Timestamp,
		PurchaseLocation: doc.PurchaseLocation,
		NPSScore:         doc.NPSScore,
		FeedbackDetail:   doc.FeedbackDetail,
		SkinConcern:      doc.SkinConcern,
		EmailAddress:     doc.EmailAddress,
		JoinedLoyalty:    doc.JoinedLoyalty,
		BeforeURL:        doc.BeforeURL,
		AfterURL:         doc.AfterURL,
		CreatedAt:        doc.CreatedAt,
	}
}
