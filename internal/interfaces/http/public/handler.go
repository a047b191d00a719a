package public

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	mongodoc "github.com/elysian-fields/feedback-services/api/internal/infrastructure/mongo"
	publicapp "github.com/elysian-fields/feedback-services/api/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger             *zap.Logger
	submissionCommands publicapp.SubmissionCommandService
	attachments        *publicapp.AttachmentService
	tickets            publicapp.TicketIssuer
	media              *mongodoc.GridFSBlobStore
}

// Config defines dependencies required by Handler. Attachments is nil when
// the configured blob backend only supports the direct ticket flow;
// Tickets is nil when it only supports the proxied flow; Media is nil
// unless blobs live in the document database.
type Config struct {
	Logger             *zap.Logger
	SubmissionCommands publicapp.SubmissionCommandService
	Attachments        *publicapp.AttachmentService
	Tickets            publicapp.TicketIssuer
	Media              *mongodoc.GridFSBlobStore
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:             cfg.Logger,
		submissionCommands: cfg.SubmissionCommands,
		attachments:        cfg.Attachments,
		tickets:            cfg.Tickets,
		media:              cfg.Media,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/submissions", h.submissionCreateHandler())
	r.Post("/uploads/tickets", h.uploadTicketHandler())
	if h.media != nil {
		r.Get("/media/{id}", h.mediaHandler())
	}
}
