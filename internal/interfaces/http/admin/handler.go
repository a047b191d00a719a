package admin

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	adminapp "github.com/elysian-fields/feedback-services/api/internal/admin/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger            *zap.Logger
	submissionService adminapp.SubmissionQueryService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger            *zap.Logger
	SubmissionService adminapp.SubmissionQueryService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:            cfg.Logger,
		submissionService: cfg.SubmissionService,
	}
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/submissions", h.submissionListHandler())
}
