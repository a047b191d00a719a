package public

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/elysian-fields/feedback-services/api/internal/interfaces/http/common"
	publicapp "github.com/elysian-fields/feedback-services/api/internal/public/application"
	"github.com/elysian-fields/feedback-services/api/internal/public/domain"
)

const ticketTimeout = 10 * time.Second

// uploadTicketHandler issues a write capability for the direct upload
// mode: the client PUTs the bytes to the returned URL itself and reports
// the view URL back inside the submission payload.
func (h *Handler) uploadTicketHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req ticketRequest
		decoder := json.NewDecoder(io.LimitReader(r.Body, 4096))
		if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"message": "Malformed request body"})
			return
		}

		if strings.TrimSpace(req.ContentType) == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"message": "contentType is required"})
			return
		}

		if h.tickets == nil {
			h.logger.Error("upload ticket requested but the configured blob backend does not issue tickets")
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"message": common.GenericConfigMessage})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), ticketTimeout)
		defer cancel()

		ticket, err := h.tickets.IssueTicket(ctx, publicapp.TicketRequest{
			Filename:    strings.TrimSpace(req.Filename),
			ContentType: strings.TrimSpace(req.ContentType),
			Kind:        strings.TrimSpace(req.Kind),
		})
		if err != nil {
			var configErr *domain.ConfigError
			if errors.As(err, &configErr) {
				h.logger.Error("upload ticket rejected by configuration", zap.Error(err))
				common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"message": common.GenericConfigMessage})
				return
			}
			h.logger.Error("upload ticket issuance failed", zap.Error(err))
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"message": "Failed to generate upload URL"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, ticketResponse{
			UploadURL:  ticket.UploadURL,
			ViewURL:    ticket.ViewURL,
			ObjectPath: ticket.ObjectPath,
		})
	}
}
