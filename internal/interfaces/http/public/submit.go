package public

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/elysian-fields/feedback-services/api/internal/interfaces/http/common"
	publicapp "github.com/elysian-fields/feedback-services/api/internal/public/application"
	"github.com/elysian-fields/feedback-services/api/internal/public/domain"
)

const (
	maxSubmissionBody  = 1 << 20
	maxMultipartBody   = 24 << 20
	maxMultipartMemory = 16 << 20
	submitTimeout      = 15 * time.Second
)

// submissionCreateHandler accepts a feedback submission as either a JSON
// body (attachment URLs pre-resolved via the direct ticket flow) or a
// multipart form (raw photo bytes proxied through this server).
func (h *Handler) submissionCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), submitTimeout)
		defer cancel()

		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			mediaType = ""
		}

		var cmd publicapp.SubmitSubmissionCommand
		if mediaType == "multipart/form-data" {
			if h.attachments == nil {
				// The direct-signed-URL backend never proxies bytes
				// through this process.
				common.WriteJSON(h.logger, w, http.StatusRequestEntityTooLarge, submitResponse{
					Success: false,
					Message: "Multipart uploads are no longer supported. Please update the client.",
				})
				return
			}
			cmd, err = h.decodeMultipartSubmission(ctx, w, r)
		} else {
			cmd, err = decodeJSONSubmission(r)
		}
		if err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, submitResponse{
				Success: false,
				Message: fmt.Sprintf("Malformed request: %v", err),
			})
			return
		}

		submission, err := h.submissionCommands.Submit(ctx, cmd)
		if err != nil {
			h.writeSubmitError(w, err)
			return
		}

		h.logger.Info("submission recorded",
			zap.String("purchaseLocation", submission.PurchaseLocation),
			zap.Int("npsScore", submission.NPSScore),
			zap.Bool("hasBefore", submission.BeforeURL != ""),
			zap.Bool("hasAfter", submission.AfterURL != ""))
		common.WriteJSON(h.logger, w, http.StatusOK, submitResponse{
			Success: true,
			Message: "Thank you for your feedback!",
		})
	}
}

func decodeJSONSubmission(r *http.Request) (publicapp.SubmitSubmissionCommand, error) {
	defer r.Body.Close()

	var req submitRequest
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxSubmissionBody))
	if err := decoder.Decode(&req); err != nil {
		return publicapp.SubmitSubmissionCommand{}, err
	}

	return publicapp.SubmitSubmissionCommand{
		Input: domain.SubmissionInput{
			PurchaseLocation: req.PurchaseLocation,
			NPSScore:         string(req.NPSScore),
			FeedbackDetail:   req.FeedbackDetail,
			SkinConcern:      req.SkinConcern,
			EmailAddress:     req.EmailAddress,
		},
		BeforeURL: strings.TrimSpace(req.BeforeURL),
		AfterURL:  strings.TrimSpace(req.AfterURL),
	}, nil
}

// decodeMultipartSubmission extracts the scalar fields and hands the photo
// parts to the orchestrator. Attachment failures never fail the request.
func (h *Handler) decodeMultipartSubmission(ctx context.Context, w http.ResponseWriter, r *http.Request) (publicapp.SubmitSubmissionCommand, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBody)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return publicapp.SubmitSubmissionCommand{}, err
	}

	before, closeBefore := formPhoto(r, "beforePhoto", "before")
	after, closeAfter := formPhoto(r, "afterPhoto", "after")
	defer closeBefore()
	defer closeAfter()

	beforeURL, afterURL := h.attachments.Resolve(ctx, before, after)

	return publicapp.SubmitSubmissionCommand{
		Input: domain.SubmissionInput{
			PurchaseLocation: r.FormValue("purchaseLocation"),
			NPSScore:         r.FormValue("npsScore"),
			FeedbackDetail:   r.FormValue("feedbackDetail"),
			SkinConcern:      r.FormValue("skinConcern"),
			EmailAddress:     r.FormValue("emailAddress"),
		},
		BeforeURL: beforeURL,
		AfterURL:  afterURL,
	}, nil
}

func formPhoto(r *http.Request, field, kind string) (*publicapp.BlobUpload, func()) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, func() {}
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	upload := &publicapp.BlobUpload{
		Kind:        kind,
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        file,
	}
	return upload, func() { _ = file.Close() }
}

func (h *Handler) writeSubmitError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		common.WriteJSON(h.logger, w, http.StatusBadRequest, submitResponse{
			Success: false,
			Message: validationErr.Error(),
			Fields:  validationErr.Fields,
		})
		return
	}

	var configErr *domain.ConfigError
	if errors.As(err, &configErr) {
		h.logger.Error("submission rejected by configuration", zap.Error(err))
		common.WriteJSON(h.logger, w, http.StatusBadRequest, submitResponse{
			Success: false,
			Message: common.GenericConfigMessage,
		})
		return
	}

	var backendErr *domain.BackendError
	if errors.As(err, &backendErr) {
		h.logger.Error("submission append failed", zap.Error(err))
		common.WriteJSON(h.logger, w, http.StatusBadRequest, submitResponse{
			Success: false,
			Message: common.ScrubCredentialHints(backendErr.Error()),
		})
		return
	}

	h.logger.Error("submission failed", zap.Error(err))
	common.WriteJSON(h.logger, w, http.StatusInternalServerError, submitResponse{
		Success: false,
		Message: "Internal server error",
	})
}
