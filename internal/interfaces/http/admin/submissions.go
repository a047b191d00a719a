package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/elysian-fields/feedback-services/api/internal/interfaces/http/common"
	"github.com/elysian-fields/feedback-services/api/internal/public/domain"
)

const defaultListLimit = 100

// submissionListHandler returns recent submissions, newest first, with
// attachment references already normalized for inline display. The
// listing never fails: a degraded backend yields an empty item list.
func (h *Handler) submissionListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		limit, _ := common.ParsePositiveInt(r.URL.Query().Get("limit"), defaultListLimit)

		submissions := h.submissionService.List(ctx, limit)

		items := make([]submissionResponse, 0, len(submissions))
		for _, submission := range submissions {
			items = append(items, submissionDomainToResponse(submission))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

func submissionDomainToResponse(submission domain.Submission) submissionResponse {
	return submissionResponse{
		Timestamp:        submission.Timestamp,
		PurchaseLocation: submission.PurchaseLocation,
		NPSScore:         submission.NPSScore,
		FeedbackDetail:   submission.FeedbackDetail,
		SkinConcern:      submission.SkinConcern,
		EmailAddress:     submission.EmailAddress,
		JoinedLoyalty:    submission.JoinedLoyalty,
		BeforeURL:        submission.BeforeURL,
		AfterURL:         submission.AfterURL,
	}
}
