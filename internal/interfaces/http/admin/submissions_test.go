package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/elysian-fields/feedback-services/api/internal/public/domain"
)

type stubQueryService struct {
	submissions []domain.Submission
	lastLimit   int
}

func (s *stubQueryService) List(_ context.Context, limit int) []domain.Submission {
	s.lastLimit = limit
	if limit < len(s.submissions) {
		return s.submissions[:limit]
	}
	return s.submissions
}

func newTestRouter(service *stubQueryService) http.Handler {
	router := chi.NewRouter()
	NewHandler(Config{Logger: zap.NewNop(), SubmissionService: service}).Register(router)
	return router
}

func TestSubmissionListResponse(t *testing.T) {
	service := &stubQueryService{submissions: []domain.Submission{
		{
			Timestamp:        "2026-09-01T12:00:00Z",
			PurchaseLocation: "Sephora",
			NPSScore:         9,
			FeedbackDetail:   "Great",
			SkinConcern:      "Hydration",
			EmailAddress:     "newest@example.com",
			JoinedLoyalty:    true,
			BeforeURL:        "https://storage.googleapis.com/b/before.jpg",
		},
		{
			Timestamp:        "2026-08-31T12:00:00Z",
			PurchaseLocation: "Other",
			NPSScore:         3,
			FeedbackDetail:   "Meh",
			SkinConcern:      "Firmness",
			EmailAddress:     "older@example.com",
			JoinedLoyalty:    true,
		},
	}}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/submissions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100, service.lastLimit, "default limit applies")

	var resp struct {
		Items []submissionResponse `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "newest@example.com", resp.Items[0].EmailAddress, "service order is preserved")
	assert.Equal(t, 9, resp.Items[0].NPSScore)
	assert.True(t, resp.Items[0].JoinedLoyalty)
}

func TestSubmissionListLimitQuery(t *testing.T) {
	service := &stubQueryService{submissions: []domain.Submission{
		{EmailAddress: "a@example.com"}, {EmailAddress: "b@example.com"}, {EmailAddress: "c@example.com"},
	}}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/submissions?limit=2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, service.lastLimit)
}

func TestSubmissionListBadLimitFallsBack(t *testing.T) {
	service := &stubQueryService{}
	router := newTestRouter(service)

	for _, query := range []string{"limit=abc", "limit=-5", "limit=0", ""} {
		req := httptest.NewRequest(http.MethodGet, "/submissions?"+query, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 100, service.lastLimit, "query %q", query)
	}
}

func TestSubmissionListEmptyIsItemsArray(t *testing.T) {
	router := newTestRouter(&stubQueryService{})

	req := httptest.NewRequest(http.MethodGet, "/submissions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
}
