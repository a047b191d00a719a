package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/elysian-fields/feedback-services/api/internal/public/domain"
)

func newFakeSheetsService(t *testing.T, handler http.Handler) *sheets.Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	service, err := sheets.NewService(context.Background(),
		option.WithEndpoint(srv.URL), option.WithoutAuthentication())
	require.NoError(t, err)
	return service
}

func valueRangeHandler(rows [][]interface{}) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(&sheets.ValueRange{Values: rows})
	})
}

func sheetRows() [][]interface{} {
	return [][]interface{}{
		{"Timestamp", "Purchase Location", "NPS Score", "Feedback", "Skin Concern", "Email", "Loyalty", "Before", "After"},
		{"2026-08-30T12:00:00Z", "Other", "3", "first appended", "Hydration", "a@example.com", "Yes", "", ""},
		{"2026-08-31T12:00:00Z", "Sephora", "7", "second appended", "Firmness", "b@example.com", "Yes", "", ""},
		{"2026-09-01T12:00:00Z", "ElysianFields.com", "10", "third appended", "Hydration", "c@example.com", "Yes", "", ""},
	}
}

func TestListNewestFirst(t *testing.T) {
	service := newFakeSheetsService(t, valueRangeHandler(sheetRows()))
	repo := NewSubmissionRepository(service, "sheet-id")

	submissions, err := repo.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, submissions, 3, "header row is excluded")

	assert.Equal(t, "c@example.com", submissions[0].EmailAddress, "last appended row comes first")
	assert.Equal(t, "b@example.com", submissions[1].EmailAddress)
	assert.Equal(t, "a@example.com", submissions[2].EmailAddress)
	assert.Equal(t, 10, submissions[0].NPSScore)
}

func TestListTruncatesToLimit(t *testing.T) {
	service := newFakeSheetsService(t, valueRangeHandler(sheetRows()))
	repo := NewSubmissionRepository(service, "sheet-id")

	submissions, err := repo.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, submissions, 2)
	assert.Equal(t, "c@example.com", submissions[0].EmailAddress)
	assert.Equal(t, "b@example.com", submissions[1].EmailAddress)
}

func TestListHeaderOnlySheetIsEmpty(t *testing.T) {
	service := newFakeSheetsService(t, valueRangeHandler(sheetRows()[:1]))
	repo := NewSubmissionRepository(service, "sheet-id")

	submissions, err := repo.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, submissions)
}

func TestAppendSendsSingleRawRow(t *testing.T) {
	var gotQuery url.Values
	var gotBody sheets.ValueRange
	service := newFakeSheetsService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	repo := NewSubmissionRepository(service, "sheet-id")

	err := repo.Append(context.Background(), &domain.Submission{
		Timestamp:        "2026-09-01T12:00:00Z",
		PurchaseLocation: "Sephora",
		NPSScore:         9,
		FeedbackDetail:   "Great",
		SkinConcern:      "Hydration",
		EmailAddress:     "a@example.com",
		JoinedLoyalty:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, "RAW", gotQuery.Get("valueInputOption"))
	require.Len(t, gotBody.Values, 1)
	require.Len(t, gotBody.Values[0], 9)
	assert.Equal(t, "Sephora", gotBody.Values[0][1])
	assert.Equal(t, "Yes", gotBody.Values[0][6])
}

func TestRowFromSubmission(t *testing.T) {
	submission := &domain.Submission{
		Timestamp:        "2026-09-01T12:00:00Z",
		PurchaseLocation: "Bergdorf Goodman",
		NPSScore:         8,
		FeedbackDetail:   "Loved the texture.",
		SkinConcern:      "Fine Lines & Wrinkles",
		EmailAddress:     "customer@example.com",
		JoinedLoyalty:    true,
		BeforeURL:        "https://storage.googleapis.com/b/before.jpg",
		AfterURL:         "",
	}

	row := rowFromSubmission(submission)
	require.Len(t, row, 9)
	assert.Equal(t, "2026-09-01T12:00:00Z", row[0])
	assert.Equal(t, 8, row[2])
	assert.Equal(t, "Yes", row[6])
	assert.Equal(t, "", row[8])

	submission.JoinedLoyalty = false
	assert.Equal(t, "No", rowFromSubmission(submission)[6])
}

func TestSubmissionFromRowRoundTrip(t *testing.T) {
	original := &domain.Submission{
		Timestamp:        "2026-09-01T12:00:00Z",
		PurchaseLocation: "Sephora",
		NPSScore:         10,
		FeedbackDetail:   "Great",
		SkinConcern:      "Hydration",
		EmailAddress:     "a@example.com",
		JoinedLoyalty:    true,
		BeforeURL:        "https://example.com/b.jpg",
		AfterURL:         "https://example.com/a.jpg",
	}

	row := rowFromSubmission(original)
	// Values read back from the API arrive as strings.
	wire := make([]interface{}, len(row))
	for i, v := range row {
		wire[i] = fmt.Sprint(v)
	}

	restored := submissionFromRow(wire)
	assert.Equal(t, *original, restored)
}

func TestSubmissionFromRowToleratesShortRows(t *testing.T) {
	restored := submissionFromRow([]interface{}{"2026-09-01T12:00:00Z", "Other"})
	assert.Equal(t, "Other", restored.PurchaseLocation)
	assert.Zero(t, restored.NPSScore)
	assert.False(t, restored.JoinedLoyalty)
	assert.Empty(t, restored.AfterURL)
}

func TestSubmissionFromRowLoyaltyParsing(t *testing.T) {
	row := []interface{}{"", "", "7", "", "", "", "YES", "", ""}
	assert.True(t, submissionFromRow(row).JoinedLoyalty)

	row[6] = "No"
	assert.False(t, submissionFromRow(row).JoinedLoyalty)
}

func TestAppendWithoutSheetIDFailsFast(t *testing.T) {
	repo := NewSubmissionRepository(nil, "  ")

	err := repo.Append(context.Background(), &domain.Submission{})
	var cfgErr *domain.ConfigError
	require.ErrorAs(t, err, &cfgErr)

	_, err = repo.List(context.Background(), 10)
	require.ErrorAs(t, err, &cfgErr)
}

func TestListZeroLimitShortCircuits(t *testing.T) {
	repo := NewSubmissionRepository(nil, "sheet-id")

	submissions, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, submissions)
}
