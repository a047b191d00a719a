// Package sheets implements the spreadsheet variant of the record store:
// one appended row per submission, header row excluded on read.
package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/elysian-fields/feedback-services/api/internal/public/domain"
)

// submissionRange covers the nine persisted columns: timestamp, purchase
// location, NPS score, feedback detail, skin concern, email address,
// loyalty flag, before URL, after URL.
const submissionRange = "Sheet1!A:I"

// SubmissionRepository appends and reads submission rows of one sheet.
// The sheet has no explicit timestamp key; newest-first is defined as
// reverse physical append order.
type SubmissionRepository struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewSubmissionRepository binds the repository to a spreadsheet.
func NewSubmissionRepository(service *sheets.Service, spreadsheetID string) *SubmissionRepository {
	return &SubmissionRepository{service: service, spreadsheetID: strings.TrimSpace(spreadsheetID)}
}

// Append writes one row below the existing data.
func (r *SubmissionRepository) Append(ctx context.Context, submission *domain.Submission) error {
	if r.spreadsheetID == "" {
		return domain.NewConfigError("sheet ID is not configured")
	}

	values := &sheets.ValueRange{Values: [][]interface{}{rowFromSubmission(submission)}}
	_, err := r.service.Spreadsheets.Values.
		Append(r.spreadsheetID, submissionRange, values).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return domain.NewBackendError("sheets append", err)
	}
	return nil
}

// List reads all rows, drops the header, and returns up to limit
// submissions in reverse append order.
func (r *SubmissionRepository) List(ctx context.Context, limit int) ([]domain.Submission, error) {
	if r.spreadsheetID == "" {
		return nil, domain.NewConfigError("sheet ID is not configured")
	}
	if limit <= 0 {
		return []domain.Submission{}, nil
	}

	resp, err := r.service.Spreadsheets.Values.
		Get(r.spreadsheetID, submissionRange).
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, domain.NewBackendError("sheets read", err)
	}

	rows := resp.Values
	if len(rows) <= 1 {
		return []domain.Submission{}, nil
	}

	dataRows := rows[1:]
	submissions := make([]domain.Submission, 0, limit)
	for i := len(dataRows) - 1; i >= 0 && len(submissions) < limit; i-- {
		submissions = append(submissions, submissionFromRow(dataRows[i]))
	}
	return submissions, nil
}

func rowFromSubmission(submission *domain.Submission) []interface{} {
	loyalty := "No"
	if submission.JoinedLoyalty {
		loyalty = "Yes"
	}
	return []interface{}{
		submission.Timestamp,
		submission.PurchaseLocation,
		submission.NPSScore,
		submission.FeedbackDetail,
		submission.SkinConcern,
		submission.EmailAddress,
		loyalty,
		submission.BeforeURL,
		submission.AfterURL,
	}
}

func submissionFromRow(row []interface{}) domain.Submission {
	score, _ := strconv.Atoi(cell(row, 2))
	return domain.Submission{
		Timestamp:        cell(row, 0),
		PurchaseLocation: cell(row, 1),
		NPSScore:         score,
		FeedbackDetail:   cell(row, 3),
		SkinConcern:      cell(row, 4),
		EmailAddress:     cell(row, 5),
		JoinedLoyalty:    strings.EqualFold(cell(row, 6), "yes"),
		BeforeURL:        cell(row, 7),
		AfterURL:         cell(row, 8),
	}
}

func cell(row []interface{}, index int) string {
	if index >= len(row) || row[index] == nil {
		return ""
	}
	if s, ok := row[index].(string); ok {
		return s
	}
	return fmt.Sprint(row[index])
}
