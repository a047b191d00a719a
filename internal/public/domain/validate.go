package domain

import (
	"math"
	"net/mail"
	"strconv"
	"strings"
)

// SubmissionInput carries the raw scalar fields of a submission before
// validation. NPSScore stays textual because the value may arrive as a JSON
// number or a multipart form string; the validator owns the coercion.
type SubmissionInput struct {
	PurchaseLocation string
	NPSScore         string
	FeedbackDetail   string
	SkinConcern      string
	EmailAddress     string
}

// ValidateSubmission checks every field of the raw input and either returns
// a canonical Submission payload (without server-side stamps) or a
// ValidationError listing all offending fields. It is pure: no backend is
// touched and the input is not mutated.
func ValidateSubmission(input SubmissionInput) (Submission, error) {
	fields := make(map[string]string)

	location := strings.TrimSpace(input.PurchaseLocation)
	if !isMember(location, PurchaseLocations) {
		fields["purchaseLocation"] = "Please select a purchase location"
	}

	score, ok := coerceNPSScore(input.NPSScore)
	if !ok {
		fields["npsScore"] = "NPS score must be a whole number between 0 and 10"
	}

	detail := strings.TrimSpace(input.FeedbackDetail)
	if detail == "" {
		fields["feedbackDetail"] = "Please provide your feedback"
	}

	concern := strings.TrimSpace(input.SkinConcern)
	if !isMember(concern, SkinConcerns) {
		fields["skinConcern"] = "Please select your primary skin concern"
	}

	email, err := normalizeEmail(input.EmailAddress)
	if err != nil {
		fields["emailAddress"] = "Please enter a valid email address"
	}

	if len(fields) > 0 {
		return Submission{}, &ValidationError{Fields: fields}
	}

	return Submission{
		PurchaseLocation: location,
		NPSScore:         score,
		FeedbackDetail:   detail,
		SkinConcern:      concern,
		EmailAddress:     email,
	}, nil
}

func coerceNPSScore(raw string) (int, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	if value != math.Trunc(value) {
		return 0, false
	}
	score := int(value)
	if score < 0 || score > 10 {
		return 0, false
	}
	return score, true
}

func normalizeEmail(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || len(trimmed) > 254 {
		return "", &ValidationError{Fields: map[string]string{"emailAddress": "invalid"}}
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", err
	}
	if addr.Address != trimmed {
		// Reject display-name forms like `Jane <jane@example.com>`.
		return "", &ValidationError{Fields: map[string]string{"emailAddress": "invalid"}}
	}
	return trimmed, nil
}
