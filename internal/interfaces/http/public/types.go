package public

import "strings"

// submitRequest is the JSON body of the intake endpoint. NPSScore tolerates
// both a bare number and a quoted string; the validator owns the coercion
// and range check either way.
type submitRequest struct {
	PurchaseLocation string        `json:"purchaseLocation"`
	NPSScore         npsScoreField `json:"npsScore"`
	FeedbackDetail   string        `json:"feedbackDetail"`
	SkinConcern      string        `json:"skinConcern"`
	EmailAddress     string        `json:"emailAddress"`
	BeforeURL        string        `json:"beforeUrl,omitempty"`
	AfterURL         string        `json:"afterUrl,omitempty"`
}

// npsScoreField keeps the raw token textual. Non-scalar JSON becomes text
// the validator rejects, so a malformed score is a field error rather than
// a decode failure.
type npsScoreField string

func (f *npsScoreField) UnmarshalJSON(data []byte) error {
	value := strings.TrimSpace(string(data))
	value = strings.Trim(value, `"`)
	if value == "null" {
		value = ""
	}
	*f = npsScoreField(value)
	return nil
}

type submitResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type ticketRequest struct {
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"contentType"`
	Kind        string `json:"kind,omitempty"`
}

type ticketResponse struct {
	UploadURL  string `json:"uploadUrl"`
	ViewURL    string `json:"viewUrl"`
	ObjectPath string `json:"objectPath"`
}
