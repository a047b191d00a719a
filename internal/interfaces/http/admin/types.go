package admin

type submissionResponse struct {
	Timestamp        string `json:"timestamp"`
	PurchaseLocation string `json:"purchaseLocation"`
	NPSScore         int    `json:"npsScore"`
	FeedbackDetail   string `json:"feedbackDetail"`
	SkinConcern      string `json:"skinConcern"`
	EmailAddress     string `json:"emailAddress"`
	JoinedLoyalty    bool   `json:"joinedLoyalty"`
	BeforeURL        string `json:"beforeUrl,omitempty"`
	AfterURL         string `json:"afterUrl,omitempty"`
}
