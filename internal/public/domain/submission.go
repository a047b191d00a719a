package domain

// Submission is the sole persisted entity: one completed feedback form,
// appended exactly once and never mutated afterwards.
type Submission struct {
	ID               string
	Timestamp        string
	PurchaseLocation string
	NPSScore         int
	FeedbackDetail   string
	SkinConcern      string
	EmailAddress     string
	JoinedLoyalty    bool
	BeforeURL        string
	AfterURL         string
	CreatedAt        int64
}

// PurchaseLocations enumerates the retail channels a customer can pick from.
var PurchaseLocations = []string{
	"ElysianFields.com",
	"Sephora",
	"Bergdorf Goodman",
	"Other",
}

// SkinConcerns enumerates the selectable concern categories.
var SkinConcerns = []string{
	"Hydration",
	"Fine Lines & Wrinkles",
	"Dark Spots & Hyperpigmentation",
	"Firmness",
}

// UploadTicket is the result of issuing a direct-upload capability: a
// short-lived signed PUT URL plus the URL the object will be viewable at.
type UploadTicket struct {
	UploadURL  string
	ViewURL    string
	ObjectPath string
}

func isMember(value string, set []string) bool {
	for _, item := range set {
		if item == value {
			return true
		}
	}
	return false
}
