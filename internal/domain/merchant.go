package domain

// Merchant represents a merchant profile.
// Corresponds to the merchants table in the silver layer.
type Merchant struct {
	MerchantID   string
	MerchantName string
	Category     string
	City         string
	Status       string // active | under_review | blocked | closed
}

// Merchant status values.
const (
	MerchantStatusActive      = "active"
	MerchantStatusUnderReview = "under_review"
	MerchantStatusBlocked     = "blocked"
	MerchantStatusClosed      = "closed"
)
