package domain

import "time"

// User represents a borrower profile.
// Corresponds to the users table in the silver layer.
//
// AccountStatus is the status at snapshot load time, not as of a feature
// row's anchor date. For historical rows a later status can therefore leak
// into an earlier decision; this is a known limitation of the upstream data.
type User struct {
	UserID        string
	SignupDate    *time.Time // nullable, unparseable upstream values become nil
	KYCLevel      string     // none | basic | full
	City          string
	AccountStatus string // active | suspended | blocked | closed
}

// KYC level values.
const (
	KYCLevelNone  = "none"
	KYCLevelBasic = "basic"
	KYCLevelFull  = "full"
)

// Account status values.
const (
	AccountStatusActive    = "active"
	AccountStatusSuspended = "suspended"
	AccountStatusBlocked   = "blocked"
	AccountStatusClosed    = "closed"
)
