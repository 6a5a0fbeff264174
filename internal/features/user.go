package features

import (
	"math"
	"strings"

	"bnpl-risk-lab/internal/domain"
)

// AddUserFeatures appends point-lookup profile columns: account age, KYC
// tier, account status encoding and the composite trust score. Rows whose
// user is absent from the users table keep the neutral defaults (missing
// age, zero encodings).
func AddUserFeatures(rows []*domain.FeatureRow, users []*domain.User) {
	byID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		byID[u.UserID] = u
	}

	for _, r := range rows {
		u, ok := byID[r.UserID]
		if !ok {
			continue
		}

		r.UserCity = u.City
		r.KYCLevelNum = kycLevelNum(u.KYCLevel)
		r.AccountStatusNum = accountStatusNum(u.AccountStatus)

		// Signup recorded after the anchor is a data-quality signal, not a
		// brand-new account: coerce to missing instead of clamping to 0.
		if u.SignupDate != nil {
			age := math.Floor(r.AnchorDate.Sub(*u.SignupDate).Hours() / 24)
			if age >= 0 {
				r.AccountAgeDays = &age
			}
		}

		r.UserTrustScore = 1.0*boolScore(r.KYCLevelNum >= 1) +
			0.5*boolScore(r.KYCLevelNum >= 2) +
			1.0*boolScore(r.AccountStatusNum > 0) -
			1.0*boolScore(r.AccountStatusNum < 0)
	}
}

func kycLevelNum(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case domain.KYCLevelBasic:
		return 1
	case domain.KYCLevelFull:
		return 2
	default:
		return 0
	}
}

func accountStatusNum(status string) int {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case domain.AccountStatusActive:
		return 1
	case domain.AccountStatusSuspended:
		return -1
	case domain.AccountStatusBlocked, domain.AccountStatusClosed:
		return -2
	default:
		return 0
	}
}
