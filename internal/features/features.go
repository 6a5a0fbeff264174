// Package features turns a raw-table snapshot into the gold feature table.
// Six domain assemblers append their columns to the growing rows in a
// fixed order; the historical and live cohort builders run the exact same
// sequence, so the feature schema seen at training time and at scoring
// time cannot drift apart.
//
// Every windowed feature reads only events dated strictly before the row's
// anchor date. The one deliberate exception is exposure
// (num_active_plans), which counts obligations still outstanding at the
// anchor with no lookback bound.
package features

import "math"

// Lookback window lengths, in days.
const (
	RepaymentWindowDays = 90
	OrderWindowDays     = 30
	FrictionWindowDays  = 90
	CheckoutWindowDays  = 30
	MerchantWindowDays  = 90
)

// orZero collapses a missing value to 0 for use inside composite score
// formulas. Only scores do this; the underlying feature columns keep nil
// so downstream imputers still see "no history".
func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func log1p(v float64) float64 {
	return math.Log1p(v)
}

func boolScore(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
