package domain

import (
	"strconv"
	"time"
)

// Cohort identifies which row selection policy produced a feature row.
type Cohort string

// Cohort values.
const (
	CohortHistorical Cohort = "historical"
	CohortLive       Cohort = "live"
)

// FeatureRow is the output unit: one row per (installment, anchor_date)
// pair. Nullable feature columns use pointers; nil is the explicit missing
// marker and must never be collapsed to 0 (a 0% late rate observed once is
// a different signal from "no history").
//
// The struct is the feature schema: both cohort builders fill the same
// fields through the same assemblers, so train/serve parity is structural.
// Corresponds to the feature_rows table in ClickHouse.
type FeatureRow struct {
	// Provenance
	RowID  string // deterministic hash of (installment_id, anchor_date)
	RunID  string // identifies the build that produced the row
	Cohort Cohort

	// Identifiers
	InstallmentID     string
	OrderID           string
	UserID            string
	MerchantID        string
	InstallmentNumber int
	AnchorDate        time.Time

	// User profile
	AccountAgeDays   *float64 // nil when signup is unknown or recorded after anchor
	KYCLevelNum      int      // none=0 basic=1 full=2
	AccountStatusNum int      // active=1 suspended=-1 blocked/closed=-2 unknown=0
	UserTrustScore   float64
	UserCity         string

	// Repayment history, 90d lookback
	LatePaymentRate90d     *float64
	AvgLateDays90d         *float64
	MaxLateDays90d         *float64
	OnTimePaymentRate90d   *float64
	NumActivePlans         int // live exposure, not windowed
	RepaymentSeverityScore float64
	LoadPressureScore      float64

	// Orders, 30d lookback
	TotalOrders30d     int
	AvgOrderAmount30d  *float64
	MaxOrderAmount30d  *float64
	SumOrderAmount30d  float64
	SpendPressureScore float64
	Currency           string

	// Friction, 90d lookback
	DisputeCount90d      int
	RefundCount90d       int
	ContextFrictionScore float64

	// Checkout funnel, 30d lookback
	CheckoutStart30d       int
	CheckoutSuccess30d     int
	CheckoutAbandon30d     int
	CheckoutAbandonRate30d *float64
	CheckoutFrictionScore  float64

	// Merchant
	MerchantStatusNum      int // active=1 under_review=-1 blocked/closed=-2 unknown=0
	MerchantDisputeRate90d float64
	MerchantRefundRate90d  float64
	MerchantRiskScore      float64
	Category               string
	MerchantCity           string

	// Target, historical cohort only
	IsLate *int
}

// TargetColumn is the name of the training label column.
const TargetColumn = "is_late"

// AnchorDateLayout is the canonical rendering of anchor_date in flat files.
const AnchorDateLayout = "2006-01-02"

// IDColumns lists the identifier columns, in output order.
var IDColumns = []string{
	"installment_id",
	"order_id",
	"user_id",
	"merchant_id",
	"installment_number",
	"anchor_date",
}

// FeatureColumns is the published feature schema, in output order. Training
// and scoring collaborators consume this list as a fixed contract; the
// scoring output differs from the training output only by the absence of
// TargetColumn.
var FeatureColumns = []string{
	// user
	"account_age_days",
	"kyc_level_num",
	"account_status_num",
	"user_trust_score",
	"user_city",
	// repayment
	"late_payment_rate_90d",
	"avg_late_days_90d",
	"max_late_days_90d",
	"on_time_payment_rate_90d",
	"num_active_plans",
	"repayment_severity_score",
	"load_pressure_score",
	// orders
	"total_orders_30d",
	"avg_order_amount_30d",
	"max_order_amount_30d",
	"sum_order_amount_30d",
	"spend_pressure_score",
	"currency",
	// friction
	"dispute_count_90d",
	"refund_count_90d",
	"context_friction_score",
	// checkout
	"checkout_start_30d",
	"checkout_success_30d",
	"checkout_abandon_30d",
	"checkout_abandon_rate_30d",
	"checkout_friction_score",
	// merchant
	"merchant_status_num",
	"merchant_dispute_rate_90d",
	"merchant_refund_rate_90d",
	"merchant_risk_score",
	"category",
	"city_merchant",
}

// IDValues renders the identifier columns in IDColumns order.
func (r *FeatureRow) IDValues() []string {
	return []string{
		r.InstallmentID,
		r.OrderID,
		r.UserID,
		r.MerchantID,
		strconv.Itoa(r.InstallmentNumber),
		r.AnchorDate.Format(AnchorDateLayout),
	}
}

// FeatureValues renders the feature columns in FeatureColumns order.
// Missing values render as the empty string.
func (r *FeatureRow) FeatureValues() []string {
	return []string{
		// user
		fmtFloatPtr(r.AccountAgeDays),
		strconv.Itoa(r.KYCLevelNum),
		strconv.Itoa(r.AccountStatusNum),
		fmtFloat(r.UserTrustScore),
		r.UserCity,
		// repayment
		fmtFloatPtr(r.LatePaymentRate90d),
		fmtFloatPtr(r.AvgLateDays90d),
		fmtFloatPtr(r.MaxLateDays90d),
		fmtFloatPtr(r.OnTimePaymentRate90d),
		strconv.Itoa(r.NumActivePlans),
		fmtFloat(r.RepaymentSeverityScore),
		fmtFloat(r.LoadPressureScore),
		// orders
		strconv.Itoa(r.TotalOrders30d),
		fmtFloatPtr(r.AvgOrderAmount30d),
		fmtFloatPtr(r.MaxOrderAmount30d),
		fmtFloat(r.SumOrderAmount30d),
		fmtFloat(r.SpendPressureScore),
		r.Currency,
		// friction
		strconv.Itoa(r.DisputeCount90d),
		strconv.Itoa(r.RefundCount90d),
		fmtFloat(r.ContextFrictionScore),
		// checkout
		strconv.Itoa(r.CheckoutStart30d),
		strconv.Itoa(r.CheckoutSuccess30d),
		strconv.Itoa(r.CheckoutAbandon30d),
		fmtFloatPtr(r.CheckoutAbandonRate30d),
		fmtFloat(r.CheckoutFrictionScore),
		// merchant
		strconv.Itoa(r.MerchantStatusNum),
		fmtFloat(r.MerchantDisputeRate90d),
		fmtFloat(r.MerchantRefundRate90d),
		fmtFloat(r.MerchantRiskScore),
		r.Category,
		r.MerchantCity,
	}
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func fmtFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return fmtFloat(*v)
}
