package features

import (
	"strings"
	"time"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/window"
)

// AddMerchantFeatures appends merchant-side columns: status encoding,
// dispute and refund rates normalized by the merchant's own order volume
// in the same 90-day window, and the composite risk score. A merchant with
// no in-window orders gets 0 rates (no volume to dispute against), not
// missing.
func AddMerchantFeatures(
	rows []*domain.FeatureRow,
	merchants []*domain.Merchant,
	disputes []*domain.Dispute,
	refunds []*domain.Refund,
	orders []*domain.Order,
) {
	byID := make(map[string]*domain.Merchant, len(merchants))
	for _, m := range merchants {
		byID[m.MerchantID] = m
	}

	for _, r := range rows {
		if m, ok := byID[r.MerchantID]; ok {
			r.Category = m.Category
			r.MerchantCity = m.City
			r.MerchantStatusNum = merchantStatusNum(m.Status)
		}

		iv := window.Interval{Anchor: r.AnchorDate, Days: MerchantWindowDays}
		orderCount := window.Count(orders, r.MerchantID, iv,
			func(o *domain.Order) string { return o.MerchantID },
			func(o *domain.Order) *time.Time { return o.OrderDate },
		)

		if orderCount > 0 {
			disputeCount := window.Count(disputes, r.MerchantID, iv,
				func(d *domain.Dispute) string { return d.MerchantID },
				func(d *domain.Dispute) *time.Time { return d.DisputeDate },
			)
			refundCount := window.Count(refunds, r.MerchantID, iv,
				func(rf *domain.Refund) string { return rf.MerchantID },
				func(rf *domain.Refund) *time.Time { return rf.RefundDate },
			)
			r.MerchantDisputeRate90d = float64(disputeCount) / float64(orderCount)
			r.MerchantRefundRate90d = float64(refundCount) / float64(orderCount)
		}

		r.MerchantRiskScore = 1.0*boolScore(r.MerchantStatusNum < 0) +
			2.0*r.MerchantDisputeRate90d +
			1.0*r.MerchantRefundRate90d
	}
}

func merchantStatusNum(status string) int {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case domain.MerchantStatusActive:
		return 1
	case domain.MerchantStatusUnderReview:
		return -1
	case domain.MerchantStatusBlocked, domain.MerchantStatusClosed:
		return -2
	default:
		return 0
	}
}
