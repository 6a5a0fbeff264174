package features

import (
	"time"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/window"
)

// AddFrictionFeatures appends dispute and refund counts over a 90-day
// window plus the combined friction score. Pure counts: an entity with no
// events gets 0, not missing.
func AddFrictionFeatures(rows []*domain.FeatureRow, disputes []*domain.Dispute, refunds []*domain.Refund) {
	for _, r := range rows {
		iv := window.Interval{Anchor: r.AnchorDate, Days: FrictionWindowDays}

		r.DisputeCount90d = window.Count(disputes, r.UserID, iv,
			func(d *domain.Dispute) string { return d.UserID },
			func(d *domain.Dispute) *time.Time { return d.DisputeDate },
		)
		r.RefundCount90d = window.Count(refunds, r.UserID, iv,
			func(rf *domain.Refund) string { return rf.UserID },
			func(rf *domain.Refund) *time.Time { return rf.RefundDate },
		)

		r.ContextFrictionScore = 1.0*float64(r.DisputeCount90d) + 0.5*float64(r.RefundCount90d)
	}
}
