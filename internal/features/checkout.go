package features

import (
	"time"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/window"
)

// AddCheckoutFeatures appends checkout-funnel columns over a 30-day window.
// The abandon rate is missing on an empty window; inside a non-empty
// window with no checkout_start events it is 0.
func AddCheckoutFeatures(rows []*domain.FeatureRow, events []*domain.CheckoutEvent) {
	for _, r := range rows {
		iv := window.Interval{Anchor: r.AnchorDate, Days: CheckoutWindowDays}
		recent := window.Collect(events, r.UserID, iv,
			func(e *domain.CheckoutEvent) string { return e.UserID },
			func(e *domain.CheckoutEvent) *time.Time { return e.EventDate },
		)

		for _, e := range recent {
			switch e.EventType {
			case domain.CheckoutStart:
				r.CheckoutStart30d++
			case domain.CheckoutSuccess:
				r.CheckoutSuccess30d++
			case domain.CheckoutAbandon:
				r.CheckoutAbandon30d++
			}
		}

		if len(recent) > 0 {
			if r.CheckoutStart30d > 0 {
				r.CheckoutAbandonRate30d = window.Rate(r.CheckoutAbandon30d, r.CheckoutStart30d)
			} else {
				zero := 0.0
				r.CheckoutAbandonRate30d = &zero
			}
		}

		r.CheckoutFrictionScore = 1.0*log1p(float64(r.CheckoutAbandon30d)) +
			2.0*orZero(r.CheckoutAbandonRate30d)
	}
}
