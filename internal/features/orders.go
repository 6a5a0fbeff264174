package features

import (
	"time"

	"bnpl-risk-lab/internal/domain"
	"bnpl-risk-lab/internal/window"
)

// AddOrderFeatures appends spend columns over a 30-day order-date window
// and the currency of the row's own order. Counts and sums default to 0 on
// an empty window; averages and extrema stay missing.
func AddOrderFeatures(rows []*domain.FeatureRow, orders []*domain.Order) {
	byID := make(map[string]*domain.Order, len(orders))
	for _, o := range orders {
		byID[o.OrderID] = o
	}

	for _, r := range rows {
		iv := window.Interval{Anchor: r.AnchorDate, Days: OrderWindowDays}
		recent := window.Collect(orders, r.UserID, iv,
			func(o *domain.Order) string { return o.UserID },
			func(o *domain.Order) *time.Time { return o.OrderDate },
		)

		amounts := make([]float64, len(recent))
		for i, o := range recent {
			amounts[i] = o.Amount
		}

		r.TotalOrders30d = len(recent)
		r.AvgOrderAmount30d = window.Mean(amounts)
		r.MaxOrderAmount30d = window.Max(amounts)
		r.SumOrderAmount30d = window.Sum(amounts)

		r.SpendPressureScore = 0.4*log1p(float64(r.TotalOrders30d)) +
			0.6*log1p(orZero(r.MaxOrderAmount30d))

		if o, ok := byID[r.OrderID]; ok {
			r.Currency = o.Currency
		}
	}
}
