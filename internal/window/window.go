// Package window provides the shared lookback-window primitive used by all
// feature assemblers. A window is the half-open interval
// [anchor - days, anchor): the lower bound is inclusive, the anchor itself
// is excluded. An event dated exactly on the anchor is future information
// relative to the decision and must never contribute to a feature.
package window

import "time"

// Interval is one lookback window anchored at a decision moment.
type Interval struct {
	Anchor time.Time
	Days   int
}

// Contains reports whether t falls inside the window.
// Nil-dated events are handled by callers (Collect skips them).
func (iv Interval) Contains(t time.Time) bool {
	lo := iv.Anchor.AddDate(0, 0, -iv.Days)
	return !t.Before(lo) && t.Before(iv.Anchor)
}

// Collect returns the events belonging to entityID whose event date falls
// inside the window. Events with a nil date are skipped: an unparseable
// date cannot be proven to precede the anchor.
func Collect[E any](events []E, entityID string, iv Interval, entityOf func(E) string, dateOf func(E) *time.Time) []E {
	var out []E
	for _, e := range events {
		if entityOf(e) != entityID {
			continue
		}
		d := dateOf(e)
		if d == nil || !iv.Contains(*d) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Count returns the number of in-window events for entityID without
// materializing the subset.
func Count[E any](events []E, entityID string, iv Interval, entityOf func(E) string, dateOf func(E) *time.Time) int {
	n := 0
	for _, e := range events {
		if entityOf(e) != entityID {
			continue
		}
		d := dateOf(e)
		if d != nil && iv.Contains(*d) {
			n++
		}
	}
	return n
}

// Sum reduces values to their total. Empty input sums to 0.
func Sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}

// Mean reduces values to their average, or nil for empty input. "No
// observations" and "average of zero" are different signals and must stay
// distinguishable downstream.
func Mean(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	m := Sum(xs) / float64(len(xs))
	return &m
}

// Max reduces values to their maximum, or nil for empty input.
func Max(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return &m
}

// Rate returns matched/total, or nil when total is 0.
func Rate(matched, total int) *float64 {
	if total == 0 {
		return nil
	}
	r := float64(matched) / float64(total)
	return &r
}
