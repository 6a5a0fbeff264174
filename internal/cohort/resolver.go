// Package cohort selects the installments a feature build runs over and
// stamps each one with its anchor date: the decision moment before which
// all features must be observed. Two policies exist. Historical anchors at
// the obligation's own due date and is restricted to resolved (labeled)
// installments; live anchors at the scoring run's date and is restricted to
// unresolved installments not yet due. The anchor is a per-row attribute,
// never a dataset-wide constant.
package cohort

import (
	"fmt"
	"strings"
	"time"

	"bnpl-risk-lab/internal/domain"
)

// Member is one selected installment with its resolved anchor date.
// IsLate is set for historical members only.
type Member struct {
	Installment *domain.Installment
	AnchorDate  time.Time
	IsLate      *int
}

const historicalPredicate = "due_date IS NOT NULL AND status IN ('paid', 'late')"

// ResolveHistorical selects the labeled training cohort: installments with
// a known due date whose outcome is already resolved. The anchor is the
// due date and the binary target is derived from late_days (authoritative
// column when present, else paid_date - due_date; unknown lateness counts
// as on-time). Unresolved installments stay out of the cohort but remain
// history inputs for the assemblers.
func ResolveHistorical(installments []*domain.Installment) ([]*Member, error) {
	var members []*Member
	for _, inst := range installments {
		if inst.DueDate == nil {
			continue
		}
		status := normalizeStatus(inst.Status)
		if status != domain.InstallmentStatusPaid && status != domain.InstallmentStatusLate {
			continue
		}

		isLate := 0
		if lateDays, ok := inst.LateDaysFinal(); ok && lateDays > 0 {
			isLate = 1
		}

		members = append(members, &Member{
			Installment: inst,
			AnchorDate:  *inst.DueDate,
			IsLate:      &isLate,
		})
	}

	if len(members) == 0 {
		return nil, &EmptyCohortError{Cohort: domain.CohortHistorical, Predicate: historicalPredicate}
	}
	return members, nil
}

// ResolveLive selects the daily scoring cohort: unresolved installments
// that are not yet overdue at the scoring date. Every member is anchored at
// the scoring date, which must be supplied by the caller; nothing in the
// engine reads an ambient clock.
func ResolveLive(installments []*domain.Installment, scoringDate time.Time) ([]*Member, error) {
	var members []*Member
	for _, inst := range installments {
		if inst.DueDate == nil {
			continue
		}
		if !isUnresolved(inst.Status) {
			continue
		}
		if inst.DueDate.Before(scoringDate) {
			continue
		}

		members = append(members, &Member{
			Installment: inst,
			AnchorDate:  scoringDate,
		})
	}

	if len(members) == 0 {
		return nil, &EmptyCohortError{
			Cohort:    domain.CohortLive,
			Predicate: fmt.Sprintf("status = 'due' AND due_date >= %s", scoringDate.Format(domain.AnchorDateLayout)),
		}
	}
	return members, nil
}

// isUnresolved accepts both the canonical "due" and the upstream "unpaid"
// spelling.
func isUnresolved(status string) bool {
	s := normalizeStatus(status)
	return s == domain.InstallmentStatusDue || s == domain.InstallmentStatusUnpaid
}

func normalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
