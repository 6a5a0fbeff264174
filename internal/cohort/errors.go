package cohort

import (
	"fmt"

	"bnpl-risk-lab/internal/domain"
)

// EmptyCohortError is returned when a resolver's filter leaves zero rows.
// It carries the filter predicate so "no data at all" can be told apart
// from "wrong date window" at the call site.
type EmptyCohortError struct {
	Cohort    domain.Cohort
	Predicate string
}

func (e *EmptyCohortError) Error() string {
	return fmt.Sprintf("%s cohort is empty after filtering: %s", e.Cohort, e.Predicate)
}

// ContractError is returned when a built feature table violates the output
// contract (zero rows, null anchor dates, non-binary target). It is checked
// before any output is persisted.
type ContractError struct {
	Cohort domain.Cohort
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s output violates contract: %s", e.Cohort, e.Reason)
}
