package idhash

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/mr-tron/base58"
)

// ComputeRunID computes a short id for one feature build, stamped on
// output artifacts and log lines.
// Formula: base58(SHA256(cohort|anchor_date|started_at_ns)[:16])
func ComputeRunID(cohort string, anchorDate, startedAt time.Time) string {
	data := fmt.Sprintf("%s|%s|%d", cohort, anchorDate.UTC().Format("2006-01-02"), startedAt.UTC().UnixNano())
	hash := sha256.Sum256([]byte(data))
	return base58.Encode(hash[:16])
}
