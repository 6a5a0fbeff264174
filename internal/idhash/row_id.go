// Package idhash computes deterministic identifiers for feature rows and
// build runs. Row ids are stable across re-runs of the same snapshot so
// downstream stores can deduplicate; run ids identify one build.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ComputeRowID computes a deterministic row id using SHA256.
// Formula: SHA256(installment_id|cohort|anchor_date)
// Returns hex-encoded hash (64 characters).
func ComputeRowID(installmentID, cohort string, anchorDate time.Time) string {
	data := fmt.Sprintf("%s|%s|%s", installmentID, cohort, anchorDate.UTC().Format("2006-01-02"))
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
