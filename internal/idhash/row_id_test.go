package idhash

import (
	"testing"
	"time"
)

func TestComputeRowIDDeterministic(t *testing.T) {
	anchor := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	id1 := ComputeRowID("inst-1", "historical", anchor)
	id2 := ComputeRowID("inst-1", "historical", anchor)
	if id1 != id2 {
		t.Errorf("same inputs produced different ids: %s vs %s", id1, id2)
	}
	if len(id1) != 64 {
		t.Errorf("expected 64-char hex id, got %d chars", len(id1))
	}
}

func TestComputeRowIDDistinguishesInputs(t *testing.T) {
	anchor := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	base := ComputeRowID("inst-1", "historical", anchor)
	if ComputeRowID("inst-2", "historical", anchor) == base {
		t.Error("different installments should produce different ids")
	}
	if ComputeRowID("inst-1", "live", anchor) == base {
		t.Error("different cohorts should produce different ids")
	}
	if ComputeRowID("inst-1", "historical", anchor.AddDate(0, 0, 1)) == base {
		t.Error("different anchors should produce different ids")
	}
}

func TestComputeRunID(t *testing.T) {
	anchor := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	started := time.Date(2024, 2, 10, 6, 30, 0, 0, time.UTC)

	id1 := ComputeRunID("live", anchor, started)
	id2 := ComputeRunID("live", anchor, started)
	if id1 != id2 {
		t.Errorf("same inputs produced different run ids: %s vs %s", id1, id2)
	}
	if id1 == "" {
		t.Fatal("run id is empty")
	}
	if ComputeRunID("live", anchor, started.Add(time.Nanosecond)) == id1 {
		t.Error("different start times should produce different run ids")
	}
}
