package services

import (
	"testing"
	"time"

	"backend/internal/domain/models"
)

func TestCompensatorRetriesUntilSuccess(t *testing.T) {
	rel := &flakyReleaser{failures: 2}
	comp := NewCompensator(rel)
	comp.MaxRetries = 5
	comp.Backoff = time.Millisecond
	defer comp.Close()

	key := models.InventoryKey{TrainNumber: "T100", JourneyDate: "2024-05-01", ClassType: "SL"}
	comp.Enqueue(key, 2)
	comp.Flush()

	if rel.calls != 3 {
		t.Fatalf("expected 2 failures then success, got %d calls", rel.calls)
	}
	if rel.released[key] != 2 {
		t.Fatalf("expected 2 seats released, got %d", rel.released[key])
	}
}

func TestCompensatorGivesUpAfterMaxRetries(t *testing.T) {
	rel := &flakyReleaser{failures: 100}
	comp := NewCompensator(rel)
	comp.MaxRetries = 3
	comp.Backoff = time.Millisecond
	defer comp.Close()

	key := models.InventoryKey{TrainNumber: "T100", JourneyDate: "2024-05-01", ClassType: "SL"}
	comp.Enqueue(key, 1)
	comp.Flush()

	if rel.calls != 3 {
		t.Fatalf("retries must be bounded at 3, got %d calls", rel.calls)
	}
	if len(rel.released) != 0 {
		t.Fatalf("nothing should have been released, got %v", rel.released)
	}
}

func TestCompensatorEnqueueAfterCloseDropsTask(t *testing.T) {
	rel := &flakyReleaser{}
	comp := NewCompensator(rel)
	comp.Close()

	key := models.InventoryKey{TrainNumber: "T100", JourneyDate: "2024-05-01", ClassType: "SL"}
	comp.Enqueue(key, 2)

	// Must return immediately: the dropped task never joined the wait group.
	comp.Flush()

	if rel.calls != 0 {
		t.Fatalf("closed compensator must not touch the ledger, got %d calls", rel.calls)
	}
}

func TestCompensatorProcessesQueuedTasksInOrder(t *testing.T) {
	rel := &flakyReleaser{}
	comp := NewCompensator(rel)
	comp.Backoff = time.Millisecond
	defer comp.Close()

	k1 := models.InventoryKey{TrainNumber: "T100", JourneyDate: "2024-05-01", ClassType: "SL"}
	k2 := models.InventoryKey{TrainNumber: "T100", JourneyDate: "2024-05-02", ClassType: "3A"}
	comp.Enqueue(k1, 2)
	comp.Enqueue(k2, 4)
	comp.Flush()

	if rel.released[k1] != 2 || rel.released[k2] != 4 {
		t.Fatalf("wrong release totals: %v", rel.released)
	}
}
