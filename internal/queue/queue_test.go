package queue_test

import (
	"context"
	"sync"
	"testing"

	"curator/internal/ledger"
	"curator/internal/logging"
	"curator/internal/queue"
	"curator/internal/store"
	"curator/internal/testsupport"
)

func newQueue(t *testing.T) (*queue.Queue, *store.DB) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	db := testsupport.MustOpenStore(t, cfg)
	logger := logging.NewNop()
	return queue.New(db, logger, queue.WithLedger(ledger.New(db, logger))), db
}

func enqueue(t *testing.T, q *queue.Queue, req queue.EnqueueRequest) int64 {
	t.Helper()
	if req.ItemType == "" {
		req.ItemType = "question"
	}
	if req.CreatedBy == "" {
		req.CreatedBy = "verification-bot"
	}
	id, err := q.Enqueue(context.Background(), req)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	return id
}

func TestEnqueueIsIdempotentWhilePending(t *testing.T) {
	q, _ := newQueue(t)
	req := queue.EnqueueRequest{ItemID: 1, Action: "improve", Priority: 3}

	first := enqueue(t, q, req)
	second := enqueue(t, q, req)
	if first != second {
		t.Fatalf("duplicate enqueue created a new row: %d vs %d", first, second)
	}

	items, err := q.List(context.Background(), queue.StatusPending)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one pending row, got %d", len(items))
	}
}

func TestEnqueueAllowsNewRowAfterCompletion(t *testing.T) {
	q, _ := newQueue(t)
	req := queue.EnqueueRequest{ItemID: 1, Action: "improve"}
	first := enqueue(t, q, req)

	claimed, err := q.ClaimNext(context.Background(), "question", 1)
	if err != nil {
		t.Fatalf("ClaimNext: %v", err)
	}
	if len(claimed) != 1 {
		t.Fatalf("expected one claim, got %d", len(claimed))
	}
	if err := q.Complete(context.Background(), first, "done"); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	second := enqueue(t, q, req)
	if second == first {
		t.Fatal("terminal rows must not satisfy the idempotency check")
	}
}

func TestEnqueueClampsPriority(t *testing.T) {
	q, _ := newQueue(t)
	id := enqueue(t, q, queue.EnqueueRequest{ItemID: 1, Action: "improve", Priority: 99})
	item, err := q.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if item.Priority != queue.PriorityLowest {
		t.Fatalf("expected clamped priority %d, got %d", queue.PriorityLowest, item.Priority)
	}

	id = enqueue(t, q, queue.EnqueueRequest{ItemID: 2, Action: "improve"})
	item, err = q.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if item.Priority != queue.PriorityLowest {
		t.Fatalf("expected default priority %d, got %d", queue.PriorityLowest, item.Priority)
	}
}

func TestClaimNextOrdersByPriorityThenAge(t *testing.T) {
	q, _ := newQueue(t)
	low := enqueue(t, q, queue.EnqueueRequest{ItemID: 1, Action: "improve", Priority: 4})
	urgent := enqueue(t, q, queue.EnqueueRequest{ItemID: 2, Action: "delete", Priority: 1})

	claimed, err := q.ClaimNext(context.Background(), "question", 1)
	if err != nil {
		t.Fatalf("ClaimNext: %v", err)
	}
	if len(claimed) != 1 || claimed[0].ID != urgent {
		t.Fatalf("expected urgent row %d first, got %+v", urgent, claimed)
	}
	if claimed[0].Status != queue.StatusProcessing {
		t.Fatalf("claimed row must be processing, got %s", claimed[0].Status)
	}
	if claimed[0].StartedAt == nil {
		t.Fatal("claimed row must record started_at")
	}

	claimed, err = q.ClaimNext(context.Background(), "question", 1)
	if err != nil {
		t.Fatalf("ClaimNext: %v", err)
	}
	if len(claimed) != 1 || claimed[0].ID != low {
		t.Fatalf("expected remaining row %d, got %+v", low, claimed)
	}
}

func TestClaimNextIgnoresOtherItemTypes(t *testing.T) {
	q, _ := newQueue(t)
	enqueue(t, q, queue.EnqueueRequest{ItemID: 1, ItemType: "flashcard", Action: "improve"})

	claimed, err := q.ClaimNext(context.Background(), "question", 5)
	if err != nil {
		t.Fatalf("ClaimNext: %v", err)
	}
	if len(claimed) != 0 {
		t.Fatalf("expected no claims across item types, got %d", len(claimed))
	}
}

func TestConcurrentClaimsNeverDoubleClaim(t *testing.T) {
	q, _ := newQueue(t)
	const rows = 10
	for i := 1; i <= rows; i++ {
		enqueue(t, q, queue.EnqueueRequest{ItemID: int64(i), Action: "improve"})
	}

	const claimants = 4
	var wg sync.WaitGroup
	results := make([][]*queue.WorkItem, claimants)
	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			claimed, err := q.ClaimNext(context.Background(), "question", rows)
			if err != nil {
				t.Errorf("ClaimNext: %v", err)
				return
			}
			results[slot] = claimed
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool)
	total := 0
	for _, claimed := range results {
		for _, item := range claimed {
			if seen[item.ID] {
				t.Fatalf("work item %d claimed twice", item.ID)
			}
			seen[item.ID] = true
			total++
		}
	}
	if total != rows {
		t.Fatalf("expected %d rows claimed exactly once, got %d", rows, total)
	}
}

func TestCompleteAndFailAreTerminal(t *testing.T) {
	q, _ := newQueue(t)
	ctx := context.Background()
	id := enqueue(t, q, queue.EnqueueRequest{ItemID: 1, Action: "improve"})
	if _, err := q.ClaimNext(ctx, "question", 1); err != nil {
		t.Fatalf("ClaimNext: %v", err)
	}
	if err := q.Complete(ctx, id, "ok"); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	// Converging transitions on a terminal row are logged no-ops.
	if err := q.Fail(ctx, id, "too late"); err != nil {
		t.Fatalf("Fail on terminal row should be a no-op, got %v", err)
	}
	item, err := q.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if item.Status != queue.StatusCompleted {
		t.Fatalf("terminal status must not change, got %s", item.Status)
	}
	if item.Result != "ok" {
		t.Fatalf("unexpected result %q", item.Result)
	}
	if item.CompletedAt == nil {
		t.Fatal("completed row must record completed_at")
	}
}

func TestFailFromPendingIsRejected(t *testing.T) {
	q, _ := newQueue(t)
	ctx := context.Background()
	id := enqueue(t, q, queue.EnqueueRequest{ItemID: 1, Action: "improve"})

	// Only processing rows may finish; a pending row is left untouched.
	if err := q.Fail(ctx, id, "never claimed"); err != nil {
		t.Fatalf("Fail: %v", err)
	}
	item, err := q.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if item.Status != queue.StatusPending {
		t.Fatalf("pending row must stay pending, got %s", item.Status)
	}
}

func TestCleanupRemovesOnlyOldTerminalRows(t *testing.T) {
	q, db := newQueue(t)
	ctx := context.Background()

	oldDone := enqueue(t, q, queue.EnqueueRequest{ItemID: 1, Action: "improve"})
	pending := enqueue(t, q, queue.EnqueueRequest{ItemID: 2, Action: "improve"})
	if _, err := q.ClaimNext(ctx, "question", 1); err != nil {
		t.Fatalf("ClaimNext: %v", err)
	}
	if err := q.Complete(ctx, oldDone, "done"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	// Age the completed row past the retention cutoff.
	if _, err := db.Exec(ctx,
		`UPDATE work_items SET completed_at = '2020-01-01T00:00:00Z' WHERE id = ?`, oldDone); err != nil {
		t.Fatalf("age row: %v", err)
	}

	removed, err := q.Cleanup(ctx, 30)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected one row removed, got %d", removed)
	}
	if item, err := q.GetByID(ctx, oldDone); err != nil || item != nil {
		t.Fatalf("aged terminal row should be gone, got %+v err %v", item, err)
	}
	if item, err := q.GetByID(ctx, pending); err != nil || item == nil {
		t.Fatalf("pending row must survive cleanup, err %v", err)
	}
}

func TestStatsGroupsByStatus(t *testing.T) {
	q, _ := newQueue(t)
	ctx := context.Background()
	enqueue(t, q, queue.EnqueueRequest{ItemID: 1, Action: "improve"})
	id := enqueue(t, q, queue.EnqueueRequest{ItemID: 2, Action: "delete", Priority: 1})
	if _, err := q.ClaimNext(ctx, "question", 1); err != nil {
		t.Fatalf("ClaimNext: %v", err)
	}
	if err := q.Fail(ctx, id, "boom"); err != nil {
		t.Fatalf("Fail: %v", err)
	}

	stats, err := q.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats[queue.StatusPending] != 1 || stats[queue.StatusFailed] != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestQueueTransitionsAreLedgered(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.MustOpenStore(t, cfg)
	logger := logging.NewNop()
	audit := ledger.New(db, logger)
	q := queue.New(db, logger, queue.WithLedger(audit))
	ctx := context.Background()

	id, err := q.Enqueue(ctx, queue.EnqueueRequest{
		ItemID: 7, ItemType: "question", Action: "improve", CreatedBy: "verification-bot",
	})
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if _, err := q.ClaimNext(ctx, "question", 1); err != nil {
		t.Fatalf("ClaimNext: %v", err)
	}
	if err := q.Complete(ctx, id, "done"); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	entries, err := audit.RecentForItem(ctx, 7, 10)
	if err != nil {
		t.Fatalf("RecentForItem: %v", err)
	}
	actions := make(map[string]bool, len(entries))
	for _, entry := range entries {
		actions[entry.Action] = true
	}
	if !actions[ledger.ActionClaim] || !actions[ledger.ActionComplete] {
		t.Fatalf("expected claim and complete entries, got %+v", entries)
	}
}
