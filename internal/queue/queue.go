package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"curator/internal/ledger"
	"curator/internal/logging"
	"curator/internal/store"
)

// Queue manages durable work items in the shared database.
type Queue struct {
	db     *store.DB
	logger *slog.Logger
	audit  *ledger.Ledger
}

// Option customizes queue construction.
type Option func(*Queue)

// WithLedger enables audit entries for claim/complete/fail transitions.
func WithLedger(audit *ledger.Ledger) Option {
	return func(q *Queue) {
		q.audit = audit
	}
}

// New constructs a queue over the shared database.
func New(db *store.DB, logger *slog.Logger, opts ...Option) *Queue {
	if logger == nil {
		logger = logging.NewNop()
	}
	q := &Queue{db: db, logger: logger}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// EnqueueRequest describes a work item to insert.
type EnqueueRequest struct {
	ItemID    int64
	ItemType  string
	Action    string
	Reason    string
	CreatedBy string
	Priority  int
}

func (r EnqueueRequest) validate() error {
	if r.ItemID <= 0 {
		return errors.New("enqueue: item id required")
	}
	if strings.TrimSpace(r.ItemType) == "" {
		return errors.New("enqueue: item type required")
	}
	if strings.TrimSpace(r.Action) == "" {
		return errors.New("enqueue: action required")
	}
	if strings.TrimSpace(r.CreatedBy) == "" {
		return errors.New("enqueue: created_by required")
	}
	return nil
}

// Enqueue inserts a pending work item unless one already exists for the same
// (item, type, action). The idempotency check runs immediately before the
// insert; the narrow race left between check and insert can at worst produce
// a duplicate pending row, which downstream completion makes harmless.
func (q *Queue) Enqueue(ctx context.Context, req EnqueueRequest) (int64, error) {
	if err := req.validate(); err != nil {
		return 0, err
	}

	if existing, err := q.findPending(ctx, req.ItemID, req.ItemType, req.Action); err != nil {
		return 0, err
	} else if existing != 0 {
		q.logger.Info("work item already pending, skipping enqueue",
			logging.Int64(logging.FieldWorkItemID, existing),
			logging.Int64(logging.FieldItemID, req.ItemID),
			logging.String("action", req.Action),
		)
		return existing, nil
	}

	res, err := q.db.Exec(
		ctx,
		`INSERT INTO work_items (
            item_id, item_type, action, priority, status,
            reason, created_by, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ItemID,
		req.ItemType,
		req.Action,
		ClampPriority(req.Priority),
		StatusPending,
		store.NullableString(req.Reason),
		req.CreatedBy,
		store.FormatTime(time.Now()),
	)
	if err != nil {
		return 0, fmt.Errorf("insert work item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

func (q *Queue) findPending(ctx context.Context, itemID int64, itemType, action string) (int64, error) {
	var id int64
	err := q.db.QueryRow(
		ctx,
		`SELECT id FROM work_items
         WHERE item_id = ? AND item_type = ? AND action = ? AND status = ?
         ORDER BY id LIMIT 1`,
		itemID, itemType, action, StatusPending,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("lookup pending work item: %w", err)
	}
	return id, nil
}

// ClaimNext atomically claims up to limit pending work items for botType,
// ordered by priority then insertion time. Each claim is a conditional
// update guarded on status = pending, so concurrent claimants racing for
// the same rows cannot both win; rows lost to a race are skipped.
func (q *Queue) ClaimNext(ctx context.Context, botType string, limit int) ([]*WorkItem, error) {
	if strings.TrimSpace(botType) == "" {
		return nil, errors.New("claim: bot type required")
	}
	if limit <= 0 {
		return nil, nil
	}

	// Over-fetch candidates so races with other claimants still fill the batch.
	rows, err := q.db.Query(
		ctx,
		`SELECT id FROM work_items
         WHERE status = ? AND item_type = ?
         ORDER BY priority ASC, created_at ASC
         LIMIT ?`,
		StatusPending, botType, limit*2,
	)
	if err != nil {
		return nil, fmt.Errorf("query claim candidates: %w", err)
	}
	var candidates []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		candidates = append(candidates, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	now := store.FormatTime(time.Now())
	var claimed []*WorkItem
	for _, id := range candidates {
		if len(claimed) >= limit {
			break
		}
		res, err := q.db.Exec(
			ctx,
			`UPDATE work_items
             SET status = ?, assigned_to = ?, started_at = ?
             WHERE id = ? AND status = ?`,
			StatusProcessing, botType, now, id, StatusPending,
		)
		if err != nil {
			return claimed, fmt.Errorf("claim work item %d: %w", id, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return claimed, fmt.Errorf("claim rows affected: %w", err)
		}
		if affected == 0 {
			// Another claimant won the race; not an error.
			continue
		}
		item, err := q.GetByID(ctx, id)
		if err != nil {
			return claimed, err
		}
		if item == nil {
			continue
		}
		claimed = append(claimed, item)
		q.recordTransition(ctx, item, ledger.ActionClaim, string(StatusPending), string(StatusProcessing), "")
	}
	return claimed, nil
}

// Complete transitions a work item from processing to completed and stores
// the processor's result. A row no longer in processing is logged and
// ignored: some other process already finished it.
func (q *Queue) Complete(ctx context.Context, id int64, result string) error {
	return q.finish(ctx, id, StatusCompleted, result, ledger.ActionComplete)
}

// Fail transitions a work item from processing to failed, storing the error.
func (q *Queue) Fail(ctx context.Context, id int64, errMsg string) error {
	return q.finish(ctx, id, StatusFailed, errMsg, ledger.ActionFail)
}

func (q *Queue) finish(ctx context.Context, id int64, terminal Status, result, auditAction string) error {
	res, err := q.db.Exec(
		ctx,
		`UPDATE work_items
         SET status = ?, completed_at = ?, result = ?
         WHERE id = ? AND status = ?`,
		terminal, store.FormatTime(time.Now()), store.NullableString(result), id, StatusProcessing,
	)
	if err != nil {
		return fmt.Errorf("finish work item %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish rows affected: %w", err)
	}
	if affected == 0 {
		q.logger.Info("work item not in processing, ignoring transition",
			logging.Int64(logging.FieldWorkItemID, id),
			logging.String("target_status", string(terminal)),
		)
		return nil
	}
	if item, err := q.GetByID(ctx, id); err == nil && item != nil {
		q.recordTransition(ctx, item, auditAction, string(StatusProcessing), string(terminal), result)
	}
	return nil
}

// Cleanup deletes completed and failed work items older than daysOld days.
// Pending and processing rows are never touched.
func (q *Queue) Cleanup(ctx context.Context, daysOld int) (int64, error) {
	if daysOld <= 0 {
		return 0, errors.New("cleanup: days must be positive")
	}
	cutoff := store.FormatTime(time.Now().AddDate(0, 0, -daysOld))
	res, err := q.db.Exec(
		ctx,
		`DELETE FROM work_items
         WHERE status IN (?, ?)
           AND COALESCE(completed_at, created_at) < ?`,
		StatusCompleted, StatusFailed, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("cleanup work items: %w", err)
	}
	return res.RowsAffected()
}

// GetByID fetches a work item by identifier. Returns nil when absent.
func (q *Queue) GetByID(ctx context.Context, id int64) (*WorkItem, error) {
	row := q.db.QueryRow(ctx, `SELECT `+workItemColumns+` FROM work_items WHERE id = ?`, id)
	item, err := scanWorkItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get work item: %w", err)
	}
	return item, nil
}

// List returns work items filtered by status set (or all items when no
// status is provided), ordered by priority then creation time.
func (q *Queue) List(ctx context.Context, statuses ...Status) ([]*WorkItem, error) {
	baseQuery := `SELECT ` + workItemColumns + ` FROM work_items`
	orderClause := ` ORDER BY priority ASC, created_at ASC`

	var (
		rows *sql.Rows
		err  error
	)
	if len(statuses) == 0 {
		rows, err = q.db.Query(ctx, baseQuery+orderClause)
	} else {
		placeholders := store.MakePlaceholders(len(statuses))
		args := make([]any, len(statuses))
		for i, status := range statuses {
			args[i] = status
		}
		rows, err = q.db.Query(ctx, baseQuery+` WHERE status IN (`+placeholders+`)`+orderClause, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("list work items: %w", err)
	}
	defer rows.Close()

	var items []*WorkItem
	for rows.Next() {
		item, err := scanWorkItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Stats returns a count of work items grouped by status.
func (q *Queue) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := q.db.Query(ctx, `SELECT status, COUNT(1) FROM work_items GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("queue stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

func (q *Queue) recordTransition(ctx context.Context, item *WorkItem, action, before, after, detail string) {
	if q.audit == nil {
		return
	}
	reason := detail
	if reason == "" {
		reason = item.Reason
	}
	q.audit.Record(ctx, ledger.Entry{
		BotName:     item.AssignedTo,
		Action:      action,
		ItemType:    item.ItemType,
		ItemID:      item.ItemID,
		BeforeState: before,
		AfterState:  after,
		Reason:      reason,
	})
}

const workItemColumns = "id, item_id, item_type, action, priority, status, reason, created_by, assigned_to, created_at, started_at, completed_at, result"

func scanWorkItem(scanner interface{ Scan(dest ...any) error }) (*WorkItem, error) {
	var (
		id           int64
		itemID       int64
		itemType     string
		action       string
		priority     int
		statusStr    string
		reason       sql.NullString
		createdBy    string
		assignedTo   sql.NullString
		createdRaw   string
		startedRaw   sql.NullString
		completedRaw sql.NullString
		result       sql.NullString
	)
	if err := scanner.Scan(
		&id,
		&itemID,
		&itemType,
		&action,
		&priority,
		&statusStr,
		&reason,
		&createdBy,
		&assignedTo,
		&createdRaw,
		&startedRaw,
		&completedRaw,
		&result,
	); err != nil {
		return nil, err
	}

	item := &WorkItem{
		ID:         id,
		ItemID:     itemID,
		ItemType:   itemType,
		Action:     action,
		Priority:   priority,
		Status:     Status(statusStr),
		Reason:     reason.String,
		CreatedBy:  createdBy,
		AssignedTo: assignedTo.String,
		Result:     result.String,
	}
	if created, err := store.ParseTime(createdRaw); err == nil {
		item.CreatedAt = created
	}
	if startedRaw.Valid {
		if started, err := store.ParseTime(startedRaw.String); err == nil {
			item.StartedAt = &started
		}
	}
	if completedRaw.Valid {
		if completed, err := store.ParseTime(completedRaw.String); err == nil {
			item.CompletedAt = &completed
		}
	}
	return item, nil
}
