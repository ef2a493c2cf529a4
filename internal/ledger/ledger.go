package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"curator/internal/logging"
	"curator/internal/store"
)

// Actions recorded in the ledger.
const (
	ActionVerify   = "verify"
	ActionFlag     = "flag"
	ActionClaim    = "claim"
	ActionComplete = "complete"
	ActionFail     = "fail"
)

// Entry is one append-only audit record of a bot action on an item.
type Entry struct {
	ID          int64
	BotName     string
	Action      string
	ItemType    string
	ItemID      int64
	BeforeState string
	AfterState  string
	Reason      string
	CreatedAt   time.Time
}

// Ledger appends audit records to the shared database. There are no update
// or delete operations; the table only grows.
type Ledger struct {
	db     *store.DB
	logger *slog.Logger
}

// New constructs a ledger over the shared database.
func New(db *store.DB, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Ledger{db: db, logger: logger}
}

// Record appends an entry. Storage errors are logged and swallowed so the
// audit trail never blocks the caller's pipeline.
func (l *Ledger) Record(ctx context.Context, entry Entry) {
	if err := l.append(ctx, entry); err != nil {
		l.logger.Error("ledger append failed",
			logging.Error(err),
			logging.String("action", entry.Action),
			logging.Int64(logging.FieldItemID, entry.ItemID),
			logging.String(logging.FieldBot, entry.BotName),
		)
	}
}

func (l *Ledger) append(ctx context.Context, entry Entry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := l.db.Exec(
		ctx,
		`INSERT INTO bot_ledger (
            bot_name, action, item_type, item_id,
            before_state, after_state, reason, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.BotName,
		entry.Action,
		entry.ItemType,
		entry.ItemID,
		store.NullableString(entry.BeforeState),
		store.NullableString(entry.AfterState),
		store.NullableString(entry.Reason),
		store.FormatTime(createdAt),
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// HasRecentAction reports whether the named bot recorded any of the actions
// against the item within the window. Empty actions means any action counts.
func (l *Ledger) HasRecentAction(ctx context.Context, itemID int64, botName string, actions []string, within time.Duration) (bool, error) {
	cutoff := store.FormatTime(time.Now().Add(-within))
	stmt := `SELECT COUNT(1) FROM bot_ledger
             WHERE item_id = ? AND bot_name = ? AND created_at >= ?`
	args := []any{itemID, botName, cutoff}
	if len(actions) > 0 {
		stmt += ` AND action IN (` + store.MakePlaceholders(len(actions)) + `)`
		for _, action := range actions {
			args = append(args, action)
		}
	}

	var count int
	if err := l.db.QueryRow(ctx, stmt, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("query recent actions: %w", err)
	}
	return count > 0, nil
}

// RecentForItem returns the item's audit trail, newest first.
func (l *Ledger) RecentForItem(ctx context.Context, itemID int64, limit int) ([]Entry, error) {
	stmt := `SELECT id, bot_name, action, item_type, item_id,
                    COALESCE(before_state, ''), COALESCE(after_state, ''),
                    COALESCE(reason, ''), created_at
             FROM bot_ledger WHERE item_id = ? ORDER BY id DESC`
	if limit > 0 {
		stmt += fmt.Sprintf(" LIMIT %d", limit)
	}
	rows, err := l.db.Query(ctx, stmt, itemID)
	if err != nil {
		return nil, fmt.Errorf("query ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry      Entry
			createdRaw string
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.BotName,
			&entry.Action,
			&entry.ItemType,
			&entry.ItemID,
			&entry.BeforeState,
			&entry.AfterState,
			&entry.Reason,
			&createdRaw,
		); err != nil {
			return nil, err
		}
		if created, err := store.ParseTime(createdRaw); err == nil {
			entry.CreatedAt = created
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
