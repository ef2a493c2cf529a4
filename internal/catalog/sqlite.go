package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"curator/internal/store"
)

// Store reads and seeds items in the shared database.
type Store struct {
	db *store.DB
}

var _ Source = (*Store)(nil)

// NewStore wraps the shared database as an item source.
func NewStore(db *store.DB) *Store {
	return &Store{db: db}
}

const itemColumns = "id, channel, sub_channel, question, answer, explanation, difficulty, tags_json, keywords_json, voice_suitable, active"

// Candidates returns active items matching the query, excluding items the
// named bot has already judged within the window. The exclusion runs as a
// subquery against the ledger so it holds across bot processes.
func (s *Store) Candidates(ctx context.Context, query CandidateQuery) ([]Item, error) {
	var (
		clauses = []string{"active = 1"}
		args    []any
	)
	if query.Channel != "" {
		clauses = append(clauses, "channel = ?")
		args = append(args, query.Channel)
	}
	if query.ExcludeBot != "" && query.Window > 0 {
		cutoff := time.Now().Add(-query.Window)
		sub := `NOT EXISTS (
            SELECT 1 FROM bot_ledger
            WHERE bot_ledger.item_id = items.id
              AND bot_ledger.bot_name = ?
              AND bot_ledger.created_at >= ?`
		args = append(args, query.ExcludeBot, store.FormatTime(cutoff))
		if len(query.ExcludeActions) > 0 {
			sub += ` AND bot_ledger.action IN (` + store.MakePlaceholders(len(query.ExcludeActions)) + `)`
			for _, action := range query.ExcludeActions {
				args = append(args, action)
			}
		}
		sub += `)`
		clauses = append(clauses, sub)
	}

	stmt := `SELECT ` + itemColumns + ` FROM items WHERE ` + strings.Join(clauses, " AND ") + ` ORDER BY id`
	if query.Limit > 0 {
		stmt += fmt.Sprintf(" LIMIT %d", query.Limit)
	}

	rows, err := s.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// Get fetches a single item by identifier. Returns nil when absent.
func (s *Store) Get(ctx context.Context, id int64) (*Item, error) {
	row := s.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// TextsByChannel returns the combined text of active same-channel items,
// excluding the given item, as a bounded duplicate-detection pool.
func (s *Store) TextsByChannel(ctx context.Context, channel string, excludeID int64, limit int) ([]ChannelText, error) {
	stmt := `SELECT id, question, answer, explanation FROM items
             WHERE active = 1 AND channel = ? AND id != ? ORDER BY id`
	if limit > 0 {
		stmt += fmt.Sprintf(" LIMIT %d", limit)
	}
	rows, err := s.db.Query(ctx, stmt, channel, excludeID)
	if err != nil {
		return nil, fmt.Errorf("query channel texts: %w", err)
	}
	defer rows.Close()

	var texts []ChannelText
	for rows.Next() {
		var (
			id                            int64
			question, answer, explanation sql.NullString
		)
		if err := rows.Scan(&id, &question, &answer, &explanation); err != nil {
			return nil, err
		}
		combined := strings.TrimSpace(strings.Join([]string{question.String, answer.String, explanation.String}, " "))
		texts = append(texts, ChannelText{
			ItemID:  id,
			Text:    combined,
			Excerpt: excerpt(question.String, 120),
		})
	}
	return texts, rows.Err()
}

// Insert adds an item to the catalog and returns its identifier.
// Used for seeding and tests; production items arrive from collaborators.
func (s *Store) Insert(ctx context.Context, item Item) (int64, error) {
	tagsJSON, err := marshalStrings(item.Tags)
	if err != nil {
		return 0, fmt.Errorf("marshal tags: %w", err)
	}
	keywordsJSON, err := marshalStrings(item.Keywords)
	if err != nil {
		return 0, fmt.Errorf("marshal keywords: %w", err)
	}

	difficulty := item.Difficulty
	if difficulty == "" {
		difficulty = DifficultyIntermediate
	}
	now := store.FormatTime(time.Now())

	res, err := s.db.Exec(
		ctx,
		`INSERT INTO items (
            channel, sub_channel, question, answer, explanation, difficulty,
            tags_json, keywords_json, voice_suitable, active, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Channel,
		store.NullableString(item.SubChannel),
		item.Question,
		store.NullableString(item.Answer),
		store.NullableString(item.Explanation),
		difficulty,
		store.NullableString(tagsJSON),
		store.NullableString(keywordsJSON),
		boolToInt(item.VoiceSuitable),
		1,
		now,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}
	return res.LastInsertId()
}

func scanItem(scanner interface{ Scan(dest ...any) error }) (*Item, error) {
	var (
		id            int64
		channel       string
		subChannel    sql.NullString
		question      string
		answer        sql.NullString
		explanation   sql.NullString
		difficulty    string
		tagsJSON      sql.NullString
		keywordsJSON  sql.NullString
		voiceSuitable sql.NullInt64
		active        sql.NullInt64
	)
	if err := scanner.Scan(
		&id,
		&channel,
		&subChannel,
		&question,
		&answer,
		&explanation,
		&difficulty,
		&tagsJSON,
		&keywordsJSON,
		&voiceSuitable,
		&active,
	); err != nil {
		return nil, err
	}

	item := &Item{
		ID:            id,
		Channel:       channel,
		SubChannel:    subChannel.String,
		Question:      question,
		Answer:        answer.String,
		Explanation:   explanation.String,
		Difficulty:    difficulty,
		VoiceSuitable: voiceSuitable.Valid && voiceSuitable.Int64 != 0,
		Active:        active.Valid && active.Int64 != 0,
	}
	if tags, err := unmarshalStrings(tagsJSON.String); err == nil {
		item.Tags = tags
	}
	if keywords, err := unmarshalStrings(keywordsJSON.String); err == nil {
		item.Keywords = keywords
	}
	return item, nil
}

func marshalStrings(values []string) (string, error) {
	if len(values) == 0 {
		return "", nil
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func unmarshalStrings(encoded string) ([]string, error) {
	if strings.TrimSpace(encoded) == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(encoded), &values); err != nil {
		return nil, err
	}
	return values, nil
}

func excerpt(text string, max int) string {
	text = strings.TrimSpace(text)
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
