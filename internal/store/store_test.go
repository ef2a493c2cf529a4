package store_test

import (
	"context"
	"testing"
	"time"

	"curator/internal/store"
	"curator/internal/testsupport"
)

func TestOpenInitializesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	for _, table := range []string{"items", "work_items", "bot_ledger", "schema_version"} {
		var name string
		err := db.QueryRow(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("expected table %s: %v", table, err)
		}
	}

	var version int
	if err := db.QueryRow(ctx, `SELECT version FROM schema_version`).Scan(&version); err != nil {
		t.Fatalf("read schema version: %v", err)
	}
	if version < 1 {
		t.Fatalf("unexpected schema version %d", version)
	}
}

func TestReopenIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.MustOpenStore(t, cfg)
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if err := reopened.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestTimeRoundTrip(t *testing.T) {
	now := time.Now()
	parsed, err := store.ParseTime(store.FormatTime(now))
	if err != nil {
		t.Fatalf("ParseTime: %v", err)
	}
	if !parsed.Equal(now) {
		t.Fatalf("round trip drifted: %s vs %s", parsed, now)
	}
}

func TestMakePlaceholders(t *testing.T) {
	if got := store.MakePlaceholders(1); got != "?" {
		t.Fatalf("got %q", got)
	}
	if got := store.MakePlaceholders(3); got != "?,?,?" {
		t.Fatalf("got %q", got)
	}
}
