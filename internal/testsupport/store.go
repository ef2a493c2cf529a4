package testsupport

import (
	"context"
	"testing"

	"curator/internal/catalog"
	"curator/internal/config"
	"curator/internal/store"
)

// MustOpenStore opens the shared SQLite database for tests and registers
// cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.DB {
	t.Helper()

	db, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// SeedItem inserts a catalog item and returns its id.
func SeedItem(t testing.TB, db *store.DB, item catalog.Item) int64 {
	t.Helper()

	id, err := catalog.NewStore(db).Insert(context.Background(), item)
	if err != nil {
		t.Fatalf("insert catalog item: %v", err)
	}
	return id
}

// SampleItem returns a well-formed item that passes every deterministic
// check, suitable as a baseline for mutation in tests.
func SampleItem() catalog.Item {
	return catalog.Item{
		Channel:    "golang",
		SubChannel: "concurrency",
		Question:   "How does a sync.WaitGroup coordinate goroutine completion?",
		Answer: "A sync.WaitGroup tracks a counter of outstanding goroutines. " +
			"Call Add before starting each goroutine, Done when it finishes, " +
			"and Wait to block until the counter reaches zero.",
		Explanation: "WaitGroup is the standard tool for fan-out fan-in patterns. " +
			"The counter must be incremented before the goroutine starts to avoid " +
			"a race between Add and Wait.",
		Difficulty:    catalog.DifficultyIntermediate,
		Tags:          []string{"goroutine", "synchronization", "concurrency"},
		Keywords:      []string{"sync.WaitGroup", "goroutine coordination"},
		VoiceSuitable: false,
		Active:        true,
	}
}
