package catalog

import (
	"context"
	"time"
)

// CandidateQuery parameterizes candidate selection for an analysis pass.
type CandidateQuery struct {
	// Channel limits results to a single channel when non-empty.
	Channel string
	// Limit caps the number of returned items. Zero means no cap.
	Limit int
	// ExcludeBot skips items this bot has judged within Window.
	ExcludeBot string
	// ExcludeActions narrows the exclusion to specific ledger actions.
	// Empty means any recorded action counts as judged.
	ExcludeActions []string
	// Window is the recency window for the exclusion.
	Window time.Duration
}

// ChannelText is a (item, text) pair used as a duplicate-detection candidate.
type ChannelText struct {
	ItemID  int64
	Text    string
	Excerpt string
}

// Source supplies content items for analysis. The canonical implementation
// reads the shared database, but the runner only depends on this interface.
type Source interface {
	Candidates(ctx context.Context, query CandidateQuery) ([]Item, error)
	Get(ctx context.Context, id int64) (*Item, error)
	TextsByChannel(ctx context.Context, channel string, excludeID int64, limit int) ([]ChannelText, error)
}
