package similarity

import (
	"context"
	"fmt"
	"sort"

	"curator/internal/analysis"
	"curator/internal/catalog"
	"curator/internal/textutil"
)

const (
	// LikelyThreshold marks near-certain duplicates.
	LikelyThreshold = 0.85
	// PotentialThreshold is the floor for reporting a match at all.
	PotentialThreshold = 0.75
	// maxMatches caps how many matches a single lookup returns.
	maxMatches = 5
	// minTokens guards against spuriously high overlap between very short
	// texts; items under this many tokens never match.
	minTokens = 5
)

// Match is one near-duplicate candidate for an item.
type Match struct {
	ItemID     int64
	Similarity float64
	Excerpt    string
}

// Issue converts a match into the analyzer issue vocabulary.
func (m Match) Issue() analysis.Issue {
	if m.Similarity >= LikelyThreshold {
		return analysis.Issue{
			Kind:     analysis.KindLikelyDuplicate,
			Severity: analysis.SeverityHigh,
			Message:  fmt.Sprintf("likely duplicate of item %d (similarity %.2f): %s", m.ItemID, m.Similarity, m.Excerpt),
		}
	}
	return analysis.Issue{
		Kind:     analysis.KindPotentialDuplicate,
		Severity: analysis.SeverityMedium,
		Message:  fmt.Sprintf("potential duplicate of item %d (similarity %.2f): %s", m.ItemID, m.Similarity, m.Excerpt),
	}
}

// Index detects near-duplicates inside a bounded same-channel candidate
// pool. Each lookup is a linear scan over the pool, which is fine at the
// scale of hundreds of items per run.
type Index struct {
	source catalog.Source
}

// NewIndex builds an index over the given item source.
func NewIndex(source catalog.Source) *Index {
	return &Index{source: source}
}

// FindSimilar compares text against up to maxCandidates same-channel items
// (excluding itemID itself) and returns matches at or above the potential
// threshold, most similar first, capped at five.
func (idx *Index) FindSimilar(ctx context.Context, itemID int64, text, channel string, maxCandidates int) ([]Match, error) {
	if len(textutil.Tokenize(text)) < minTokens {
		return nil, nil
	}

	candidates, err := idx.source.TextsByChannel(ctx, channel, itemID, maxCandidates)
	if err != nil {
		return nil, fmt.Errorf("load similarity candidates: %w", err)
	}

	var matches []Match
	for _, candidate := range candidates {
		if len(textutil.Tokenize(candidate.Text)) < minTokens {
			continue
		}
		sim := textutil.Jaccard(text, candidate.Text)
		if sim < PotentialThreshold {
			continue
		}
		matches = append(matches, Match{
			ItemID:     candidate.ItemID,
			Similarity: sim,
			Excerpt:    candidate.Excerpt,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].ItemID < matches[j].ItemID
	})
	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}
	return matches, nil
}
