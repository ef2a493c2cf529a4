package similarity_test

import (
	"context"
	"testing"

	"curator/internal/analysis"
	"curator/internal/catalog"
	"curator/internal/similarity"
)

type stubSource struct {
	texts []catalog.ChannelText
}

func (s *stubSource) Candidates(context.Context, catalog.CandidateQuery) ([]catalog.Item, error) {
	return nil, nil
}

func (s *stubSource) Get(context.Context, int64) (*catalog.Item, error) {
	return nil, nil
}

func (s *stubSource) TextsByChannel(_ context.Context, _ string, excludeID int64, limit int) ([]catalog.ChannelText, error) {
	var out []catalog.ChannelText
	for _, text := range s.texts {
		if text.ItemID == excludeID {
			continue
		}
		out = append(out, text)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

const baseText = "goroutines communicate through channels which synchronize message passing between concurrent workers without explicit locking primitives"

func TestFindSimilarDetectsLikelyDuplicate(t *testing.T) {
	source := &stubSource{texts: []catalog.ChannelText{
		{ItemID: 2, Text: baseText + " always", Excerpt: "goroutines communicate"},
		{ItemID: 3, Text: "completely unrelated prose about gardening tomatoes in raised beds during summer heat waves", Excerpt: "gardening"},
	}}
	index := similarity.NewIndex(source)

	matches, err := index.FindSimilar(context.Background(), 1, baseText, "golang", 100)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one match, got %d", len(matches))
	}
	if matches[0].ItemID != 2 {
		t.Fatalf("unexpected match item %d", matches[0].ItemID)
	}
	if matches[0].Similarity < similarity.LikelyThreshold {
		t.Fatalf("expected likely-duplicate similarity, got %v", matches[0].Similarity)
	}

	issue := matches[0].Issue()
	if issue.Kind != analysis.KindLikelyDuplicate || issue.Severity != analysis.SeverityHigh {
		t.Fatalf("expected high likely_duplicate issue, got %+v", issue)
	}
}

func TestFindSimilarPotentialBand(t *testing.T) {
	// Shares 16 of 20 union tokens: similarity 0.8, inside [0.75, 0.85).
	target := "alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima mike november oscar papa quebec romeo"
	near := "alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima mike november oscar papa sierra tango"
	source := &stubSource{texts: []catalog.ChannelText{{ItemID: 7, Text: near, Excerpt: "alpha bravo"}}}
	index := similarity.NewIndex(source)

	matches, err := index.FindSimilar(context.Background(), 1, target, "golang", 100)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one match, got %d", len(matches))
	}
	issue := matches[0].Issue()
	if issue.Kind != analysis.KindPotentialDuplicate || issue.Severity != analysis.SeverityMedium {
		t.Fatalf("expected medium potential_duplicate issue, got %+v", issue)
	}
}

func TestFindSimilarExcludesSelf(t *testing.T) {
	source := &stubSource{texts: []catalog.ChannelText{{ItemID: 1, Text: baseText}}}
	index := similarity.NewIndex(source)

	matches, err := index.FindSimilar(context.Background(), 1, baseText, "golang", 100)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("self must never match, got %v", matches)
	}
}

func TestFindSimilarShortTextGuard(t *testing.T) {
	source := &stubSource{texts: []catalog.ChannelText{{ItemID: 2, Text: "yes indeed"}}}
	index := similarity.NewIndex(source)

	matches, err := index.FindSimilar(context.Background(), 1, "yes indeed", "golang", 100)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("short texts must not match, got %v", matches)
	}
}

func TestFindSimilarSortsAndCaps(t *testing.T) {
	texts := make([]catalog.ChannelText, 0, 7)
	for i := int64(2); i <= 8; i++ {
		texts = append(texts, catalog.ChannelText{ItemID: i, Text: baseText})
	}
	source := &stubSource{texts: texts}
	index := similarity.NewIndex(source)

	matches, err := index.FindSimilar(context.Background(), 1, baseText, "golang", 100)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(matches) != 5 {
		t.Fatalf("expected cap of 5 matches, got %d", len(matches))
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Similarity > matches[i-1].Similarity {
			t.Fatal("matches not sorted by descending similarity")
		}
	}
}
