package scoring

import (
	"context"
	"errors"
	"testing"

	"curator/internal/analysis"
	"curator/internal/catalog"
)

type stubEvaluator struct {
	dims Dimensions
	err  error
}

func (s stubEvaluator) Evaluate(ctx context.Context, req EvaluationRequest) (Dimensions, error) {
	return s.dims, s.err
}

func dim(score float64) *DimensionScore {
	return &DimensionScore{Score: score, Feedback: "feedback"}
}

func TestScorerWeightedMean(t *testing.T) {
	scorer := NewScorer(stubEvaluator{dims: Dimensions{
		TechnicalAccuracy:     dim(80),
		Clarity:               dim(80),
		Completeness:          dim(80),
		PracticalRelevance:    dim(80),
		StructureQuality:      dim(80),
		DifficultyCalibration: dim(80),
	}}, nil)

	result := scorer.Score(context.Background(), &catalog.Item{ID: 1})
	if result.Degraded {
		t.Fatal("expected non-degraded result")
	}
	if result.Overall != 80 {
		t.Fatalf("expected overall 80, got %v", result.Overall)
	}
	if len(result.Issues) != 0 {
		t.Fatalf("expected no issues, got %v", result.Issues)
	}
}

func TestScorerNormalizesOverPresentDimensions(t *testing.T) {
	// Only two dimensions present; the mean must ignore the missing weights.
	scorer := NewScorer(stubEvaluator{dims: Dimensions{
		TechnicalAccuracy: dim(100), // weight 0.25
		Clarity:           dim(60),  // weight 0.15
	}}, nil)

	result := scorer.Score(context.Background(), &catalog.Item{ID: 1})
	// (100*0.25 + 60*0.15) / 0.40 = 85
	if result.Overall != 85 {
		t.Fatalf("expected overall 85, got %v", result.Overall)
	}
}

func TestScorerVoiceReadinessParticipatesWhenPresent(t *testing.T) {
	withVoice := fold(Dimensions{
		TechnicalAccuracy: dim(100),
		VoiceReadiness:    dim(0),
	})
	without := fold(Dimensions{TechnicalAccuracy: dim(100)})
	if withVoice.Overall >= without.Overall {
		t.Fatalf("voice dimension should pull the mean down: %v vs %v", withVoice.Overall, without.Overall)
	}
}

func TestScorerSynthesizesIssuesForWeakDimensions(t *testing.T) {
	scorer := NewScorer(stubEvaluator{dims: Dimensions{
		TechnicalAccuracy: dim(35),
		Clarity:           dim(55),
		Completeness:      dim(90),
	}}, nil)

	result := scorer.Score(context.Background(), &catalog.Item{ID: 1})
	if len(result.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %v", result.Issues)
	}
	var highs, mediums int
	for _, issue := range result.Issues {
		if issue.Kind != analysis.KindLowDimensionScore {
			t.Fatalf("unexpected issue kind %q", issue.Kind)
		}
		switch issue.Severity {
		case analysis.SeverityHigh:
			highs++
		case analysis.SeverityMedium:
			mediums++
		}
	}
	if highs != 1 || mediums != 1 {
		t.Fatalf("expected one high and one medium issue, got %d/%d", highs, mediums)
	}
}

func TestScorerDegradesOnEvaluatorFailure(t *testing.T) {
	scorer := NewScorer(stubEvaluator{err: errors.New("upstream down")}, nil)

	result := scorer.Score(context.Background(), &catalog.Item{ID: 1})
	if !result.Degraded {
		t.Fatal("expected degraded result")
	}
	if result.Overall != neutralScore {
		t.Fatalf("expected neutral score, got %v", result.Overall)
	}
	if len(result.Issues) != 0 {
		t.Fatalf("degraded result must not synthesize issues, got %v", result.Issues)
	}
}

func TestScorerDegradesOnEmptyDimensions(t *testing.T) {
	scorer := NewScorer(stubEvaluator{}, nil)

	result := scorer.Score(context.Background(), &catalog.Item{ID: 1})
	if !result.Degraded || result.Overall != neutralScore {
		t.Fatalf("expected neutral degraded result, got %+v", result)
	}
}
