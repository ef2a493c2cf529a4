package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"curator/internal/analysis"
	"curator/internal/catalog"
	"curator/internal/logging"
)

const (
	// neutralScore stands in when the evaluator is unavailable so a
	// model outage never flags or clears items on its own.
	neutralScore = 50.0

	lowDimensionThreshold      = 60.0
	criticalDimensionThreshold = 40.0
)

// Result is the outcome of scoring one item.
type Result struct {
	Overall    float64
	Dimensions Dimensions
	Issues     []analysis.Issue
	Degraded   bool
}

// Scorer folds evaluator dimensions into an overall score and synthesizes
// issues for weak dimensions.
type Scorer struct {
	evaluator Evaluator
	logger    *slog.Logger
}

// NewScorer wires a scorer to the supplied evaluator.
func NewScorer(evaluator Evaluator, logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scorer{evaluator: evaluator, logger: logger}
}

// Score evaluates the item. Evaluator failures degrade to a neutral result
// rather than erroring so one flaky upstream call cannot stall a sweep.
func (s *Scorer) Score(ctx context.Context, item *catalog.Item) Result {
	req := EvaluationRequest{
		Question:    item.Question,
		Answer:      item.Answer,
		Explanation: item.Explanation,
		Channel:     item.Channel,
		SubChannel:  item.SubChannel,
		Difficulty:  item.Difficulty,
	}
	dims, err := s.evaluator.Evaluate(ctx, req)
	if err != nil {
		s.logger.Warn("evaluator unavailable, scoring degraded",
			logging.Int64(logging.FieldItemID, item.ID),
			logging.Error(err))
		return Result{Overall: neutralScore, Degraded: true}
	}
	return fold(dims)
}

func fold(dims Dimensions) Result {
	result := Result{Dimensions: dims}

	var weighted, totalWeight float64
	for _, dim := range dimensionWeights {
		score := dim.score(dims)
		if score == nil {
			continue
		}
		weighted += score.Score * dim.weight
		totalWeight += dim.weight

		if score.Score < lowDimensionThreshold {
			severity := analysis.SeverityMedium
			if score.Score < criticalDimensionThreshold {
				severity = analysis.SeverityHigh
			}
			message := fmt.Sprintf("%s scored %.0f", dim.name, score.Score)
			if feedback := strings.TrimSpace(score.Feedback); feedback != "" {
				message += ": " + feedback
			}
			result.Issues = append(result.Issues, analysis.Issue{
				Kind:     analysis.KindLowDimensionScore,
				Severity: severity,
				Message:  message,
			})
		}
	}

	if totalWeight == 0 {
		result.Overall = neutralScore
		result.Degraded = true
		result.Issues = nil
		return result
	}
	result.Overall = math.Round(weighted/totalWeight*10) / 10
	return result
}
