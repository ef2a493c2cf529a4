package analysis

import (
	"strings"

	"curator/internal/catalog"
	"curator/internal/textutil"
)

// Analyzer runs the deterministic rule checks over a single item.
// It holds no state beyond the channel vocabulary and is safe for
// concurrent use.
type Analyzer struct {
	vocab map[string][]string
}

// New constructs an analyzer with the embedded channel vocabulary.
func New() *Analyzer {
	return &Analyzer{vocab: channelVocabulary()}
}

// Analyze inspects an item and returns its issues and descriptive metrics.
// The four check families run independently; their findings accumulate.
func (a *Analyzer) Analyze(item catalog.Item) ([]Issue, Metrics) {
	metrics := buildMetrics(item)

	var issues []Issue
	issues = append(issues, checkStructure(item, metrics)...)
	issues = append(issues, checkContent(item)...)
	issues = append(issues, a.checkRelevance(item)...)
	if item.VoiceSuitable {
		issues = append(issues, checkVoiceReadiness(item, metrics)...)
	}
	return issues, metrics
}

func buildMetrics(item catalog.Item) Metrics {
	combined := item.Answer + "\n" + item.Explanation
	return Metrics{
		QuestionLength:    len(strings.TrimSpace(item.Question)),
		AnswerLength:      len(strings.TrimSpace(item.Answer)),
		ExplanationLength: len(strings.TrimSpace(item.Explanation)),
		AnswerWords:       textutil.WordCount(item.Answer),
		AnswerSentences:   textutil.SentenceCount(item.Answer),
		HasCodeBlock:      strings.Contains(combined, "```"),
		HasDiagram:        strings.Contains(combined, "┌") || strings.Contains(combined, "-->") || strings.Contains(strings.ToLower(combined), "diagram:"),
		TagCount:          len(item.Tags),
		KeywordCount:      len(item.Keywords),
	}
}
