package analysis

import "strings"

// Severity is the ordinal impact level of an issue.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

var severityRanks = map[Severity]int{
	SeverityCritical: 4,
	SeverityHigh:     3,
	SeverityMedium:   2,
	SeverityLow:      1,
	SeverityInfo:     0,
}

// Rank returns the numeric impact of a severity, higher meaning worse.
// Unknown severities rank as info.
func (s Severity) Rank() int {
	return severityRanks[s]
}

// ParseSeverity converts a string into a known Severity.
func ParseSeverity(value string) (Severity, bool) {
	normalized := Severity(strings.ToLower(strings.TrimSpace(value)))
	_, ok := severityRanks[normalized]
	return normalized, ok
}

// Kind identifies what an issue is about. The set is closed per check
// family with KindOther as the forward-compatibility escape hatch.
type Kind string

// Structural issue kinds.
const (
	KindMissingQuestion    Kind = "missing_question"
	KindShortQuestion      Kind = "short_question"
	KindMissingAnswer      Kind = "missing_answer"
	KindShortAnswer        Kind = "short_answer"
	KindMissingExplanation Kind = "missing_explanation"
	KindShortExplanation   Kind = "short_explanation"
	KindMissingPunctuation Kind = "missing_punctuation"
	KindTruncatedAnswer    Kind = "truncated_answer"
	KindTruncatedExplain   Kind = "truncated_explanation"
	KindMissingCodeExample Kind = "missing_code_example"
)

// Content issue kinds.
const (
	KindPlaceholderText      Kind = "placeholder_text"
	KindIrrelevantBehavioral Kind = "irrelevant_behavioral"
	KindAnswerMismatch       Kind = "answer_mismatch"
	KindDuplicateExplanation Kind = "duplicate_explanation"
	KindDifficultyMismatch   Kind = "difficulty_mismatch"
)

// Relevance issue kinds.
const (
	KindOffTopicChannel Kind = "off_topic_channel"
	KindMissingTags     Kind = "missing_tags"
	KindFewTags         Kind = "few_tags"
)

// Voice-readiness issue kinds.
const (
	KindFewKeywords      Kind = "few_keywords"
	KindManyKeywords     Kind = "many_keywords"
	KindWeakKeywords     Kind = "weak_keywords"
	KindLongSpokenAnswer Kind = "long_spoken_answer"
)

// Cross-component issue kinds.
const (
	KindLikelyDuplicate    Kind = "likely_duplicate"
	KindPotentialDuplicate Kind = "potential_duplicate"
	KindLowDimensionScore  Kind = "low_dimension_score"
	KindOther              Kind = "other"
)

// Issue is a single typed finding about an item. Issues are immutable once
// created within an analysis pass; they are summarized into work item
// reasons and ledger entries rather than persisted directly.
type Issue struct {
	Kind     Kind
	Severity Severity
	Message  string
}

// CountBySeverity tallies issues per severity level.
func CountBySeverity(issues []Issue) map[Severity]int {
	counts := make(map[Severity]int)
	for _, issue := range issues {
		counts[issue.Severity]++
	}
	return counts
}

// Summarize renders a compact one-line description of an issue set, worst
// first, suitable for work item reasons and ledger entries.
func Summarize(issues []Issue, max int) string {
	if len(issues) == 0 {
		return "no issues"
	}
	sorted := make([]Issue, len(issues))
	copy(sorted, issues)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Severity.Rank() > sorted[j-1].Severity.Rank(); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	if max > 0 && len(sorted) > max {
		sorted = sorted[:max]
	}
	parts := make([]string, 0, len(sorted))
	for _, issue := range sorted {
		parts = append(parts, string(issue.Severity)+":"+string(issue.Kind))
	}
	summary := strings.Join(parts, ", ")
	if remaining := len(issues) - len(sorted); remaining > 0 {
		summary += ", ..."
	}
	return summary
}

// Metrics are descriptive counters derived during analysis. They feed
// run reporting only and never influence routing.
type Metrics struct {
	QuestionLength    int
	AnswerLength      int
	ExplanationLength int
	AnswerWords       int
	AnswerSentences   int
	HasCodeBlock      bool
	HasDiagram        bool
	TagCount          int
	KeywordCount      int
}
