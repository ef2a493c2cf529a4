package analysis

import (
	"fmt"
	"strings"

	"curator/internal/catalog"
)

const (
	minQuestionLength    = 10
	minAnswerLength      = 50
	minExplanationLength = 50
	// Answers and explanations past this combined length are expected to
	// carry a fenced code example in technical channels.
	longFormThreshold = 600
)

var truncationMarkers = []string{"...", "etc.", "[truncated"}

var terminalPunctuation = []string{"?", ".", "!"}

func checkStructure(item catalog.Item, metrics Metrics) []Issue {
	var issues []Issue

	question := strings.TrimSpace(item.Question)
	switch {
	case question == "":
		issues = append(issues, Issue{
			Kind:     KindMissingQuestion,
			Severity: SeverityHigh,
			Message:  "question text is empty",
		})
	case len(question) < minQuestionLength:
		issues = append(issues, Issue{
			Kind:     KindShortQuestion,
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("question is %d chars, below the %d floor", len(question), minQuestionLength),
		})
	default:
		if !hasTerminalPunctuation(question) {
			// Auto-correctable downstream, so only low severity.
			issues = append(issues, Issue{
				Kind:     KindMissingPunctuation,
				Severity: SeverityLow,
				Message:  "question lacks terminal punctuation",
			})
		}
	}

	answer := strings.TrimSpace(item.Answer)
	switch {
	case answer == "":
		issues = append(issues, Issue{
			Kind:     KindMissingAnswer,
			Severity: SeverityHigh,
			Message:  "answer text is empty",
		})
	case len(answer) < minAnswerLength:
		issues = append(issues, Issue{
			Kind:     KindShortAnswer,
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("answer is %d chars, below the %d floor", len(answer), minAnswerLength),
		})
	}
	if answer != "" && endsTruncated(answer) {
		issues = append(issues, Issue{
			Kind:     KindTruncatedAnswer,
			Severity: SeverityHigh,
			Message:  "answer appears truncated",
		})
	}

	explanation := strings.TrimSpace(item.Explanation)
	switch {
	case explanation == "":
		issues = append(issues, Issue{
			Kind:     KindMissingExplanation,
			Severity: SeverityHigh,
			Message:  "explanation text is empty",
		})
	case len(explanation) < minExplanationLength:
		issues = append(issues, Issue{
			Kind:     KindShortExplanation,
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("explanation is %d chars, below the %d floor", len(explanation), minExplanationLength),
		})
	}
	if explanation != "" && endsTruncated(explanation) {
		issues = append(issues, Issue{
			Kind:     KindTruncatedExplain,
			Severity: SeverityHigh,
			Message:  "explanation appears truncated",
		})
	}

	combinedLength := metrics.AnswerLength + metrics.ExplanationLength
	if combinedLength >= longFormThreshold && !metrics.HasCodeBlock && isTechnicalChannel(item.Channel) {
		issues = append(issues, Issue{
			Kind:     KindMissingCodeExample,
			Severity: SeverityLow,
			Message:  "long-form technical content has no fenced code example",
		})
	}

	return issues
}

// codeCentricChannels lists channels where long-form answers are expected
// to carry a fenced code example.
var codeCentricChannels = map[string]bool{
	"golang":     true,
	"databases":  true,
	"algorithms": true,
	"kubernetes": true,
	"linux":      true,
}

func isTechnicalChannel(channel string) bool {
	return codeCentricChannels[strings.ToLower(strings.TrimSpace(channel))]
}

func hasTerminalPunctuation(text string) bool {
	for _, punct := range terminalPunctuation {
		if strings.HasSuffix(text, punct) {
			return true
		}
	}
	return false
}

func endsTruncated(text string) bool {
	lowered := strings.ToLower(strings.TrimSpace(text))
	for _, marker := range truncationMarkers {
		if strings.HasSuffix(lowered, marker) {
			return true
		}
	}
	return strings.Contains(lowered, "[truncated")
}
