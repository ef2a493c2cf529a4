package analysis

import (
	"fmt"
	"strings"

	"curator/internal/catalog"
	"curator/internal/textutil"
)

var placeholderTokens = []string{
	"todo",
	"tbd",
	"fixme",
	"lorem ipsum",
	"placeholder",
	"insert answer here",
	"xxx",
}

// Patterns marking non-technical behavioral interview questions that do not
// belong in the corpus at all.
var behavioralPatterns = []string{
	"tell me about yourself",
	"what are your strengths",
	"what are your weaknesses",
	"why do you want to work",
	"where do you see yourself",
	"describe a time when you",
	"why should we hire you",
}

// advancedMarkers are vocabulary signals of advanced material.
var advancedMarkers = []string{
	"amortized",
	"asymptotic",
	"byzantine",
	"consensus",
	"idempotency",
	"isolation level",
	"linearizability",
	"lock-free",
	"memory barrier",
	"quorum",
	"vectorization",
	"zero-copy",
}

const (
	overlapMinShared        = 2
	overlapQuestionMinWords = 5
	answerExplanationDupSim = 0.8
	advancedLengthFloor     = 200
)

func checkContent(item catalog.Item) []Issue {
	var issues []Issue

	combined := strings.ToLower(item.CombinedText())
	for _, token := range placeholderTokens {
		if containsToken(combined, token) {
			issues = append(issues, Issue{
				Kind:     KindPlaceholderText,
				Severity: SeverityHigh,
				Message:  fmt.Sprintf("placeholder text %q found", token),
			})
			break
		}
	}

	question := strings.ToLower(item.Question)
	for _, pattern := range behavioralPatterns {
		if strings.Contains(question, pattern) {
			issues = append(issues, Issue{
				Kind:     KindIrrelevantBehavioral,
				Severity: SeverityCritical,
				Message:  fmt.Sprintf("behavioral interview question %q has no place in the corpus", pattern),
			})
			break
		}
	}

	if issue := checkAnswerOverlap(item); issue != nil {
		issues = append(issues, *issue)
	}

	if item.Answer != "" && item.Explanation != "" {
		if sim := textutil.Jaccard(item.Answer, item.Explanation); sim > answerExplanationDupSim {
			issues = append(issues, Issue{
				Kind:     KindDuplicateExplanation,
				Severity: SeverityMedium,
				Message:  fmt.Sprintf("explanation repeats the answer (similarity %.2f)", sim),
			})
		}
	}

	issues = append(issues, checkDifficulty(item)...)

	return issues
}

// checkAnswerOverlap flags answers sharing almost no significant vocabulary
// with a substantial question.
func checkAnswerOverlap(item catalog.Item) *Issue {
	questionTokens := textutil.TokenSet(item.Question)
	if len(questionTokens) <= overlapQuestionMinWords {
		return nil
	}
	answerTokens := textutil.TokenSet(item.Answer)
	if len(answerTokens) == 0 {
		return nil
	}
	shared := 0
	for token := range questionTokens {
		if _, ok := answerTokens[token]; ok {
			shared++
		}
	}
	if shared >= overlapMinShared {
		return nil
	}
	return &Issue{
		Kind:     KindAnswerMismatch,
		Severity: SeverityMedium,
		Message:  fmt.Sprintf("answer shares only %d significant words with the question", shared),
	}
}

func checkDifficulty(item catalog.Item) []Issue {
	combined := strings.ToLower(item.CombinedText())
	hasAdvanced := false
	for _, marker := range advancedMarkers {
		if strings.Contains(combined, marker) {
			hasAdvanced = true
			break
		}
	}

	switch item.Difficulty {
	case catalog.DifficultyBeginner:
		if hasAdvanced {
			return []Issue{{
				Kind:     KindDifficultyMismatch,
				Severity: SeverityLow,
				Message:  "beginner item uses advanced terminology",
			}}
		}
	case catalog.DifficultyAdvanced:
		if !hasAdvanced && len(combined) < advancedLengthFloor {
			return []Issue{{
				Kind:     KindDifficultyMismatch,
				Severity: SeverityLow,
				Message:  "advanced item is short and shows no advanced vocabulary",
			}}
		}
	}
	return nil
}

// containsToken reports whether needle occurs in haystack on word
// boundaries, so "todo" does not match inside "autodoc".
func containsToken(haystack, needle string) bool {
	idx := 0
	for {
		pos := strings.Index(haystack[idx:], needle)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(needle)
		beforeOK := start == 0 || !isWordByte(haystack[start-1])
		afterOK := end == len(haystack) || !isWordByte(haystack[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
