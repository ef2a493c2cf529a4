package analysis

import (
	"fmt"
	"strings"

	"curator/internal/catalog"
)

const (
	voiceMinKeywords      = 2
	voiceMaxKeywords      = 8
	voiceMaxSentences     = 6
	voiceSingleWordBudget = 2
)

// checkVoiceReadiness applies only to items flagged voice-suitable. Voice
// delivery matches on keywords and reads answers aloud, so the checks bound
// keyword count and quality plus the spoken length of the answer.
func checkVoiceReadiness(item catalog.Item, metrics Metrics) []Issue {
	var issues []Issue

	switch {
	case len(item.Keywords) < voiceMinKeywords:
		issues = append(issues, Issue{
			Kind:     KindFewKeywords,
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("voice item has %d keywords, needs at least %d", len(item.Keywords), voiceMinKeywords),
		})
	case len(item.Keywords) > voiceMaxKeywords:
		issues = append(issues, Issue{
			Kind:     KindManyKeywords,
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("voice item has %d keywords, more than the %d recommended", len(item.Keywords), voiceMaxKeywords),
		})
	}

	if len(item.Keywords) > 0 {
		singleWord := 0
		for _, keyword := range item.Keywords {
			if len(strings.Fields(keyword)) <= 1 {
				singleWord++
			}
		}
		if singleWord*2 > len(item.Keywords) && singleWord > voiceSingleWordBudget {
			issues = append(issues, Issue{
				Kind:     KindWeakKeywords,
				Severity: SeverityLow,
				Message:  fmt.Sprintf("%d of %d keywords are single words, phrases match better", singleWord, len(item.Keywords)),
			})
		}
	}

	if metrics.AnswerSentences > voiceMaxSentences {
		issues = append(issues, Issue{
			Kind:     KindLongSpokenAnswer,
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("answer runs %d sentences, long for spoken delivery", metrics.AnswerSentences),
		})
	}

	return issues
}
