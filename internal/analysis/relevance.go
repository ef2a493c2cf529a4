package analysis

import (
	"fmt"
	"strings"

	"curator/internal/catalog"
)

const minHealthyTagCount = 3

func (a *Analyzer) checkRelevance(item catalog.Item) []Issue {
	var issues []Issue

	if keywords, known := a.vocab[strings.ToLower(item.Channel)]; known {
		combined := strings.ToLower(item.CombinedText())
		found := false
		for _, keyword := range keywords {
			if strings.Contains(combined, keyword) {
				found = true
				break
			}
		}
		if !found {
			issues = append(issues, Issue{
				Kind:     KindOffTopicChannel,
				Severity: SeverityMedium,
				Message:  fmt.Sprintf("no %s channel vocabulary appears in the item text", item.Channel),
			})
		}
	}

	switch {
	case len(item.Tags) == 0:
		issues = append(issues, Issue{
			Kind:     KindMissingTags,
			Severity: SeverityLow,
			Message:  "item has no tags",
		})
	case len(item.Tags) < minHealthyTagCount:
		issues = append(issues, Issue{
			Kind:     KindFewTags,
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("item has only %d tags", len(item.Tags)),
		})
	}

	return issues
}
