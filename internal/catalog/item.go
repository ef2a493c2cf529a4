package catalog

import "strings"

// Difficulty tiers recognized by the analyzer.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Item is a content unit in the shared corpus. Curator only reads items;
// mutations happen downstream via enqueued work items.
type Item struct {
	ID            int64
	Channel       string
	SubChannel    string
	Question      string
	Answer        string
	Explanation   string
	Difficulty    string
	Tags          []string
	Keywords      []string
	VoiceSuitable bool
	Active        bool
}

// CombinedText joins the item's free-text fields for whole-item checks.
func (i Item) CombinedText() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{i.Question, i.Answer, i.Explanation} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}
