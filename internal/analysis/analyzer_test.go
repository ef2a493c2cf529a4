package analysis_test

import (
	"strings"
	"testing"

	"curator/internal/analysis"
	"curator/internal/catalog"
)

func findIssue(issues []analysis.Issue, kind analysis.Kind) *analysis.Issue {
	for i := range issues {
		if issues[i].Kind == kind {
			return &issues[i]
		}
	}
	return nil
}

func healthyItem() catalog.Item {
	return catalog.Item{
		ID:          1,
		Channel:     "golang",
		Question:    "How do goroutines communicate safely in Go programs?",
		Answer:      "Goroutines communicate through channels, which provide synchronized message passing between concurrent goroutines without explicit locks.",
		Explanation: "Channels carry typed values between goroutines. Sends and receives block until both sides are ready, which makes them a synchronization point as well as a data conduit.",
		Difficulty:  catalog.DifficultyIntermediate,
		Tags:        []string{"concurrency", "channels", "goroutines"},
	}
}

func TestAnalyzeHealthyItemHasNoIssues(t *testing.T) {
	issues, metrics := analysis.New().Analyze(healthyItem())
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
	if metrics.AnswerLength == 0 || metrics.TagCount != 3 {
		t.Fatalf("unexpected metrics: %+v", metrics)
	}
}

func TestAnalyzeShortAnswerMissingExplanation(t *testing.T) {
	item := healthyItem()
	item.Answer = "Channels :)"
	item.Explanation = ""

	issues, _ := analysis.New().Analyze(item)

	short := findIssue(issues, analysis.KindShortAnswer)
	if short == nil || short.Severity != analysis.SeverityHigh {
		t.Fatalf("expected high short_answer issue, got %v", issues)
	}
	missing := findIssue(issues, analysis.KindMissingExplanation)
	if missing == nil || missing.Severity != analysis.SeverityHigh {
		t.Fatalf("expected high missing_explanation issue, got %v", issues)
	}
}

func TestAnalyzeBehavioralQuestionIsCritical(t *testing.T) {
	item := healthyItem()
	item.Question = "Tell me about yourself and your career goals."

	issues, _ := analysis.New().Analyze(item)

	found := findIssue(issues, analysis.KindIrrelevantBehavioral)
	if found == nil {
		t.Fatalf("expected irrelevant_behavioral issue, got %v", issues)
	}
	if found.Severity != analysis.SeverityCritical {
		t.Fatalf("expected critical severity, got %s", found.Severity)
	}
}

func TestAnalyzeMissingPunctuationIsLow(t *testing.T) {
	item := healthyItem()
	item.Question = "How do goroutines communicate safely in Go programs"

	issues, _ := analysis.New().Analyze(item)

	found := findIssue(issues, analysis.KindMissingPunctuation)
	if found == nil || found.Severity != analysis.SeverityLow {
		t.Fatalf("expected low missing_punctuation issue, got %v", issues)
	}
}

func TestAnalyzeTruncationMarkers(t *testing.T) {
	item := healthyItem()
	item.Answer = item.Answer + " and there are more details, etc."

	issues, _ := analysis.New().Analyze(item)

	if found := findIssue(issues, analysis.KindTruncatedAnswer); found == nil || found.Severity != analysis.SeverityHigh {
		t.Fatalf("expected high truncated_answer issue, got %v", issues)
	}
}

func TestAnalyzePlaceholderText(t *testing.T) {
	item := healthyItem()
	item.Explanation = "TODO: write a proper explanation of channel semantics for this answer."

	issues, _ := analysis.New().Analyze(item)

	if found := findIssue(issues, analysis.KindPlaceholderText); found == nil || found.Severity != analysis.SeverityHigh {
		t.Fatalf("expected high placeholder_text issue, got %v", issues)
	}
}

func TestAnalyzePlaceholderIgnoresEmbeddedWords(t *testing.T) {
	item := healthyItem()
	item.Explanation = strings.Replace(item.Explanation, "Channels", "Autodoc-generated channels", 1)

	issues, _ := analysis.New().Analyze(item)

	if found := findIssue(issues, analysis.KindPlaceholderText); found != nil {
		t.Fatalf("did not expect placeholder issue for embedded token: %v", found)
	}
}

func TestAnalyzeAnswerMismatch(t *testing.T) {
	item := healthyItem()
	item.Question = "What indexing strategies keep relational database queries fast under heavy concurrent write workloads?"
	// Answer shares no significant vocabulary with the question.
	item.Answer = "Penguins huddle together during antarctic winters, rotating positions so every bird spends time sheltered from the wind."

	issues, _ := analysis.New().Analyze(item)

	if found := findIssue(issues, analysis.KindAnswerMismatch); found == nil || found.Severity != analysis.SeverityMedium {
		t.Fatalf("expected medium answer_mismatch issue, got %v", issues)
	}
}

func TestAnalyzeDuplicateExplanation(t *testing.T) {
	item := healthyItem()
	item.Explanation = item.Answer

	issues, _ := analysis.New().Analyze(item)

	if found := findIssue(issues, analysis.KindDuplicateExplanation); found == nil || found.Severity != analysis.SeverityMedium {
		t.Fatalf("expected medium duplicate_explanation issue, got %v", issues)
	}
}

func TestAnalyzeDifficultyMismatch(t *testing.T) {
	item := healthyItem()
	item.Difficulty = catalog.DifficultyBeginner
	item.Explanation = item.Explanation + " This relies on linearizability guarantees under quorum replication."

	issues, _ := analysis.New().Analyze(item)

	if found := findIssue(issues, analysis.KindDifficultyMismatch); found == nil || found.Severity != analysis.SeverityLow {
		t.Fatalf("expected low difficulty_mismatch issue, got %v", issues)
	}
}

func TestAnalyzeOffTopicChannel(t *testing.T) {
	item := catalog.Item{
		ID:          2,
		Channel:     "kubernetes",
		Question:    "What makes sourdough bread rise overnight without commercial yeast?",
		Answer:      "Wild yeast and lactobacilli in the starter ferment the dough slowly, producing carbon dioxide that leavens the loaf overnight.",
		Explanation: "A mature starter culture maintains a stable mix of wild yeast and bacteria. Long fermentation develops flavor and gluten structure at the same time.",
		Difficulty:  catalog.DifficultyIntermediate,
		Tags:        []string{"baking", "fermentation", "sourdough"},
	}

	issues, _ := analysis.New().Analyze(item)

	if found := findIssue(issues, analysis.KindOffTopicChannel); found == nil || found.Severity != analysis.SeverityMedium {
		t.Fatalf("expected medium off_topic_channel issue, got %v", issues)
	}
}

func TestAnalyzeUnknownChannelSkipsVocabCheck(t *testing.T) {
	item := healthyItem()
	item.Channel = "gardening"

	issues, _ := analysis.New().Analyze(item)

	if found := findIssue(issues, analysis.KindOffTopicChannel); found != nil {
		t.Fatalf("unknown channel should not be vocabulary-checked: %v", found)
	}
}

func TestAnalyzeTagIssues(t *testing.T) {
	item := healthyItem()
	item.Tags = nil
	issues, _ := analysis.New().Analyze(item)
	if found := findIssue(issues, analysis.KindMissingTags); found == nil || found.Severity != analysis.SeverityLow {
		t.Fatalf("expected low missing_tags issue, got %v", issues)
	}

	item.Tags = []string{"concurrency"}
	issues, _ = analysis.New().Analyze(item)
	if found := findIssue(issues, analysis.KindFewTags); found == nil || found.Severity != analysis.SeverityInfo {
		t.Fatalf("expected info few_tags issue, got %v", issues)
	}
}

func TestAnalyzeVoiceChecksOnlyWhenSuitable(t *testing.T) {
	item := healthyItem()
	item.Keywords = []string{"channels"}

	issues, _ := analysis.New().Analyze(item)
	if found := findIssue(issues, analysis.KindFewKeywords); found != nil {
		t.Fatalf("voice checks must not run for non-voice items: %v", found)
	}

	item.VoiceSuitable = true
	issues, _ = analysis.New().Analyze(item)
	if found := findIssue(issues, analysis.KindFewKeywords); found == nil || found.Severity != analysis.SeverityMedium {
		t.Fatalf("expected medium few_keywords issue, got %v", issues)
	}
}

func TestAnalyzeVoiceKeywordQuality(t *testing.T) {
	item := healthyItem()
	item.VoiceSuitable = true
	item.Keywords = []string{"channels", "goroutines", "select", "mutex", "sync"}

	issues, _ := analysis.New().Analyze(item)

	if found := findIssue(issues, analysis.KindWeakKeywords); found == nil || found.Severity != analysis.SeverityLow {
		t.Fatalf("expected low weak_keywords issue, got %v", issues)
	}
}

func TestAnalyzeVoiceSentenceCeiling(t *testing.T) {
	item := healthyItem()
	item.VoiceSuitable = true
	item.Keywords = []string{"channel communication", "goroutine synchronization"}
	item.Answer = "One. Two. Three. Four. Five. Six. Seven sentences keep the answer going far longer than any spoken delivery should run."

	issues, _ := analysis.New().Analyze(item)

	if found := findIssue(issues, analysis.KindLongSpokenAnswer); found == nil || found.Severity != analysis.SeverityInfo {
		t.Fatalf("expected info long_spoken_answer issue, got %v", issues)
	}
}

func TestSummarizeOrdersWorstFirst(t *testing.T) {
	issues := []analysis.Issue{
		{Kind: analysis.KindFewTags, Severity: analysis.SeverityInfo},
		{Kind: analysis.KindIrrelevantBehavioral, Severity: analysis.SeverityCritical},
		{Kind: analysis.KindShortAnswer, Severity: analysis.SeverityHigh},
	}
	summary := analysis.Summarize(issues, 2)
	if !strings.HasPrefix(summary, "critical:irrelevant_behavioral") {
		t.Fatalf("expected critical first, got %q", summary)
	}
	if !strings.Contains(summary, "...") {
		t.Fatalf("expected truncation marker, got %q", summary)
	}
}
