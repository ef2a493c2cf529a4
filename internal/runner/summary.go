package runner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"curator/internal/analysis"
	"curator/internal/catalog"
	"curator/internal/scoring"
	"curator/internal/triage"
)

const lowestScoredLimit = 5

// ScoredItem pairs an item with its review outcome for reporting.
type ScoredItem struct {
	ItemID   int64
	Channel  string
	Question string
	Score    float64
	Action   triage.Action
}

// Summary aggregates one review pass for logs and the operator report.
type Summary struct {
	RunID    string
	Mode     Mode
	Reviewed int
	Flagged  int
	Verified int
	Skipped  int
	Failed   int

	BySeverity map[analysis.Severity]int
	ByKind     map[analysis.Kind]int
	ByChannel  map[string]int

	// LowestScored holds the weakest items seen this pass, ascending by
	// score, capped at lowestScoredLimit.
	LowestScored []ScoredItem
}

// NewSummary returns an empty summary for the given run.
func NewSummary(runID string, mode Mode) *Summary {
	return &Summary{
		RunID:      runID,
		Mode:       mode,
		BySeverity: make(map[analysis.Severity]int),
		ByKind:     make(map[analysis.Kind]int),
		ByChannel:  make(map[string]int),
	}
}

// Observe folds one reviewed item into the aggregate counts.
func (s *Summary) Observe(item catalog.Item, issues []analysis.Issue, result scoring.Result, decision triage.Decision) {
	s.Reviewed++
	s.ByChannel[item.Channel]++
	for _, issue := range issues {
		s.BySeverity[issue.Severity]++
		s.ByKind[issue.Kind]++
	}

	if result.Degraded {
		return
	}
	scored := ScoredItem{
		ItemID:   item.ID,
		Channel:  item.Channel,
		Question: truncate(item.Question, 60),
		Score:    result.Overall,
		Action:   decision.Action,
	}
	s.LowestScored = append(s.LowestScored, scored)
	sort.SliceStable(s.LowestScored, func(i, j int) bool {
		return s.LowestScored[i].Score < s.LowestScored[j].Score
	})
	if len(s.LowestScored) > lowestScoredLimit {
		s.LowestScored = s.LowestScored[:lowestScoredLimit]
	}
}

// Render produces the operator-facing report for the pass.
func (s *Summary) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Review pass %s (%s mode)\n", s.RunID, s.Mode)
	fmt.Fprintf(&b, "  reviewed %d, flagged %d, verified %d, skipped %d, failed %d\n",
		s.Reviewed, s.Flagged, s.Verified, s.Skipped, s.Failed)

	if len(s.BySeverity) > 0 {
		b.WriteString("\nIssues by severity:\n")
		b.WriteString(renderCountTable("Severity", severityRows(s.BySeverity)))
		b.WriteString("\n")
	}
	if len(s.ByKind) > 0 {
		b.WriteString("\nIssues by kind:\n")
		b.WriteString(renderCountTable("Kind", kindRows(s.ByKind)))
		b.WriteString("\n")
	}
	if len(s.LowestScored) > 0 {
		b.WriteString("\nLowest scoring items:\n")
		b.WriteString(renderScoredTable(s.LowestScored))
		b.WriteString("\n")
	}
	return b.String()
}

func severityRows(counts map[analysis.Severity]int) [][]string {
	severities := make([]analysis.Severity, 0, len(counts))
	for severity := range counts {
		severities = append(severities, severity)
	}
	sort.Slice(severities, func(i, j int) bool {
		return severities[i].Rank() > severities[j].Rank()
	})
	rows := make([][]string, 0, len(severities))
	for _, severity := range severities {
		rows = append(rows, []string{string(severity), fmt.Sprintf("%d", counts[severity])})
	}
	return rows
}

func kindRows(counts map[analysis.Kind]int) [][]string {
	kinds := make([]analysis.Kind, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if counts[kinds[i]] != counts[kinds[j]] {
			return counts[kinds[i]] > counts[kinds[j]]
		}
		return kinds[i] < kinds[j]
	})
	rows := make([][]string, 0, len(kinds))
	for _, kind := range kinds {
		rows = append(rows, []string{string(kind), fmt.Sprintf("%d", counts[kind])})
	}
	return rows
}

func renderCountTable(label string, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{label, "Count"})
	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1]})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func renderScoredTable(items []ScoredItem) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Item", "Channel", "Score", "Action", "Question"})
	for _, item := range items {
		action := string(item.Action)
		if action == "" {
			action = "-"
		}
		tw.AppendRow(table.Row{item.ItemID, item.Channel, fmt.Sprintf("%.1f", item.Score), action, item.Question})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func truncate(value string, limit int) string {
	runes := []rune(strings.TrimSpace(value))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit]) + "..."
}
