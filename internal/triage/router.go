package triage

import "curator/internal/analysis"

// Action is the routing outcome for an analyzed item.
type Action string

const (
	// ActionNone means the item passed review and no work is created.
	ActionNone Action = ""
	// ActionDelete asks a processor to remove the item from the corpus.
	ActionDelete Action = "delete"
	// ActionImprove asks a processor to rework the item.
	ActionImprove Action = "improve"
)

// Decision pairs the routed action with its queue priority (1 most urgent).
type Decision struct {
	Action   Action
	Priority int
}

// Flagged reports whether the decision requires follow-up work.
func (d Decision) Flagged() bool {
	return d.Action != ActionNone
}

// Decide maps an issue set to an action and priority. The cascade is
// strict: rules evaluate in order and the first match wins. Info-level
// issues never trigger an action on their own.
func Decide(issues []analysis.Issue) Decision {
	counts := analysis.CountBySeverity(issues)
	criticals := counts[analysis.SeverityCritical]
	highs := counts[analysis.SeverityHigh]
	mediums := counts[analysis.SeverityMedium]
	lows := counts[analysis.SeverityLow]

	switch {
	case criticals >= 1:
		return Decision{Action: ActionDelete, Priority: 1}
	case highs >= 2 || (highs >= 1 && mediums >= 2):
		return Decision{Action: ActionImprove, Priority: 2}
	case highs >= 1 || mediums >= 2:
		return Decision{Action: ActionImprove, Priority: 3}
	case mediums >= 1 || lows >= 3:
		return Decision{Action: ActionImprove, Priority: 4}
	default:
		return Decision{Action: ActionNone, Priority: 0}
	}
}
