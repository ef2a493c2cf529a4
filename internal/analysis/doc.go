// Package analysis implements the deterministic rule engine that inspects
// content items. Four independent check families (structural, content,
// relevance, voice-readiness) produce typed, severity-tagged issues plus
// descriptive metrics. Analysis is pure: no I/O, no persistence.
package analysis
