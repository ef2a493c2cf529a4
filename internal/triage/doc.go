// Package triage routes analyzed items: it maps an issue set to the
// follow-up action (none, improve, delete) and the queue priority that
// action deserves. Routing is a pure function of the issues.
package triage
