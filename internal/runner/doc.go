// Package runner orchestrates a review pass: it pulls candidate items,
// runs the deterministic checks, the external scorer, and the duplicate
// scan, routes the combined findings, and records every outcome in the
// work queue and audit ledger.
package runner
