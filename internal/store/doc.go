// Package store owns the shared SQLite database used by the work queue,
// the bot ledger, and the item catalog. All cross-process coordination
// happens through this database; callers never hold in-memory locks.
package store
