// Package ledger maintains the append-only audit log of bot actions.
// Every state-changing event (verify, flag, claim, complete, fail) gets a
// row; nothing is ever updated or deleted. The log doubles as the dedup
// signal for "skip items this bot judged recently".
package ledger
