// Package queue implements the durable work queue coordinating producer and
// consumer bots. Work items move through a strict state machine
// (pending -> processing -> completed|failed) enforced with conditional
// updates at the database, which is the only concurrency primitive the
// system relies on. Insertion is idempotent per (item, type, action) while
// a pending row exists; terminal rows accumulate until cleanup.
package queue
