// Package main hosts the curator CLI entrypoint and command graph.
//
// The Cobra-based command tree runs review passes, inspects and maintains
// the work queue, and scaffolds configuration. It centralizes configuration
// resolution and structured logging setup so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
