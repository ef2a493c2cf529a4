// Package catalog models the shared content corpus and exposes the read
// queries the analysis pipeline needs: candidate selection with ledger-based
// dedup, point lookup, and bounded same-channel text pools.
package catalog
