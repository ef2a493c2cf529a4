// Package similarity finds near-duplicate content items within a channel
// using token-set overlap over a bounded candidate pool.
package similarity
