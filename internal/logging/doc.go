// Package logging builds the slog loggers curator uses and standardizes
// structured field names and context propagation across components.
package logging
