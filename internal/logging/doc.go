// Package logging wraps log/slog with the handlers and attribute helpers used
// across mediapress. The console handler favors readable one-line records for
// interactive runs; the json handler exists for machine consumption.
package logging
