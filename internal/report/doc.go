// Package report aggregates per-file outcomes into the tables the CLI prints:
// savings by directory, savings by extension, and the run totals.
package report
