// Package pipeline runs the compression pass: a parallel map of the per-file
// dispatch step over every input file, bounded by the worker setting, followed
// by output verification and temp cleanup. Files are independent; there is no
// shared state beyond the result slice.
package pipeline
