// Package scan enumerates the input tree, classifies files by extension, and
// mirrors the directory skeleton into the output and temp trees before any
// compression starts.
package scan
