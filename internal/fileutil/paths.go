package fileutil

import (
	"path/filepath"
	"strings"
)

// LowerExt returns the lowercase extension of path, including the dot.
// Extension comparisons must never be case-sensitive; camera firmware loves
// uppercase extensions.
func LowerExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// ReplaceExt swaps the extension of path for newExt (which must include the
// dot). A path without an extension gets newExt appended.
func ReplaceExt(path, newExt string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + newExt
}

// StripExt drops the extension from path.
func StripExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}
