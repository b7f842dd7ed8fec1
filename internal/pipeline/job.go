package pipeline

import "mediapress/internal/scan"

// Action records how a file reached the output tree.
type Action int

const (
	// ActionCompressed means the recompressed rendition won and carries the
	// suffix tag.
	ActionCompressed Action = iota
	// ActionCopied means the original was placed verbatim.
	ActionCopied
)

func (a Action) String() string {
	if a == ActionCompressed {
		return "compressed"
	}
	return "copied"
}

// FileResult describes the outcome for a single input file.
type FileResult struct {
	Rel        string
	OutputRel  string
	Kind       scan.Kind
	Action     Action
	// Reason explains a copy: opaque format, original smaller, codec failure,
	// or already at the target codec. Empty for compressed outputs.
	Reason     string
	InputSize  int64
	OutputSize int64
}

// Saved returns the byte reduction for this file (negative never happens;
// the dispatcher keeps the smaller rendition).
func (r FileResult) Saved() int64 {
	return r.InputSize - r.OutputSize
}
