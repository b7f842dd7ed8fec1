// Package deps reports the availability of the external binaries mediapress
// shells out to. Image work is pure Go; video work needs ffmpeg and ffprobe on
// the PATH.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency mediapress relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the external binaries a run may need.
func Requirements() []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     "ffmpeg",
			Description: "video transcoding; without it videos are copied verbatim",
			Optional:    true,
		},
		{
			Name:        "FFprobe",
			Command:     "ffprobe",
			Description: "video stream inspection; enables same-codec skip",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// VideoToolsAvailable reports whether both ffmpeg and ffprobe resolve.
func VideoToolsAvailable() bool {
	for _, status := range CheckBinaries(Requirements()) {
		if !status.Available {
			return false
		}
	}
	return true
}
