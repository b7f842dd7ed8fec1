package video

import (
	"encoding/json"
	"fmt"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Stream is one stream entry from ffprobe output.
type Stream struct {
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// Info is the subset of ffprobe output the dispatcher cares about.
type Info struct {
	Streams []Stream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// VideoStream returns the first video stream, or nil when the container holds
// none.
func (i *Info) VideoStream() *Stream {
	for idx := range i.Streams {
		if i.Streams[idx].CodecType == "video" {
			return &i.Streams[idx]
		}
	}
	return nil
}

// DurationSeconds parses the container duration, returning 0 when ffprobe did
// not report one.
func (i *Info) DurationSeconds() float64 {
	seconds, err := strconv.ParseFloat(i.Format.Duration, 64)
	if err != nil {
		return 0
	}
	return seconds
}

// Probe runs ffprobe against path and parses the JSON result.
func Probe(path string) (*Info, error) {
	raw, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return parseProbe(raw)
}

func parseProbe(raw string) (*Info, error) {
	var info Info
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}
	return &info, nil
}

// codecForEncoder maps an ffmpeg encoder name to the codec name ffprobe
// reports for streams it produced.
func codecForEncoder(encoder string) string {
	switch encoder {
	case "libx265":
		return "hevc"
	case "libx264":
		return "h264"
	default:
		return ""
	}
}
