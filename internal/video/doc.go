// Package video transcodes clips to H.265/H.264 through ffmpeg. All encoding
// decisions are ffmpeg's; this package only builds invocations, parses ffprobe
// output, and cleans up after failures.
package video
