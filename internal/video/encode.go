package video

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"mediapress/internal/fileutil"
)

// ErrAlreadyTarget marks sources that already use the target codec;
// re-encoding those only burns quality, so the dispatcher copies them.
var ErrAlreadyTarget = errors.New("video already uses target codec")

// Settings controls the video codec.
type Settings struct {
	Codec         string
	CRF           int
	SkipSameCodec bool
}

// Compress transcodes srcPath into the temp tree, forcing an mp4 container so
// H.265 output always has a home. It returns the final temp path written.
// Partial output never survives a failed invocation.
func Compress(ctx context.Context, srcPath, tempPath string, settings Settings) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if settings.SkipSameCodec {
		// A probe failure is not fatal; ffmpeg gets to make its own attempt.
		if info, err := Probe(srcPath); err == nil {
			if stream := info.VideoStream(); stream != nil && stream.CodecName == codecForEncoder(settings.Codec) {
				return "", ErrAlreadyTarget
			}
		}
	}

	finalPath := fileutil.ReplaceExt(tempPath, ".mp4")
	cmd := ffmpeg.Input(srcPath, inputArgs()).
		Output(finalPath, outputArgs(settings)).
		OverWriteOutput().
		Compile()
	err := runCommand(ctx, cmd)
	if err != nil {
		if removeErr := os.Remove(finalPath); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			return "", fmt.Errorf("ffmpeg failed (%w) and partial output stuck around: %v", err, removeErr)
		}
		return "", fmt.Errorf("ffmpeg %s: %w", srcPath, err)
	}
	return finalPath, nil
}

// runCommand runs an already-compiled ffmpeg command and kills it when the
// context is cancelled, so an interrupted run does not leave a transcode
// grinding in the background.
func runCommand(ctx context.Context, cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return ctx.Err()
	case err := <-done:
		return err
	}
}

func inputArgs() ffmpeg.KwArgs {
	// -v error before -i keeps ffmpeg quiet on stderr without hiding failures.
	return ffmpeg.KwArgs{"v": "error"}
}

func outputArgs(settings Settings) ffmpeg.KwArgs {
	kwargs := ffmpeg.KwArgs{
		"c:v": settings.Codec,
		"crf": settings.CRF,
		"c:a": "copy",
		// Retain (most of) the container metadata from the source.
		"movflags":     "use_metadata_tags",
		"map_metadata": "0",
	}
	switch settings.Codec {
	case "libx265":
		// Suppress "x265 [info]:" chatter; errors still surface.
		kwargs["x265-params"] = "log-level=error"
		// hvc1 keeps QuickTime players happy.
		kwargs["tag:v"] = "hvc1"
	case "libx264":
		kwargs["x264-params"] = "log-level=error"
	}
	return kwargs
}
