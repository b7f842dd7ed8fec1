package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"mediapress/internal/faults"
	"mediapress/internal/fileutil"
	"mediapress/internal/imaging"
	"mediapress/internal/logging"
	"mediapress/internal/scan"
	"mediapress/internal/video"
)

// Dispatcher classifies a single file and routes it through the matching
// codec, then places the smaller of original and rendition into the output
// tree.
type Dispatcher struct {
	Suffix string
	Images imaging.Settings
	Video  video.Settings

	// Codec hooks, overridable in tests.
	CompressImage func(srcPath, tempPath string, settings imaging.Settings) (string, error)
	CompressVideo func(ctx context.Context, srcPath, tempPath string, settings video.Settings) (string, error)

	logger *slog.Logger
}

// NewDispatcher wires a dispatcher with the real codecs.
func NewDispatcher(suffix string, images imaging.Settings, videoSettings video.Settings, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		Suffix:        suffix,
		Images:        images,
		Video:         videoSettings,
		CompressImage: imaging.Compress,
		CompressVideo: video.Compress,
		logger:        logging.NewComponentLogger(logger, "dispatch"),
	}
}

// Process handles one input file end to end. Codec failures downgrade the
// file to a verbatim copy; only filesystem trouble is a hard error.
func (d *Dispatcher) Process(ctx context.Context, file scan.File, tempRoot, outputRoot string) (FileResult, error) {
	result := FileResult{Rel: file.Rel, Kind: file.Kind, InputSize: file.Size}

	tempPath := filepath.Join(tempRoot, file.Rel)
	outputPath := filepath.Join(outputRoot, file.Rel)

	var (
		rendition string
		err       error
	)
	switch file.Kind {
	case scan.KindImage:
		rendition, err = d.CompressImage(file.Path, tempPath, d.Images)
	case scan.KindVideo:
		rendition, err = d.CompressVideo(ctx, file.Path, tempPath, d.Video)
	default:
		result.Reason = "opaque format"
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		rendition = ""
		switch {
		case errors.Is(err, imaging.ErrUnsupported):
			result.Reason = "unsupported image data"
		case errors.Is(err, video.ErrAlreadyTarget):
			result.Reason = "already target codec"
		default:
			result.Reason = "codec failure"
			d.logger.Warn("codec failed, copying original",
				logging.String(logging.FieldFile, file.Rel),
				logging.Error(err))
		}
	}

	placed, placedErr := d.place(file, rendition, outputPath)
	if placedErr != nil {
		return result, placedErr
	}

	if placed.compressed {
		result.Action = ActionCompressed
		result.Reason = ""
	} else {
		result.Action = ActionCopied
		if result.Reason == "" {
			result.Reason = "original smaller"
		}
	}
	result.OutputRel = placed.rel(outputRoot)
	result.OutputSize = placed.size

	if err := fileutil.PreserveTimes(file.Path, placed.path); err != nil {
		return result, faults.Wrap(faults.ErrValidation, "dispatch", "preserve times", file.Rel, err)
	}
	return result, nil
}

type placement struct {
	path       string
	size       int64
	compressed bool
}

func (p placement) rel(outputRoot string) string {
	rel, err := filepath.Rel(outputRoot, p.path)
	if err != nil {
		return p.path
	}
	return rel
}

// place moves the winning rendition (or the original) to the output tree.
// The temp file never survives this method: it is either moved into the
// output or deleted because the original was smaller.
func (d *Dispatcher) place(file scan.File, rendition, outputPath string) (placement, error) {
	target := outputPath
	compressed := false

	if rendition != "" {
		info, err := os.Stat(rendition)
		switch {
		case err != nil:
			return placement{}, faults.Wrap(faults.ErrValidation, "dispatch", "stat rendition", rendition, err)
		case info.Size() < file.Size:
			// Adopt the extension the codec settled on and tag the name.
			target = fileutil.StripExt(outputPath) + d.Suffix + fileutil.LowerExt(rendition)
			compressed = true
		default:
			if err := os.Remove(rendition); err != nil {
				return placement{}, faults.Wrap(faults.ErrValidation, "dispatch", "drop rendition", rendition, err)
			}
			rendition = ""
		}
	}

	if _, err := os.Stat(target); err == nil {
		// Two inputs mapping to one output means the collision scan missed
		// something; stopping beats silently losing a file.
		return placement{}, faults.Wrap(faults.ErrValidation, "dispatch", "place output",
			fmt.Sprintf("output already exists: %s", target), nil)
	} else if !errors.Is(err, os.ErrNotExist) {
		return placement{}, faults.Wrap(faults.ErrValidation, "dispatch", "stat output", target, err)
	}

	if compressed {
		if err := fileutil.MoveFile(rendition, target); err != nil {
			return placement{}, faults.Wrap(faults.ErrValidation, "dispatch", "move rendition", target, err)
		}
	} else {
		if err := fileutil.CopyFileVerified(file.Path, target); err != nil {
			return placement{}, faults.Wrap(faults.ErrValidation, "dispatch", "copy original", target, err)
		}
	}

	info, err := os.Stat(target)
	if err != nil {
		return placement{}, faults.Wrap(faults.ErrValidation, "dispatch", "stat output", target, err)
	}
	return placement{path: target, size: info.Size(), compressed: compressed}, nil
}
