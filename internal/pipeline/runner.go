package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"mediapress/internal/config"
	"mediapress/internal/faults"
	"mediapress/internal/imaging"
	"mediapress/internal/logging"
	"mediapress/internal/scan"
	"mediapress/internal/verify"
	"mediapress/internal/video"
)

// Options are the per-run inputs the CLI resolves from flags.
type Options struct {
	InputDir  string
	OutputDir string
	TempDir   string
	// DeleteExisting removes pre-existing output and temp trees instead of
	// refusing to run.
	DeleteExisting bool
}

// Summary is the final accounting of a completed run.
type Summary struct {
	RunID       string
	Results     []FileResult
	Compressed  int
	Copied      int
	InputBytes  int64
	OutputBytes int64
	Elapsed     time.Duration
}

// Runner owns a full compression run: preflight, scan, mirror, pool, verify,
// cleanup.
type Runner struct {
	cfg        *config.Config
	logger     *slog.Logger
	dispatcher *Dispatcher
}

// NewRunner builds a runner from configuration.
func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	images := imaging.Settings{
		MinDimension: cfg.Images.MinDimension,
		JPEGQuality:  cfg.Images.JPEGQuality,
	}
	videoSettings := video.Settings{
		Codec:         cfg.Video.Codec,
		CRF:           cfg.Video.CRF,
		SkipSameCodec: cfg.Video.SkipSameCodec,
	}
	return &Runner{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "runner"),
		dispatcher: NewDispatcher(cfg.Run.Suffix, images, videoSettings, logger),
	}
}

// Run executes the whole pipeline. The progress callback may be nil.
func (r *Runner) Run(ctx context.Context, opts Options, progress ProgressFunc) (*Summary, error) {
	started := time.Now()
	runID := uuid.NewString()
	logger := r.logger.With(logging.String(logging.FieldRunID, runID))

	opts, err := r.resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	if err := r.prepareDirectories(opts); err != nil {
		return nil, err
	}

	// One producer per destination; a second concurrent run into the same
	// output tree would corrupt the 1:1 mapping.
	lockPath := opts.OutputDir + ".lock"
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "runner", "acquire lock", lockPath, err)
	}
	if !locked {
		return nil, faults.Wrap(faults.ErrConfiguration, "runner", "acquire lock",
			fmt.Sprintf("another run is already producing into %s", opts.OutputDir), nil)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lockPath)
	}()

	tree, err := scan.Walk(opts.InputDir)
	if err != nil {
		return nil, faults.Wrap(faults.ErrValidation, "runner", "scan input", "", err)
	}
	logger.Info("scanned input tree",
		logging.Int("files", len(tree.Files)),
		logging.Int64("bytes", tree.TotalSize()))

	if collisions := tree.Collisions(); len(collisions) > 0 {
		names := make([]string, 0, len(collisions))
		for key := range collisions {
			names = append(names, key)
		}
		sort.Strings(names)
		return nil, faults.Wrap(faults.ErrValidation, "runner", "check collisions",
			fmt.Sprintf("inputs collide on output names: %s", strings.Join(names, ", ")), nil)
	}

	for _, root := range []string{opts.OutputDir, opts.TempDir} {
		if err := scan.MirrorDirs(opts.InputDir, root); err != nil {
			return nil, faults.Wrap(faults.ErrValidation, "runner", "mirror directories", root, err)
		}
	}

	results, err := runPool(ctx, tree.Files, r.cfg.Run.Workers, func(ctx context.Context, file scan.File) (FileResult, error) {
		return r.dispatcher.Process(ctx, file, opts.TempDir, opts.OutputDir)
	}, progress)
	if err != nil {
		return nil, err
	}

	verified, err := verify.Trees(opts.InputDir, opts.OutputDir, verify.Options{
		Suffix:         r.cfg.Run.Suffix,
		MaxCompression: r.cfg.Run.MaxCompression,
	})
	if err != nil {
		return nil, err
	}
	if err := verify.TempClean(opts.TempDir); err != nil {
		return nil, err
	}
	if err := os.RemoveAll(opts.TempDir); err != nil {
		return nil, faults.Wrap(faults.ErrValidation, "runner", "remove temp", opts.TempDir, err)
	}

	summary := &Summary{
		RunID:      runID,
		Results:    results,
		Compressed: verified.Compressed,
		Copied:     verified.Copied,
		Elapsed:    time.Since(started),
	}
	for _, result := range results {
		summary.InputBytes += result.InputSize
		summary.OutputBytes += result.OutputSize
	}
	logger.Info("run complete",
		logging.Int("compressed", summary.Compressed),
		logging.Int("copied", summary.Copied),
		logging.Int64("bytes_in", summary.InputBytes),
		logging.Int64("bytes_out", summary.OutputBytes),
		logging.Duration("elapsed", summary.Elapsed))
	return summary, nil
}

func (r *Runner) resolveOptions(opts Options) (Options, error) {
	var err error
	if opts.InputDir, err = config.ExpandPath(opts.InputDir); err != nil {
		return opts, faults.Wrap(faults.ErrConfiguration, "runner", "resolve input", "", err)
	}
	if opts.OutputDir, err = config.ExpandPath(opts.OutputDir); err != nil {
		return opts, faults.Wrap(faults.ErrConfiguration, "runner", "resolve output", "", err)
	}
	if opts.TempDir == "" {
		opts.TempDir = r.cfg.Run.TempDir
	}
	if opts.TempDir == "" {
		opts.TempDir = opts.OutputDir + ".tmp"
	}
	if opts.TempDir, err = config.ExpandPath(opts.TempDir); err != nil {
		return opts, faults.Wrap(faults.ErrConfiguration, "runner", "resolve temp", "", err)
	}

	if opts.InputDir == opts.OutputDir || opts.InputDir == opts.TempDir || opts.OutputDir == opts.TempDir {
		return opts, faults.Wrap(faults.ErrConfiguration, "runner", "check directories",
			"input, output, and temp directories must be three distinct paths", nil)
	}
	for _, dir := range []string{opts.OutputDir, opts.TempDir} {
		if insideTree(opts.InputDir, dir) {
			return opts, faults.Wrap(faults.ErrConfiguration, "runner", "check directories",
				fmt.Sprintf("%s sits inside the input tree and would be scanned", dir), nil)
		}
	}

	info, err := os.Stat(opts.InputDir)
	if err != nil || !info.IsDir() {
		return opts, faults.Wrap(faults.ErrConfiguration, "runner", "check input",
			fmt.Sprintf("input directory does not exist: %s", opts.InputDir), err)
	}
	return opts, nil
}

func (r *Runner) prepareDirectories(opts Options) error {
	for _, dir := range []string{opts.OutputDir, opts.TempDir} {
		if opts.DeleteExisting {
			if err := os.RemoveAll(dir); err != nil {
				return faults.Wrap(faults.ErrConfiguration, "runner", "delete existing", dir, err)
			}
			continue
		}
		if _, err := os.Stat(dir); err == nil {
			return faults.Wrap(faults.ErrConfiguration, "runner", "check directories",
				fmt.Sprintf("%s already exists; pass --delete-existing to replace it", dir), nil)
		} else if !errors.Is(err, os.ErrNotExist) {
			return faults.Wrap(faults.ErrConfiguration, "runner", "stat directory", dir, err)
		}
	}
	return nil
}

func insideTree(root, candidate string) bool {
	rel, err := filepath.Rel(root, candidate)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel))
}
