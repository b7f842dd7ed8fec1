package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"mediapress/internal/deps"
	"mediapress/internal/pipeline"
	"mediapress/internal/report"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var opts pipeline.Options
	var workersFlag int
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compress a media tree into a mirrored output tree",
		Long: "Walks the input tree, recompresses every image and video, and places\n" +
			"the smaller of original and rendition into the output tree. Files no\n" +
			"codec handles are copied verbatim, so the output holds exactly one\n" +
			"file per input.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			if workersFlag > 0 {
				cfg.Run.Workers = workersFlag
			}
			if !deps.VideoToolsAvailable() {
				fmt.Fprintln(cmd.ErrOrStderr(),
					"ffmpeg/ffprobe not found; videos will be copied verbatim (see `mediapress deps`)")
			}

			progress := newProgress(cmd, noProgress)
			runner := pipeline.NewRunner(cfg, logger)
			summary, err := runner.Run(cmd.Context(), opts, progress)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprint(cmd.OutOrStdout(), report.RenderRun(summary))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.InputDir, "input", "i", "", "Directory tree to compress")
	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", "", "Destination for the mirrored tree")
	cmd.Flags().StringVarP(&opts.TempDir, "temp", "t", "", "Scratch directory for in-flight renditions")
	cmd.Flags().BoolVar(&opts.DeleteExisting, "delete-existing", false, "Replace pre-existing output and temp trees")
	cmd.Flags().IntVarP(&workersFlag, "workers", "w", 0, "Parallel jobs (0 = one per CPU)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Suppress the progress bar")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

// newProgress returns a per-file callback driving a terminal progress bar, or
// nil when stderr is not a TTY or the bar was disabled.
func newProgress(cmd *cobra.Command, disabled bool) pipeline.ProgressFunc {
	if disabled {
		return nil
	}
	stderr, ok := cmd.ErrOrStderr().(*os.File)
	if !ok || !isatty.IsTerminal(stderr.Fd()) {
		return nil
	}

	var bar *progressbar.ProgressBar
	return func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(stderr),
				progressbar.OptionSetDescription("compressing"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(done)
	}
}
