package pipeline

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"mediapress/internal/scan"
)

// ProgressFunc is invoked once per completed file with the running totals.
type ProgressFunc func(done, total int)

// runPool maps process over files with bounded parallelism. The first hard
// error cancels outstanding work; results keep input order.
func runPool(ctx context.Context, files []scan.File, workers int, process func(context.Context, scan.File) (FileResult, error), progress ProgressFunc) ([]FileResult, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]FileResult, len(files))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	var mu sync.Mutex
	done := 0
	for idx, file := range files {
		idx, file := idx, file
		group.Go(func() error {
			result, err := process(ctx, file)
			if err != nil {
				return err
			}
			results[idx] = result
			if progress != nil {
				mu.Lock()
				done++
				progress(done, len(files))
				mu.Unlock()
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
