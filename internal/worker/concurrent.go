package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// progressInterval throttles batch progress logging.
const progressInterval = time.Second

// processConcurrent processes files with bounded parallelism. Each file owns
// its own track and report; per-file failures are recorded in the results
// and do not stop the batch.
func processConcurrent(ctx context.Context, files []sourceFile, opts Options) ([]Result, error) {
	slog.Info("starting concurrent processing",
		"files", len(files),
		"max_concurrent", opts.Jobs)

	results := make([]Result, len(files))
	progress := rate.Sometimes{Interval: progressInterval}
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = processFile(gctx, file, opts)

			n := done.Add(1)
			progress.Do(func() {
				slog.Info("batch progress", "done", fmt.Sprintf("%d/%d", n, len(files)))
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return compact(results), err
	}
	return results, nil
}

// compact drops result slots that were never filled because the batch was
// cancelled.
func compact(results []Result) []Result {
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if r.Input != "" {
			out = append(out, r)
		}
	}
	return out
}
