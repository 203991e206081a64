package worker

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
)

// processSequential processes files one at a time.
func processSequential(ctx context.Context, files []sourceFile, opts Options) ([]Result, error) {
	results := make([]Result, 0, len(files))

	for i, file := range files {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		slog.Debug("processing file",
			"file", filepath.Base(file.Path),
			"progress", fmt.Sprintf("%d/%d", i+1, len(files)))

		results = append(results, processFile(ctx, file, opts))
	}

	return results, nil
}
