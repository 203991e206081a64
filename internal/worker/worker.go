package worker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"srtpost/internal/config"
	"srtpost/internal/pipeline"
)

// lockRetryDelay is how often a busy subtitle lock is retried.
const lockRetryDelay = 100 * time.Millisecond

var (
	// ErrOutputPathAmbiguous is returned when an explicit output path is given
	// for more than one input file.
	ErrOutputPathAmbiguous = errors.New("output path requires exactly one input file")

	// ErrDuplicateOutput is returned when two inputs would be written to the
	// same file.
	ErrDuplicateOutput = errors.New("inputs map to the same output file")
)

// Options configures the worker.
type Options struct {
	Inputs     []string
	OutputPath string
	OutputDir  string
	DryRun     bool
	Jobs       int
	Extensions []string
	Lock       bool
	Settings   *config.SubtitleSettings
}

// Result describes what happened to one input file.
type Result struct {
	Input   string
	Output  string
	Content string
	Report  *pipeline.Report
	Skipped bool
	Written bool
	Err     error
}

// Run post-processes every subtitle file named by opts.Inputs. Directories are
// walked for files with one of opts.Extensions. Results are returned in input
// order; the error joins every per-file failure.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	files, err := collectFiles(opts.Inputs, opts.Extensions)
	if err != nil {
		return nil, err
	}
	if opts.OutputPath != "" && len(files) != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrOutputPathAmbiguous, len(files))
	}
	if len(files) == 0 {
		slog.Warn("no subtitle files found", "inputs", opts.Inputs)
		return nil, nil
	}
	if err := checkOutputs(files, opts); err != nil {
		return nil, err
	}

	slog.Info("processing subtitle files", "files", len(files), "jobs", opts.Jobs)

	var results []Result
	if opts.Jobs > 1 && len(files) > 1 {
		results, err = processConcurrent(ctx, files, opts)
	} else {
		results, err = processSequential(ctx, files, opts)
	}
	if err != nil {
		return results, err
	}

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Input, r.Err))
		}
	}
	return results, errors.Join(errs...)
}

// sourceFile is one input. Rel is the path that output directories mirror:
// the path below the walked root, or the base name for plain file arguments.
type sourceFile struct {
	Path string
	Rel  string
}

// collectFiles expands directories into matching files. Plain file arguments
// are kept whatever their extension, including ones that do not exist.
func collectFiles(inputs, extensions []string) ([]sourceFile, error) {
	var files []sourceFile
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil || !info.IsDir() {
			files = append(files, sourceFile{Path: input, Rel: filepath.Base(input)})
			continue
		}

		var found []sourceFile
		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !hasExtension(path, extensions) {
				return nil
			}
			rel, err := filepath.Rel(input, path)
			if err != nil {
				return err
			}
			found = append(found, sourceFile{Path: path, Rel: rel})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", input, err)
		}
		slices.SortFunc(found, func(a, b sourceFile) int {
			return strings.Compare(a.Path, b.Path)
		})
		files = append(files, found...)
	}
	return files, nil
}

// checkOutputs rejects batches in which two inputs share a destination.
func checkOutputs(files []sourceFile, opts Options) error {
	seen := make(map[string]string, len(files))
	for _, f := range files {
		dest := outputPath(f, opts)
		if abs, err := filepath.Abs(dest); err == nil {
			dest = abs
		}
		if prev, ok := seen[dest]; ok {
			return fmt.Errorf("%w: %s and %s", ErrDuplicateOutput, prev, f.Path)
		}
		seen[dest] = f.Path
	}
	return nil
}

func hasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

func outputPath(f sourceFile, opts Options) string {
	switch {
	case opts.OutputPath != "":
		return opts.OutputPath
	case opts.OutputDir != "":
		return filepath.Join(opts.OutputDir, f.Rel)
	}
	return f.Path
}

// processFile runs the pipeline on one file. A missing or empty file is
// skipped rather than treated as an error.
func processFile(ctx context.Context, f sourceFile, opts Options) Result {
	path := f.Path
	res := Result{Input: path, Output: outputPath(f, opts)}

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		slog.Warn("subtitle file not found, skipping", "file", path)
		res.Skipped = true
		return res
	}

	// In-place rewrites hold the lock from the read through the rename.
	if !opts.DryRun && opts.Lock && samePath(path, res.Output) {
		unlock, err := lockFile(ctx, path)
		if err != nil {
			res.Err = err
			return res
		}
		defer unlock()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("subtitle file not found, skipping", "file", path)
		res.Skipped = true
		return res
	}
	if err != nil {
		res.Err = fmt.Errorf("read subtitle: %w", err)
		return res
	}
	if len(bytes.TrimSpace(data)) == 0 {
		slog.Info("subtitle file is empty, skipping", "file", path)
		res.Skipped = true
		return res
	}

	start := time.Now()
	res.Content, res.Report = pipeline.Process(data, opts.Settings)
	slog.Info("subtitle processed",
		"file", filepath.Base(path),
		"cues_in", res.Report.Parsed,
		"cues_out", res.Report.Output,
		"warnings", len(res.Report.Warnings),
		"elapsed", time.Since(start).Round(time.Millisecond))
	for _, w := range res.Report.Warnings {
		if !w.Kind.Informational() {
			slog.Debug("subtitle warning", "file", filepath.Base(path), "warning", w.String())
		}
	}

	if opts.DryRun {
		return res
	}
	if err := writeOutput(res.Output, res.Content); err != nil {
		res.Err = err
		return res
	}
	res.Written = true
	slog.Info("SRT file saved", "path", res.Output)
	return res
}

// lockFile takes the advisory lock on path+".lock", retrying until ctx is
// done. The lock file is left in place after release.
func lockFile(ctx context.Context, path string) (func(), error) {
	fl := flock.New(path + ".lock")
	ok, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("acquire lock: %s is busy", path)
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			slog.Warn("failed to release subtitle lock", "path", fl.Path(), "err", err)
		}
	}, nil
}

// writeOutput replaces dest with content.
func writeOutput(dest, content string) error {
	if dir := filepath.Dir(dest); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	return writeFileAtomic(dest, []byte(content+"\n"))
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write SRT file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write SRT file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write SRT file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write SRT file: %w", err)
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
