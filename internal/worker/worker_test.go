package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"srtpost/internal/config"
)

const mergeable = "1\n00:00:00,000 --> 00:00:01,000\n你好\n\n2\n00:00:01,050 --> 00:00:02,000\n世界\n"

const merged = "1\n00:00:00,000 --> 00:00:02,000\n你好世界\n"

func testOptions(inputs ...string) Options {
	settings := config.DefaultSubtitleSettings()
	return Options{
		Inputs:     inputs,
		Jobs:       1,
		Extensions: []string{".srt"},
		Lock:       true,
		Settings:   &settings,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun_InPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.srt")
	writeFile(t, path, mergeable)

	results, err := Run(context.Background(), testOptions(path))
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.True(t, results[0].Written)
	assert.Equal(t, 1, results[0].Report.Merged)
	assert.Equal(t, merged, readFile(t, path))

	assert.FileExists(t, path+".lock")
}

func TestRun_InPlaceWaitsForHeldLock(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.srt")
	writeFile(t, path, mergeable)

	held := flock.New(path + ".lock")
	require.NoError(t, held.Lock())
	defer held.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	results, err := Run(ctx, testOptions(path))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Len(t, results, 1)
	assert.False(t, results[0].Written)
	assert.Nil(t, results[0].Report, "file must not be read while locked")
	assert.Equal(t, mergeable, readFile(t, path))
}

func TestRun_OutputPath(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.srt")
	out := filepath.Join(dir, "out", "result.srt")
	writeFile(t, in, mergeable)

	opts := testOptions(in)
	opts.OutputPath = out
	_, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, mergeable, readFile(t, in), "input must be untouched")
	assert.Equal(t, merged, readFile(t, out))
}

func TestRun_OutputPathNeedsSingleInput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.srt"), mergeable)
	writeFile(t, filepath.Join(dir, "b.srt"), mergeable)

	opts := testOptions(dir)
	opts.OutputPath = filepath.Join(dir, "out.srt")
	_, err := Run(context.Background(), opts)
	require.ErrorIs(t, err, ErrOutputPathAmbiguous)
}

func TestRun_DryRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.srt")
	writeFile(t, path, mergeable)

	opts := testOptions(path)
	opts.DryRun = true
	results, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.False(t, results[0].Written)
	assert.Equal(t, merged, results[0].Content+"\n")
	assert.Equal(t, mergeable, readFile(t, path))
}

func TestRun_MissingAndEmptyAreSkipped(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.srt")
	writeFile(t, empty, "  \n\n")

	results, err := Run(context.Background(), testOptions(filepath.Join(dir, "missing.srt"), empty))
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, r := range results {
		assert.True(t, r.Skipped, r.Input)
		assert.False(t, r.Written, r.Input)
	}
	assert.Equal(t, "  \n\n", readFile(t, empty))
}

func TestRun_DirectoryWalk(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.srt"), mergeable)
	writeFile(t, filepath.Join(dir, "nested", "a.SRT"), mergeable)
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a subtitle")

	results, err := Run(context.Background(), testOptions(dir))
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, filepath.Join(dir, "b.srt"), results[0].Input)
	assert.Equal(t, filepath.Join(dir, "nested", "a.SRT"), results[1].Input)
	assert.Equal(t, "not a subtitle", readFile(t, filepath.Join(dir, "notes.txt")))
}

func TestRun_OutputDir(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "src", "a.srt")
	outDir := filepath.Join(dir, "dst")
	writeFile(t, in, mergeable)

	opts := testOptions(in)
	opts.OutputDir = outDir
	_, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, merged, readFile(t, filepath.Join(outDir, "a.srt")))
}

func TestRun_OutputDirMirrorsTree(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	outDir := filepath.Join(dir, "dst")
	writeFile(t, filepath.Join(src, "a", "x.srt"), mergeable)
	writeFile(t, filepath.Join(src, "b", "x.srt"), "1\n00:00:05,000 --> 00:00:06,000\nhello\n")

	opts := testOptions(src)
	opts.OutputDir = outDir
	results, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, merged, readFile(t, filepath.Join(outDir, "a", "x.srt")))
	assert.Equal(t, "1\n00:00:05,000 --> 00:00:06,000\nhello\n", readFile(t, filepath.Join(outDir, "b", "x.srt")))
	assert.NoFileExists(t, filepath.Join(outDir, "x.srt"))
}

func TestRun_OutputDirRejectsCollisions(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a", "x.srt")
	b := filepath.Join(dir, "b", "x.srt")
	writeFile(t, a, mergeable)
	writeFile(t, b, mergeable)

	opts := testOptions(a, b)
	opts.OutputDir = filepath.Join(dir, "dst")
	_, err := Run(context.Background(), opts)
	require.ErrorIs(t, err, ErrDuplicateOutput)
	assert.NoDirExists(t, filepath.Join(dir, "dst"))
}

func TestRun_Concurrent(t *testing.T) {
	dir := t.TempDir()
	var inputs []string
	for i := range 8 {
		path := filepath.Join(dir, fmt.Sprintf("%02d.srt", i))
		writeFile(t, path, mergeable)
		inputs = append(inputs, path)
	}

	opts := testOptions(inputs...)
	opts.Jobs = 3
	results, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, results, len(inputs))

	for i, r := range results {
		assert.Equal(t, inputs[i], r.Input)
		assert.True(t, r.Written)
		assert.Equal(t, merged, readFile(t, r.Input))
	}
}

func TestRun_Cancelled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.srt")
	writeFile(t, path, mergeable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, testOptions(path))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, mergeable, readFile(t, path))
}

func TestCollectFiles_KeepsExplicitFiles(t *testing.T) {
	files, err := collectFiles([]string{"whatever.txt", "missing.srt"}, []string{".srt"})
	require.NoError(t, err)
	assert.Equal(t, []sourceFile{
		{Path: "whatever.txt", Rel: "whatever.txt"},
		{Path: "missing.srt", Rel: "missing.srt"},
	}, files)
}
