package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packsnap/packsnap/internal/output"
	"github.com/packsnap/packsnap/internal/packreader"
)

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestBuildWritesPackAndRenamesIntoPlace(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "a.go"), "package a\n")
	writeTestFile(t, filepath.Join(dir, "b.go"), "package b\n")

	projectPath := filepath.Join(dir, "myproj")
	require.NoError(t, Build(projectPath, output.NopSink{}))

	packPath := projectPath + ".qgd"
	_, err := os.Stat(packPath)
	require.NoError(t, err)
	_, err = os.Stat(packPath + "_")
	assert.True(t, os.IsNotExist(err))

	f, err := os.Open(packPath)
	require.NoError(t, err)
	defer f.Close()

	files, err := packreader.ReadFileList(f)
	require.NoError(t, err)
	require.Len(t, files, 2)
}

func TestBuildSkipsUnreadableFileWithoutFailing(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "ok.go"), "package ok\n")

	broken := filepath.Join(dir, "broken.go")
	require.NoError(t, os.Symlink(filepath.Join(dir, "does-not-exist"), broken))

	var reported []string
	sink := recordingErrSink{onError: func(msg string) { reported = append(reported, msg) }}

	projectPath := filepath.Join(dir, "myproj")
	require.NoError(t, Build(projectPath, sink))

	require.Len(t, reported, 1)
	assert.Contains(t, reported[0], "broken.go")

	f, err := os.Open(projectPath + ".qgd")
	require.NoError(t, err)
	defer f.Close()

	files, err := packreader.ReadFileList(f)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "ok.go", files[0].Path)
}

type recordingErrSink struct {
	onError func(string)
}

func (s recordingErrSink) Print(format string, args ...any) {}
func (s recordingErrSink) Error(format string, args ...any) {
	if s.onError != nil {
		s.onError(fmt.Sprintf(format, args...))
	}
}
