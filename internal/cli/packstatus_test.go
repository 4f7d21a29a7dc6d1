package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packsnap/packsnap/internal/output"
)

func TestPackFileListReturnsNilForMissingPack(t *testing.T) {
	dir := t.TempDir()
	files, err := PackFileList(filepath.Join(dir, "myproj"))
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestPackFileListReadsAndCachesBuiltPack(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "a.go"), "package a\n")
	writeTestFile(t, filepath.Join(dir, "b.go"), "package b\n")

	projectPath := filepath.Join(dir, "myproj")
	require.NoError(t, Build(projectPath, output.NopSink{}))

	files, err := PackFileList(projectPath)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.go", files[0].Path)
	assert.Equal(t, "b.go", files[1].Path)

	_, err = os.Stat(projectPath + ".qgx")
	require.NoError(t, err)

	// Second call must be served from the cache without error, returning
	// the identical list.
	again, err := PackFileList(projectPath)
	require.NoError(t, err)
	assert.Equal(t, files, again)
}
