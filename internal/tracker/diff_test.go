package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/packsnap/packsnap/pkg/types"
)

func TestDiffReportsNewAndChangedFiles(t *testing.T) {
	files := []types.FileInfo{
		{Path: "a", TimeStamp: 1, FileSize: 10},
		{Path: "b", TimeStamp: 2, FileSize: 20},
		{Path: "c", TimeStamp: 0, FileSize: 0},
	}
	packFiles := []types.FileInfo{
		{Path: "a", TimeStamp: 1, FileSize: 10},
		{Path: "b", TimeStamp: 1, FileSize: 20}, // timestamp differs
	}

	got := Diff(files, packFiles)
	assert.Equal(t, []string{"b", "c"}, got)
}

func TestDiffIgnoresPackEntriesAbsentFromInput(t *testing.T) {
	files := []types.FileInfo{
		{Path: "b", TimeStamp: 1, FileSize: 1},
	}
	packFiles := []types.FileInfo{
		{Path: "a", TimeStamp: 1, FileSize: 1}, // deleted; not reported
		{Path: "b", TimeStamp: 1, FileSize: 1},
	}

	got := Diff(files, packFiles)
	assert.Empty(t, got)
}

func TestDiffEmptyPackReportsEveryFile(t *testing.T) {
	files := []types.FileInfo{
		{Path: "a", TimeStamp: 1, FileSize: 1},
		{Path: "b", TimeStamp: 1, FileSize: 1},
	}

	got := Diff(files, nil)
	assert.Equal(t, []string{"a", "b"}, got)
}
