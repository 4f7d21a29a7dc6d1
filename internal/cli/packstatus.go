package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/packsnap/packsnap/internal/packcache"
	"github.com/packsnap/packsnap/internal/packreader"
	"github.com/packsnap/packsnap/internal/project"
	"github.com/packsnap/packsnap/pkg/types"
)

// PackFileList returns the sorted file list for the pack belonging to
// path, consulting the on-disk cache at `<path>.qgx` first: a cache hit
// keyed by the pack's own mtime and size skips decompressing every
// chunk's file table. A missing pack returns (nil, nil) — not an error.
// This short-circuit is only correct for callers that have already
// decided a missing pack is acceptable (handlePackStatus stats the pack
// itself and reports "not built yet"); Watch requires a pack to already
// exist and checks for it before ever calling this function.
func PackFileList(path string) ([]types.FileInfo, error) {
	packPath := project.ReplaceExtension(path, ".qgd")

	info, err := os.Stat(packPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stating pack: %w", err)
	}

	cache, err := packcache.Open(project.ReplaceExtension(path, ".qgx"))
	if err != nil {
		return nil, fmt.Errorf("opening pack cache: %w", err)
	}
	defer cache.Close()

	ctx := context.Background()
	modTime := info.ModTime().Unix()
	size := info.Size()

	if files, err := cache.Lookup(ctx, packPath, modTime, size); err == nil {
		return files, nil
	} else if !errors.Is(err, types.ErrNotFound) {
		return nil, fmt.Errorf("querying pack cache: %w", err)
	}

	f, err := os.Open(packPath)
	if err != nil {
		return nil, fmt.Errorf("opening pack: %w", err)
	}
	defer f.Close()

	files, err := packreader.ReadFileList(f)
	if err != nil {
		return nil, fmt.Errorf("reading pack file list: %w", err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Less(files[j]) })

	if err := cache.Store(ctx, packPath, modTime, size, files); err != nil {
		return nil, fmt.Errorf("updating pack cache: %w", err)
	}

	return files, nil
}
