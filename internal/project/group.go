package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/packsnap/packsnap/internal/output"
	"github.com/packsnap/packsnap/pkg/types"
)

// Group is the effective, normalized form of a project or subproject: a
// set of root directories to scan/watch, an acceptance predicate over
// file paths (by extension and excluded directory name), and child
// groups that contribute their own roots and filters. A Group with no
// Children is a leaf.
type Group struct {
	Roots       []string
	Extensions  map[string]bool // empty means "accept any extension"
	ExcludeDirs map[string]bool
	Children    []*Group
}

func newGroup(raw FileConfig, baseDir string) *Group {
	roots := raw.Roots
	if len(roots) == 0 {
		roots = []string{baseDir}
	}
	resolved := make([]string, len(roots))
	for i, r := range roots {
		if filepath.IsAbs(r) {
			resolved[i] = filepath.Clean(r)
		} else {
			resolved[i] = filepath.Clean(filepath.Join(baseDir, r))
		}
	}

	extensions := raw.Extensions
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	excludeDirs := raw.ExcludeDirs
	if len(excludeDirs) == 0 {
		excludeDirs = DefaultExcludeDirs
	}

	g := &Group{
		Roots:       resolved,
		Extensions:  toSet(extensions),
		ExcludeDirs: toSet(excludeDirs),
	}
	for _, child := range raw.Groups {
		g.Children = append(g.Children, newGroup(child, baseDir))
	}
	return g
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// ParseProject loads `<path>.packsnap.json` if present and returns the
// resulting Group tree; a missing config file yields a single-root group
// over filepath.Dir(path) with default filters.
func ParseProject(path string) (*Group, error) {
	configPath := ReplaceExtension(path, ".packsnap.json")

	raw, err := loadFileConfig(configPath)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		raw = &FileConfig{}
	}

	return newGroup(*raw, filepath.Dir(path)), nil
}

// IsFileAcceptable reports whether path (project-relative, forward-slash
// normalized) passes group's own extension and excluded-directory
// filters. It does not consult child groups.
func IsFileAcceptable(g *Group, path string) bool {
	for _, part := range strings.Split(path, "/") {
		if g.ExcludeDirs[part] {
			return false
		}
	}

	if len(g.Extensions) == 0 {
		return true
	}
	return g.Extensions[filepath.Ext(path)]
}

// GetProjectGroupFiles walks every root in group and its children,
// returning every acceptable file as a types.FileInfo sorted by Path.
func GetProjectGroupFiles(sink output.Sink, group *Group) ([]types.FileInfo, error) {
	sources, err := GetProjectGroupSourceFiles(sink, group)
	if err != nil {
		return nil, err
	}

	result := make([]types.FileInfo, len(sources))
	for i, s := range sources {
		result[i] = s.FileInfo
	}
	return result, nil
}

// SourceFile pairs a types.FileInfo with the on-disk path it was read
// from, since Path alone (root-relative) cannot be reopened without
// knowing which root it came from.
type SourceFile struct {
	types.FileInfo
	DiskPath string
}

// GetProjectGroupSourceFiles walks every root in group and its children,
// returning every acceptable file sorted by Path, alongside the disk path
// each was found at.
func GetProjectGroupSourceFiles(sink output.Sink, group *Group) ([]SourceFile, error) {
	if sink == nil {
		sink = output.NopSink{}
	}

	var result []SourceFile
	if err := collectGroupFiles(sink, group, &result); err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Less(result[j].FileInfo) })
	return result, nil
}

func collectGroupFiles(sink output.Sink, group *Group, result *[]SourceFile) error {
	for _, root := range group.Roots {
		if err := walkRoot(sink, group, root, result); err != nil {
			return err
		}
	}
	for _, child := range group.Children {
		if err := collectGroupFiles(sink, child, result); err != nil {
			return err
		}
	}
	return nil
}

func walkRoot(sink output.Sink, group *Group, root string, result *[]SourceFile) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			sink.Error("scanning %s: %v", path, err)
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return fmt.Errorf("computing relative path for %s: %w", path, relErr)
		}
		rel = NormalizePath(rel)

		if d.IsDir() {
			if rel != "." && group.ExcludeDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if !IsFileAcceptable(group, rel) {
			return nil
		}

		info, statErr := d.Info()
		if statErr != nil {
			sink.Error("stating %s: %v", path, statErr)
			return nil
		}

		*result = append(*result, SourceFile{
			FileInfo: types.FileInfo{
				Path:      rel,
				TimeStamp: uint64(info.ModTime().Unix()),
				FileSize:  uint64(info.Size()),
			},
			DiskPath: path,
		})
		return nil
	})

	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// NormalizePath cleans path and canonicalizes path separators to '/', the
// form FileInfo.Path and the change-list sidecar always use.
func NormalizePath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// ReplaceExtension returns path with any existing extension replaced by
// ext (which should include the leading '.').
func ReplaceExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
