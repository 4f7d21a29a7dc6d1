package tracker

import "github.com/packsnap/packsnap/pkg/types"

// Diff merges two path-sorted FileInfo lists — the live project's files
// and a pack's file list — and returns the project-relative paths that
// need to be (re)packed: files present in the project but absent from the
// pack, or present in both but differing in timestamp or size.
//
// The walk is pack-driven, matching the original implementation exactly:
// pack entries with no corresponding input file are not reported (a
// deletion is invisible to this diff; a later rebuild reconciles it). This
// is a deliberate, documented open-question decision, not an oversight.
func Diff(files, packFiles []types.FileInfo) []string {
	var result []string
	i := 0

	for _, pf := range packFiles {
		for i < len(files) && files[i].Path < pf.Path {
			result = append(result, files[i].Path)
			i++
		}
		if i < len(files) && files[i].Path == pf.Path {
			if files[i].TimeStamp != pf.TimeStamp || files[i].FileSize != pf.FileSize {
				result = append(result, files[i].Path)
			}
			i++
		}
	}

	for ; i < len(files); i++ {
		result = append(result, files[i].Path)
	}

	return result
}
