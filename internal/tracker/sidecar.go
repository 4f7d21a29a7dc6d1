package tracker

import (
	"fmt"
	"os"
	"strings"
)

// writeSidecar writes paths, newline-terminated and in the given order,
// to a temp file next to path and renames it into place, so no reader
// ever observes a partial file. An empty paths list deletes path instead.
func writeSidecar(path string, paths []string) error {
	if len(paths) == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing empty change list %s: %w", path, err)
		}
		return nil
	}

	var b strings.Builder
	for _, p := range paths {
		b.WriteString(p)
		b.WriteByte('\n')
	}

	tempPath := path + "_"
	if err := os.WriteFile(tempPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing change list %s: %w", tempPath, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("renaming change list into place: %w", err)
	}
	return nil
}

// truncateLast right-truncates last to 40 columns, replacing the dropped
// prefix with a leading "...", matching the original implementation's
// status-line formatting exactly.
func truncateLast(last string) string {
	const width = 40
	if len(last) <= width {
		return last
	}
	return "..." + last[len(last)-(width-3):]
}
