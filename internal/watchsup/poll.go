package watchsup

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"
)

// DefaultPollInterval is how often a PollWatcher rescans its root when no
// interval is configured.
const DefaultPollInterval = 2 * time.Second

// PollWatcher is a stdlib-only DirWatcher: it recursively stats every file
// under root on a fixed interval and reports any whose modification time
// or size changed since the previous scan. It exists because the retrieved
// corpus carries no filesystem-notification library — every real watcher
// in the pack watches something other than the local filesystem.
type PollWatcher struct {
	Interval time.Duration
}

type fileStamp struct {
	modTime time.Time
	size    int64
}

// Watch blocks, polling root every p.Interval, until ctx is canceled. Newly
// created or modified regular files trigger onFile with a root-relative,
// slash-normalized path. Deletions are not reported: a file that
// disappears mid-watch leaves the pack entry to be pruned by the next full
// rebuild, not by the live change set.
func (p *PollWatcher) Watch(ctx context.Context, root string, onFile func(relativePath string)) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	known, err := p.scan(root)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		current, err := p.scan(root)
		if err != nil {
			return err
		}

		for relPath, stamp := range current {
			prev, existed := known[relPath]
			if !existed || prev != stamp {
				onFile(relPath)
			}
		}
		known = current
	}
}

func (p *PollWatcher) scan(root string) (map[string]fileStamp, error) {
	result := make(map[string]fileStamp)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		result[filepath.ToSlash(rel)] = fileStamp{modTime: info.ModTime(), size: info.Size()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
