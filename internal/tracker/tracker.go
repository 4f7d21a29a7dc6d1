package tracker

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/packsnap/packsnap/internal/output"
)

// DefaultThresholdFiles is the change-set size past which the persistence
// loop biases toward a full rebuild during quiet periods.
const DefaultThresholdFiles = 128

// DefaultIdleTimeout is how long the persistence loop waits for further
// notifications, once past the threshold, before rebuilding.
const DefaultIdleTimeout = 3 * time.Second

// RebuildFunc performs a full rebuild of the pack. It is supplied by the
// process driver, which owns the builder and project file enumeration;
// the tracker only decides when to call it.
type RebuildFunc func() error

// Tracker owns the live change Set and drives the persistence/rebuild
// loop described in spec.md §4.7.
type Tracker struct {
	set         *Set
	sidecarPath string
	threshold   int
	idleTimeout time.Duration
	rebuild     RebuildFunc
	sink        output.Sink
}

// New creates a Tracker that persists to sidecarPath and calls rebuild
// once the change set exceeds threshold files and stays quiet for
// idleTimeout.
func New(sidecarPath string, threshold int, idleTimeout time.Duration, rebuild RebuildFunc, sink output.Sink) *Tracker {
	if sink == nil {
		sink = output.NopSink{}
	}
	return &Tracker{
		set:         NewSet(),
		sidecarPath: sidecarPath,
		threshold:   threshold,
		idleTimeout: idleTimeout,
		rebuild:     rebuild,
		sink:        sink,
	}
}

// Seed inserts the initial diff's paths into the live set, without
// persisting or printing anything — callers persist once after seeding
// every initial path.
func (t *Tracker) Seed(paths []string) {
	for _, p := range paths {
		t.set.Add(p)
	}
}

// FileChanged records path (already project-relative and normalized) as
// changed.
func (t *Tracker) FileChanged(path string) {
	t.set.Add(path)
}

// Persist snapshots the live set, writes it to the sidecar, and prints
// the one-line status the persistence loop reports after every
// non-rebuild wakeup.
func (t *Tracker) Persist() error {
	paths, last := t.set.Snapshot()
	if err := writeSidecar(t.sidecarPath, paths); err != nil {
		return err
	}
	t.sink.Print("%d files changed; last: %-40s", len(paths), truncateLast(last))
	return nil
}

// Run executes the persistence/rebuild loop. Under normal operation it
// does not return; it returns ctx.Err() if ctx is canceled.
func (t *Tracker) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := t.set.Len()
		if n > t.threshold {
			signaled, err := t.set.WaitTimeout(ctx, t.idleTimeout)
			if err != nil {
				return err
			}
			if !signaled {
				if err := t.doRebuild(); err != nil {
					t.sink.Error("rebuild failed: %v", err)
				}
				continue
			}
			if err := t.Persist(); err != nil {
				t.sink.Error("persisting change list: %v", err)
			}
			continue
		}

		if err := t.set.WaitSizeChange(ctx, n); err != nil {
			return err
		}
		if err := t.Persist(); err != nil {
			t.sink.Error("persisting change list: %v", err)
		}
	}
}

func (t *Tracker) doRebuild() error {
	t.set.Clear()
	if err := os.Remove(t.sidecarPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing change list before rebuild: %w", err)
	}
	return t.rebuild()
}
