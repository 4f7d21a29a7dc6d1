package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/packsnap/packsnap/internal/output"
	"github.com/packsnap/packsnap/internal/project"
	"github.com/packsnap/packsnap/internal/tracker"
	"github.com/packsnap/packsnap/internal/watchsup"
	"github.com/packsnap/packsnap/pkg/types"
)

// Watch implements the `watch` command (spec.md §4.9): parse the project,
// compute the initial diff against the existing pack, seed and persist the
// live change set, then start the watch supervisor and run the
// persistence/rebuild loop until ctx is canceled. It does not return
// under normal operation. The watchers start only after the initial change
// list is persisted, so a change made after the project files are
// enumerated and before the watchers start is not reported.
//
// A project must already be built before it can be watched: a missing or
// unreadable pack is a setup failure here, same as a missing project is
// for Build, and aborts before the supervisor or tracker ever starts.
func Watch(ctx context.Context, path string, sink output.Sink) error {
	if sink == nil {
		sink = output.NopSink{}
	}

	group, err := project.ParseProject(path)
	if err != nil {
		return fmt.Errorf("parsing project: %w", err)
	}

	sources, err := project.GetProjectGroupSourceFiles(sink, group)
	if err != nil {
		return fmt.Errorf("enumerating project files: %w", err)
	}

	// The pack and its sibling files (.qgd, .qgc, .qgx and their temporaries)
	// are not project files, even when they lie under one of the roots.
	artifactPrefix := filepath.Clean(project.ReplaceExtension(path, ".qg"))
	files := make([]types.FileInfo, 0, len(sources))
	for _, s := range sources {
		if !strings.HasPrefix(s.DiskPath, artifactPrefix) {
			files = append(files, s.FileInfo)
		}
	}

	packPath := project.ReplaceExtension(path, ".qgd")
	if _, err := os.Stat(packPath); err != nil {
		return fmt.Errorf("project has not been built, run build first: %w", err)
	}

	packFiles, err := PackFileList(path)
	if err != nil {
		return fmt.Errorf("reading pack file list: %w", err)
	}

	sidecarPath := project.ReplaceExtension(path, ".qgc")
	if err := os.Remove(sidecarPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale change list: %w", err)
	}

	tr := tracker.New(sidecarPath, tracker.DefaultThresholdFiles, tracker.DefaultIdleTimeout, func() error {
		return Build(path, sink)
	}, sink)
	tr.Seed(tracker.Diff(files, packFiles))
	if err := tr.Persist(); err != nil {
		return fmt.Errorf("persisting initial change list: %w", err)
	}

	supervisor := watchsup.NewSupervisor(&watchsup.PollWatcher{Interval: watchsup.DefaultPollInterval}, sink)

	errc := make(chan error, 1)
	go func() {
		errc <- supervisor.Start(ctx, group, func(g *project.Group, root, file string) {
			fileChanged(tr, g, root, file)
		})
	}()

	runErr := tr.Run(ctx)
	supErr := <-errc
	if runErr != nil {
		return runErr
	}
	return supErr
}

// fileChanged applies the group's acceptance predicate to file and, if it
// passes, records it in tr under the same root-relative, normalized path
// identity project.GetProjectGroupFiles uses — the identity the initial
// diff and every pack entry already share.
func fileChanged(tr *tracker.Tracker, group *project.Group, root, file string) {
	normalized := project.NormalizePath(file)
	if !project.IsFileAcceptable(group, normalized) {
		return
	}
	tr.FileChanged(normalized)
}
