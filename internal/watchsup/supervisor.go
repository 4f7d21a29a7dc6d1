package watchsup

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/packsnap/packsnap/internal/output"
	"github.com/packsnap/packsnap/internal/project"
)

// DirWatcher is the external directory-watch primitive spec.md §6 names:
// it blocks until watching root can no longer continue, invoking onFile
// with each changed file's path relative to root.
type DirWatcher interface {
	Watch(ctx context.Context, root string, onFile func(relativePath string)) error
}

// OnChange is called for every notification a watcher worker accepts,
// already scoped to the group and root it came from.
type OnChange func(group *project.Group, root, file string)

// Supervisor spawns one worker per watched root across a project.Group
// tree and keeps them running until ctx is canceled.
type Supervisor struct {
	watcher DirWatcher
	sink    output.Sink
}

// NewSupervisor creates a Supervisor that watches with watcher and
// reports through sink.
func NewSupervisor(watcher DirWatcher, sink output.Sink) *Supervisor {
	if sink == nil {
		sink = output.NopSink{}
	}
	return &Supervisor{watcher: watcher, sink: sink}
}

// Start launches one worker per root in group and its children and blocks
// until ctx is canceled and every worker has returned. A single root's
// watcher failing is reported and does not stop the others — only ctx
// cancellation ends the whole supervisor.
func (s *Supervisor) Start(ctx context.Context, group *project.Group, onChange OnChange) error {
	g, gctx := errgroup.WithContext(ctx)
	s.spawn(gctx, g, group, onChange)
	return g.Wait()
}

func (s *Supervisor) spawn(ctx context.Context, g *errgroup.Group, group *project.Group, onChange OnChange) {
	for _, root := range group.Roots {
		root := root
		g.Go(func() error {
			err := s.watcher.Watch(ctx, root, func(file string) {
				onChange(group, root, file)
			})
			switch {
			case err != nil:
				s.sink.Error("watching %s: %v", root, err)
			default:
				s.sink.Print("no longer watching %s\n", root)
			}
			// A root's watcher failing never cancels its siblings; only
			// the supervisor's own context does that.
			return nil
		})
	}

	for _, child := range group.Children {
		s.spawn(ctx, g, child, onChange)
	}
}
