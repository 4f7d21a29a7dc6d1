package cli

import (
	"fmt"
	"os"

	"github.com/packsnap/packsnap/internal/blockcodec"
	"github.com/packsnap/packsnap/internal/builder"
	"github.com/packsnap/packsnap/internal/output"
	"github.com/packsnap/packsnap/internal/project"
)

// Build implements the `build` command (spec.md §4.9): parse the project
// at path, enumerate its files, write them into a fresh pack at a temp
// path next to `<path>.qgd`, and rename the temp file into place once
// every file has been appended.
func Build(path string, sink output.Sink) error {
	if sink == nil {
		sink = output.NopSink{}
	}

	group, err := project.ParseProject(path)
	if err != nil {
		return fmt.Errorf("parsing project: %w", err)
	}

	files, err := project.GetProjectGroupSourceFiles(sink, group)
	if err != nil {
		return fmt.Errorf("enumerating project files: %w", err)
	}

	packPath := project.ReplaceExtension(path, ".qgd")
	tempPath := packPath + "_"

	out, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("creating pack file: %w", err)
	}

	b := builder.New(out, blockcodec.LevelBest, builder.DefaultChunkSize, len(files), builder.IdentityTranscoder{}, sink)
	if err := b.Start(); err != nil {
		_ = out.Close()
		return fmt.Errorf("writing pack header: %w", err)
	}

	for _, f := range files {
		if err := b.AppendFileAs(f.DiskPath, f.Path); err != nil {
			_ = out.Close()
			return fmt.Errorf("building pack: %w", err)
		}
	}

	if err := b.Close(); err != nil {
		return fmt.Errorf("closing pack file: %w", err)
	}

	if err := os.Rename(tempPath, packPath); err != nil {
		return fmt.Errorf("renaming pack into place: %w", err)
	}

	return nil
}
