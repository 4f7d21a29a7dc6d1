package tracker

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packsnap/packsnap/internal/output"
)

func TestPersistWritesSortedSidecarAndRemovesWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	sidecar := filepath.Join(dir, "proj.qgc")

	tr := New(sidecar, DefaultThresholdFiles, DefaultIdleTimeout, nil, output.NopSink{})
	tr.FileChanged("b")
	tr.FileChanged("a")

	require.NoError(t, tr.Persist())

	data, err := os.ReadFile(sidecar)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(data))

	tr.set.Clear()
	require.NoError(t, tr.Persist())
	_, err = os.Stat(sidecar)
	assert.True(t, os.IsNotExist(err))
}

func TestRunTriggersRebuildAfterThresholdAndIdle(t *testing.T) {
	dir := t.TempDir()
	sidecar := filepath.Join(dir, "proj.qgc")
	require.NoError(t, os.WriteFile(sidecar, []byte("x\n"), 0o644))

	rebuilt := make(chan struct{}, 1)
	tr := New(sidecar, 1, 20*time.Millisecond, func() error {
		rebuilt <- struct{}{}
		return nil
	}, output.NopSink{})

	tr.FileChanged("a")
	tr.FileChanged("b") // size 2 > threshold 1

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- tr.Run(ctx) }()

	select {
	case <-rebuilt:
	case <-time.After(time.Second):
		t.Fatal("rebuild was not triggered")
	}

	assert.Equal(t, 0, tr.set.Len())
	_, err := os.Stat(sidecar)
	assert.True(t, os.IsNotExist(err))

	cancel()
	<-done
}

func TestRunPersistsOnSignaledWakeupBelowThreshold(t *testing.T) {
	dir := t.TempDir()
	sidecar := filepath.Join(dir, "proj.qgc")

	tr := New(sidecar, DefaultThresholdFiles, time.Second, nil, output.NopSink{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- tr.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	tr.FileChanged("only.txt")

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(sidecar)
		return err == nil && string(data) == "only.txt\n"
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}
