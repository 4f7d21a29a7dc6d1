package watchsup

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollWatcherReportsNewFile(t *testing.T) {
	dir := t.TempDir()

	w := &PollWatcher{Interval: 10 * time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var seen []string
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, dir, func(relPath string) {
			mu.Lock()
			seen = append(seen, relPath)
			mu.Unlock()
		})
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("hi"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, p := range seen {
			if p == "new.txt" {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestPollWatcherReportsModifiedFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "existing.txt")
	require.NoError(t, os.WriteFile(target, []byte("one"), 0o644))

	w := &PollWatcher{Interval: 10 * time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var seen []string
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, dir, func(relPath string) {
			mu.Lock()
			seen = append(seen, relPath)
			mu.Unlock()
		})
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, os.WriteFile(target, []byte("a much longer body"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, p := range seen {
			if p == "existing.txt" {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestPollWatcherStopsOnContextCancel(t *testing.T) {
	dir := t.TempDir()
	w := &PollWatcher{Interval: 10 * time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx, dir, func(string) {}) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancellation")
	}
}
