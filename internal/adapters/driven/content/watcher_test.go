package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevant(t *testing.T) {
	assert.True(t, relevant(fsnotify.Event{Name: "post.md", Op: fsnotify.Write}))
	assert.True(t, relevant(fsnotify.Event{Name: "post.MDX", Op: fsnotify.Create}))
	assert.True(t, relevant(fsnotify.Event{Name: "post.markdown", Op: fsnotify.Remove}))
	assert.True(t, relevant(fsnotify.Event{Name: "post.md", Op: fsnotify.Rename}))

	assert.False(t, relevant(fsnotify.Event{Name: "post.md", Op: fsnotify.Chmod}))
	assert.False(t, relevant(fsnotify.Event{Name: "notes.txt", Op: fsnotify.Write}))
	assert.False(t, relevant(fsnotify.Event{Name: "post.md.swp", Op: fsnotify.Write}))
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "does-not-exist"))

	assert.Error(t, err)
}

func TestWatcher_DebouncesBurstIntoOneCallback(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	changed := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func() { changed <- struct{}{} })
	}()

	// A burst of writes inside the debounce window.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "post.md"), []byte("body"), 0644))
		time.Sleep(50 * time.Millisecond)
	}

	select {
	case <-changed:
	case <-ctx.Done():
		t.Fatal("expected a change callback before timeout")
	}

	// The burst must have collapsed to a single callback.
	select {
	case <-changed:
		t.Fatal("burst should debounce to one callback")
	case <-time.After(debounceWindow + 100*time.Millisecond):
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcher_SeesNestedDirectories(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "2025", "03")
	require.NoError(t, os.MkdirAll(nested, 0755))

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	changed := make(chan struct{}, 1)
	go func() { _ = w.Watch(ctx, func() { changed <- struct{}{} }) }()

	// A post created below the root must trigger a reload, matching
	// the loader's recursive walk.
	require.NoError(t, os.WriteFile(filepath.Join(nested, "post.md"), []byte("body"), 0644))

	select {
	case <-changed:
	case <-ctx.Done():
		t.Fatal("expected a change callback for a nested post")
	}
}

func TestWatcher_IgnoresNonMarkdown(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	go func() { _ = w.Watch(ctx, func() { changed <- struct{}{} }) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	select {
	case <-changed:
		t.Fatal("non-markdown writes must not trigger a reload")
	case <-time.After(debounceWindow + 100*time.Millisecond):
	}
}
