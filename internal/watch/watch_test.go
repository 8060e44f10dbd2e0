package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevant(t *testing.T) {
	w, err := New(Options{Extensions: []string{"yaml", ".YML", ".json"}}, nil)
	require.NoError(t, err)
	defer w.Stop() //nolint:errcheck

	assert.True(t, w.Relevant("/c/profile.yaml"))
	assert.True(t, w.Relevant("/c/profile.yml"))
	assert.True(t, w.Relevant("/c/PROJECTS.JSON"))
	assert.False(t, w.Relevant("/c/notes.md"))
	assert.False(t, w.Relevant("/c/.profile.yaml.swp"))
	assert.False(t, w.Relevant("/c/profile.yaml~"))

	all, err := New(Options{}, nil)
	require.NoError(t, err)
	defer all.Stop() //nolint:errcheck
	assert.True(t, all.Relevant("/static/photo.jpg"))
}

func TestWatcher_DebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))

	batches := make(chan []string, 10)
	w, err := New(Options{
		Dirs:       []string{dir, filepath.Join(dir, "missing")},
		Extensions: []string{".yaml"},
		Debounce:   100 * time.Millisecond,
	}, func(_ context.Context, changed []string) error {
		batches <- changed
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop() //nolint:errcheck

	a := filepath.Join(dir, "profile.yaml")
	b := filepath.Join(dir, "nested", "projects.yaml")
	require.NoError(t, os.WriteFile(a, []byte("name: a"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("[]"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(a, []byte("name: b"), 0644))

	seen := make(map[string]bool)
	deadline := time.After(5 * time.Second)
	for len(seen) < 2 {
		select {
		case changed := <-batches:
			assert.IsIncreasing(t, append([]string{""}, changed...))
			for _, p := range changed {
				seen[p] = true
			}
		case <-deadline:
			t.Fatalf("changes not reported, saw %v", seen)
		}
	}
	assert.Equal(t, map[string]bool{a: true, b: true}, seen)

	cancel()
	select {
	case <-w.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
