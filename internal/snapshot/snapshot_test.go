package snapshot

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDefaults(t *testing.T) {
	opts := Options{}.WithDefaults()
	assert.Equal(t, 1200, opts.Width)
	assert.Equal(t, 630, opts.Height)
	assert.Equal(t, DefaultSelector, opts.Selector)
	assert.Equal(t, DefaultTimeout, opts.Timeout)
	assert.Equal(t, DefaultSettle, opts.Settle)
	assert.NotNil(t, opts.Logger)

	custom := Options{Width: 800, Height: 400, Selector: "#about", Timeout: time.Second, Settle: -1}.WithDefaults()
	assert.Equal(t, 800, custom.Width)
	assert.Equal(t, "#about", custom.Selector)
	assert.Equal(t, time.Duration(0), custom.Settle)
}

func TestTarget(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"base only", Options{URL: "http://127.0.0.1:8080"}, "http://127.0.0.1:8080"},
		{"path", Options{URL: "http://127.0.0.1:8080", Path: "/?section=about#about"}, "http://127.0.0.1:8080/?section=about#about"},
		{"file", Options{URL: "file:///tmp/out/index.html"}, "file:///tmp/out/index.html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.opts.Target()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTarget_Invalid(t *testing.T) {
	_, err := Options{URL: "ftp://example.com"}.Target()
	var snapErr *SnapshotError
	require.True(t, errors.As(err, &snapErr))
	assert.Contains(t, err.Error(), "must be http, https or file")

	_, err = Options{URL: ""}.Target()
	assert.Error(t, err)
}

func TestAllocatorOptions(t *testing.T) {
	base := Options{}.WithDefaults().AllocatorOptions()
	withExec := Options{ExecPath: "/usr/bin/chromium"}.WithDefaults().AllocatorOptions()
	assert.Len(t, withExec, len(base)+1)
}
