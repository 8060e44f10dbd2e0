package linkcheck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternalLinks(t *testing.T) {
	html := `
		<html>
			<head><link rel="stylesheet" href="/assets/site.css"></head>
			<body>
				<a href="/?section=about#about">About</a>
				<a href="/projects/p1">Project</a>
				<a href="/projects/p1#top">Project again</a>
				<a href="https://github.com/ada">External</a>
				<a href="mailto:ada@example.com">Mail</a>
			</body>
		</html>
	`

	links, err := InternalLinks(html, "https://ada.dev")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://ada.dev/assets/site.css",
		"https://ada.dev/?section=about",
		"https://ada.dev/projects/p1",
	}, links)
}

func TestInternalLinks_InvalidBaseURL(t *testing.T) {
	_, err := InternalLinks("<a href='/'>x</a>", "/relative")
	var checkErr *CheckError
	require.True(t, errors.As(err, &checkErr))
	assert.Contains(t, err.Error(), "must have scheme and host")
}
