package utils

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrimmedURL(t *testing.T) {
	withSlash, err := url.Parse("http://somewhere.com/")
	require.Equal(t, nil, err)
	withoutSlash, err := url.Parse("http://somewhere.com")
	require.Equal(t, nil, err)

	require.Equal(t, TrimmedURL(withSlash), TrimmedURL(withoutSlash))

	withSlash, err = url.Parse("https://old.reddit.com/r/soccer/comments/abc/title/")
	require.Equal(t, nil, err)
	withoutSlash, err = url.Parse("https://old.reddit.com/r/soccer/comments/abc/title")
	require.Equal(t, nil, err)

	require.Equal(t, TrimmedURL(withSlash), TrimmedURL(withoutSlash))
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()
	stat, err := PathExists(tmpDir)
	require.Equal(t, nil, err)
	require.Equal(t, true, stat)

	stat, err = PathExists(tmpDir + "/non-existent-path")
	require.Equal(t, nil, err)
	require.Equal(t, false, stat)

	subdir := filepath.Join(tmpDir, "nested")
	err = os.MkdirAll(subdir, 0700)
	require.Equal(t, nil, err)

	somefile := filepath.Join(subdir, "posts.json")
	fd, err := os.Create(somefile)
	require.Equal(t, nil, err)
	fd.Close()

	stat, err = PathExists(somefile)
	require.Equal(t, nil, err)
	require.Equal(t, true, stat)
}

func TestWithQueryParam(t *testing.T) {
	res, err := WithQueryParam("https://old.reddit.com/r/soccer/comments/abc/title/", "limit", "500")
	require.NoError(t, err)
	require.Equal(t, "https://old.reddit.com/r/soccer/comments/abc/title/?limit=500", res)

	res, err = WithQueryParam("https://old.reddit.com/r/soccer/comments/abc/?sort=top&limit=20", "limit", "500")
	require.NoError(t, err)
	require.Equal(t, "https://old.reddit.com/r/soccer/comments/abc/?limit=500&sort=top", res)

	_, err = WithQueryParam("://bad", "limit", "500")
	require.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("42")
	require.True(t, ok)
	require.Equal(t, uint(42), id)

	_, ok = ParseID("https://old.reddit.com/r/soccer")
	require.False(t, ok)

	_, ok = ParseID("")
	require.False(t, ok)
}
