package post

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zvonler/pitchpulse/model"
)

func TestCountWords(t *testing.T) {
	counts := countWords([]string{
		"The Arsenal defence was solid",
		"arsenal ARSENAL! <b>solid</b> at the back",
		"VAR is a joke",
	})

	require.Equal(t, 3, counts["arsenal"])
	require.Equal(t, 2, counts["solid"])
	require.Equal(t, 1, counts["joke"])
	require.NotContains(t, counts, "the")
	require.NotContains(t, counts, "is")
	require.NotContains(t, counts, "b")
}

func TestTopWords(t *testing.T) {
	counts := map[string]int{"arsenal": 5, "chelsea": 3, "derby": 3, "var": 1}

	require.Equal(t, map[string]int{"arsenal": 5, "chelsea": 3}, topWords(counts, 2))
	require.Equal(t, counts, topWords(counts, 10))
	require.Equal(t, map[string]int{}, topWords(counts, 0))
}

func TestLoadConf(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.yaml")
	content := "font_file: fonts/custom.ttf\nwidth: 800\nheight: 600\n"
	require.Equal(t, nil, os.WriteFile(path, []byte(content), 0o644))

	conf, err := loadConf(path)
	require.Equal(t, nil, err)
	require.Equal(t, filepath.Join(dir, "fonts/custom.ttf"), conf.FontFile)
	require.Equal(t, 800, conf.Width)
	require.Equal(t, 600, conf.Height)
	require.Equal(t, DefaultConf.FontMaxSize, conf.FontMaxSize)

	_, err = loadConf(filepath.Join(dir, "missing.yaml"))
	require.NotEqual(t, nil, err)
}

func TestListRows(t *testing.T) {
	rows := listRows([]model.StoredPost{{
		Id:       7,
		SearchId: 2,
		Post: model.Post{
			Title: model.StringPtr("Derby day"),
			Post:  model.Entry{Author: model.StringPtr("gooner")},
			URL:   "https://old.reddit.com/r/soccer/comments/abc123/derby/",
		},
	}})

	require.Equal(t, 2, len(rows))
	require.True(t, strings.HasPrefix(rows[0], "PostID |"))
	require.Equal(t, "7 | 2 | gooner | Derby day | https://old.reddit.com/r/soccer/comments/abc123/derby/", rows[1])
}
