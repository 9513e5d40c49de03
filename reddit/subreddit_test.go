package reddit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	goreddit "github.com/vartanbeno/go-reddit/v2/reddit"
)

type fakeSubreddits map[string]string

func (f fakeSubreddits) Get(_ context.Context, name string) (*goreddit.Subreddit, *goreddit.Response, error) {
	if canonical, ok := f[name]; ok {
		return &goreddit.Subreddit{Name: canonical}, nil, nil
	}
	return nil, nil, errors.New("404 Not Found")
}

func TestCanonicalSubreddit(t *testing.T) {
	getter := fakeSubreddits{"gunners": "Gunners", "soccer": "soccer"}

	name, err := CanonicalSubreddit(context.Background(), getter, "gunners")
	require.Equal(t, nil, err)
	require.Equal(t, "Gunners", name)

	_, err = CanonicalSubreddit(context.Background(), getter, "notarealsub")
	require.Error(t, err)
	require.Contains(t, err.Error(), "r/notarealsub")
}

func TestCanonicalSubredditEmptyAnswer(t *testing.T) {
	getter := fakeSubreddits{"blank": ""}
	_, err := CanonicalSubreddit(context.Background(), getter, "blank")
	require.Error(t, err)
}
