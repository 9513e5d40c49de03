package reddit

import (
	"context"
	"fmt"

	goreddit "github.com/vartanbeno/go-reddit/v2/reddit"
)

// SubredditGetter is satisfied by the go-reddit client's Subreddit service.
type SubredditGetter interface {
	Get(ctx context.Context, name string) (*goreddit.Subreddit, *goreddit.Response, error)
}

// CanonicalSubreddit confirms that name exists and returns it with the
// casing Reddit uses.
func CanonicalSubreddit(ctx context.Context, getter SubredditGetter, name string) (string, error) {
	sr, _, err := getter.Get(ctx, name)
	if err != nil {
		return "", fmt.Errorf("looking up r/%s: %w", name, err)
	}
	if sr == nil || sr.Name == "" {
		return "", fmt.Errorf("r/%s not found", name)
	}
	return sr.Name, nil
}

// NewSubredditGetter returns a read-only client's subreddit service.
func NewSubredditGetter() (SubredditGetter, error) {
	client, err := goreddit.NewReadonlyClient()
	if err != nil {
		return nil, err
	}
	return client.Subreddit, nil
}
