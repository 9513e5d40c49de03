package reddit

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/zvonler/pitchpulse/model"
	"github.com/zvonler/pitchpulse/utils"
)

// Sink receives each post as soon as it has been assembled.
type Sink interface {
	Store(post model.Post) error
}

type SinkFunc func(model.Post) error

func (f SinkFunc) Store(post model.Post) error { return f(post) }

type Pipeline struct {
	cfg     Config
	fetcher PageFetcher
	sinks   []Sink
}

func NewPipeline(cfg Config, fetcher PageFetcher, sinks ...Sink) *Pipeline {
	return &Pipeline{cfg: cfg, fetcher: fetcher, sinks: sinks}
}

// SearchURL is the address searched for term, optionally restricted to
// subreddit.
func (p *Pipeline) SearchURL(term, subreddit string) string {
	return strings.TrimRight(p.cfg.BaseURL, "/") + SearchPath(term, subreddit)
}

// Run searches for term and assembles a Post for every result link, in link
// order. A failure on one link is logged and skipped unless FailFast is set,
// in which case the posts gathered so far are returned with the error.
func (p *Pipeline) Run(ctx context.Context, term, subreddit string) ([]model.Post, error) {
	links, err := p.SearchLinks(ctx, p.SearchURL(term, subreddit))
	if err != nil {
		return nil, err
	}
	if p.cfg.Dedupe {
		links = unique(links)
	}
	log.Printf("Found %d results for %q", len(links), term)

	posts := make([]model.Post, 0, len(links))
	for _, link := range links {
		if err := ctx.Err(); err != nil {
			return posts, err
		}

		post, err := p.FetchPost(ctx, link)
		if err != nil {
			if p.cfg.FailFast {
				return posts, err
			}
			log.Printf("Skipping %s: %v", link, err)
			continue
		}

		for _, sink := range p.sinks {
			if err := sink.Store(post); err != nil {
				return posts, fmt.Errorf("storing %s: %w", post.URL, err)
			}
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// SearchLinks fetches a search results page and returns its result links.
func (p *Pipeline) SearchLinks(ctx context.Context, searchURL string) ([]string, error) {
	pageURL, err := url.Parse(searchURL)
	if err != nil {
		return nil, fmt.Errorf("bad search URL: %w", err)
	}

	log.Printf("Searching %s", searchURL)
	raw, err := p.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", searchURL, err)
	}
	links, err := ExtractResultLinks(doc, pageURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", searchURL, err)
	}
	return links, nil
}

// FetchPost fetches a single thread with the configured comment limit and
// assembles it.
func (p *Pipeline) FetchPost(ctx context.Context, link string) (post model.Post, err error) {
	pageURL := link
	if p.cfg.CommentLimit > 0 {
		if pageURL, err = utils.WithQueryParam(link, "limit", strconv.Itoa(p.cfg.CommentLimit)); err != nil {
			return post, fmt.Errorf("bad post URL %q: %w", link, err)
		}
	}

	log.Printf("Fetching data from %s", pageURL)
	raw, err := p.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return post, err
	}
	doc, err := Parse(raw)
	if err != nil {
		return post, fmt.Errorf("parsing %s: %w", pageURL, err)
	}
	return AssemblePost(doc, pageURL, p.cfg.RequireDate)
}

func unique(links []string) []string {
	seen := make(map[string]bool, len(links))
	res := make([]string, 0, len(links))
	for _, link := range links {
		if !seen[link] {
			seen[link] = true
			res = append(res, link)
		}
	}
	return res
}
