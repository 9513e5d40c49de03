package reddit

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/caffix/cloudflare-roundtripper/cfrt"
	"github.com/corpix/uarand"
	"github.com/gocolly/colly"
	"github.com/sethvargo/go-retry"
)

// PageFetcher returns the raw markup served at a URL.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Fetcher struct {
	cfg       Config
	collector *colly.Collector
}

func NewFetcher(cfg Config) (*Fetcher, error) {
	collector := colly.NewCollector(
		colly.IgnoreRobotsTxt(),
		colly.AllowURLRevisit(),
	)
	// Threads fetched with a high comment limit exceed colly's default cap
	collector.MaxBodySize = 0

	if cfg.CloudflareBypass {
		transport, err :=
			cfrt.New(&http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   15 * time.Second,
					KeepAlive: 15 * time.Second,
				}).DialContext,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			})
		if err != nil {
			return nil, err
		}
		collector.WithTransport(transport)
	}
	if cfg.Timeout > 0 {
		collector.SetRequestTimeout(cfg.Timeout)
	}
	if err := collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		Delay:       cfg.Delay,
		RandomDelay: cfg.RandomDelay,
	}); err != nil {
		return nil, err
	}

	return &Fetcher{cfg: cfg, collector: collector}, nil
}

// Fetch issues a GET for url. Transient failures are retried with
// exponential backoff up to Config.Retries times.
func (f *Fetcher) Fetch(ctx context.Context, url string) (body []byte, err error) {
	wait := f.cfg.RetryWait
	if wait <= 0 {
		wait = time.Second
	}
	backoff := retry.WithMaxRetries(f.cfg.Retries, retry.NewExponential(wait))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		var fetchErr error
		if body, fetchErr = f.fetchOnce(url); fetchErr != nil {
			var fe *FetchError
			if errors.As(fetchErr, &fe) && fe.Temporary() {
				log.Printf("Fetch failed, may retry: %v", fetchErr)
				return retry.RetryableError(fetchErr)
			}
			return fetchErr
		}
		return nil
	})
	return
}

func (f *Fetcher) fetchOnce(url string) ([]byte, error) {
	c := f.collector.Clone()

	var body []byte
	var status int

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", f.userAgent())
	})

	c.OnResponse(func(r *colly.Response) {
		body = r.Body
		status = r.StatusCode
		slog.Debug("fetched page", "url", url, "status", status, "bytes", len(body))
	})

	c.OnError(func(r *colly.Response, err error) {
		status = r.StatusCode
	})

	if err := c.Visit(url); err != nil {
		return nil, &FetchError{URL: url, StatusCode: status, Err: err}
	}
	return body, nil
}

func (f *Fetcher) userAgent() string {
	if f.cfg.UserAgent != "" {
		return f.cfg.UserAgent
	}
	return uarand.GetRandom()
}
