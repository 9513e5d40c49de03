package reddit

import "time"

const DefaultBaseURL = "https://old.reddit.com"

type Config struct {
	// BaseURL is the origin search paths are appended to.
	BaseURL string

	// UserAgent is sent with every request. When empty a random browser
	// identity is chosen per request.
	UserAgent string

	Delay       time.Duration
	RandomDelay time.Duration
	Timeout     time.Duration

	// Retries is the number of extra attempts for transient failures.
	Retries   uint64
	RetryWait time.Duration

	CloudflareBypass bool

	// CommentLimit is set as the limit query parameter of every post URL.
	CommentLimit int

	RequireDate bool
	Dedupe      bool
	FailFast    bool
}

func DefaultConfig() Config {
	return Config{
		BaseURL:          DefaultBaseURL,
		Delay:            1 * time.Second,
		RandomDelay:      2 * time.Second,
		Timeout:          30 * time.Second,
		Retries:          2,
		RetryWait:        2 * time.Second,
		CloudflareBypass: true,
		CommentLimit:     500,
	}
}
