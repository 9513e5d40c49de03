package predict

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type RemoteConfig struct {
	BaseURL string
	Timeout time.Duration
	APIKey  string
}

// ServiceError reports a non-2xx answer from the model service.
type ServiceError struct {
	Path       string
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("model service %s: %d: %s", e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("model service %s: %d", e.Path, e.StatusCode)
}

// RemoteModel talks to an HTTP service hosting the sentiment classifier,
// the outcome models and the odds feed.
type RemoteModel struct {
	client *resty.Client
}

func NewRemoteModel(cfg RemoteConfig) *RemoteModel {
	client := resty.New()
	client.SetBaseURL(cfg.BaseURL)
	client.SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}
	return &RemoteModel{client: client}
}

type classifyRequest struct {
	Texts []string `json:"texts"`
}

type classifyResponse struct {
	Distributions []Distribution `json:"distributions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (m *RemoteModel) Classify(ctx context.Context, texts []string) ([]Distribution, error) {
	var out classifyResponse
	if err := m.post(ctx, "/classify", classifyRequest{Texts: texts}, &out); err != nil {
		return nil, err
	}
	if len(out.Distributions) != len(texts) {
		return nil, fmt.Errorf("model service /classify: got %d distributions for %d texts",
			len(out.Distributions), len(texts))
	}
	return out.Distributions, nil
}

func (m *RemoteModel) Predict(ctx context.Context, features Features) (outcome Outcome, err error) {
	err = m.post(ctx, "/predict", features, &outcome)
	return
}

func (m *RemoteModel) Odds(ctx context.Context, home, away string) (odds Odds, err error) {
	var failure errorResponse
	res, err := m.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"home": home, "away": away}).
		SetResult(&odds).
		SetError(&failure).
		Get("/odds")
	if err != nil {
		return odds, fmt.Errorf("model service /odds: %w", err)
	}
	if res.IsError() {
		return odds, &ServiceError{Path: "/odds", StatusCode: res.StatusCode(), Message: failure.Error}
	}
	return
}

func (m *RemoteModel) post(ctx context.Context, path string, body, result any) error {
	var failure errorResponse
	res, err := m.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		SetError(&failure).
		Post(path)
	if err != nil {
		return fmt.Errorf("model service %s: %w", path, err)
	}
	if res.IsError() {
		return &ServiceError{Path: path, StatusCode: res.StatusCode(), Message: failure.Error}
	}
	return nil
}
