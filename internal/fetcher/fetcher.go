package fetcher

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"placereviews-parser/internal/config"
	"placereviews-parser/internal/observability"
)

// Fetcher: любой источник сырого HTML страницы
type Fetcher interface {
	Fetch(ctx context.Context, urlStr string) (*FetchResponse, error)
	Close() error
}

type FetchResponse struct {
	StatusCode int
	Body       []byte
	URL        string
	Headers    http.Header
}

// TransportError: неуспешный статус или сетевая ошибка при загрузке страницы
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("failed to fetch %s: status code %d", e.URL, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type HTTPFetcher struct {
	client *resty.Client
	cfg    *config.Config
	logger *observability.Logger
}

func NewHTTPFetcher(cfg *config.Config, logger *observability.Logger) *HTTPFetcher {
	client := resty.New().
		SetTimeout(cfg.GetTotalTimeout()).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	return &HTTPFetcher{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Fetch делает один GET без повторов: любая ошибка сразу возвращается вызывающему
func (f *HTTPFetcher) Fetch(ctx context.Context, urlStr string) (*FetchResponse, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", f.cfg.UserAgent()).
		SetHeader("Accept-Language", f.cfg.AcceptLanguage()).
		Get(urlStr)
	if err != nil {
		return nil, &TransportError{URL: urlStr, Err: err}
	}

	f.logger.Debug("Response received",
		"url", urlStr,
		"status", resp.StatusCode(),
		"content_type", resp.Header().Get("Content-Type"),
		"body_size", len(resp.Body()),
	)

	if resp.StatusCode() != http.StatusOK {
		return nil, &TransportError{URL: urlStr, StatusCode: resp.StatusCode()}
	}

	return &FetchResponse{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
		URL:        urlStr,
		Headers:    resp.Header(),
	}, nil
}

func (f *HTTPFetcher) Close() error {
	return nil
}

// New выбирает реализацию по конфигу
func New(cfg *config.Config, logger *observability.Logger) Fetcher {
	if cfg.Rod.Enabled {
		return NewBrowserFetcher(cfg, logger)
	}
	return NewHTTPFetcher(cfg, logger)
}
