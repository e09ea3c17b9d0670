package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"placereviews-parser/internal/config"
	"placereviews-parser/internal/observability"
)

// BrowserFetcher рендерит страницу в headless Chrome.
// Браузер запускается при первом Fetch и живёт до Close.
type BrowserFetcher struct {
	cfg     *config.Config
	logger  *observability.Logger
	mu      sync.Mutex
	browser *rod.Browser
}

func NewBrowserFetcher(cfg *config.Config, logger *observability.Logger) *BrowserFetcher {
	return &BrowserFetcher{
		cfg:    cfg,
		logger: logger,
	}
}

func (f *BrowserFetcher) connect() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser != nil {
		return f.browser, nil
	}

	l := launcher.New().Headless(true)
	if f.cfg.Rod.ChromePath != "" {
		l = l.Bin(f.cfg.Rod.ChromePath)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	f.browser = browser
	return browser, nil
}

func (f *BrowserFetcher) Fetch(ctx context.Context, urlStr string) (*FetchResponse, error) {
	browser, err := f.connect()
	if err != nil {
		return nil, &TransportError{URL: urlStr, Err: err}
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, &TransportError{URL: urlStr, Err: err}
	}
	defer func() {
		if err := page.Close(); err != nil {
			f.logger.Warn("Failed to close page", "url", urlStr, "error", err.Error())
		}
	}()

	p := page.Timeout(f.cfg.GetRodPageTimeout())

	if err := p.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      f.cfg.UserAgent(),
		AcceptLanguage: f.cfg.AcceptLanguage(),
	}); err != nil {
		return nil, &TransportError{URL: urlStr, Err: err}
	}

	if err := p.Navigate(urlStr); err != nil {
		return nil, &TransportError{URL: urlStr, Err: err}
	}

	if err := p.Timeout(f.cfg.GetRodWaitLoadTimeout()).WaitLoad(); err != nil {
		return nil, &TransportError{URL: urlStr, Err: err}
	}

	if delay := f.cfg.GetRodLazyLoadDelay(); delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, &TransportError{URL: urlStr, Err: ctx.Err()}
		}
	}

	html, err := p.HTML()
	if err != nil {
		return nil, &TransportError{URL: urlStr, Err: err}
	}

	f.logger.Debug("Page rendered", "url", urlStr, "body_size", len(html))

	return &FetchResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(html),
		URL:        urlStr,
	}, nil
}

func (f *BrowserFetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser == nil {
		return nil
	}
	err := f.browser.Close()
	f.browser = nil
	return err
}
