package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"dealscope/internal/utils"
)

const (
	userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:83.0) Gecko/20100101 Firefox/83.0"

	defaultTimeout  = 15 * time.Second
	defaultRetryMax = 2
)

// Config controls how the deals feed is fetched.
type Config struct {
	URL      string
	Timeout  time.Duration
	Proxy    string
	RetryMax int // negative disables retries
}

// Client fetches raw product records from the remote deals endpoint.
type Client struct {
	url  string
	http *retryablehttp.Client
}

// New builds a Client. A zero Timeout falls back to 15s; a zero RetryMax
// falls back to 2 retries.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("feed URL is not configured")
	}

	rc := retryablehttp.NewClient()
	rc.Logger = log.New(io.Discard, "", 0)
	rc.RetryMax = cfg.RetryMax
	if rc.RetryMax == 0 {
		rc.RetryMax = defaultRetryMax
	} else if rc.RetryMax < 0 {
		rc.RetryMax = 0
	}
	rc.RetryWaitMin = 250 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rc.HTTPClient.Timeout = timeout

	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL: %v", err)
		}
		rc.HTTPClient.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
	}

	return &Client{url: cfg.URL, http: rc}, nil
}

// Fetch retrieves the raw product sequence. The returned error doubles as
// the human-readable failure reason; callers are expected to treat a
// failure as "no data" and offer a manual retry, never to abort.
func (c *Client) Fetch(ctx context.Context) ([]gjson.Result, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("bad feed URL: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deals feed unreachable: %v", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading feed response: %v", err)
	}
	body := string(bodyBytes)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reason := fmt.Sprintf("deals feed returned HTTP %d", resp.StatusCode)
		if title := HTMLTitle(body); title != "" {
			reason += ": " + title
		}
		return nil, errors.New(reason)
	}

	if gjson.Valid(body) {
		return Items(body), nil
	}

	// Some feeds serve a rendered HTML page with the data embedded in a
	// script tag instead of a JSON body.
	if embedded, ok := EmbeddedJSON(body); ok {
		if items := Items(embedded); items != nil {
			return items, nil
		}
		if inner := gjson.Get(embedded, "props.pageProps"); inner.Exists() {
			utils.Log.Debug("probing embedded page props for product data")
			return Items(inner.Raw), nil
		}
	}

	return nil, errors.New("deals feed returned an unparseable body")
}

// URL returns the configured endpoint, for display in error states.
func (c *Client) URL() string {
	return c.url
}
