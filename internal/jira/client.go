// Package jira adapts the Jira Cloud REST and Agile APIs to the tracker
// ports used by the series service.
package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to one Jira site. It is safe for concurrent use.
type Client struct {
	cfg      Config
	base     *url.URL
	http     *http.Client
	observer Observer
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewClient validates cfg.BaseURL and returns a ready client.
func NewClient(cfg Config, observer Observer) (*Client, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid jira base url %q", cfg.BaseURL)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultConfig().PageSize
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultConfig().APIVersion
	}
	if cfg.OriginalField == "" {
		cfg.OriginalField = DefaultConfig().OriginalField
	}
	if cfg.RemainingField == "" {
		cfg.RemainingField = DefaultConfig().RemainingField
	}
	return &Client{
		cfg:      cfg,
		base:     base,
		http:     &http.Client{Timeout: cfg.Timeout},
		observer: observer,
		now:      time.Now,
		sleep:    sleepContext,
	}, nil
}

// WithClock returns a copy whose notion of "now" (used for open sprints)
// comes from clock.
func (c *Client) WithClock(clock func() time.Time) *Client {
	cp := *c
	cp.now = clock
	return &cp
}

func (c *Client) restPath(format string, args ...any) string {
	return "/rest/api/" + c.cfg.APIVersion + fmt.Sprintf(format, args...)
}

func agilePath(format string, args ...any) string {
	return "/rest/agile/1.0" + fmt.Sprintf(format, args...)
}

// getJSON issues a GET and decodes the body into out, retrying transport
// failures, 429 and 5xx responses with exponential backoff.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	u := *c.base
	u.Path = c.base.Path + path
	u.RawQuery = query.Encode()

	attempts := 1 + max(0, c.cfg.MaxRetries)
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		start := time.Now()
		status, header, body, err := c.do(ctx, u.String())
		c.observer.OnRequest(RequestEvent{
			Endpoint: endpoint,
			Method:   http.MethodGet,
			Path:     path,
			Status:   status,
			Attempt:  attempt,
			Duration: time.Since(start),
			Err:      err,
		})

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			lastErr = fmt.Errorf("%w: %s: %v", ErrUnavailable, endpoint, err)
		} else {
			switch {
			case status >= 200 && status < 300:
				if err := json.Unmarshal(body, out); err != nil {
					return fmt.Errorf("decoding %s response: %w", endpoint, err)
				}
				return nil
			case status == http.StatusUnauthorized || status == http.StatusForbidden:
				return fmt.Errorf("%w: %s returned %d", ErrUnauthorized, endpoint, status)
			case status == http.StatusNotFound:
				return fmt.Errorf("%w: %s", ErrNotFound, path)
			case status == http.StatusTooManyRequests || status >= 500:
				lastErr = fmt.Errorf("%w: %w", ErrUnavailable, &StatusError{Endpoint: endpoint, StatusCode: status, Body: snippet(body)})
			default:
				return &StatusError{Endpoint: endpoint, StatusCode: status, Body: snippet(body)}
			}
		}

		if attempt == attempts {
			break
		}
		if err := c.sleep(ctx, c.backoff(attempt, header)); err != nil {
			return err
		}
	}
	return lastErr
}

func (c *Client) do(ctx context.Context, rawURL string) (int, http.Header, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.PAT != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.PAT)
	} else if c.cfg.Email != "" || c.cfg.APIToken != "" {
		req.SetBasicAuth(c.cfg.Email, c.cfg.APIToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, resp.Header, nil, fmt.Errorf("reading response: %w", err)
	}
	return resp.StatusCode, resp.Header, body, nil
}

// backoff honours a Retry-After header in seconds, otherwise doubles
// BackoffBase per attempt.
func (c *Client) backoff(attempt int, header http.Header) time.Duration {
	if header != nil {
		if v := header.Get("Retry-After"); v != "" {
			if secs, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && secs >= 0 {
				return time.Duration(secs) * time.Second
			}
		}
	}
	return c.cfg.BackoffBase << (attempt - 1)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func snippet(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
