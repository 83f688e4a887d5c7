package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"net/url"
	"strconv"
)

// pageEnvelope covers the three list shapes Jira uses: "values" (agile and
// changelog), "issues" (sprint issues) and "worklogs".
type pageEnvelope struct {
	StartAt    int             `json:"startAt"`
	MaxResults int             `json:"maxResults"`
	Total      int             `json:"total"`
	IsLast     *bool           `json:"isLast"`
	Values     json.RawMessage `json:"values"`
	Issues     json.RawMessage `json:"issues"`
	Worklogs   json.RawMessage `json:"worklogs"`
}

func (p pageEnvelope) items() json.RawMessage {
	for _, raw := range []json.RawMessage{p.Values, p.Issues, p.Worklogs} {
		if len(raw) > 0 && string(raw) != "null" {
			return raw
		}
	}
	return nil
}

// paginate walks a startAt/maxResults listing lazily. Pages are only
// fetched while the consumer keeps pulling.
func paginate[T any](ctx context.Context, c *Client, endpoint, path string, query url.Values) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		startAt := 0
		for {
			q := url.Values{}
			for k, v := range query {
				q[k] = v
			}
			q.Set("startAt", strconv.Itoa(startAt))
			q.Set("maxResults", strconv.Itoa(c.cfg.PageSize))

			var page pageEnvelope
			if err := c.getJSON(ctx, endpoint, path, q, &page); err != nil {
				yield(zero, err)
				return
			}
			var items []T
			if raw := page.items(); raw != nil {
				if err := json.Unmarshal(raw, &items); err != nil {
					yield(zero, fmt.Errorf("decoding %s page: %w", endpoint, err))
					return
				}
			}
			for _, it := range items {
				if !yield(it, nil) {
					return
				}
			}

			startAt += len(items)
			switch {
			case len(items) == 0:
				return
			case page.IsLast != nil:
				if *page.IsLast {
					return
				}
			case page.Total > 0:
				if startAt >= page.Total {
					return
				}
			case len(items) < c.cfg.PageSize:
				return
			}
		}
	}
}

// collect drains seq into a slice, stopping at the first error.
func collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
