package jira

import (
	"context"
	"fmt"
	"iter"
	"net/url"

	"github.com/alexanderramin/sprintburn/internal/app"
	"github.com/alexanderramin/sprintburn/internal/domain"
)

var (
	_ app.Tracker        = (*Client)(nil)
	_ app.BoardDirectory = (*Client)(nil)
)

func (c *Client) CurrentEstimates(ctx context.Context, itemKey string) (domain.Estimates, error) {
	q := url.Values{}
	q.Set("fields", c.cfg.OriginalField+","+c.cfg.RemainingField)

	var issue issueJSON
	if err := c.getJSON(ctx, "issue", c.restPath("/issue/%s", itemKey), q, &issue); err != nil {
		return domain.Estimates{}, err
	}
	if issue.Key == "" {
		issue.Key = itemKey
	}
	oe, err := issue.seconds(c.cfg.OriginalField)
	if err != nil {
		return domain.Estimates{}, err
	}
	re, err := issue.seconds(c.cfg.RemainingField)
	if err != nil {
		return domain.Estimates{}, err
	}
	return domain.Estimates{Original: oe, Remaining: re}, nil
}

func (c *Client) ChangeHistory(ctx context.Context, itemKey string) iter.Seq2[domain.ChangeEvent, error] {
	pages := paginate[historyJSON](ctx, c, "changelog", c.restPath("/issue/%s/changelog", itemKey), nil)
	return func(yield func(domain.ChangeEvent, error) bool) {
		for h, err := range pages {
			if err != nil {
				yield(domain.ChangeEvent{}, err)
				return
			}
			ev, err := h.toDomain(itemKey)
			if !yield(ev, err) || err != nil {
				return
			}
		}
	}
}

func (c *Client) WorkLog(ctx context.Context, itemKey string) iter.Seq2[domain.WorkLogEntry, error] {
	pages := paginate[worklogJSON](ctx, c, "worklog", c.restPath("/issue/%s/worklog", itemKey), nil)
	return func(yield func(domain.WorkLogEntry, error) bool) {
		for w, err := range pages {
			if err != nil {
				yield(domain.WorkLogEntry{}, err)
				return
			}
			entry, err := w.toDomain(itemKey)
			if !yield(entry, err) || err != nil {
				return
			}
		}
	}
}

// SprintWindow returns the sprint's start and end. A sprint without an end
// yet is reported open, ending now.
func (c *Client) SprintWindow(ctx context.Context, sprintID int64) (domain.SprintWindow, error) {
	s, err := c.Sprint(ctx, sprintID)
	if err != nil {
		return domain.SprintWindow{}, err
	}
	if s.StartDate == nil {
		return domain.SprintWindow{}, fmt.Errorf("sprint %d: %w", sprintID, app.ErrMissingWindowStart)
	}
	w := domain.SprintWindow{Start: *s.StartDate}
	if s.EndDate != nil {
		w.End = *s.EndDate
	} else {
		w.End = c.now()
		w.Open = true
	}
	return w, nil
}

// SprintItemKeys lists the keys of every issue in the sprint, without
// duplicates, in the order Jira returns them.
func (c *Client) SprintItemKeys(ctx context.Context, sprintID int64) ([]string, error) {
	q := url.Values{}
	q.Set("fields", "key")
	issues, err := collect(paginate[issueKeyJSON](ctx, c, "sprint_issues", agilePath("/sprint/%d/issue", sprintID), q))
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(issues))
	keys := make([]string, 0, len(issues))
	for _, is := range issues {
		if is.Key == "" || seen[is.Key] {
			continue
		}
		seen[is.Key] = true
		keys = append(keys, is.Key)
	}
	return keys, nil
}
