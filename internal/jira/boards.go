package jira

import (
	"context"
	"net/url"
	"strings"

	"github.com/alexanderramin/sprintburn/internal/domain"
)

func (c *Client) Boards(ctx context.Context) ([]domain.Board, error) {
	raw, err := collect(paginate[boardJSON](ctx, c, "boards", agilePath("/board"), nil))
	if err != nil {
		return nil, err
	}
	out := make([]domain.Board, 0, len(raw))
	for _, b := range raw {
		out = append(out, domain.Board{ID: b.ID, Name: b.Name, Type: b.Type})
	}
	return out, nil
}

// Sprints lists a board's sprints, optionally filtered by state
// ("active", "closed", "future").
func (c *Client) Sprints(ctx context.Context, boardID int64, states ...string) ([]domain.Sprint, error) {
	var q url.Values
	if len(states) > 0 {
		q = url.Values{}
		q.Set("state", strings.Join(states, ","))
	}
	raw, err := collect(paginate[sprintJSON](ctx, c, "board_sprints", agilePath("/board/%d/sprint", boardID), q))
	if err != nil {
		return nil, err
	}
	out := make([]domain.Sprint, 0, len(raw))
	for _, s := range raw {
		sp, err := s.toDomain()
		if err != nil {
			return nil, err
		}
		if sp.BoardID == 0 {
			sp.BoardID = boardID
		}
		out = append(out, sp)
	}
	return out, nil
}

func (c *Client) Sprint(ctx context.Context, sprintID int64) (domain.Sprint, error) {
	var s sprintJSON
	if err := c.getJSON(ctx, "sprint", agilePath("/sprint/%d", sprintID), nil, &s); err != nil {
		return domain.Sprint{}, err
	}
	return s.toDomain()
}
