package jira

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/sprintburn/internal/domain"
	"github.com/alexanderramin/sprintburn/internal/timeparse"
)

type userJSON struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

func (u *userJSON) name() string {
	if u == nil {
		return ""
	}
	return domain.CoalesceStr(u.DisplayName, u.EmailAddress, u.AccountID)
}

type sprintJSON struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	State         string `json:"state"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	CompleteDate  string `json:"completeDate"`
	OriginBoardID int64  `json:"originBoardId"`
}

func (s sprintJSON) toDomain() (domain.Sprint, error) {
	out := domain.Sprint{
		ID:      s.ID,
		BoardID: s.OriginBoardID,
		Name:    s.Name,
		State:   domain.SprintState(strings.ToLower(s.State)),
	}
	var err error
	if out.StartDate, err = optionalTime(s.StartDate); err != nil {
		return domain.Sprint{}, fmt.Errorf("sprint %d startDate: %w", s.ID, err)
	}
	if out.EndDate, err = optionalTime(s.EndDate); err != nil {
		return domain.Sprint{}, fmt.Errorf("sprint %d endDate: %w", s.ID, err)
	}
	if out.CompleteDate, err = optionalTime(s.CompleteDate); err != nil {
		return domain.Sprint{}, fmt.Errorf("sprint %d completeDate: %w", s.ID, err)
	}
	return out, nil
}

func optionalTime(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := timeparse.Parse(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type boardJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type issueKeyJSON struct {
	Key string `json:"key"`
}

type issueJSON struct {
	Key    string                     `json:"key"`
	Fields map[string]json.RawMessage `json:"fields"`
}

// seconds reads a numeric issue field; null or absent is zero.
func (i issueJSON) seconds(field string) (int64, error) {
	raw, ok := i.Fields[field]
	if !ok {
		return 0, nil
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("issue %s field %s: %w", i.Key, field, err)
	}
	v, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil {
			return 0, fmt.Errorf("issue %s field %s: %w", i.Key, field, err)
		}
		v = int64(f)
	}
	return v, nil
}

type historyJSON struct {
	ID      string            `json:"id"`
	Author  *userJSON         `json:"author"`
	Created string            `json:"created"`
	Items   []historyItemJSON `json:"items"`
}

type historyItemJSON struct {
	Field      string  `json:"field"`
	FieldID    string  `json:"fieldId"`
	From       *string `json:"from"`
	FromString *string `json:"fromString"`
	To         *string `json:"to"`
	ToString   *string `json:"toString"`
}

func (h historyJSON) toDomain(itemKey string) (domain.ChangeEvent, error) {
	created, err := timeparse.Parse(h.Created)
	if err != nil {
		return domain.ChangeEvent{}, fmt.Errorf("%s changelog %s: %w", itemKey, h.ID, err)
	}
	ev := domain.ChangeEvent{
		ItemKey: itemKey,
		ID:      h.ID,
		Created: created,
		Author:  h.Author.name(),
		Items:   make([]domain.FieldChange, 0, len(h.Items)),
	}
	for _, it := range h.Items {
		ev.Items = append(ev.Items, domain.FieldChange{
			FieldID:    it.FieldID,
			Field:      it.Field,
			From:       estimateValue(it.From, it.FromString),
			To:         estimateValue(it.To, it.ToString),
			FromString: deref(it.FromString),
			ToString:   deref(it.ToString),
		})
	}
	return ev, nil
}

// estimateValue reads a changelog value as seconds. The raw value is
// normally a plain integer; some sites record duration text such as "1d 2h",
// so that and the display string are tried next. Anything unreadable is
// treated as absent.
func estimateValue(raw, display *string) *int64 {
	for _, s := range []*string{raw, display} {
		if s == nil || strings.TrimSpace(*s) == "" {
			continue
		}
		if v, err := strconv.ParseInt(strings.TrimSpace(*s), 10, 64); err == nil {
			return &v
		}
		if v, err := timeparse.ParseJiraDuration(*s); err == nil {
			return &v
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type worklogJSON struct {
	ID               string    `json:"id"`
	Author           *userJSON `json:"author"`
	Started          string    `json:"started"`
	Created          string    `json:"created"`
	TimeSpentSeconds int64     `json:"timeSpentSeconds"`
}

func (w worklogJSON) toDomain(itemKey string) (domain.WorkLogEntry, error) {
	started, err := optionalTime(w.Started)
	if err != nil {
		return domain.WorkLogEntry{}, fmt.Errorf("%s worklog %s started: %w", itemKey, w.ID, err)
	}
	created, err := optionalTime(w.Created)
	if err != nil {
		return domain.WorkLogEntry{}, fmt.Errorf("%s worklog %s created: %w", itemKey, w.ID, err)
	}
	entry := domain.WorkLogEntry{
		ItemKey: itemKey,
		ID:      w.ID,
		Author:  w.Author.name(),
		Seconds: w.TimeSpentSeconds,
	}
	if started != nil {
		entry.Started = *started
	}
	if created != nil {
		entry.Created = *created
	}
	return entry, nil
}
