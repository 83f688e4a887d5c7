package testutil

import (
	"cmp"
	"context"
	"fmt"
	"iter"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/sprintburn/internal/app"
	"github.com/alexanderramin/sprintburn/internal/domain"
)

// FakeItem is one tracked item held by FakeTracker.
type FakeItem struct {
	Current domain.Estimates
	History []domain.ChangeEvent
	WorkLog []domain.WorkLogEntry
}

// FakeTracker is an in-memory app.Tracker and app.BoardDirectory. Errors
// set in the Err* fields are returned by the matching calls.
type FakeTracker struct {
	mu sync.Mutex

	BoardList  []domain.Board
	SprintByID map[int64]domain.Sprint
	Windows    map[int64]domain.SprintWindow
	Keys       map[int64][]string
	Items      map[string]*FakeItem

	ErrWindow  error
	ErrKeys    error
	ErrHistory map[string]error

	// Calls counts every tracker call, for asserting fan-out.
	Calls atomic.Int64
}

var (
	_ app.Tracker        = (*FakeTracker)(nil)
	_ app.BoardDirectory = (*FakeTracker)(nil)
)

func NewFakeTracker() *FakeTracker {
	return &FakeTracker{
		SprintByID: map[int64]domain.Sprint{},
		Windows:    map[int64]domain.SprintWindow{},
		Keys:       map[int64][]string{},
		Items:      map[string]*FakeItem{},
		ErrHistory: map[string]error{},
	}
}

// AddSprint registers a sprint whose window runs from start to end. A zero
// end leaves the sprint open.
func (f *FakeTracker) AddSprint(id, boardID int64, name string, start, end time.Time, keys ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := domain.Sprint{ID: id, BoardID: boardID, Name: name, State: domain.SprintActive, StartDate: &start}
	w := domain.SprintWindow{Start: start, End: end}
	if end.IsZero() {
		w.Open = true
	} else {
		s.EndDate = &end
		s.State = domain.SprintClosed
	}
	f.SprintByID[id] = s
	f.Windows[id] = w
	f.Keys[id] = keys
}

func (f *FakeTracker) SetItem(key string, item FakeItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := item
	f.Items[key] = &cp
}

func (f *FakeTracker) item(key string) (*FakeItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.Items[key]
	if !ok {
		return nil, fmt.Errorf("item %s: not found", key)
	}
	return it, nil
}

func (f *FakeTracker) CurrentEstimates(_ context.Context, key string) (domain.Estimates, error) {
	f.Calls.Add(1)
	it, err := f.item(key)
	if err != nil {
		return domain.Estimates{}, err
	}
	return it.Current, nil
}

func (f *FakeTracker) ChangeHistory(_ context.Context, key string) iter.Seq2[domain.ChangeEvent, error] {
	f.Calls.Add(1)
	return func(yield func(domain.ChangeEvent, error) bool) {
		f.mu.Lock()
		injected := f.ErrHistory[key]
		f.mu.Unlock()
		if injected != nil {
			yield(domain.ChangeEvent{}, injected)
			return
		}
		it, err := f.item(key)
		if err != nil {
			yield(domain.ChangeEvent{}, err)
			return
		}
		for _, ev := range it.History {
			ev.ItemKey = key
			if !yield(ev, nil) {
				return
			}
		}
	}
}

func (f *FakeTracker) WorkLog(_ context.Context, key string) iter.Seq2[domain.WorkLogEntry, error] {
	f.Calls.Add(1)
	return func(yield func(domain.WorkLogEntry, error) bool) {
		it, err := f.item(key)
		if err != nil {
			yield(domain.WorkLogEntry{}, err)
			return
		}
		for _, e := range it.WorkLog {
			e.ItemKey = key
			if !yield(e, nil) {
				return
			}
		}
	}
}

func (f *FakeTracker) SprintWindow(_ context.Context, sprintID int64) (domain.SprintWindow, error) {
	f.Calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ErrWindow != nil {
		return domain.SprintWindow{}, f.ErrWindow
	}
	w, ok := f.Windows[sprintID]
	if !ok {
		return domain.SprintWindow{}, fmt.Errorf("sprint %d: not found", sprintID)
	}
	return w, nil
}

func (f *FakeTracker) SprintItemKeys(_ context.Context, sprintID int64) ([]string, error) {
	f.Calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ErrKeys != nil {
		return nil, f.ErrKeys
	}
	return append([]string(nil), f.Keys[sprintID]...), nil
}

func (f *FakeTracker) Boards(context.Context) ([]domain.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Board(nil), f.BoardList...), nil
}

func (f *FakeTracker) Sprints(_ context.Context, boardID int64, states ...string) ([]domain.Sprint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := map[string]bool{}
	for _, s := range states {
		want[s] = true
	}
	var out []domain.Sprint
	for _, s := range f.SprintByID {
		if s.BoardID != boardID {
			continue
		}
		if len(want) > 0 && !want[string(s.State)] {
			continue
		}
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b domain.Sprint) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (f *FakeTracker) Sprint(_ context.Context, sprintID int64) (domain.Sprint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.SprintByID[sprintID]
	if !ok {
		return domain.Sprint{}, fmt.Errorf("sprint %d: not found", sprintID)
	}
	return s, nil
}
