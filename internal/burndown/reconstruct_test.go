package burndown

import (
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/sprintburn/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestReconstruct_ReversesChangesAfterReference(t *testing.T) {
	current := domain.Estimates{Original: 36000, Remaining: 7200}
	events := []domain.ChangeEvent{
		event(sprintT0.Add(-time.Hour), change("timeoriginalestimate", 0, 28800)),
		event(sprintT0.Add(2*time.Hour),
			change("timeoriginalestimate", 28800, 36000),
			change("timeestimate", 28800, 36000)),
		event(sprintT0.Add(48*time.Hour), change("timeestimate", 36000, 7200)),
	}

	got := Reconstruct("SB-1", current, events, sprintT0, DefaultFieldSet())

	assert.Equal(t, domain.ItemBaseline{ItemKey: "SB-1", Original: 28800, Remaining: 28800}, got)
}

func TestReconstruct_EventAtReferenceIsNotReversed(t *testing.T) {
	current := domain.Estimates{Original: 0, Remaining: 3600}
	events := []domain.ChangeEvent{
		event(sprintT0, change("timeestimate", 7200, 3600)),
	}

	got := Reconstruct("SB-1", current, events, sprintT0, DefaultFieldSet())

	assert.Equal(t, int64(3600), got.Remaining)
}

func TestReconstruct_ComparesInstantsAcrossZones(t *testing.T) {
	current := domain.Estimates{Remaining: 3600}
	// Same instant as sprintT0 expressed in UTC.
	events := []domain.ChangeEvent{
		event(sprintT0.UTC(), change("timeestimate", 7200, 3600)),
		event(sprintT0.UTC().Add(time.Second), change("timeestimate", 0, 0)),
	}

	got := Reconstruct("SB-1", current, events, sprintT0, DefaultFieldSet())

	assert.Equal(t, int64(3600), got.Remaining)
}

func TestReconstruct_AfterLastEventIsNoop(t *testing.T) {
	current := domain.Estimates{Original: 18000, Remaining: 900}
	events := []domain.ChangeEvent{
		event(sprintT0.Add(time.Hour), change("timeestimate", 0, 18000)),
		event(sprintT0.Add(3*time.Hour), change("timeestimate", 18000, 900)),
		event(sprintT0.Add(4*time.Hour), change("timeoriginalestimate", 0, 18000)),
	}

	got := Reconstruct("SB-1", current, events, sprintT0.Add(24*time.Hour), DefaultFieldSet())

	assert.Equal(t, current.Original, got.Original)
	assert.Equal(t, current.Remaining, got.Remaining)
}

func TestReconstruct_OrderIndependent(t *testing.T) {
	current := domain.Estimates{Original: 10, Remaining: 20}
	events := []domain.ChangeEvent{
		event(sprintT0.Add(3*time.Hour), change("timeestimate", 5, 20)),
		event(sprintT0.Add(time.Hour), change("timeoriginalestimate", 4, 10)),
		event(sprintT0.Add(-time.Hour), change("timeestimate", 0, 50)),
		event(sprintT0.Add(2*time.Hour), change("timeestimate", 50, 5)),
	}
	reversed := make([]domain.ChangeEvent, len(events))
	for i, ev := range events {
		reversed[len(events)-1-i] = ev
	}

	a := Reconstruct("SB-1", current, events, sprintT0, DefaultFieldSet())
	b := Reconstruct("SB-1", current, reversed, sprintT0, DefaultFieldSet())

	assert.Equal(t, a, b)
	assert.Equal(t, int64(4), a.Original)
	assert.Equal(t, int64(50), a.Remaining)
}

func TestReconstruct_AbsentValuesCountAsZero(t *testing.T) {
	current := domain.Estimates{Remaining: 7200}
	events := []domain.ChangeEvent{
		event(sprintT0.Add(time.Hour), domain.FieldChange{FieldID: "timeestimate", To: i64(7200)}),
		event(sprintT0.Add(2*time.Hour), domain.FieldChange{FieldID: "timeestimate"}),
	}

	got := Reconstruct("SB-1", current, events, sprintT0, DefaultFieldSet())

	assert.Equal(t, int64(0), got.Remaining)
}

func TestReconstruct_IgnoresUntrackedFields(t *testing.T) {
	current := domain.Estimates{Original: 100, Remaining: 100}
	events := []domain.ChangeEvent{
		event(sprintT0.Add(time.Hour),
			change("timespent", 0, 3600),
			domain.FieldChange{Field: "status", FromString: "To Do", ToString: "Done"}),
	}

	got := Reconstruct("SB-1", current, events, sprintT0, DefaultFieldSet())

	assert.Equal(t, int64(100), got.Original)
	assert.Equal(t, int64(100), got.Remaining)
}

func TestReconstruct_MatchesDisplayNameAlias(t *testing.T) {
	current := domain.Estimates{Original: 7200}
	events := []domain.ChangeEvent{
		event(sprintT0.Add(time.Hour), domain.FieldChange{Field: "Original Estimate", From: i64(3600), To: i64(7200)}),
	}

	got := Reconstruct("SB-1", current, events, sprintT0, DefaultFieldSet())

	assert.Equal(t, int64(3600), got.Original)
}

func TestReconstruct_CustomFieldSet(t *testing.T) {
	fields := FieldSet{OriginalIDs: []string{"customfield_1"}, RemainingIDs: []string{"customfield_2"}}
	current := domain.Estimates{Original: 10, Remaining: 10}
	events := []domain.ChangeEvent{
		event(sprintT0.Add(time.Hour),
			change("customfield_1", 4, 10),
			change("customfield_2", 7, 10),
			change("timeestimate", 0, 10)),
	}

	got := Reconstruct("SB-1", current, events, sprintT0, fields)

	assert.Equal(t, int64(4), got.Original)
	assert.Equal(t, int64(7), got.Remaining)
}

func TestReconstruct_AdversarialHistoryClampsAtZero(t *testing.T) {
	current := domain.Estimates{Original: 0, Remaining: 600}
	events := []domain.ChangeEvent{
		event(sprintT0.Add(time.Hour), change("timeestimate", 0, 90000)),
		event(sprintT0.Add(2*time.Hour), change("timeoriginalestimate", 0, 50000)),
	}

	got := Reconstruct("SB-1", current, events, sprintT0, DefaultFieldSet())

	assert.Equal(t, int64(0), got.Original)
	assert.Equal(t, int64(0), got.Remaining)
}

func TestReconstruct_RandomHistoriesNeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	fields := DefaultFieldSet()
	for i := 0; i < 200; i++ {
		var events []domain.ChangeEvent
		for j := 0; j < rng.Intn(20); j++ {
			at := sprintT0.Add(time.Duration(rng.Intn(240)-120) * time.Hour)
			id := "timeestimate"
			if rng.Intn(2) == 0 {
				id = "timeoriginalestimate"
			}
			events = append(events, event(at, change(id, rng.Int63n(100000), rng.Int63n(100000))))
		}
		current := domain.Estimates{Original: rng.Int63n(50000), Remaining: rng.Int63n(50000)}

		got := Reconstruct("SB-1", current, events, sprintT0, fields)

		assert.GreaterOrEqual(t, got.Original, int64(0))
		assert.GreaterOrEqual(t, got.Remaining, int64(0))
	}
}

func TestReconstruct_RoundTripWithReplay(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	fields := DefaultFieldSet()
	for i := 0; i < 100; i++ {
		// Build a consistent forward history starting from a known state.
		start := domain.Estimates{Original: rng.Int63n(40000), Remaining: rng.Int63n(40000)}
		state := start
		var events []domain.ChangeEvent
		at := sprintT0
		for j := 0; j < 1+rng.Intn(10); j++ {
			at = at.Add(time.Duration(1+rng.Intn(30)) * time.Hour)
			next := domain.Estimates{Original: state.Original, Remaining: rng.Int63n(40000)}
			items := []domain.FieldChange{change("timeestimate", state.Remaining, next.Remaining)}
			if rng.Intn(3) == 0 {
				next.Original = rng.Int63n(40000)
				items = append(items, change("timeoriginalestimate", state.Original, next.Original))
			}
			events = append(events, event(at, items...))
			state = next
		}
		current := state
		before := sprintT0.Add(-time.Minute)

		baseline := Reconstruct("SB-1", current, events, before, fields)
		assert.Equal(t, start.Original, baseline.Original)
		assert.Equal(t, start.Remaining, baseline.Remaining)

		replayed := Replay(domain.Estimates{Original: baseline.Original, Remaining: baseline.Remaining}, events, before, fields)
		assert.Equal(t, current, replayed)
	}
}

func TestMatchingEdits(t *testing.T) {
	events := []domain.ChangeEvent{
		event(sprintT0, change("timeestimate", 0, 1), change("status", 0, 0)),
		event(sprintT0, change("Original Estimate", 0, 1)),
		event(sprintT0, change("assignee", 0, 0)),
	}
	assert.Equal(t, 2, MatchingEdits(events, DefaultFieldSet()))
	assert.Equal(t, 0, MatchingEdits(nil, DefaultFieldSet()))
}
