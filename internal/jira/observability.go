package jira

import (
	"time"

	"github.com/rs/zerolog"
)

// RequestEvent records one HTTP round trip to Jira.
type RequestEvent struct {
	Endpoint string
	Method   string
	Path     string
	Status   int // 0 when the request never got a response
	Attempt  int
	Duration time.Duration
	Err      error
}

// Observer receives events about Jira calls for logging and metrics.
type Observer interface {
	OnRequest(event RequestEvent)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnRequest(RequestEvent) {}

// MultiObserver fans every event out to each non-nil observer.
type MultiObserver []Observer

func (m MultiObserver) OnRequest(event RequestEvent) {
	for _, o := range m {
		if o != nil {
			o.OnRequest(event)
		}
	}
}

// LogObserver writes request events through zerolog.
type LogObserver struct {
	logger zerolog.Logger
}

func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnRequest(event RequestEvent) {
	ev := o.logger.Debug()
	if event.Err != nil || event.Status >= 400 {
		ev = o.logger.Warn().Err(event.Err)
	}
	ev.Str("endpoint", event.Endpoint).
		Str("method", event.Method).
		Str("path", event.Path).
		Int("status", event.Status).
		Int("attempt", event.Attempt).
		Dur("duration", event.Duration).
		Msg("jira_request")
}
