package refresh

import (
	"time"

	perr "oasis/internal/platform/errors"
	"oasis/internal/platform/logger"
)

// Event describes one fetch; Duration, Err and Discarded are set on FetchFinished only
type Event struct {
	Scheduler string
	RunID     string
	Trigger   Trigger
	Started   time.Time
	Duration  time.Duration
	Err       error
	Discarded bool // finished after Stop, result dropped
}

// Observer is notified around every fetch, on the fetching goroutine
// implementations must not block
type Observer interface {
	FetchStarted(Event)
	FetchFinished(Event)
}

// ObserverFuncs adapts plain functions to Observer, nil fields are skipped
type ObserverFuncs struct {
	Started  func(Event)
	Finished func(Event)
}

func (o ObserverFuncs) FetchStarted(e Event) {
	if o.Started != nil {
		o.Started(e)
	}
}

func (o ObserverFuncs) FetchFinished(e Event) {
	if o.Finished != nil {
		o.Finished(e)
	}
}

// LogObserver writes fetch lifecycle lines to the refresh component logger
type LogObserver struct{}

func (LogObserver) FetchStarted(e Event) {
	logger.Named("refresh").Debug().
		Str("scheduler", e.Scheduler).
		Str("run_id", e.RunID).
		Str("trigger", string(e.Trigger)).
		Msg("fetch started")
}

func (LogObserver) FetchFinished(e Event) {
	log := logger.Named("refresh")
	switch {
	case e.Discarded:
		log.Info().
			Str("scheduler", e.Scheduler).
			Str("run_id", e.RunID).
			Dur("took", e.Duration).
			Msg("fetch finished after stop, result dropped")
	case e.Err != nil:
		log.Warn().
			Err(e.Err).
			Str("scheduler", e.Scheduler).
			Str("run_id", e.RunID).
			Str("trigger", string(e.Trigger)).
			Bool("retryable", perr.IsRetryable(e.Err)).
			Dur("took", e.Duration).
			Msg("fetch failed")
	default:
		log.Debug().
			Str("scheduler", e.Scheduler).
			Str("run_id", e.RunID).
			Dur("took", e.Duration).
			Msg("fetch ok")
	}
}

// FetchFailed is the message every failed fetch surfaces as
const FetchFailed = "fetch failed"

// Descriptor is the error a view shows for a failed fetch
// network and decode failures share one message, Code keeps the HTTP mapping
type Descriptor struct {
	Code    perr.ErrorCode `json:"code"`
	Message string         `json:"message"`
}

// Describe turns a held fetch error into its descriptor, nil for nil
func Describe(err error) *Descriptor {
	if err == nil {
		return nil
	}
	return &Descriptor{Code: perr.CodeOf(err), Message: FetchFailed}
}
