package domain

import (
	"context"
	"time"

	"oasis/internal/adapters/sources/livescore"
	"oasis/internal/core/refresh"
)

// Feed is the read and trigger surface of one scheduler, satisfied by *refresh.Scheduler
type Feed[T any] interface {
	Name() string
	Current() refresh.Snapshot[T]
	Trigger(ctx context.Context) bool
	IsFetching() bool
}

// DetailPort loads one match with its events on demand
type DetailPort interface {
	Detail(ctx context.Context, id string) (livescore.Detail, error)
}

// HealthPort reports the state of every scheduler in the fleet
type HealthPort interface {
	States(now time.Time) []SchedulerState
}
