// Package domain defines the feed fleet types shared with the API modules
package domain

import (
	"time"

	"oasis/internal/adapters/sources/footballdata"
	"oasis/internal/core/record"
	"oasis/internal/core/refresh"
)

// Scheduler names, also used as metric labels
const (
	Matches  = "matches"
	News     = "news"
	Titles   = "titles"
	Fixtures = "fixtures"
)

// Scheduler health states reported by readiness
const (
	StateOK      = "ok"
	StateStale   = "stale"
	StateFailing = "failing"
	StateEmpty   = "empty"
)

// SchedulerState is the readiness view of one scheduler
type SchedulerState struct {
	Name      string              `json:"name"       example:"matches"`
	State     string              `json:"state"      example:"ok"`
	Running   bool                `json:"running"`
	Fetching  bool                `json:"fetching"`
	Version   uint64              `json:"version"    example:"12"`
	Items     int                 `json:"items"      example:"48"`
	Interval  string              `json:"interval"   example:"1m0s"`
	FetchedAt *time.Time          `json:"fetched_at,omitempty"`
	Error     *refresh.Descriptor `json:"error,omitempty"`
}

// FixtureBoard is one fixtures refresh: football-data lists plus highlight videos
type FixtureBoard struct {
	footballdata.Fixtures
	Highlights []record.Record `json:"highlights"`
}

// Size counts every record on the board
func (b FixtureBoard) Size() int {
	return len(b.Live) + len(b.Recent) + len(b.Upcoming) + len(b.Highlights)
}
