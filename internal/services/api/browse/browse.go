// Package browse is the carousel glue shared by the feed modules:
// it resolves a paging cursor from a browse request and stamps views with scheduler status
package browse

import (
	"context"
	"strconv"
	"time"

	"oasis/internal/core/paging"
	"oasis/internal/core/record"
	"oasis/internal/core/refresh"
	"oasis/internal/core/status"
	"oasis/internal/modkit/httpkit"
	perr "oasis/internal/platform/errors"
	pnet "oasis/internal/platform/net"
	ptime "oasis/internal/platform/time"
	"oasis/internal/services/feeds/domain"
)

// Input is the common browse request body
// Window wins over ViewportWidth, which wins over the viewport client hint; Page wins over Direction
type Input struct {
	Offset        int    `json:"offset"                   validate:"min=0"                                      example:"0"`
	Window        int    `json:"window,omitempty"         validate:"omitempty,min=1,max=50"                     example:"5"`
	ViewportWidth int    `json:"viewport_width,omitempty" validate:"omitempty,min=1"                            example:"1280"`
	Direction     string `json:"direction,omitempty"      validate:"omitempty,oneof=left right prev next previous" example:"right"`
	Page          *int   `json:"page,omitempty"           validate:"omitempty,min=0"                            example:"2"`
}

// Status is the freshness of the snapshot a view was built from
type Status struct {
	FetchedAt *time.Time          `json:"fetched_at,omitempty"`
	Fetching  bool                `json:"fetching"`
	Error     *refresh.Descriptor `json:"error,omitempty"`
}

// StatusOf reads the status fields of a snapshot
func StatusOf[V any](s refresh.Snapshot[V]) Status {
	st := Status{Fetching: s.Fetching, Error: refresh.Describe(s.Err)}
	if s.HasValue {
		st.FetchedAt = ptime.UTC(s.FetchedAt)
	}
	return st
}

// Result is one visible window of a list
type Result[T any] struct {
	Items        []T           `json:"items"`
	Cursor       paging.Cursor `json:"cursor"`
	CanStepLeft  bool          `json:"can_step_left"`
	CanStepRight bool          `json:"can_step_right"`
	Page         int           `json:"page"`
	Pages        int           `json:"pages"`
	Total        int           `json:"total"`
	Status
}

// Window picks the window size for a request
func Window(ctx context.Context, in Input) int {
	if in.Window > 0 {
		return in.Window
	}
	width := in.ViewportWidth
	if width <= 0 {
		width = pnet.ViewportWidth(ctx)
	}
	return paging.DefaultViewport.WindowFor(width)
}

// Apply resolves the cursor for in over items and returns the visible window
func Apply[T any](ctx context.Context, items []T, in Input) (Result[T], error) {
	n := len(items)
	c := paging.Reclamp(paging.Cursor{Offset: in.Offset, Window: Window(ctx, in)}, n)
	switch {
	case in.Page != nil:
		c = paging.Jump(c, *in.Page, n)
	case in.Direction != "":
		d, err := paging.ParseDirection(in.Direction)
		if err != nil {
			return Result[T]{}, perr.WithField(perr.Wrap(err, perr.ErrorCodeInvalidArgument, "bad direction"), "direction")
		}
		c = paging.Step(c, d, n)
	}

	visible := paging.VisibleSlice(c, items)
	out := make([]T, len(visible))
	copy(out, visible)
	return Result[T]{
		Items:        out,
		Cursor:       c,
		CanStepLeft:  paging.CanStepLeft(c),
		CanStepRight: paging.CanStepRight(c, n),
		Page:         paging.CurrentPage(c, n),
		Pages:        paging.Pages(c, n),
		Total:        n,
	}, nil
}

// Match is a match record with its display status
type Match struct {
	record.Record
	Status status.Status `json:"status"       example:"live"`
	Label  string        `json:"status_label" example:"Second Half"`
	Tone   status.Tone   `json:"tone"         example:"live"`
}

// Matches classifies every record
func Matches(rs []record.Record) []Match {
	out := make([]Match, len(rs))
	for i, r := range rs {
		c := status.Classify(r.StateCode)
		out[i] = Match{Record: r, Status: c.Status, Label: c.Label, Tone: c.Tone}
	}
	return out
}

// ETag tags a scheduler snapshot version; the view changes only when a fetch is applied
func ETag(name string, version uint64, extra ...string) string {
	tag := name + "-" + strconv.FormatUint(version, 10)
	for _, e := range extra {
		tag += "-" + e
	}
	return tag
}

// RefreshResult reports a manual refresh
type RefreshResult struct {
	Scheduler string `json:"scheduler" example:"matches"`
	Ran       bool   `json:"ran"       example:"true"`
	Version   uint64 `json:"version"   example:"7"`
	Status
}

// Refresh runs a fetch on feed and waits for it
// 200 when the fetch ran (the held error, if any, is in the body), 202 when one was already in flight
func Refresh[V any](ctx context.Context, feed domain.Feed[V]) httpkit.Response {
	if feed == nil {
		return httpkit.Error(perr.Unavailablef("feed is disabled"))
	}
	ran := feed.Trigger(ctx)
	snap := feed.Current()
	out := RefreshResult{Scheduler: feed.Name(), Ran: ran, Version: snap.Version, Status: StatusOf(snap)}
	if !ran {
		return httpkit.Accepted(out)
	}
	return httpkit.OK(out)
}

// Disabled is the error every handler returns for a feed whose sources are switched off
func Disabled(name string) error {
	return perr.Unavailablef("%s feed is disabled", name)
}
