// Package service reads the fixture board from the fixtures scheduler snapshot
package service

import (
	"context"

	"oasis/internal/core/record"
	"oasis/internal/services/api/browse"
	"oasis/internal/services/api/fixtures/domain"
	fdom "oasis/internal/services/feeds/domain"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// Svc implements the service port
type Svc struct {
	feed fdom.Feed[fdom.FixtureBoard]
}

// New constructs the service; a nil feed serves every call as unavailable
func New(feed fdom.Feed[fdom.FixtureBoard]) *Svc { return &Svc{feed: feed} }

// Board returns every list with display statuses
func (s *Svc) Board(_ context.Context) (domain.Board, error) {
	if s.feed == nil {
		return domain.Board{}, browse.Disabled(fdom.Fixtures)
	}
	snap := s.feed.Current()
	b := snap.Value
	hl := b.Highlights
	if hl == nil {
		hl = []record.Record{}
	}
	return domain.Board{
		Live:       browse.Matches(b.Live),
		Upcoming:   browse.Matches(b.Upcoming),
		Recent:     browse.Matches(b.Recent),
		Highlights: hl,
		Version:    snap.Version,
		Status:     browse.StatusOf(snap),
	}, nil
}

// Browse pages one list; highlights page as records, the rest as matches
func (s *Svc) Browse(ctx context.Context, in domain.BrowseInput) (any, error) {
	if s.feed == nil {
		return nil, browse.Disabled(fdom.Fixtures)
	}
	snap := s.feed.Current()
	b := snap.Value

	if in.List == domain.ListHighlights {
		res, err := browse.Apply(ctx, b.Highlights, in.Input)
		res.Status = browse.StatusOf(snap)
		return res, err
	}

	var items []record.Record
	switch in.List {
	case domain.ListLive:
		items = b.Live
	case domain.ListUpcoming:
		items = b.Upcoming
	case domain.ListRecent:
		items = b.Recent
	default:
		items = b.All()
	}
	res, err := browse.Apply(ctx, browse.Matches(items), in.Input)
	res.Status = browse.StatusOf(snap)
	return res, err
}
