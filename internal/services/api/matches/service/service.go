// Package service builds the live-score views from the matches scheduler snapshot
package service

import (
	"context"
	"strings"

	"oasis/internal/adapters/sources/livescore"
	"oasis/internal/core/grouping"
	"oasis/internal/core/record"
	"oasis/internal/core/status"
	perr "oasis/internal/platform/errors"
	"oasis/internal/services/api/browse"
	"oasis/internal/services/api/matches/domain"
	fdom "oasis/internal/services/feeds/domain"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// Svc implements the service port over a feed snapshot
type Svc struct {
	feed   fdom.Feed[[]record.Record]
	detail fdom.DetailPort
}

// New constructs the service; a nil feed serves every call as unavailable
func New(feed fdom.Feed[[]record.Record], detail fdom.DetailPort) *Svc {
	return &Svc{feed: feed, detail: detail}
}

// Groups buckets the current matches by league and status
func (s *Svc) Groups(_ context.Context) (domain.GroupsView, error) {
	if s.feed == nil {
		return domain.GroupsView{}, browse.Disabled(fdom.Matches)
	}
	snap := s.feed.Current()
	groups := grouping.Records(snap.Value)

	view := domain.GroupsView{
		Groups:  make([]domain.GroupView, 0, len(groups)),
		Summary: grouping.Summarize(groups),
		Version: snap.Version,
		Status:  browse.StatusOf(snap),
	}
	for _, g := range groups {
		view.Groups = append(view.Groups, domain.GroupView{
			Key:     g.Key,
			Name:    g.Name,
			Status:  g.Status,
			Count:   len(g.Members),
			Preview: browse.Matches(grouping.Preview(g, domain.PreviewSize)),
			Members: browse.Matches(g.Members),
		})
	}
	return view, nil
}

// Browse pages the flat list of one section, keeping feed order
func (s *Svc) Browse(ctx context.Context, in domain.BrowseInput) (browse.Result[browse.Match], error) {
	if s.feed == nil {
		return browse.Result[browse.Match]{}, browse.Disabled(fdom.Matches)
	}
	snap := s.feed.Current()
	keep := sectionFilter(in.Section)

	items := make([]record.Record, 0, len(snap.Value))
	for _, r := range snap.Value {
		if keep(r.StateCode) {
			items = append(items, r)
		}
	}
	res, err := browse.Apply(ctx, browse.Matches(items), in.Input)
	if err != nil {
		return res, err
	}
	res.Status = browse.StatusOf(snap)
	return res, nil
}

// Detail loads one match with its events
func (s *Svc) Detail(ctx context.Context, id string) (livescore.Detail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return livescore.Detail{}, perr.WithField(perr.New(perr.ErrorCodeInvalidArgument, "match id is required"), "id")
	}
	if s.detail == nil {
		return livescore.Detail{}, browse.Disabled(fdom.Matches)
	}
	return s.detail.Detail(ctx, id)
}

func sectionFilter(section string) func(int) bool {
	switch section {
	case domain.SectionLive:
		return status.IsLive
	case domain.SectionUpcoming:
		return status.IsUpcoming
	case domain.SectionFinished:
		return func(code int) bool { return status.Of(code) == status.Other }
	default:
		return func(int) bool { return true }
	}
}
