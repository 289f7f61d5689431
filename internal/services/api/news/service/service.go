// Package service builds news views from the news scheduler snapshot
package service

import (
	"context"

	"oasis/internal/core/grouping"
	"oasis/internal/core/normalize"
	"oasis/internal/core/record"
	"oasis/internal/services/api/browse"
	"oasis/internal/services/api/news/domain"
	fdom "oasis/internal/services/feeds/domain"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// Svc implements the service port
type Svc struct {
	feed fdom.Feed[[]record.Record]
}

// New constructs the service; a nil feed serves every call as unavailable
func New(feed fdom.Feed[[]record.Record]) *Svc { return &Svc{feed: feed} }

// List returns every article with per-source counts
func (s *Svc) List(_ context.Context) (domain.View, error) {
	if s.feed == nil {
		return domain.View{}, browse.Disabled(fdom.News)
	}
	snap := s.feed.Current()
	items := snap.Value
	if items == nil {
		items = []record.Record{}
	}

	groups := grouping.By(items, record.Category, func(record.Record) int { return 0 })
	cats := make([]domain.Category, 0, len(groups))
	for _, g := range groups {
		cats = append(cats, domain.Category{Key: normalize.Key(g.Name), Name: g.Name, Count: len(g.Members)})
	}
	return domain.View{
		Items:      items,
		Categories: cats,
		Version:    snap.Version,
		Status:     browse.StatusOf(snap),
	}, nil
}

// Browse pages the list; Category matches case and accent insensitively
func (s *Svc) Browse(ctx context.Context, in domain.BrowseInput) (browse.Result[record.Record], error) {
	if s.feed == nil {
		return browse.Result[record.Record]{}, browse.Disabled(fdom.News)
	}
	snap := s.feed.Current()
	items := snap.Value
	if in.Category != "" {
		items = make([]record.Record, 0, len(snap.Value))
		for _, r := range snap.Value {
			if normalize.Equal(r.CategoryKey, in.Category) {
				items = append(items, r)
			}
		}
	}
	res, err := browse.Apply(ctx, items, in.Input)
	if err != nil {
		return res, err
	}
	res.Status = browse.StatusOf(snap)
	return res, nil
}
