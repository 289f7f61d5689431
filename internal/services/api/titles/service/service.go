// Package service reads shelves and genres from the titles scheduler snapshot
package service

import (
	"context"

	"oasis/internal/adapters/sources/tmdb"
	"oasis/internal/core/record"
	perr "oasis/internal/platform/errors"
	"oasis/internal/services/api/browse"
	"oasis/internal/services/api/titles/domain"
	fdom "oasis/internal/services/feeds/domain"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// Svc implements the service port
type Svc struct {
	feed fdom.Feed[tmdb.Library]
}

// New constructs the service; a nil feed serves every call as unavailable
func New(feed fdom.Feed[tmdb.Library]) *Svc { return &Svc{feed: feed} }

func (s *Svc) current() (lib tmdb.Library, status browse.Status, version uint64, err error) {
	if s.feed == nil {
		return lib, status, 0, browse.Disabled(fdom.Titles)
	}
	snap := s.feed.Current()
	return snap.Value, browse.StatusOf(snap), snap.Version, nil
}

// Index lists every shelf in display order, empty shelves included
func (s *Svc) Index(_ context.Context) (domain.Index, error) {
	lib, st, ver, err := s.current()
	if err != nil {
		return domain.Index{}, err
	}
	out := domain.Index{Shelves: make([]domain.ShelfSummary, 0, len(tmdb.Shelves())), Genres: len(lib.Genres), Version: ver, Status: st}
	for _, sh := range tmdb.Shelves() {
		out.Shelves = append(out.Shelves, domain.ShelfSummary{Shelf: sh, Label: sh.Label(), Count: len(lib.Shelves[sh])})
	}
	return out, nil
}

// Shelf returns one shelf; unknown kinds are not found
func (s *Svc) Shelf(_ context.Context, kind string) (domain.ShelfView, error) {
	sh, err := tmdb.ParseShelf(kind)
	if err != nil {
		return domain.ShelfView{}, perr.NotFoundf("no shelf %q", kind)
	}
	lib, st, ver, err := s.current()
	if err != nil {
		return domain.ShelfView{}, err
	}
	items := lib.Shelves[sh]
	if items == nil {
		items = []record.Record{}
	}
	return domain.ShelfView{Shelf: sh, Label: sh.Label(), Items: items, Version: ver, Status: st}, nil
}

// Genres returns the genre showcase
func (s *Svc) Genres(_ context.Context) (domain.GenresView, error) {
	lib, st, ver, err := s.current()
	if err != nil {
		return domain.GenresView{}, err
	}
	genres := lib.Genres
	if genres == nil {
		genres = []tmdb.Genre{}
	}
	return domain.GenresView{Genres: genres, Version: ver, Status: st}, nil
}

// Browse pages a shelf as browse.Result[record.Record], or the showcase as browse.Result[tmdb.Genre]
func (s *Svc) Browse(ctx context.Context, in domain.BrowseInput) (any, error) {
	lib, st, _, err := s.current()
	if err != nil {
		return nil, err
	}
	if in.Shelf == domain.KindGenres {
		res, err := browse.Apply(ctx, lib.Genres, in.Input)
		res.Status = st
		return res, err
	}
	sh, err := tmdb.ParseShelf(in.Shelf)
	if err != nil {
		return nil, err
	}
	res, err := browse.Apply(ctx, lib.Shelves[sh], in.Input)
	res.Status = st
	return res, err
}
