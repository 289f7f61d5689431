// Package tmdb reads trending and newly released titles from The Movie Database
package tmdb

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"oasis/internal/adapters/sources/feedjson"
	"oasis/internal/core/record"
	"oasis/internal/core/status"
	perr "oasis/internal/platform/errors"
	"oasis/internal/platform/logger"

	"golang.org/x/sync/errgroup"
)

// Shelf names one horizontal row of titles
type Shelf string

const (
	TrendingMovies Shelf = "trending-movies"
	NewMovies      Shelf = "new-movies"
	TrendingSeries Shelf = "trending-series"
	NewSeries      Shelf = "new-series"
	TopSeries      Shelf = "top-series"
)

// Shelves lists every shelf in display order
func Shelves() []Shelf {
	return []Shelf{TrendingMovies, NewMovies, TrendingSeries, NewSeries, TopSeries}
}

// Label is the human name of a shelf, also used as its category key
func (s Shelf) Label() string {
	switch s {
	case TrendingMovies:
		return "Trending Movies"
	case NewMovies:
		return "New Releases"
	case TrendingSeries:
		return "Trending Series"
	case NewSeries:
		return "New Series"
	case TopSeries:
		return "Top Rated Series"
	}
	return string(s)
}

// ParseShelf validates a shelf name
func ParseShelf(s string) (Shelf, error) {
	for _, sh := range Shelves() {
		if string(sh) == s {
			return sh, nil
		}
	}
	return "", perr.WithField(perr.InvalidArgf("unknown shelf %q", s), "shelf")
}

const (
	mediaMovie    = "movie"
	mediaTV       = "tv"
	postersPerRow = 4
	genreWorkers  = 4
	newWithin     = 3 // months
)

// Options configures a Source
type Options struct {
	BaseURL   string
	ImageBase string
	APIKey    string
	Pages     int
	Limit     int
}

// Source fetches shelves from TMDB
type Source struct {
	opts   Options
	client *feedjson.Client
	now    func() time.Time
}

// New builds a Source over a shared feed client
func New(c *feedjson.Client, o Options) *Source {
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	o.ImageBase = strings.TrimRight(o.ImageBase, "/")
	if o.Pages <= 0 {
		o.Pages = 3
	}
	if o.Limit <= 0 {
		o.Limit = 60
	}
	return &Source{opts: o, client: c, now: time.Now}
}

// Genre is a genre whose most popular titles all carry posters
type Genre struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Media   string   `json:"media"`
	Posters []string `json:"posters"`
}

// Library is everything one refresh produces
type Library struct {
	Shelves map[Shelf][]record.Record `json:"shelves"`
	Genres  []Genre                   `json:"genres"`
}

// Size counts the titles held across shelves
func (l Library) Size() int {
	n := 0
	for _, rs := range l.Shelves {
		n += len(rs)
	}
	return n
}

// Library fetches every shelf and the movie genre showcase; any shelf failure fails the refresh
func (s *Source) Library(ctx context.Context) (Library, error) {
	shelves := Shelves()
	rows := make([][]record.Record, len(shelves))
	var genres []Genre

	g, gctx := errgroup.WithContext(ctx)
	for i, sh := range shelves {
		g.Go(func() error {
			rs, err := s.Shelf(gctx, sh)
			rows[i] = rs
			return err
		})
	}
	g.Go(func() error {
		var err error
		genres, err = s.Genres(gctx, mediaMovie)
		return err
	})
	if err := g.Wait(); err != nil {
		return Library{}, err
	}

	lib := Library{Shelves: make(map[Shelf][]record.Record, len(shelves)), Genres: genres}
	for i, sh := range shelves {
		lib.Shelves[sh] = rows[i]
	}
	return lib, nil
}

// Shelf fetches up to Pages pages of one shelf, capped at Limit titles
func (s *Source) Shelf(ctx context.Context, sh Shelf) ([]record.Record, error) {
	media := mediaMovie
	if sh == TrendingSeries || sh == NewSeries || sh == TopSeries {
		media = mediaTV
	}
	pages := s.opts.Pages
	if sh == TopSeries {
		pages = 1
	}

	out := make([]record.Record, 0, s.opts.Limit)
	seen := map[string]bool{}
	for page := 1; page <= pages && len(out) < s.opts.Limit; page++ {
		u, err := s.shelfURL(sh, page)
		if err != nil {
			return nil, err
		}
		err = s.client.Do(ctx, u, s.header(), func(item []byte) error {
			r, ok := s.toRecord(item, media, sh.Label())
			if ok && !seen[r.ID] && len(out) < s.opts.Limit {
				seen[r.ID] = true
				out = append(out, r)
			}
			return nil
		}, "results")
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Source) shelfURL(sh Shelf, page int) (string, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	var path string
	since := s.now().AddDate(0, -newWithin, 0).Format(time.DateOnly)
	switch sh {
	case TrendingMovies:
		path = "/trending/movie/week"
	case TrendingSeries:
		path = "/trending/tv/week"
	case NewMovies:
		path = "/discover/movie"
		q.Set("primary_release_date.gte", since)
		q.Set("sort_by", "release_date.desc")
	case NewSeries:
		path = "/discover/tv"
		q.Set("first_air_date.gte", since)
		q.Set("sort_by", "first_air_date.desc")
	case TopSeries:
		path = "/discover/tv"
		q.Set("sort_by", "vote_average.desc")
		q.Set("vote_count.gte", "1000")
	default:
		return "", perr.InvalidArgf("unknown shelf %q", sh)
	}
	return s.url(path, q), nil
}

// Genres returns the genres of media whose top titles all have posters
func (s *Source) Genres(ctx context.Context, media string) ([]Genre, error) {
	q := url.Values{}
	q.Set("language", "en-US")
	var list []Genre
	err := s.client.Do(ctx, s.url("/genre/"+media+"/list", q), s.header(), func(item []byte) error {
		id, ok := feedjson.Int(item, "id")
		if ok {
			list = append(list, Genre{ID: id, Name: feedjson.Str(item, "name"), Media: media})
		}
		return nil
	}, "genres")
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(genreWorkers)
	for i := range list {
		g.Go(func() error {
			posters, err := s.posters(gctx, media, list[i].ID)
			if err != nil {
				// one genre missing from the showcase is fine
				logger.C(ctx).Warn().Err(err).Int("genre", list[i].ID).Msg("tmdb genre skipped")
				return nil
			}
			list[i].Posters = posters
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, perr.FromTransport(err, "tmdb genres")
	}

	out := make([]Genre, 0, len(list))
	for _, gn := range list {
		if len(gn.Posters) == postersPerRow {
			out = append(out, gn)
		}
	}
	return out, nil
}

func (s *Source) posters(ctx context.Context, media string, genreID int) ([]string, error) {
	q := url.Values{}
	q.Set("with_genres", strconv.Itoa(genreID))
	q.Set("sort_by", "popularity.desc")
	var out []string
	err := s.client.Do(ctx, s.url("/discover/"+media, q), s.header(), func(item []byte) error {
		if p := feedjson.Str(item, "poster_path"); p != "" && len(out) < postersPerRow {
			out = append(out, s.opts.ImageBase+p)
		}
		return nil
	}, "results")
	return out, err
}

func (s *Source) toRecord(item []byte, media, category string) (record.Record, bool) {
	id := feedjson.Str(item, "id")
	if id == "" {
		return record.Record{}, false
	}
	title := feedjson.Str(item, "title")
	dateKey := "release_date"
	if media == mediaTV {
		title = feedjson.Str(item, "name")
		dateKey = "first_air_date"
	}
	r := record.Record{
		ID:          id,
		CategoryKey: category,
		StateCode:   status.NoCode,
		Title:       title,
		Subtitle:    feedjson.Str(item, "overview"),
		Link:        "https://www.themoviedb.org/" + media + "/" + id,
		Attrs:       map[string]string{"media": media},
	}
	if p := feedjson.Str(item, "poster_path"); p != "" {
		r.ImageURL = s.opts.ImageBase + p
	}
	if v, ok := feedjson.Float(item, "vote_average"); ok {
		r.Attrs["rating"] = strconv.FormatFloat(v, 'f', 1, 64)
	}
	if n, ok := feedjson.Int(item, "vote_count"); ok {
		r.Attrs["votes"] = strconv.Itoa(n)
	}
	if d := feedjson.Str(item, dateKey); d != "" {
		if t, err := time.Parse(time.DateOnly, d); err == nil {
			r.Timestamp = &t
			r.Attrs["year"] = strconv.Itoa(t.Year())
		}
	}
	return r, true
}

func (s *Source) url(path string, q url.Values) string {
	if !isBearer(s.opts.APIKey) && s.opts.APIKey != "" {
		q.Set("api_key", s.opts.APIKey)
	}
	return s.opts.BaseURL + path + "?" + q.Encode()
}

// header carries v4 read tokens; v3 keys travel in the query string
func (s *Source) header() http.Header {
	if isBearer(s.opts.APIKey) {
		return http.Header{"Authorization": {"Bearer " + s.opts.APIKey}}
	}
	return nil
}

func isBearer(key string) bool { return strings.HasPrefix(key, "eyJ") }
