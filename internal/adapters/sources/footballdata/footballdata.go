// Package footballdata reads live, recent and upcoming fixtures from football-data.org
package footballdata

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"oasis/internal/adapters/sources/feedjson"
	"oasis/internal/core/normalize"
	"oasis/internal/core/record"
	"oasis/internal/core/status"
	perr "oasis/internal/platform/errors"

	"golang.org/x/sync/errgroup"
)

const (
	recentDays   = 7
	upcomingDays = 7
	recentCap    = 15
	upcomingCap  = 20
)

// Options configures a Source
type Options struct {
	BaseURL string
	Token   string
}

// Source fetches fixtures with an X-Auth-Token
type Source struct {
	opts   Options
	client *feedjson.Client
	now    func() time.Time
}

// New builds a Source
func New(c *feedjson.Client, o Options) *Source {
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	return &Source{opts: o, client: c, now: time.Now}
}

// Fixtures is one refresh worth of match lists
type Fixtures struct {
	Live     []record.Record `json:"live"`
	Recent   []record.Record `json:"recent"`
	Upcoming []record.Record `json:"upcoming"`
}

// All returns every fixture, live first then upcoming then recent
func (f Fixtures) All() []record.Record {
	out := make([]record.Record, 0, len(f.Live)+len(f.Recent)+len(f.Upcoming))
	out = append(out, f.Live...)
	out = append(out, f.Upcoming...)
	return append(out, f.Recent...)
}

// Fixtures fetches the three lists concurrently; any failure fails the refresh
func (s *Source) Fixtures(ctx context.Context) (Fixtures, error) {
	if s.opts.Token == "" {
		return Fixtures{}, perr.Unauthorizedf("football-data token not configured")
	}
	today := s.now().UTC()
	day := func(t time.Time) string { return t.Format(time.DateOnly) }

	var f Fixtures
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		f.Live, err = s.matches(gctx, url.Values{"status": {"LIVE"}}, 0)
		return err
	})
	g.Go(func() (err error) {
		q := url.Values{
			"status":   {"FINISHED"},
			"dateFrom": {day(today.AddDate(0, 0, -recentDays))},
			"dateTo":   {day(today)},
		}
		f.Recent, err = s.matches(gctx, q, recentCap)
		if err == nil {
			slices.SortStableFunc(f.Recent, record.Newer)
		}
		return err
	})
	g.Go(func() (err error) {
		q := url.Values{
			"status":   {"SCHEDULED"},
			"dateFrom": {day(today)},
			"dateTo":   {day(today.AddDate(0, 0, upcomingDays))},
		}
		f.Upcoming, err = s.matches(gctx, q, upcomingCap)
		if err == nil {
			slices.SortStableFunc(f.Upcoming, record.Sooner)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return Fixtures{}, err
	}
	return f, nil
}

func (s *Source) matches(ctx context.Context, q url.Values, limit int) ([]record.Record, error) {
	out := []record.Record{}
	hdr := http.Header{"X-Auth-Token": {s.opts.Token}}
	err := s.client.Do(ctx, s.opts.BaseURL+"/matches?"+q.Encode(), hdr, func(item []byte) error {
		if limit > 0 && len(out) >= limit {
			return nil
		}
		if r, ok := toRecord(item); ok {
			out = append(out, r)
		}
		return nil
	}, "matches")
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toRecord(item []byte) (record.Record, bool) {
	id := feedjson.Str(item, "id")
	if id == "" {
		return record.Record{}, false
	}
	home := &record.Side{Name: feedjson.Str(item, "homeTeam", "name"), LogoURL: feedjson.Str(item, "homeTeam", "crest")}
	away := &record.Side{Name: feedjson.Str(item, "awayTeam", "name"), LogoURL: feedjson.Str(item, "awayTeam", "crest")}
	if n, ok := feedjson.Int(item, "score", "fullTime", "home"); ok {
		home.Score = record.IntPtr(n)
	}
	if n, ok := feedjson.Int(item, "score", "fullTime", "away"); ok {
		away.Score = record.IntPtr(n)
	}

	code := status.FromText(feedjson.Str(item, "status"))
	r := record.Record{
		ID:          id,
		CategoryKey: normalize.Label(feedjson.Str(item, "competition", "name")),
		StateCode:   code,
		Title:       home.Name + " vs " + away.Name,
		Home:        home,
		Away:        away,
		Attrs:       map[string]string{"status": feedjson.Str(item, "status")},
	}
	if m, ok := feedjson.Int(item, "minute"); ok && status.IsLive(code) {
		r.Clock = strconv.Itoa(m) + "'"
	} else if status.IsLive(code) {
		r.Clock = "Live"
	}
	if ts := feedjson.Str(item, "utcDate"); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			t = t.UTC()
			r.Timestamp = &t
		}
	}
	if md, ok := feedjson.Int(item, "matchday"); ok {
		r.Attrs["matchday"] = strconv.Itoa(md)
	}
	return r, true
}
