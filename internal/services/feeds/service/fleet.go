// Package service runs the refresh schedulers behind every feed the API serves
package service

import (
	"context"
	"slices"
	"time"

	"oasis/internal/adapters/sources/feedjson"
	"oasis/internal/adapters/sources/footballdata"
	"oasis/internal/adapters/sources/livescore"
	"oasis/internal/adapters/sources/matchnews"
	"oasis/internal/adapters/sources/rssnews"
	"oasis/internal/adapters/sources/tmdb"
	"oasis/internal/adapters/sources/youtube"
	"oasis/internal/core/record"
	"oasis/internal/core/refresh"
	"oasis/internal/platform/config/catalog"
	perr "oasis/internal/platform/errors"
	"oasis/internal/platform/logger"
	"oasis/internal/platform/metrics"
	ptime "oasis/internal/platform/time"
	"oasis/internal/services/feeds/domain"

	"golang.org/x/sync/errgroup"
)

const (
	defaultInterval = time.Minute
	staleAfter      = 3 // intervals without a success before a feed counts as stale
)

// Options configures a Fleet
type Options struct {
	Catalog catalog.Catalog
	Metrics *metrics.Metrics
	Now     func() time.Time
}

// Fleet owns one scheduler per enabled feed; a nil scheduler means its sources are disabled
type Fleet struct {
	Matches  *refresh.Scheduler[[]record.Record]
	News     *refresh.Scheduler[[]record.Record]
	Titles   *refresh.Scheduler[tmdb.Library]
	Fixtures *refresh.Scheduler[domain.FixtureBoard]

	live      *livescore.Source
	matchNews *matchnews.Source
	rss       *rssnews.Source
	movies    *tmdb.Source
	football  *footballdata.Source
	videos    *youtube.Source

	metrics *metrics.Metrics
	now     func() time.Time
	jobs    []job
}

// job is the type erased handle Run and States work through
type job struct {
	name     string
	interval time.Duration
	start    func(ctx context.Context, every time.Duration) error
	stop     func()
	done     func() <-chan struct{}
	state    func(now time.Time) domain.SchedulerState
}

// New builds the fleet from the catalogue; schedulers stay idle until Run
func New(o Options) *Fleet {
	if o.Now == nil {
		o.Now = time.Now
	}
	cat := o.Catalog
	client := feedjson.New(feedjson.Options{UserAgent: cat.UserAgent, Timeout: cat.Timeout})
	f := &Fleet{metrics: o.Metrics, now: o.Now}

	if cat.Enabled(catalog.LiveScore) {
		s := cat.Source(catalog.LiveScore)
		f.live = livescore.New(client, livescore.Options{
			ScheduleURL: s.BaseURL,
			DetailURL:   s.DetailURL,
			SiteURL:     s.SiteURL,
			LogoHost:    s.ImageBase,
		})
		f.Matches = track(f, domain.Matches, s.Interval, f.live.Matches, count)
	}

	var newsEvery []time.Duration
	if cat.Enabled(catalog.MatchNews) {
		s := cat.Source(catalog.MatchNews)
		f.matchNews = matchnews.New(client, matchnews.Options{ListURL: s.BaseURL, SiteURL: s.SiteURL, ImageBase: s.ImageBase})
		newsEvery = append(newsEvery, s.Interval)
	}
	if cat.Enabled(catalog.RSSNews) {
		s := cat.Source(catalog.RSSNews)
		f.rss = rssnews.New(client, s.Feeds, s.Limit)
		newsEvery = append(newsEvery, s.Interval)
	}
	if len(newsEvery) > 0 {
		f.News = track(f, domain.News, shortest(newsEvery), f.fetchNews, count)
	}

	if cat.Enabled(catalog.TMDB) {
		s := cat.Source(catalog.TMDB)
		f.movies = tmdb.New(client, tmdb.Options{
			BaseURL:   s.BaseURL,
			ImageBase: s.ImageBase,
			APIKey:    s.APIKey,
			Pages:     s.Pages,
			Limit:     s.Limit,
		})
		f.Titles = track(f, domain.Titles, s.Interval, f.movies.Library, tmdb.Library.Size)
	}

	if cat.Enabled(catalog.FootballData) {
		s := cat.Source(catalog.FootballData)
		f.football = footballdata.New(client, footballdata.Options{BaseURL: s.BaseURL, Token: s.APIKey})
		if cat.Enabled(catalog.YouTube) {
			y := cat.Source(catalog.YouTube)
			f.videos = youtube.New(client, youtube.Options{BaseURL: y.BaseURL, APIKey: y.APIKey, Limit: y.Limit})
		}
		f.Fixtures = track(f, domain.Fixtures, s.Interval, f.fetchFixtures, domain.FixtureBoard.Size)
	}
	return f
}

func count(rs []record.Record) int { return len(rs) }

func shortest(ds []time.Duration) time.Duration {
	out := time.Duration(0)
	for _, d := range ds {
		if d > 0 && (out == 0 || d < out) {
			out = d
		}
	}
	return out
}

// track builds a scheduler, wires its observers and registers it with the fleet
func track[T any](f *Fleet, name string, every time.Duration, fetch refresh.Fetcher[T], size func(T) int) *refresh.Scheduler[T] {
	if every <= 0 {
		every = defaultInterval
	}
	var s *refresh.Scheduler[T]

	opts := []refresh.Option{refresh.WithObserver(refresh.LogObserver{}), refresh.WithClock(f.now)}
	if f.metrics != nil {
		m := f.metrics
		opts = append(opts, refresh.WithObserver(refresh.ObserverFuncs{
			Started: func(e refresh.Event) { m.FetchStarted(e.Scheduler) },
			Finished: func(e refresh.Event) {
				switch {
				case e.Discarded:
					m.FetchFinished(e.Scheduler, string(e.Trigger), metrics.OutcomeDiscarded, e.Duration)
				case e.Err != nil:
					m.FetchFinished(e.Scheduler, string(e.Trigger), metrics.OutcomeError, e.Duration)
				default:
					m.FetchFinished(e.Scheduler, string(e.Trigger), metrics.OutcomeOK, e.Duration)
					snap := s.Current()
					m.Applied(e.Scheduler, snap.FetchedAt, size(snap.Value))
				}
			},
		}))
	}

	s = refresh.New(name, func(ctx context.Context) (T, error) {
		return fetch(logger.WithScheduler(ctx, name))
	}, opts...)

	f.jobs = append(f.jobs, job{
		name:     name,
		interval: every,
		start:    s.Start,
		stop:     s.Stop,
		done:     s.Done,
		state: func(now time.Time) domain.SchedulerState {
			return stateOf(s, now, every, size)
		},
	})
	return s
}

func stateOf[T any](s *refresh.Scheduler[T], now time.Time, every time.Duration, size func(T) int) domain.SchedulerState {
	snap := s.Current()
	st := domain.SchedulerState{
		Name:     s.Name(),
		Running:  s.Running(),
		Fetching: snap.Fetching,
		Version:  snap.Version,
		Interval: every.String(),
		Error:    refresh.Describe(snap.Err),
	}
	if snap.HasValue {
		st.FetchedAt = ptime.UTC(snap.FetchedAt)
		st.Items = size(snap.Value)
	}
	switch {
	case snap.Err != nil:
		st.State = domain.StateFailing
	case !snap.HasValue:
		st.State = domain.StateEmpty
	case snap.Stale(now, staleAfter*every):
		st.State = domain.StateStale
	default:
		st.State = domain.StateOK
	}
	return st
}

// Run starts every scheduler and blocks until ctx is done, then stops them and waits for their loops
// a scheduler that fails to start cancels the rest
func (f *Fleet) Run(ctx context.Context) error {
	log := logger.C(ctx)
	if len(f.jobs) == 0 {
		log.Warn().Msg("feeds: no sources enabled")
		<-ctx.Done()
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, j := range f.jobs {
		g.Go(func() error {
			if err := j.start(gctx, j.interval); err != nil {
				return err
			}
			log.Info().Str("scheduler", j.name).Dur("interval", j.interval).Msg("feeds: scheduler started")
			<-gctx.Done()
			j.stop()
			<-j.done()
			log.Info().Str("scheduler", j.name).Msg("feeds: scheduler stopped")
			return nil
		})
	}
	return g.Wait()
}

// States reports every scheduler in registration order
func (f *Fleet) States(now time.Time) []domain.SchedulerState {
	out := make([]domain.SchedulerState, 0, len(f.jobs))
	for _, j := range f.jobs {
		out = append(out, j.state(now))
	}
	return out
}

// Detail loads one live-score match with its events
func (f *Fleet) Detail(ctx context.Context, id string) (livescore.Detail, error) {
	if f.live == nil {
		return livescore.Detail{}, perr.Unavailablef("live scores are disabled")
	}
	return f.live.Detail(ctx, id)
}

// fetchNews merges JSON match news with the RSS feeds, newest first
// it fails only when every enabled source fails
func (f *Fleet) fetchNews(ctx context.Context) ([]record.Record, error) {
	type part struct {
		name  string
		fetch func(context.Context) ([]record.Record, error)
	}
	var parts []part
	if f.matchNews != nil {
		parts = append(parts, part{catalog.MatchNews, f.matchNews.Articles})
	}
	if f.rss != nil {
		parts = append(parts, part{catalog.RSSNews, f.rss.Articles})
	}

	got := make([][]record.Record, len(parts))
	errs := make([]error, len(parts))
	var g errgroup.Group
	for i, p := range parts {
		g.Go(func() error {
			got[i], errs[i] = p.fetch(ctx)
			return nil
		})
	}
	_ = g.Wait()

	out := []record.Record{}
	failed := 0
	for i, err := range errs {
		if err != nil {
			failed++
			logger.C(ctx).Warn().Err(err).Str("source", parts[i].name).Msg("news source failed")
			continue
		}
		out = append(out, got[i]...)
	}
	if failed > 0 && failed == len(parts) {
		return nil, errs[0]
	}
	slices.SortStableFunc(out, record.Newer)
	return out, nil
}

// fetchFixtures loads the football-data lists and, when YouTube is configured, highlight videos
// for the recent results; highlight failures never fail the board
func (f *Fleet) fetchFixtures(ctx context.Context) (domain.FixtureBoard, error) {
	fx, err := f.football.Fixtures(ctx)
	if err != nil {
		return domain.FixtureBoard{}, err
	}
	board := domain.FixtureBoard{Fixtures: fx, Highlights: []record.Record{}}
	if f.videos == nil {
		return board, nil
	}
	hl, err := f.videos.Highlights(ctx, fx.Recent)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("highlights skipped")
		return board, nil
	}
	board.Highlights = hl
	return board, nil
}
