package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"oasis/internal/adapters/sources/matchnews"
	"oasis/internal/platform/config/catalog"
	perr "oasis/internal/platform/errors"
	"oasis/internal/platform/metrics"
	kit "oasis/internal/platform/testkit"
	"oasis/internal/services/feeds/domain"
)

const scheduleBody = `{"matchList":[
 {"matchId":1,"leagueEn":"Premier League","state":2,"homeName":"A","awayName":"B"},
 {"matchId":2,"leagueEn":"Serie A","state":0,"homeName":"C","awayName":"D"}]}`

const newsBody = `{"items":[
 {"id":"n1","title":"Older","publishTime":1700000000000},
 {"id":"n2","title":"Newer","publishTime":1700000500000}]}`

type upstream struct {
	srv      *httptest.Server
	rssCalls atomic.Int32
	newsBad  atomic.Bool
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{}
	mux := http.NewServeMux()
	mux.HandleFunc("/schedules", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(scheduleBody))
	})
	mux.HandleFunc("/news", func(w http.ResponseWriter, _ *http.Request) {
		if u.newsBad.Load() {
			_, _ = w.Write([]byte("{broken"))
			return
		}
		_, _ = w.Write([]byte(newsBody))
	})
	mux.HandleFunc("/rss", func(w http.ResponseWriter, _ *http.Request) {
		u.rssCalls.Add(1)
		_, _ = w.Write([]byte("not a feed"))
	})
	u.srv = httptest.NewServer(mux)
	t.Cleanup(u.srv.Close)
	return u
}

func (u *upstream) catalog() catalog.Catalog {
	return catalog.Catalog{
		UserAgent: "fleet-test",
		Timeout:   2 * time.Second,
		Sources: map[string]catalog.Source{
			catalog.LiveScore: {
				BaseURL:   u.srv.URL + "/schedules",
				DetailURL: u.srv.URL + "/detail",
				SiteURL:   "https://site.example",
				ImageBase: "https://cdn.example",
				Interval:  time.Hour,
			},
			catalog.MatchNews: {BaseURL: u.srv.URL + "/news", SiteURL: "https://site.example", Interval: 10 * time.Minute},
			catalog.RSSNews:   {Feeds: []string{u.srv.URL + "/rss"}, Interval: 5 * time.Minute},
			catalog.TMDB:      {BaseURL: u.srv.URL + "/tmdb"},
		},
	}
}

func TestNew_OnlyEnabledSources(t *testing.T) {
	u := newUpstream(t)
	f := New(Options{Catalog: u.catalog()})

	if f.Matches == nil || f.News == nil {
		t.Fatalf("matches and news should be scheduled")
	}
	if f.Titles != nil || f.Fixtures != nil {
		t.Fatalf("keyed sources without api keys must stay off")
	}

	states := f.States(time.Now())
	if len(states) != 2 || states[0].Name != domain.Matches || states[1].Name != domain.News {
		t.Fatalf("states = %+v", states)
	}
	for _, st := range states {
		if st.State != domain.StateEmpty || st.Running {
			t.Fatalf("idle state = %+v", st)
		}
	}
	if states[1].Interval != (5 * time.Minute).String() {
		t.Fatalf("news interval = %s, want the shortest source interval", states[1].Interval)
	}
}

func TestTrigger_UpdatesStateAndMetrics(t *testing.T) {
	u := newUpstream(t)
	m := metrics.New("fleet_test")
	now := time.Date(2024, 9, 10, 12, 0, 0, 0, time.UTC)
	f := New(Options{Catalog: u.catalog(), Metrics: m, Now: func() time.Time { return now }})

	if !f.Matches.Trigger(context.Background()) {
		t.Fatalf("trigger should run")
	}
	st := f.States(now)[0]
	if st.State != domain.StateOK || st.Items != 2 || st.Version != 1 || st.FetchedAt == nil {
		t.Fatalf("state = %+v", st)
	}
	if st := f.States(now.Add(4 * time.Hour))[0]; st.State != domain.StateStale {
		t.Fatalf("after three intervals state = %s, want stale", st.State)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	kit.MustContain(t, string(body), `fleet_test_feed_items{scheduler="matches"} 2`)
	kit.MustContain(t, string(body), `fleet_test_feed_fetches_total{outcome="ok",scheduler="matches",trigger="manual"} 1`)
}

func TestNews_MergesAndToleratesOneFailure(t *testing.T) {
	u := newUpstream(t)
	f := New(Options{Catalog: u.catalog()})

	f.News.Trigger(context.Background())
	snap := f.News.Current()
	if snap.Err != nil {
		t.Fatalf("rss failure alone must not fail news: %v", snap.Err)
	}
	if len(snap.Value) != 2 || snap.Value[0].ID != "n2" || snap.Value[0].CategoryKey != matchnews.Category {
		t.Fatalf("news = %+v", snap.Value)
	}
	if u.rssCalls.Load() == 0 {
		t.Fatalf("rss feed never fetched")
	}

	u.newsBad.Store(true)
	f.News.Trigger(context.Background())
	snap = f.News.Current()
	if !perr.IsDecode(snap.Err) {
		t.Fatalf("both sources failing should fail the fetch, err = %v", snap.Err)
	}
	if len(snap.Value) != 2 {
		t.Fatalf("previous value must be kept on failure")
	}
	if st := f.States(time.Now())[1]; st.State != domain.StateFailing || st.Error == nil {
		t.Fatalf("state = %+v", st)
	}
}

func TestRun_StartsAndStops(t *testing.T) {
	u := newUpstream(t)
	f := New(Options{Catalog: u.catalog()})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.Run(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for f.Matches.Current().Version == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("first tick never applied")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if !f.Matches.Running() {
		t.Fatalf("matches should be running")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
	if f.Matches.Running() || f.News.Running() {
		t.Fatalf("schedulers still running after Run returned")
	}
}

func TestRun_NoSources(t *testing.T) {
	f := New(Options{Catalog: catalog.Catalog{Timeout: time.Second}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := f.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(f.States(time.Now())) != 0 {
		t.Fatalf("no states expected")
	}
}

func TestDetail_Disabled(t *testing.T) {
	f := New(Options{Catalog: catalog.Catalog{Timeout: time.Second}})
	if _, err := f.Detail(context.Background(), "1"); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v", err)
	}
}
