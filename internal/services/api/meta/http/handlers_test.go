package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	phttp "oasis/internal/platform/net/http"
	kit "oasis/internal/platform/testkit"
	fdom "oasis/internal/services/feeds/domain"
)

type states []fdom.SchedulerState

func (s states) States(time.Time) []fdom.SchedulerState { return s }

func TestOverall(t *testing.T) {
	st := func(names ...string) []fdom.SchedulerState {
		out := make([]fdom.SchedulerState, len(names))
		for i, n := range names {
			out[i] = fdom.SchedulerState{Name: "s", State: n}
		}
		return out
	}
	cases := []struct {
		name   string
		checks []fdom.SchedulerState
		want   string
	}{
		{"no schedulers", nil, ReadyOK},
		{"all ok", st(fdom.StateOK, fdom.StateOK), ReadyOK},
		{"one stale", st(fdom.StateOK, fdom.StateStale), ReadyDegraded},
		{"stale only still serves", st(fdom.StateStale), ReadyDegraded},
		{"one failing", st(fdom.StateFailing, fdom.StateOK), ReadyDegraded},
		{"nothing serving", st(fdom.StateFailing, fdom.StateEmpty), ReadyFail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := overall(tc.checks); got != tc.want {
				t.Fatalf("overall = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestRoutes(t *testing.T) {
	started := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := started.Add(90 * time.Second)
	health := states{{Name: fdom.Matches, State: fdom.StateFailing}}

	r := phttp.AdaptChi(chi.NewRouter())
	Register(r, Deps{ServiceName: "oasis-api", StartedAt: started, Health: health, Now: func() time.Time { return now }})

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
		return rec
	}

	rec := get("/health")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("health = %d", rec.Code)
	}
	kit.MustContain(t, rec.Body.String(), `"service":"oasis-api"`)

	rec = get("/ready")
	if rec.Code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("ready = %d", rec.Code)
	}
	kit.MustContain(t, rec.Body.String(), `"status":"fail"`)
	kit.MustContain(t, rec.Body.String(), `"name":"matches"`)

	rec = get("/service")
	kit.MustContain(t, rec.Body.String(), `"uptime":90`)

	rec = get("/version")
	kit.MustContain(t, rec.Body.String(), `"service":"oasis-api"`)
}
