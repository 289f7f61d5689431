package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"oasis/internal/adapters/sources/feedjson"
	"oasis/internal/core/record"
	"oasis/internal/core/status"
)

func match(id, home, away string, code int) record.Record {
	return record.Record{
		ID:        id,
		StateCode: code,
		Title:     home + " vs " + away,
		Home:      &record.Side{Name: home},
		Away:      &record.Side{Name: away},
	}
}

func TestHighlights(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		q := r.URL.Query()
		if q.Get("key") != "yt" || q.Get("maxResults") != "1" || q.Get("type") != "video" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		switch {
		case strings.HasPrefix(q.Get("q"), "Fail"):
			w.WriteHeader(http.StatusForbidden)
		case strings.HasPrefix(q.Get("q"), "Empty"):
			_, _ = w.Write([]byte(`{"items":[]}`))
		case strings.HasPrefix(q.Get("q"), "Medium"):
			_, _ = w.Write([]byte(`{"items":[{"id":{"videoId":"m1"},"snippet":{"title":"Medium","thumbnails":{"medium":{"url":"https://i.example/m.jpg"},"default":{"url":"https://i.example/d.jpg"}}}}]}`))
		default:
			_, _ = w.Write([]byte(`{"items":[{"id":{"videoId":"` + q.Get("q")[:1] + `"},"snippet":{"title":"t","thumbnails":{"default":{"url":"https://i.example/d.jpg"}}}}]}`))
		}
	}))
	defer srv.Close()

	s := New(feedjson.New(feedjson.Options{Attempts: 1}), Options{BaseURL: srv.URL, APIKey: "yt"})
	var pauses int
	s.sleep = func(_ context.Context, d time.Duration) error {
		if d != batchPause {
			t.Errorf("pause = %v", d)
		}
		pauses++
		return nil
	}

	in := []record.Record{
		match("1", "Medium", "X", status.CodeFullTime),
		match("2", "Live", "X", status.CodeFirstHalf),
		match("3", "Fail", "X", status.CodeFullTime),
		match("4", "Empty", "X", status.CodeFullTime),
		match("5", "Zeta", "X", status.CodeFullTime),
		{ID: "6", StateCode: status.CodeFullTime},
	}
	got, err := s.Highlights(context.Background(), in)
	if err != nil {
		t.Fatalf("Highlights: %v", err)
	}
	if calls.Load() != 4 || pauses != 1 {
		t.Fatalf("calls=%d pauses=%d", calls.Load(), pauses)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].ID != "m1" || got[0].ImageURL != "https://i.example/m.jpg" || got[0].Link != watchURL+"m1" {
		t.Fatalf("first = %+v", got[0])
	}
	if got[0].Attrs["match_id"] != "1" || got[0].Subtitle != "Medium vs X" || got[0].CategoryKey != Category {
		t.Fatalf("first attrs = %+v", got[0])
	}
	if got[1].ID != "Z" || got[1].ImageURL != "https://i.example/d.jpg" {
		t.Fatalf("second = %+v", got[1])
	}
}

func TestHighlights_LimitAndCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items":[{"id":{"videoId":"v"},"snippet":{"title":"t"}}]}`))
	}))
	defer srv.Close()

	s := New(feedjson.New(feedjson.Options{Attempts: 1}), Options{BaseURL: srv.URL, Limit: 2})
	s.sleep = func(context.Context, time.Duration) error { return nil }
	in := []record.Record{
		match("1", "a", "b", status.CodeFullTime),
		match("2", "c", "d", status.CodeFullTime),
		match("3", "e", "f", status.CodeFullTime),
	}
	got, err := s.Highlights(context.Background(), in)
	if err != nil || len(got) != 2 {
		t.Fatalf("got=%d err=%v", len(got), err)
	}

	s = New(feedjson.New(feedjson.Options{Attempts: 1}), Options{BaseURL: srv.URL})
	s.sleep = func(context.Context, time.Duration) error { return context.Canceled }
	in = append(in, match("4", "g", "h", status.CodeFullTime))
	if _, err := s.Highlights(context.Background(), in); err == nil {
		t.Fatalf("expected cancel error")
	}

	if got, err := s.Highlights(context.Background(), nil); err != nil || len(got) != 0 {
		t.Fatalf("empty input: %v %v", got, err)
	}
}
