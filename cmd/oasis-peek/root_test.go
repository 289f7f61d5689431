package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"oasis/internal/platform/config/catalog"
	perr "oasis/internal/platform/errors"
	kit "oasis/internal/platform/testkit"
)

const schedule = `{"matchList":[
 {"matchId":1,"leagueEn":"Premier League","state":1,"homeName":"A","awayName":"B"},
 {"matchId":2,"leagueEn":"Serie A","state":0,"homeName":"C","awayName":"D"},
 {"matchId":3,"leagueEn":"Serie A","state":-1,"homeName":"E","awayName":"F"}]}`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(schedule))
	}))
	t.Cleanup(srv.Close)

	load := func() (catalog.Catalog, error) {
		return catalog.Catalog{
			Timeout: 2 * time.Second,
			Sources: map[string]catalog.Source{
				catalog.LiveScore: {BaseURL: srv.URL, SiteURL: "https://site.example"},
			},
		}, nil
	}
	var out bytes.Buffer
	cmd := newRootCmd(load, &out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMatches_Window(t *testing.T) {
	out, err := run(t, "matches", "--window", "1", "--page", "1", "--compact")
	if err != nil {
		t.Fatalf("matches: %v", err)
	}
	kit.MustContain(t, out, `"id":"2"`)
	kit.MustContain(t, out, `"cursor":{"offset":1,"window":1}`)
	kit.MustContain(t, out, `"total":3`)
}

func TestMatches_SectionAndGroups(t *testing.T) {
	out, err := run(t, "matches", "--section", "finished", "--compact")
	if err != nil {
		t.Fatalf("matches: %v", err)
	}
	kit.MustContain(t, out, `"total":1`)
	kit.MustContain(t, out, `"status_label":"Full Time"`)

	out, err = run(t, "matches", "--grouped")
	if err != nil {
		t.Fatalf("grouped: %v", err)
	}
	kit.MustContain(t, out, `"key": "Premier League_live"`)
}

func TestDisabledAndBadArgs(t *testing.T) {
	if _, err := run(t, "news"); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("news err = %v", err)
	}
	if _, err := run(t, "titles", "anime"); err == nil {
		t.Fatalf("unknown shelf should fail")
	}
	if _, err := run(t, "titles"); err == nil {
		t.Fatalf("missing shelf should fail")
	}
	if _, err := run(t, "titles", "genres"); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("titles err = %v", err)
	}
}
