package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"oasis/internal/platform/config"
	perr "oasis/internal/platform/errors"
)

func TestDefaults_Valid(t *testing.T) {
	c := Defaults()
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if !c.Enabled(LiveScore) || !c.Enabled(MatchNews) || !c.Enabled(RSSNews) {
		t.Fatalf("keyless sources should be enabled by default")
	}
	if c.Enabled(TMDB) || c.Enabled(FootballData) || c.Enabled(YouTube) {
		t.Fatalf("keyed sources must stay disabled without an api key")
	}
	if c.Source(LiveScore).Interval != time.Minute {
		t.Fatalf("live score interval = %v", c.Source(LiveScore).Interval)
	}
	if c.Enabled("nope") {
		t.Fatalf("unknown source enabled")
	}
}

func TestParse_OverlaysDefaults(t *testing.T) {
	doc := `
timeout: 3s
sources:
  livescore:
    interval: 15s
  tmdb:
    api_key: abc
    pages: 5
  rssnews:
    feeds: ["https://example.com/feed.xml"]
  matchnews:
    disabled: true
  extra:
    base_url: https://extra.example/api
`
	c, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Timeout != 3*time.Second {
		t.Fatalf("timeout = %v", c.Timeout)
	}
	ls := c.Source(LiveScore)
	if ls.Interval != 15*time.Second {
		t.Fatalf("interval not overlaid: %v", ls.Interval)
	}
	if ls.BaseURL != Defaults().Source(LiveScore).BaseURL {
		t.Fatalf("base url should keep default, got %q", ls.BaseURL)
	}
	if tm := c.Source(TMDB); tm.Pages != 5 || tm.APIKey != "abc" || tm.Limit != 60 {
		t.Fatalf("tmdb overlay = %+v", tm)
	}
	if !c.Enabled(TMDB) {
		t.Fatalf("tmdb with key should be enabled")
	}
	if got := c.Source(RSSNews).Feeds; len(got) != 1 || got[0] != "https://example.com/feed.xml" {
		t.Fatalf("feeds = %v", got)
	}
	if c.Enabled(MatchNews) {
		t.Fatalf("disabled source reported enabled")
	}
	if c.Source("extra").BaseURL == "" {
		t.Fatalf("new source not added")
	}
	// defaults untouched
	if Defaults().Source(LiveScore).Interval != time.Minute {
		t.Fatalf("Parse mutated defaults")
	}
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"bad yaml":          "sources: [",
		"relative url":      "sources:\n  livescore:\n    base_url: /relative\n",
		"negative pages":    "sources:\n  tmdb:\n    pages: -1\n",
		"negative interval": "sources:\n  livescore:\n    interval: -5s\n",
		"no url":            "sources:\n  extra:\n    interval: 5s\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
				t.Fatalf("code = %v, want InvalidArgument", perr.CodeOf(err))
			}
		})
	}
}

func TestFromEnv_FileAndKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.yaml")
	if err := os.WriteFile(path, []byte("sources:\n  youtube:\n    api_key: from-file\n    limit: 6\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OASIS_SOURCES_FILE", path)
	t.Setenv("OASIS_YOUTUBE_API_KEY", "from-env")
	t.Setenv("OASIS_FOOTBALLDATA_API_KEY", "fd")

	c, err := FromEnv(config.New().Prefix("OASIS_"))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	yt := c.Source(YouTube)
	if yt.APIKey != "from-env" || yt.Limit != 6 {
		t.Fatalf("youtube = %+v", yt)
	}
	if !c.Enabled(FootballData) {
		t.Fatalf("footballdata key from env not applied")
	}
}

func TestFromEnv_MissingFile(t *testing.T) {
	t.Setenv("OASIS_SOURCES_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := FromEnv(config.New().Prefix("OASIS_"))
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}
