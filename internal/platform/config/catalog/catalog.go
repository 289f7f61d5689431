// Package catalog describes the upstream feeds the service polls
// defaults are compiled in; an optional YAML file (OASIS_SOURCES_FILE) overrides them per source
package catalog

import (
	"maps"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"oasis/internal/platform/config"
	perr "oasis/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

// Source names
const (
	LiveScore    = "livescore"
	MatchNews    = "matchnews"
	RSSNews      = "rssnews"
	TMDB         = "tmdb"
	FootballData = "footballdata"
	YouTube      = "youtube"
)

// keyed sources stay disabled until an api key is configured
var keyed = map[string]bool{TMDB: true, FootballData: true, YouTube: true}

// Source is one upstream feed
type Source struct {
	BaseURL   string        `yaml:"base_url"`
	DetailURL string        `yaml:"detail_url,omitempty"`
	SiteURL   string        `yaml:"site_url,omitempty"`
	ImageBase string        `yaml:"image_base,omitempty"`
	APIKey    string        `yaml:"api_key,omitempty"`
	Interval  time.Duration `yaml:"interval,omitempty"`
	Pages     int           `yaml:"pages,omitempty"`
	Limit     int           `yaml:"limit,omitempty"`
	Feeds     []string      `yaml:"feeds,omitempty"`
	Disabled  bool          `yaml:"disabled,omitempty"`
}

// Catalog is the full set of sources plus shared client settings
type Catalog struct {
	UserAgent string            `yaml:"user_agent,omitempty"`
	Timeout   time.Duration     `yaml:"timeout,omitempty"`
	Sources   map[string]Source `yaml:"sources"`
}

// Defaults returns the compiled-in catalogue
func Defaults() Catalog {
	return Catalog{
		UserAgent: "oasis/1 (+https://github.com/oasis)",
		Timeout:   10 * time.Second,
		Sources: map[string]Source{
			LiveScore: {
				BaseURL:   "https://dapiab.xdapiym5297.com/api/merge/schedules?d=afr.808ball2.com",
				DetailURL: "https://cfapi.xdapiym5297.com/gated6a74ea91118d22af34db811e4a2b1d0ab0b97d2666a2e4576457db308/api/ftb/detail?d=ppdd02.dtfjinikdinbiframe.shop&lang=1",
				SiteURL:   "https://afr.808ball2.com",
				ImageBase: "https://cfcdn.xdapiym5297.com/zqwin007",
				Interval:  60 * time.Second,
			},
			MatchNews: {
				BaseURL:   "https://newsapi.xdapiym5297.com/news/article/match/list?page=1&pageSize=21&sub=1",
				SiteURL:   "https://www.808onlivetv.com",
				ImageBase: "https://cfcdn.xdapiym5297.com/prod",
				Interval:  5 * time.Minute,
			},
			RSSNews: {
				Feeds: []string{
					"https://feeds.bbci.co.uk/sport/football/rss.xml",
					"https://www.theguardian.com/football/rss",
				},
				Interval: 10 * time.Minute,
				Limit:    30,
			},
			TMDB: {
				BaseURL:   "https://api.themoviedb.org/3",
				ImageBase: "https://image.tmdb.org/t/p/w500",
				Interval:  30 * time.Minute,
				Pages:     3,
				Limit:     60,
			},
			FootballData: {
				BaseURL:  "https://api.football-data.org/v4",
				Interval: 30 * time.Second,
			},
			YouTube: {
				BaseURL: "https://www.googleapis.com/youtube/v3",
				Limit:   15,
			},
		},
	}
}

// Source returns the named source (zero value if unknown)
func (c Catalog) Source(name string) Source { return c.Sources[name] }

// Names returns the configured source names sorted
func (c Catalog) Names() []string { return slices.Sorted(maps.Keys(c.Sources)) }

// Enabled reports whether the named source should be polled
func (c Catalog) Enabled(name string) bool {
	s, ok := c.Sources[name]
	if !ok || s.Disabled {
		return false
	}
	if keyed[name] && s.APIKey == "" {
		return false
	}
	return true
}

// Parse overlays a YAML document on top of Defaults and validates the result
func Parse(b []byte) (Catalog, error) {
	var file Catalog
	if err := yaml.Unmarshal(b, &file); err != nil {
		return Catalog{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "sources file: invalid yaml")
	}
	c := Defaults().merge(file)
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Load reads and parses the YAML file at path
func Load(path string) (Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, perr.Wrapf(err, perr.ErrorCodeNotFound, "sources file %s", path)
	}
	return Parse(b)
}

// FromEnv loads OASIS_SOURCES_FILE when set, then applies api keys from the environment
// (OASIS_TMDB_API_KEY, OASIS_FOOTBALLDATA_API_KEY, OASIS_YOUTUBE_API_KEY) which win over the file
func FromEnv(cfg config.Conf) (Catalog, error) {
	c := Defaults()
	if p := cfg.MayString("SOURCES_FILE", ""); p != "" {
		loaded, err := Load(p)
		if err != nil {
			return Catalog{}, err
		}
		c = loaded
	}
	for _, name := range []string{TMDB, FootballData, YouTube} {
		if k := cfg.MayString(strings.ToUpper(name)+"_API_KEY", ""); k != "" {
			s := c.Sources[name]
			s.APIKey = k
			c.Sources[name] = s
		}
	}
	c.UserAgent = cfg.MayString("USER_AGENT", c.UserAgent)
	c.Timeout = cfg.MayDuration("HTTP_TIMEOUT", c.Timeout)
	return c, c.Validate()
}

// Validate checks urls and durations of every enabled source
func (c Catalog) Validate() error {
	if c.Timeout <= 0 {
		return perr.WithField(perr.InvalidArgf("timeout must be positive"), "timeout")
	}
	for _, name := range c.Names() {
		s := c.Sources[name]
		if s.Disabled {
			continue
		}
		field := "sources." + name
		if s.Interval < 0 {
			return perr.WithField(perr.InvalidArgf("%s: interval must not be negative", name), field+".interval")
		}
		if s.Pages < 0 || s.Limit < 0 {
			return perr.WithField(perr.InvalidArgf("%s: pages and limit must not be negative", name), field)
		}
		urls := append([]string{s.BaseURL, s.DetailURL, s.SiteURL, s.ImageBase}, s.Feeds...)
		for _, raw := range urls {
			if raw == "" {
				continue
			}
			if u, err := url.Parse(raw); err != nil || !u.IsAbs() {
				return perr.WithField(perr.InvalidArgf("%s: %q is not an absolute url", name, raw), field)
			}
		}
		if s.BaseURL == "" && len(s.Feeds) == 0 {
			return perr.WithField(perr.InvalidArgf("%s: base_url or feeds required", name), field+".base_url")
		}
	}
	return nil
}

// merge overlays the non-zero fields of o onto c; sources missing from c are added
func (c Catalog) merge(o Catalog) Catalog {
	out := Catalog{
		UserAgent: pick(o.UserAgent, c.UserAgent),
		Timeout:   pick(o.Timeout, c.Timeout),
		Sources:   maps.Clone(c.Sources),
	}
	if out.Sources == nil {
		out.Sources = map[string]Source{}
	}
	for name, s := range o.Sources {
		base := out.Sources[name]
		base.BaseURL = pick(s.BaseURL, base.BaseURL)
		base.DetailURL = pick(s.DetailURL, base.DetailURL)
		base.SiteURL = pick(s.SiteURL, base.SiteURL)
		base.ImageBase = pick(s.ImageBase, base.ImageBase)
		base.APIKey = pick(s.APIKey, base.APIKey)
		base.Interval = pick(s.Interval, base.Interval)
		base.Pages = pick(s.Pages, base.Pages)
		base.Limit = pick(s.Limit, base.Limit)
		if len(s.Feeds) > 0 {
			base.Feeds = slices.Clone(s.Feeds)
		}
		base.Disabled = s.Disabled
		out.Sources[name] = base
	}
	return out
}

func pick[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
