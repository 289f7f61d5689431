// Package livescore reads the live-score schedule feed and its per-match detail endpoint
package livescore

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"oasis/internal/adapters/sources/feedjson"
	"oasis/internal/core/normalize"
	"oasis/internal/core/record"
	"oasis/internal/core/status"
	perr "oasis/internal/platform/errors"
)

// LegacyLogoHost is the plain-http logo origin the feed still emits
const LegacyLogoHost = "http://zq.win007.com"

// Options configures a Source
type Options struct {
	ScheduleURL string
	DetailURL   string
	SiteURL     string
	LogoHost    string
}

// Source fetches matches from the live-score feed
type Source struct {
	opts   Options
	client *feedjson.Client
	now    func() time.Time
}

// New builds a Source over a shared feed client
func New(c *feedjson.Client, o Options) *Source {
	o.SiteURL = strings.TrimRight(o.SiteURL, "/")
	o.LogoHost = strings.TrimRight(o.LogoHost, "/")
	return &Source{opts: o, client: c, now: time.Now}
}

// Matches fetches the whole schedule; every call returns a full replacement list
func (s *Source) Matches(ctx context.Context) ([]record.Record, error) {
	u, err := withQuery(s.opts.ScheduleURL, "_t", strconv.FormatInt(s.now().UnixMilli(), 10))
	if err != nil {
		return nil, err
	}
	out := make([]record.Record, 0, 64)
	err = s.client.Do(ctx, u, nil, func(item []byte) error {
		if r, ok := s.toRecord(item); ok {
			out = append(out, r)
		}
		return nil
	}, "matchList")
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Source) toRecord(item []byte) (record.Record, bool) {
	id := feedjson.Str(item, "matchId")
	if id == "" {
		return record.Record{}, false
	}
	state := feedjson.IntOr(item, status.NoCode, "state")
	r := record.Record{
		ID:          id,
		CategoryKey: normalize.Label(feedjson.Str(item, "leagueEn")),
		StateCode:   state,
		Home:        s.side(item, "home"),
		Away:        s.side(item, "away"),
		Link:        s.Link(id, feedjson.Str(item, "teamLink")),
	}
	r.Title = r.Home.Name + " vs " + r.Away.Name
	if ms, ok := feedjson.Int(item, "matchTime_t"); ok && ms > 0 {
		ts := time.UnixMilli(int64(ms)).UTC()
		r.Timestamp = &ts
	}
	if status.IsLive(state) {
		r.Clock = feedjson.Str(item, "remainTime")
		if r.Clock == "" {
			r.Clock = "Live"
		}
	}
	return r, true
}

// side reads the prefixed team fields (homeName, homeLogoUrl, homeScore, homeYellow, homeRed)
func (s *Source) side(item []byte, prefix string) *record.Side {
	sd := &record.Side{
		Name:    feedjson.Str(item, prefix+"Name"),
		LogoURL: LogoURL(feedjson.Str(item, prefix+"LogoUrl"), s.opts.LogoHost),
		Yellow:  feedjson.IntOr(item, 0, prefix+"Yellow"),
		Red:     feedjson.IntOr(item, 0, prefix+"Red"),
	}
	if n, ok := feedjson.Int(item, prefix+"Score"); ok {
		sd.Score = record.IntPtr(n)
	}
	return sd
}

// Link builds the public match page url
func (s *Source) Link(matchID, teamLink string) string {
	if s.opts.SiteURL == "" || matchID == "" {
		return ""
	}
	slug := matchID
	if teamLink != "" {
		slug += "-" + teamLink
	}
	return s.opts.SiteURL + "/football/" + slug + ".html"
}

// LogoURL rewrites logos served from the legacy host onto host; other urls pass through
func LogoURL(raw, host string) string {
	if raw == "" || host == "" {
		return raw
	}
	if rest, ok := strings.CutPrefix(raw, LegacyLogoHost); ok {
		return host + rest
	}
	return raw
}

func withQuery(raw, key, value string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return "", perr.InvalidArgf("livescore: bad url %q", raw)
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
