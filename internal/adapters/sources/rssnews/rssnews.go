// Package rssnews turns RSS and Atom football feeds into records
package rssnews

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"

	"oasis/internal/adapters/sources/feedjson"
	"oasis/internal/core/normalize"
	"oasis/internal/core/record"
	"oasis/internal/core/status"
	perr "oasis/internal/platform/errors"
	"oasis/internal/platform/logger"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
)

const (
	defaultLimit   = 30
	summaryRunes   = 280
	maxConcurrency = 4
)

var acceptFeeds = http.Header{"Accept": {"application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.5"}}

// Source reads a fixed set of feeds
type Source struct {
	feeds  []string
	limit  int
	client *feedjson.Client
}

// New builds a Source; limit caps the merged list (newest first)
func New(c *feedjson.Client, feeds []string, limit int) *Source {
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Source{feeds: slices.Clone(feeds), limit: limit, client: c}
}

// Articles fetches every feed concurrently and merges them newest first
// a failing feed is logged and skipped; the call fails only when every feed fails
func (s *Source) Articles(ctx context.Context) ([]record.Record, error) {
	if len(s.feeds) == 0 {
		return []record.Record{}, nil
	}
	results := make([][]record.Record, len(s.feeds))
	errs := make([]error, len(s.feeds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)
	for i, u := range s.feeds {
		g.Go(func() error {
			results[i], errs[i] = s.fetch(gctx, u)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]record.Record, 0, s.limit)
	failed := 0
	for i, err := range errs {
		if err != nil {
			failed++
			logger.C(ctx).Warn().Err(err).Str("feed", s.feeds[i]).Msg("rss feed skipped")
			continue
		}
		out = append(out, results[i]...)
	}
	if failed == len(s.feeds) {
		return nil, errs[0]
	}
	slices.SortStableFunc(out, record.Newer)
	if len(out) > s.limit {
		out = out[:s.limit]
	}
	return out, nil
}

func (s *Source) fetch(ctx context.Context, feedURL string) ([]record.Record, error) {
	body, err := s.client.Get(ctx, feedURL, acceptFeeds)
	if err != nil {
		return nil, err
	}
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, perr.FromDecode(err, "rss "+feedURL)
	}
	return FromFeed(feed, feedURL), nil
}

// FromFeed converts a parsed feed; items without a link or guid are dropped
func FromFeed(feed *gofeed.Feed, feedURL string) []record.Record {
	category := normalize.Label(feed.Title)
	if category == "" {
		category = host(feedURL)
	}
	out := make([]record.Record, 0, len(feed.Items))
	for _, it := range feed.Items {
		id := strings.TrimSpace(it.GUID)
		if id == "" {
			id = strings.TrimSpace(it.Link)
		}
		if id == "" {
			continue
		}
		html := it.Description
		if html == "" {
			html = it.Content
		}
		text, img := Summarize(html)
		r := record.Record{
			ID:          id,
			CategoryKey: category,
			StateCode:   status.NoCode,
			Title:       strings.TrimSpace(it.Title),
			Subtitle:    text,
			ImageURL:    image(it, img),
			Link:        it.Link,
			Attrs:       map[string]string{"source": category},
		}
		if it.Author != nil && it.Author.Name != "" {
			r.Attrs["author"] = it.Author.Name
		}
		switch {
		case it.PublishedParsed != nil:
			t := it.PublishedParsed.UTC()
			r.Timestamp = &t
		case it.UpdatedParsed != nil:
			t := it.UpdatedParsed.UTC()
			r.Timestamp = &t
		}
		out = append(out, r)
	}
	return out
}

// Summarize strips markup from an item body and returns the leading text plus the first image src
func Summarize(html string) (text, img string) {
	if strings.TrimSpace(html) == "" {
		return "", ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return truncate(strings.Join(strings.Fields(html), " ")), ""
	}
	img, _ = doc.Find("img").First().Attr("src")
	return truncate(strings.Join(strings.Fields(doc.Text()), " ")), img
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= summaryRunes {
		return s
	}
	r := []rune(s)
	cut := string(r[:summaryRunes])
	if i := strings.LastIndexByte(cut, ' '); i > summaryRunes/2 {
		cut = cut[:i]
	}
	return cut + "…"
}

func image(it *gofeed.Item, fromBody string) string {
	if it.Image != nil && it.Image.URL != "" {
		return it.Image.URL
	}
	for _, e := range it.Enclosures {
		if e != nil && strings.HasPrefix(e.Type, "image/") && e.URL != "" {
			return e.URL
		}
	}
	return fromBody
}

func host(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return strings.TrimPrefix(u.Host, "www.")
	}
	return raw
}
