// Package matchnews reads the match article list feed
package matchnews

import (
	"context"
	"net/url"
	"strings"
	"time"

	"oasis/internal/adapters/sources/feedjson"
	"oasis/internal/core/record"
	"oasis/internal/core/status"
)

// Category is the category key every match article is filed under
const Category = "Match News"

// DefaultReadTime is shown when an article carries none
const DefaultReadTime = "5 min"

// Options configures a Source
type Options struct {
	ListURL   string
	SiteURL   string
	ImageBase string
}

// Source fetches match articles
type Source struct {
	opts   Options
	client *feedjson.Client
}

// New builds a Source over a shared feed client
func New(c *feedjson.Client, o Options) *Source {
	o.SiteURL = strings.TrimRight(o.SiteURL, "/")
	o.ImageBase = strings.TrimRight(o.ImageBase, "/")
	return &Source{opts: o, client: c}
}

// Articles fetches the article list in feed order
func (s *Source) Articles(ctx context.Context) ([]record.Record, error) {
	out := make([]record.Record, 0, 24)
	err := s.client.Do(ctx, s.opts.ListURL, nil, func(item []byte) error {
		id := feedjson.Str(item, "id")
		title := feedjson.Str(item, "title")
		if id == "" || title == "" {
			return nil
		}
		r := record.Record{
			ID:          id,
			CategoryKey: Category,
			StateCode:   status.NoCode,
			Title:       title,
			Subtitle:    feedjson.Str(item, "excerpt"),
			ImageURL:    joinPath(s.opts.ImageBase, feedjson.Str(item, "imageUrl")),
			Link:        s.Link(id, feedjson.Str(item, "articleLink")),
			Attrs:       map[string]string{"read_time": DefaultReadTime},
		}
		if rt := feedjson.Str(item, "readTime"); rt != "" {
			r.Attrs["read_time"] = rt
		}
		r.Timestamp = published(item)
		out = append(out, r)
		return nil
	}, "items")
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Link builds the public article url
func (s *Source) Link(id, slug string) string {
	if s.opts.SiteURL == "" {
		return ""
	}
	if slug == "" {
		return s.opts.SiteURL + "/news/" + url.PathEscape(id)
	}
	return s.opts.SiteURL + "/news/" + url.PathEscape(id) + "/" + slug + ".html"
}

// joinPath prefixes relative image paths with base; absolute urls pass through
func joinPath(base, p string) string {
	switch {
	case p == "":
		return ""
	case strings.HasPrefix(p, "http://"), strings.HasPrefix(p, "https://"):
		return p
	case base == "":
		return p
	case strings.HasPrefix(p, "/"):
		return base + p
	default:
		return base + "/" + p
	}
}

// published reads the first timestamp field present, epoch millis or RFC 3339
func published(item []byte) *time.Time {
	for _, k := range []string{"publishTime", "publishedAt", "createTime"} {
		if ms, ok := feedjson.Int(item, k); ok && ms > 0 {
			t := time.UnixMilli(int64(ms)).UTC()
			return &t
		}
		if raw := feedjson.Str(item, k); raw != "" {
			for _, layout := range []string{time.RFC3339, time.DateTime} {
				if t, err := time.Parse(layout, raw); err == nil {
					t = t.UTC()
					return &t
				}
			}
		}
	}
	return nil
}
