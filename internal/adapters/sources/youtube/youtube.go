// Package youtube finds a highlights video for finished matches
package youtube

import (
	"context"
	"net/url"
	"strings"
	"time"

	"oasis/internal/adapters/sources/feedjson"
	"oasis/internal/core/record"
	"oasis/internal/core/status"
	"oasis/internal/platform/logger"

	"golang.org/x/sync/errgroup"
)

// Category is the category key of every highlight record
const Category = "Highlights"

const (
	batchSize  = 3
	batchPause = time.Second
	watchURL   = "https://www.youtube.com/watch?v="
)

// Options configures a Source
type Options struct {
	BaseURL string
	APIKey  string
	Limit   int
}

// Source runs one search per match
type Source struct {
	opts   Options
	client *feedjson.Client
	sleep  func(context.Context, time.Duration) error
}

// New builds a Source
func New(c *feedjson.Client, o Options) *Source {
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Limit <= 0 {
		o.Limit = 15
	}
	return &Source{opts: o, client: c, sleep: pause}
}

func pause(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Highlights searches a video for each finished match, in batches of three with a pause between batches
// a failed or empty search leaves the match out; order follows matches
func (s *Source) Highlights(ctx context.Context, matches []record.Record) ([]record.Record, error) {
	todo := make([]record.Record, 0, len(matches))
	for _, m := range matches {
		if m.Home == nil || m.Away == nil || status.Of(m.StateCode) != status.Other {
			continue
		}
		todo = append(todo, m)
		if len(todo) == s.opts.Limit {
			break
		}
	}

	found := make([]*record.Record, len(todo))
	for start := 0; start < len(todo); start += batchSize {
		if start > 0 {
			if err := s.sleep(ctx, batchPause); err != nil {
				return nil, err
			}
		}
		end := min(start+batchSize, len(todo))
		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				v, err := s.search(ctx, todo[i])
				if err != nil {
					logger.C(ctx).Warn().Err(err).Str("match", todo[i].ID).Msg("highlight search failed")
					return nil
				}
				found[i] = v
				return nil
			})
		}
		_ = g.Wait()
	}

	out := make([]record.Record, 0, len(found))
	for _, v := range found {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out, nil
}

// Query is the search text used for a match
func Query(m record.Record) string {
	return m.Home.Name + " vs " + m.Away.Name + " highlights"
}

func (s *Source) search(ctx context.Context, m record.Record) (*record.Record, error) {
	q := url.Values{
		"part":       {"snippet"},
		"q":          {Query(m)},
		"type":       {"video"},
		"order":      {"relevance"},
		"maxResults": {"1"},
		"key":        {s.opts.APIKey},
	}
	var hit *record.Record
	err := s.client.Do(ctx, s.opts.BaseURL+"/search?"+q.Encode(), nil, func(item []byte) error {
		if hit != nil {
			return nil
		}
		id := feedjson.Str(item, "id", "videoId")
		if id == "" {
			return nil
		}
		thumb := feedjson.Str(item, "snippet", "thumbnails", "medium", "url")
		if thumb == "" {
			thumb = feedjson.Str(item, "snippet", "thumbnails", "default", "url")
		}
		hit = &record.Record{
			ID:          id,
			CategoryKey: Category,
			StateCode:   status.NoCode,
			Title:       feedjson.Str(item, "snippet", "title"),
			Subtitle:    m.Title,
			ImageURL:    thumb,
			Link:        watchURL + id,
			Timestamp:   m.Timestamp,
			Attrs:       map[string]string{"match_id": m.ID},
		}
		return nil
	}, "items")
	return hit, err
}
