package livescore

import (
	"context"
	"time"

	"oasis/internal/adapters/sources/feedjson"
	"oasis/internal/core/record"
	"oasis/internal/core/status"
	perr "oasis/internal/platform/errors"
)

// Event kinds used by the detail feed
const (
	KindGoal         = 1
	KindYellowCard   = 3
	KindRedCard      = 4
	KindPenaltyGoal  = 7
	KindSubstitution = 11
)

// EventLabel names an event kind; unknown kinds read "Event"
func EventLabel(kind int) string {
	switch kind {
	case KindGoal:
		return "Goal"
	case KindYellowCard:
		return "Yellow Card"
	case KindRedCard:
		return "Red Card"
	case KindPenaltyGoal:
		return "Penalty Goal"
	case KindSubstitution:
		return "Substitution"
	default:
		return "Event"
	}
}

// Event is one timeline entry of a match
type Event struct {
	ID     string `json:"id"`
	Minute string `json:"minute"`
	Kind   int    `json:"kind"`
	Label  string `json:"label"`
	Player string `json:"player"`
	IsHome bool   `json:"is_home"`
}

// Detail is a single match with its timeline
type Detail struct {
	Match     record.Record         `json:"match"`
	Status    status.Classification `json:"status"`
	HalfScore *HalfScore            `json:"half_score,omitempty"`
	Season    string                `json:"season,omitempty"`
	Location  string                `json:"location,omitempty"`
	Weather   string                `json:"weather,omitempty"`
	Events    []Event               `json:"events"`
}

// HalfScore is the half-time result
type HalfScore struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Detail fetches one match by id
func (s *Source) Detail(ctx context.Context, id string) (Detail, error) {
	if id == "" {
		return Detail{}, perr.WithField(perr.InvalidArgf("match id required"), "id")
	}
	if s.opts.DetailURL == "" {
		return Detail{}, perr.Unavailablef("livescore: detail endpoint not configured")
	}
	u, err := withQuery(s.opts.DetailURL, "id", id)
	if err != nil {
		return Detail{}, err
	}
	body, err := s.client.Get(ctx, u, nil)
	if err != nil {
		return Detail{}, err
	}
	m, err := feedjson.Object(body, "match")
	if err != nil {
		return Detail{}, err
	}

	rec, ok := s.toRecord(m)
	if !ok {
		rec.ID = id
		rec.CategoryKey = feedjson.Str(m, "leagueEn")
		rec.StateCode = feedjson.IntOr(m, status.NoCode, "state")
		rec.Home = s.side(m, "home")
		rec.Away = s.side(m, "away")
		rec.Title = rec.Home.Name + " vs " + rec.Away.Name
		rec.Link = s.Link(id, feedjson.Str(m, "teamLink"))
	}
	if rec.Timestamp == nil {
		if ms, ok := feedjson.Int(m, "startTime_t"); ok && ms > 0 {
			ts := time.UnixMilli(int64(ms)).UTC()
			rec.Timestamp = &ts
		}
	}

	d := Detail{
		Match:    rec,
		Status:   status.Classify(rec.StateCode),
		Season:   feedjson.Str(m, "season"),
		Location: feedjson.Str(m, "location"),
		Weather:  feedjson.Str(m, "weather"),
		Events:   []Event{},
	}
	hh, okH := feedjson.Int(m, "homeHalfScore")
	ah, okA := feedjson.Int(m, "awayHalfScore")
	if okH && okA {
		d.HalfScore = &HalfScore{Home: hh, Away: ah}
	}

	err = feedjson.Each(body, func(item []byte) error {
		kind := feedjson.IntOr(item, 0, "kind")
		d.Events = append(d.Events, Event{
			ID:     feedjson.Str(item, "id"),
			Minute: feedjson.Str(item, "time"),
			Kind:   kind,
			Label:  EventLabel(kind),
			Player: feedjson.Str(item, "nameEn"),
			IsHome: feedjson.Bool(item, "isHome"),
		})
		return nil
	}, "event")
	if err != nil {
		return Detail{}, err
	}
	return d, nil
}
