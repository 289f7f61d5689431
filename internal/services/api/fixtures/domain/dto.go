// Package domain holds the fixtures view types
package domain

import (
	"context"

	"oasis/internal/core/record"
	"oasis/internal/services/api/browse"
)

// Fixture lists
const (
	ListAll        = "all"
	ListLive       = "live"
	ListUpcoming   = "upcoming"
	ListRecent     = "recent"
	ListHighlights = "highlights"
)

// Board is the fixtures page
type Board struct {
	Live       []browse.Match  `json:"live"`
	Upcoming   []browse.Match  `json:"upcoming"`
	Recent     []browse.Match  `json:"recent"`
	Highlights []record.Record `json:"highlights"`
	Version    uint64          `json:"version" example:"4"`
	browse.Status
}

// BrowseInput pages one fixture list
// all is live, upcoming then recent
type BrowseInput struct {
	List string `json:"list,omitempty" validate:"omitempty,oneof=all live upcoming recent highlights" example:"upcoming"`
	browse.Input
}

// ServicePort is consumed by handlers
type ServicePort interface {
	Board(ctx context.Context) (Board, error)
	Browse(ctx context.Context, in BrowseInput) (any, error)
}
