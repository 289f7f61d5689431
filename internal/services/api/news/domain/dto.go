// Package domain holds the news view types
package domain

import (
	"context"

	"oasis/internal/core/record"
	"oasis/internal/services/api/browse"
)

// Category is one news source bucket
type Category struct {
	Key   string `json:"key"   example:"match-news"`
	Name  string `json:"name"  example:"Match News"`
	Count int    `json:"count" example:"12"`
}

// View is the merged news list, newest first
type View struct {
	Items      []record.Record `json:"items"`
	Categories []Category      `json:"categories"`
	Version    uint64          `json:"version" example:"3"`
	browse.Status
}

// BrowseInput pages the news list, optionally narrowed to one category
type BrowseInput struct {
	Category string `json:"category,omitempty" validate:"omitempty,max=200" example:"Match News"`
	browse.Input
}

// ServicePort is consumed by handlers
type ServicePort interface {
	List(ctx context.Context) (View, error)
	Browse(ctx context.Context, in BrowseInput) (browse.Result[record.Record], error)
}
