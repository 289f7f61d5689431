// Package domain holds the titles view types
package domain

import (
	"context"

	"oasis/internal/adapters/sources/tmdb"
	"oasis/internal/core/record"
	"oasis/internal/services/api/browse"
)

// KindGenres is the genre showcase, served next to the shelves
const KindGenres = "genres"

// ShelfSummary is one entry of the shelf index
type ShelfSummary struct {
	Shelf tmdb.Shelf `json:"shelf" example:"trending-movies"`
	Label string     `json:"label" example:"Trending Movies"`
	Count int        `json:"count" example:"60"`
}

// Index lists the shelves with their sizes
type Index struct {
	Shelves []ShelfSummary `json:"shelves"`
	Genres  int            `json:"genres" example:"12"`
	Version uint64         `json:"version" example:"2"`
	browse.Status
}

// ShelfView is one full shelf
type ShelfView struct {
	Shelf   tmdb.Shelf      `json:"shelf" example:"new-series"`
	Label   string          `json:"label" example:"New Series"`
	Items   []record.Record `json:"items"`
	Version uint64          `json:"version" example:"2"`
	browse.Status
}

// GenresView is the genre showcase
type GenresView struct {
	Genres  []tmdb.Genre `json:"genres"`
	Version uint64       `json:"version" example:"2"`
	browse.Status
}

// BrowseInput pages one shelf, or the genre showcase
type BrowseInput struct {
	Shelf string `json:"shelf" validate:"required,oneof=trending-movies new-movies trending-series new-series top-series genres" example:"trending-movies"` //nolint:lll
	browse.Input
}

// ServicePort is consumed by handlers
type ServicePort interface {
	Index(ctx context.Context) (Index, error)
	Shelf(ctx context.Context, kind string) (ShelfView, error)
	Genres(ctx context.Context) (GenresView, error)
	Browse(ctx context.Context, in BrowseInput) (any, error)
}
