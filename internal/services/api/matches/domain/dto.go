// Package domain holds the matches view types
package domain

import (
	"oasis/internal/core/grouping"
	"oasis/internal/core/status"
	"oasis/internal/services/api/browse"
)

// Browse sections
const (
	SectionAll      = "all"
	SectionLive     = "live"
	SectionUpcoming = "upcoming"
	SectionFinished = "finished"
)

// PreviewSize is how many members a group shows before "see all"
const PreviewSize = 3

// BrowseInput pages the flat match list of one section
type BrowseInput struct {
	Section string `json:"section,omitempty" validate:"omitempty,oneof=all live upcoming finished" example:"live"`
	browse.Input
}

// GroupView is one league bucket
type GroupView struct {
	Key     string         `json:"key"     example:"Premier League_live"`
	Name    string         `json:"name"    example:"Premier League"`
	Status  status.Status  `json:"status"  example:"live"`
	Count   int            `json:"count"   example:"4"`
	Preview []browse.Match `json:"preview"`
	Members []browse.Match `json:"members"`
}

// GroupsView is the grouped live-score page
type GroupsView struct {
	Groups  []GroupView      `json:"groups"`
	Summary grouping.Summary `json:"summary"`
	Version uint64           `json:"version" example:"12"`
	browse.Status
}
