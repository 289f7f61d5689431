package domain

import (
	"context"

	"oasis/internal/adapters/sources/livescore"
	"oasis/internal/services/api/browse"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Groups(ctx context.Context) (GroupsView, error)
	Browse(ctx context.Context, in BrowseInput) (browse.Result[browse.Match], error)
	Detail(ctx context.Context, id string) (livescore.Detail, error)
}
