// Package http provides http transport for fixtures
package http

import (
	stdhttp "net/http"

	"oasis/internal/modkit/httpkit"
	"oasis/internal/services/api/browse"
	"oasis/internal/services/api/fixtures/domain"
	svc "oasis/internal/services/api/fixtures/service"
	fdom "oasis/internal/services/feeds/domain"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service, feed fdom.Feed[fdom.FixtureBoard]) {
	h := &handlers{svc: s, feed: feed}
	httpkit.Get(r, "/", h.board)
	httpkit.PostJSON[domain.BrowseInput](r, "/browse", h.browse)
	httpkit.Post(r, "/refresh", h.refresh)
}

type handlers struct {
	svc  svc.Service
	feed fdom.Feed[fdom.FixtureBoard]
}

// swagger:route GET /fixtures Fixtures board
// @Summary Live, upcoming and recent fixtures with highlight videos
// @Tags fixtures
// @Produce json
// @Success 200 {object} domain.Board "ok"
// @Success 304 "not modified"
// @Failure 503 {object} httpkit.Envelope "feed disabled"
// @Router /fixtures [get]
func (h *handlers) board(r *stdhttp.Request) (any, error) {
	b, err := h.svc.Board(r.Context())
	if err != nil {
		return nil, err
	}
	return httpkit.Versioned(b, browse.ETag(fdom.Fixtures, b.Version)), nil
}

// swagger:route POST /fixtures/browse Fixtures browse
// @Summary Page through one fixture list
// @Tags fixtures
// @Accept json
// @Produce json
// @Param payload body domain.BrowseInput true "Browse"
// @Success 200 {object} browse.Result[browse.Match] "ok"
// @Router /fixtures/browse [post]
func (h *handlers) browse(r *stdhttp.Request, in domain.BrowseInput) (any, error) {
	return h.svc.Browse(r.Context(), in)
}

// swagger:route POST /fixtures/refresh Fixtures refresh
// @Summary Fetch fixtures and highlights now
// @Tags fixtures
// @Produce json
// @Success 200 {object} browse.RefreshResult "fetched"
// @Success 202 {object} browse.RefreshResult "a fetch was already running"
// @Router /fixtures/refresh [post]
func (h *handlers) refresh(r *stdhttp.Request) (any, error) {
	return browse.Refresh(r.Context(), h.feed), nil
}
