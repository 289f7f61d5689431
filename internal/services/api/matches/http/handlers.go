// Package http provides http transport for matches
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"oasis/internal/core/record"
	"oasis/internal/modkit/httpkit"
	"oasis/internal/services/api/browse"
	"oasis/internal/services/api/matches/domain"
	svc "oasis/internal/services/api/matches/service"
	fdom "oasis/internal/services/feeds/domain"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service, feed fdom.Feed[[]record.Record]) {
	h := &handlers{svc: s, feed: feed}
	httpkit.Get(r, "/groups", h.groups)
	httpkit.PostJSON[domain.BrowseInput](r, "/browse", h.browse)
	httpkit.Post(r, "/refresh", h.refresh)
	httpkit.Get(r, "/{id}", h.detail)
}

type handlers struct {
	svc  svc.Service
	feed fdom.Feed[[]record.Record]
}

// swagger:route GET /matches/groups Matches groups
// @Summary Matches grouped by league and status
// @Tags matches
// @Produce json
// @Success 200 {object} domain.GroupsView "ok"
// @Success 304 "not modified"
// @Failure 503 {object} httpkit.Envelope "feed disabled"
// @Router /matches/groups [get]
func (h *handlers) groups(r *stdhttp.Request) (any, error) {
	view, err := h.svc.Groups(r.Context())
	if err != nil {
		return nil, err
	}
	return httpkit.Versioned(view, browse.ETag(fdom.Matches, view.Version)), nil
}

// swagger:route POST /matches/browse Matches browse
// @Summary Page through one section of matches
// @Tags matches
// @Accept json
// @Produce json
// @Param payload body domain.BrowseInput true "Browse"
// @Success 200 {object} browse.Result[browse.Match] "ok"
// @Failure 400 {object} httpkit.Envelope "bad cursor"
// @Router /matches/browse [post]
func (h *handlers) browse(r *stdhttp.Request, in domain.BrowseInput) (any, error) {
	return h.svc.Browse(r.Context(), in)
}

// swagger:route POST /matches/refresh Matches refresh
// @Summary Fetch live scores now
// @Tags matches
// @Produce json
// @Success 200 {object} browse.RefreshResult "fetched"
// @Success 202 {object} browse.RefreshResult "a fetch was already running"
// @Router /matches/refresh [post]
func (h *handlers) refresh(r *stdhttp.Request) (any, error) {
	return browse.Refresh(r.Context(), h.feed), nil
}

// swagger:route GET /matches/{id} Matches detail
// @Summary Match detail with events
// @Tags matches
// @Produce json
// @Param id path string true "Match id"
// @Success 200 {object} livescore.Detail "ok"
// @Failure 502 {object} httpkit.Envelope "upstream error"
// @Router /matches/{id} [get]
func (h *handlers) detail(r *stdhttp.Request) (any, error) {
	return h.svc.Detail(r.Context(), chi.URLParam(r, "id"))
}
