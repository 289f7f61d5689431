// Package http provides http transport for news
package http

import (
	stdhttp "net/http"

	"oasis/internal/core/record"
	"oasis/internal/modkit/httpkit"
	"oasis/internal/services/api/browse"
	"oasis/internal/services/api/news/domain"
	svc "oasis/internal/services/api/news/service"
	fdom "oasis/internal/services/feeds/domain"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service, feed fdom.Feed[[]record.Record]) {
	h := &handlers{svc: s, feed: feed}
	httpkit.Get(r, "/", h.list)
	httpkit.PostJSON[domain.BrowseInput](r, "/browse", h.browse)
	httpkit.Post(r, "/refresh", h.refresh)
}

type handlers struct {
	svc  svc.Service
	feed fdom.Feed[[]record.Record]
}

// swagger:route GET /news News list
// @Summary Match news and RSS articles, newest first
// @Tags news
// @Produce json
// @Success 200 {object} domain.View "ok"
// @Success 304 "not modified"
// @Router /news [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	v, err := h.svc.List(r.Context())
	if err != nil {
		return nil, err
	}
	return httpkit.Versioned(v, browse.ETag(fdom.News, v.Version)), nil
}

// swagger:route POST /news/browse News browse
// @Summary Page through news
// @Tags news
// @Accept json
// @Produce json
// @Param payload body domain.BrowseInput true "Browse"
// @Success 200 {object} browse.Result[record.Record] "ok"
// @Router /news/browse [post]
func (h *handlers) browse(r *stdhttp.Request, in domain.BrowseInput) (any, error) {
	return h.svc.Browse(r.Context(), in)
}

// swagger:route POST /news/refresh News refresh
// @Summary Fetch news now
// @Tags news
// @Produce json
// @Success 200 {object} browse.RefreshResult "fetched"
// @Success 202 {object} browse.RefreshResult "a fetch was already running"
// @Router /news/refresh [post]
func (h *handlers) refresh(r *stdhttp.Request) (any, error) {
	return browse.Refresh(r.Context(), h.feed), nil
}
