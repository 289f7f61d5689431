// Package http provides http transport for titles
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"oasis/internal/adapters/sources/tmdb"
	"oasis/internal/modkit/httpkit"
	"oasis/internal/services/api/browse"
	"oasis/internal/services/api/titles/domain"
	svc "oasis/internal/services/api/titles/service"
	fdom "oasis/internal/services/feeds/domain"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service, feed fdom.Feed[tmdb.Library]) {
	h := &handlers{svc: s, feed: feed}
	httpkit.Get(r, "/", h.index)
	httpkit.PostJSON[domain.BrowseInput](r, "/browse", h.browse)
	httpkit.Post(r, "/refresh", h.refresh)
	httpkit.Get(r, "/{kind}", h.kind)
}

type handlers struct {
	svc  svc.Service
	feed fdom.Feed[tmdb.Library]
}

// swagger:route GET /titles Titles index
// @Summary Shelves with their sizes
// @Tags titles
// @Produce json
// @Success 200 {object} domain.Index "ok"
// @Router /titles [get]
func (h *handlers) index(r *stdhttp.Request) (any, error) {
	v, err := h.svc.Index(r.Context())
	if err != nil {
		return nil, err
	}
	return httpkit.Versioned(v, browse.ETag(fdom.Titles, v.Version)), nil
}

// swagger:route GET /titles/{kind} Titles shelf
// @Summary One shelf, or the genre showcase when kind is genres
// @Tags titles
// @Produce json
// @Param kind path string true "trending-movies, new-movies, trending-series, new-series, top-series or genres"
// @Success 200 {object} domain.ShelfView "shelf"
// @Success 304 "not modified"
// @Failure 404 {object} httpkit.Envelope "unknown kind"
// @Router /titles/{kind} [get]
func (h *handlers) kind(r *stdhttp.Request) (any, error) {
	kind := chi.URLParam(r, "kind")
	if kind == domain.KindGenres {
		v, err := h.svc.Genres(r.Context())
		if err != nil {
			return nil, err
		}
		return httpkit.Versioned(v, browse.ETag(fdom.Titles, v.Version, kind)), nil
	}
	v, err := h.svc.Shelf(r.Context(), kind)
	if err != nil {
		return nil, err
	}
	return httpkit.Versioned(v, browse.ETag(fdom.Titles, v.Version, kind)), nil
}

// swagger:route POST /titles/browse Titles browse
// @Summary Page through a shelf or the genre showcase
// @Tags titles
// @Accept json
// @Produce json
// @Param payload body domain.BrowseInput true "Browse"
// @Success 200 {object} browse.Result[record.Record] "ok"
// @Router /titles/browse [post]
func (h *handlers) browse(r *stdhttp.Request, in domain.BrowseInput) (any, error) {
	return h.svc.Browse(r.Context(), in)
}

// swagger:route POST /titles/refresh Titles refresh
// @Summary Fetch every shelf now
// @Tags titles
// @Produce json
// @Success 200 {object} browse.RefreshResult "fetched"
// @Success 202 {object} browse.RefreshResult "a fetch was already running"
// @Router /titles/refresh [post]
func (h *handlers) refresh(r *stdhttp.Request) (any, error) {
	return browse.Refresh(r.Context(), h.feed), nil
}
