// Package http provides meta endpoints
package http

import (
	"net/http"
	"time"

	"oasis/internal/core/version"
	"oasis/internal/modkit/httpkit"
	fdom "oasis/internal/services/feeds/domain"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time

	// Health is optional; without it readiness reports no schedulers
	Health fdom.HealthPort
	Now    func() time.Time
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	h := &handlers{deps: d}

	// mount routes
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"oasis-api"`
	Started string `json:"started"  example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"      example:"2025-09-03T13:05:00Z"`
}

// Readiness summaries
const (
	ReadyOK       = "ok"
	ReadyDegraded = "degraded"
	ReadyFail     = "fail"
)

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string                `json:"status" example:"ok"` // ok degraded fail
	Checks []fdom.SchedulerState `json:"checks"`
	Now    string                `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"oasis-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 type HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     h.deps.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe with one check per feed scheduler
// @Tags Meta
// @Produce json
// @Success 200 type ReadyResponse ok
// @Failure 503 type ReadyResponse "no feed holds data"
// @Router /meta/ready [get]
func (h *handlers) ready(_ *http.Request) (any, error) {
	now := h.deps.Now()
	checks := []fdom.SchedulerState{}
	if h.deps.Health != nil {
		checks = h.deps.Health.States(now)
	}

	resp := ReadyResponse{Status: overall(checks), Checks: checks, Now: now.UTC().Format(time.RFC3339)}
	if resp.Status == ReadyFail {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: resp}, nil
	}
	return resp, nil
}

// overall is ok when every scheduler is ok, fail when schedulers exist and none is serving data,
// degraded otherwise
func overall(checks []fdom.SchedulerState) string {
	ok, serving := 0, 0
	for _, c := range checks {
		switch c.State {
		case fdom.StateOK:
			ok++
			serving++
		case fdom.StateStale:
			serving++
		}
	}
	switch {
	case ok == len(checks):
		return ReadyOK
	case serving == 0:
		return ReadyFail
	default:
		return ReadyDegraded
	}
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 type version.BuildInfo ok
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 type ServiceResponse ok
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := h.deps.Now().Sub(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}
