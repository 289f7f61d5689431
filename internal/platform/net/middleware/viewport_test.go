package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	pnet "oasis/internal/platform/net"
	"oasis/internal/platform/net/middleware"
)

func TestViewport_ReadsHints(t *testing.T) {
	cases := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{"client hint", middleware.HeaderViewportWidthCH, "390", 390},
		{"legacy hint fractional", middleware.HeaderViewportWidthLegacy, "412.7", 412},
		{"custom header", middleware.HeaderViewportWidth, "1280", 1280},
		{"garbage ignored", middleware.HeaderViewportWidth, "wide", 0},
		{"negative ignored", middleware.HeaderViewportWidthCH, "-3", 0},
		{"huge capped", middleware.HeaderViewportWidthCH, "99999999", 16384},
		{"absent", "", "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := -1
			h := middleware.Viewport()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = pnet.ViewportWidth(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if got != tc.want {
				t.Fatalf("width = %d, want %d", got, tc.want)
			}
			if rr.Header().Get("Accept-CH") != middleware.HeaderViewportWidthCH {
				t.Fatalf("missing Accept-CH header")
			}
		})
	}
}

func TestViewport_ClientHintWinsOverCustom(t *testing.T) {
	got := 0
	h := middleware.Viewport()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = pnet.ViewportWidth(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.HeaderViewportWidth, "1920")
	req.Header.Set(middleware.HeaderViewportWidthCH, "360")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != 360 {
		t.Fatalf("width = %d, want 360", got)
	}
}
