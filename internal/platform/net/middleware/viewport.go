package middleware

import (
	"net/http"
	"strconv"
	"strings"

	pnet "oasis/internal/platform/net"
)

// Client hint headers carrying the layout viewport width in CSS pixels
const (
	HeaderViewportWidthCH     = "Sec-CH-Viewport-Width"
	HeaderViewportWidthLegacy = "Viewport-Width"
	HeaderViewportWidth       = "X-Viewport-Width"
)

// maxViewport caps silly values; wider screens all get the wide window anyway
const maxViewport = 16384

// Viewport reads the viewport width client hint (if any) onto the request context
// and advertises the hint via Accept-CH so browsers send it on later requests
func Viewport() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Accept-CH", HeaderViewportWidthCH)
			w.Header().Add("Vary", HeaderViewportWidthCH)
			if width := viewportWidth(r.Header); width > 0 {
				r = r.WithContext(pnet.WithViewport(r.Context(), width))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func viewportWidth(h http.Header) int {
	for _, k := range []string{HeaderViewportWidthCH, HeaderViewportWidthLegacy, HeaderViewportWidth} {
		v := strings.TrimSpace(h.Get(k))
		if v == "" {
			continue
		}
		// hints may be fractional ("412.5")
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			continue
		}
		return int(min(f, maxViewport))
	}
	return 0
}
