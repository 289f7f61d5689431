package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"oasis/internal/platform/net/middleware"
)

// CommonStack returns a baseline per module middleware slice
// compose with metrics or extra CORS origins in main as needed
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// snapshots carry ETags; clients may keep them but must revalidate
		middleware.Revalidate(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 750 * time.Millisecond}),

		// layout hint for windowed browsing
		middleware.Viewport(),

		// cross-origin (tweak config in main if needed)
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}
