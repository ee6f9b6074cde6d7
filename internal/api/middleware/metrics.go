package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/xylexgaming/xgi-website/internal/metrics"
)

// Metrics records request counts and latencies labelled by route pattern, so
// search terms and slugs never become label values.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.RequestInProgress.Inc()
		defer metrics.RequestInProgress.Dec()

		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := strconv.Itoa(statusOf(ww))

		metrics.RequestCounter.WithLabelValues(status, r.Method, route).Inc()
		metrics.RequestDuration.WithLabelValues(status, r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func statusOf(ww chiMiddleware.WrapResponseWriter) int {
	if ww.Status() == 0 {
		return http.StatusOK
	}
	return ww.Status()
}
