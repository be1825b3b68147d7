package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// routeLabel returns the chi route pattern the request matched, e.g.
// "/api/users/{id}". Labeling by pattern instead of the raw URL path keeps
// the series count bounded: every distinct id would otherwise mint its own
// series. Requests that matched no route share one label.
func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// Middleware records request count, in-flight gauge and duration histogram
// for every request passing through it. Status is recorded as a class (2xx,
// 4xx, ...) and the path as the matched route pattern to keep label
// cardinality down.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		RequestsInFlight.Inc()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		// The route pattern is only known after routing, so both metrics
		// are recorded once the handler returns.
		path := routeLabel(r)
		RequestsTotal.WithLabelValues(r.Method, path).Inc()

		RequestsInFlight.Dec()
		statusClass := fmt.Sprintf("%dxx", rec.status/100)
		RequestDurationSeconds.WithLabelValues(r.Method, path, statusClass).Observe(time.Since(start).Seconds())
	})
}
