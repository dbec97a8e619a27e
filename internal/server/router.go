package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/UnknownOlympus/talos/internal/metrics"
)

// NewRouter builds the chi router with the service routes and middleware.
func NewRouter(
	health *HealthChecker,
	employee *EmployeeHandler,
	reg *prometheus.Registry,
	mtr *metrics.Metrics,
	log *slog.Logger,
) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.RequestID)
	router.Use(requestLogger(log))
	router.Use(requestMetrics(mtr))
	router.Use(chimiddleware.Recoverer)

	router.Get("/", func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, http.StatusOK, map[string]string{
			"message": "Talos employee service is running. Check /health.",
		})
	})

	router.Method(http.MethodGet, "/health", health)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	router.Route("/employees", func(r chi.Router) {
		r.Post("/", employee.Create)
		r.Get("/", employee.List)
		r.Get("/{id}", employee.GetByID)
	})

	return router
}

// requestLogger logs every handled request with its status and duration.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
			start := time.Now()
			wrapped := chimiddleware.NewWrapResponseWriter(writer, req.ProtoMajor)

			next.ServeHTTP(wrapped, req)

			log.InfoContext(req.Context(), "Request handled",
				"method", req.Method,
				"path", req.URL.Path,
				"status", wrapped.Status(),
				"duration", time.Since(start).String(),
				"request_id", chimiddleware.GetReqID(req.Context()),
			)
		})
	}
}

// requestMetrics records request counters and duration histograms per route pattern.
func requestMetrics(mtr *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
			start := time.Now()
			wrapped := chimiddleware.NewWrapResponseWriter(writer, req.ProtoMajor)

			next.ServeHTTP(wrapped, req)

			route := chi.RouteContext(req.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}

			mtr.HTTPRequests.WithLabelValues(route, req.Method, strconv.Itoa(wrapped.Status())).Inc()
			mtr.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		})
	}
}
