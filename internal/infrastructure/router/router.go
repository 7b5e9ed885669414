package router

import (
	"net/http"
	"time"

	"flight-quality-analyzer/internal/interface/api"
	"flight-quality-analyzer/pkg/logger"
	"flight-quality-analyzer/pkg/metrics"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options configures the HTTP surface
type Options struct {
	Version        string
	UpSince        time.Time
	RateLimitRPS   int
	RateLimitBurst int
	// Gatherer backs /metrics; prometheus.DefaultGatherer when nil
	Gatherer prometheus.Gatherer
}

// NewRouter wires the health, metrics and analysis endpoints
func NewRouter(handlers *api.Handlers, m *metrics.Metrics, log logger.Logger, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r.Get("/health", api.HealthCheckHandler(opts.Version, opts.UpSince))
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	limiter := api.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst)

	r.Route("/api", func(r chi.Router) {
		r.Use(api.MetricsMiddleware(m, log))
		r.Use(limiter.Middleware)

		r.Get("/flights", handlers.ListFlights())
		r.Get("/flights/inconsistent-chains", handlers.InconsistentChains())
		r.Get("/analysis", handlers.Analysis())
		r.Get("/analysis/{check}", handlers.AnalysisByCheck())
	})

	log.Info("Router initialized")
	return r
}
