package web

import (
	"net/http"
	"time"

	"github.com/MariusVasileMaftei/python-weather-backend/internal/infra/metrics"
	"github.com/MariusVasileMaftei/python-weather-backend/internal/provider"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

type Webserver struct {
	OTELTracer   trace.Tracer
	logger       *logrus.Logger
	provider     provider.Provider
	providerName string
	metrics      *metrics.Metrics
	registry     *prometheus.Registry
}

func NewServer(otelTracer trace.Tracer, logger *logrus.Logger, prov provider.Provider, providerName string, m *metrics.Metrics, registry *prometheus.Registry) *Webserver {
	return &Webserver{
		OTELTracer:   otelTracer,
		logger:       logger,
		provider:     prov,
		providerName: providerName,
		metrics:      m,
		registry:     registry,
	}
}

func (we *Webserver) CreateServer() *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(we.requestLogger)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	router.Get("/health", we.healthHandler)
	router.Handle("/metrics", promhttp.HandlerFor(we.registry, promhttp.HandlerOpts{}))
	// Static route wins over the {city} wildcard in chi.
	router.Get("/weather/coords", we.getWeatherByCoordsHandler)
	router.Get("/weather/{city}", we.getWeatherHandler)
	return router
}

func (we *Webserver) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		we.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  middleware.GetReqID(r.Context()),
		}).Info("request completed")
	})
}

func (we *Webserver) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
