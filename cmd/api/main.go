package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MariusVasileMaftei/python-weather-backend/configs"
	"github.com/MariusVasileMaftei/python-weather-backend/internal/infra/metrics"
	"github.com/MariusVasileMaftei/python-weather-backend/internal/infra/web"
	"github.com/MariusVasileMaftei/python-weather-backend/internal/provider"
	"github.com/MariusVasileMaftei/python-weather-backend/internal/provider/openweathermap"
	"github.com/MariusVasileMaftei/python-weather-backend/internal/provider/weatherapi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

const serviceName = "weather-api"

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := configs.LoadConfig(".")
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	shutdownTracing := setTracing(cfg.ZipkinURL, logger)

	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	var prov provider.Provider
	switch cfg.WeatherProvider {
	case "openweathermap":
		prov = openweathermap.New(cfg.WeatherAPIKey, &http.Client{Timeout: timeout})
	default:
		prov = weatherapi.New(cfg.WeatherAPIKey, cfg.WeatherBaseURL, timeout)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	server := web.NewServer(otel.Tracer(serviceName), logger, prov, cfg.WeatherProvider, m, registry)
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: server.CreateServer(),
	}

	go func() {
		logger.Infof("listening on port %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("shutdown error: %v", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Errorf("tracing shutdown error: %v", err)
	}
}

func setTracing(zipkinURL string, logger *logrus.Logger) func(context.Context) error {
	if zipkinURL == "" {
		return func(context.Context) error { return nil }
	}
	exporter, err := zipkin.New(zipkinURL)
	if err != nil {
		logger.Fatalf("fail to create Zipkin exporter: %v", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp.Shutdown
}
