package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/MariusVasileMaftei/python-weather-backend/internal/provider"
	"github.com/MariusVasileMaftei/python-weather-backend/internal/vo"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// GET /weather/{city}
func (we *Webserver) getWeatherHandler(w http.ResponseWriter, r *http.Request) {
	carrier := propagation.HeaderCarrier(r.Header)
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), carrier)

	rawCity := chi.URLParam(r, "city")
	if unescaped, err := url.PathUnescape(rawCity); err == nil {
		rawCity = unescaped
	}
	city, err := vo.NewCity(rawCity)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid city")
		return
	}
	days, err := vo.NewForecastDays(r.URL.Query().Get("days"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	we.respond(ctx, w, provider.Query{
		City:    city.Value(),
		Days:    days.Value(),
		Options: queryOptions(r),
	})
}

// GET /weather/coords?lat=&lon=
func (we *Webserver) getWeatherByCoordsHandler(w http.ResponseWriter, r *http.Request) {
	carrier := propagation.HeaderCarrier(r.Header)
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), carrier)

	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid latitude")
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid longitude")
		return
	}
	coords, err := vo.NewCoordinates(lat, lon)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	days, err := vo.NewForecastDays(r.URL.Query().Get("days"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	we.respond(ctx, w, provider.Query{
		Coords:  &coords,
		Days:    days.Value(),
		Options: queryOptions(r),
	})
}

func (we *Webserver) respond(ctx context.Context, w http.ResponseWriter, q provider.Query) {
	ctx, span := we.OTELTracer.Start(ctx, "get-weather")
	defer span.End()

	start := time.Now()
	out, err := we.provider.Forecast(ctx, q)
	elapsed := time.Since(start)
	if err != nil {
		we.metrics.ObserveProviderRequest(we.providerName, outcome(err), elapsed)
		we.logger.WithError(err).WithField("q", q.Location()).Error("weather lookup failed")

		var upstream *provider.UpstreamError
		switch {
		case errors.As(err, &upstream):
			writeError(w, upstream.StatusCode, "error fetching data from weather provider")
		case errors.Is(err, provider.ErrMalformedResponse):
			writeError(w, http.StatusInternalServerError, "error decoding weather provider response")
		default:
			writeError(w, http.StatusBadGateway, "weather provider unreachable")
		}
		return
	}
	we.metrics.ObserveProviderRequest(we.providerName, "success", elapsed)
	writeJSON(w, http.StatusOK, out)
}

func outcome(err error) string {
	var upstream *provider.UpstreamError
	switch {
	case errors.As(err, &upstream):
		return "upstream_error"
	case errors.Is(err, provider.ErrMalformedResponse):
		return "decode_error"
	default:
		return "network_error"
	}
}

func queryOptions(r *http.Request) provider.Options {
	return provider.Options{
		AQI:           queryDefault(r, "aqi", "yes"),
		Alerts:        queryDefault(r, "alerts", "yes"),
		Pollen:        queryDefault(r, "pollen", "yes"),
		CurrentFields: queryDefault(r, "current_fields", "temp_c,wind_mph"),
		Wind100KPH:    queryDefault(r, "wind100kph", "yes"),
	}
}

func queryDefault(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}
