package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/MariusVasileMaftei/python-weather-backend/internal/dto"
	"github.com/MariusVasileMaftei/python-weather-backend/internal/vo"
)

// Provider abstracts a weather data source (WeatherAPI, OpenWeatherMap).
type Provider interface {
	Forecast(ctx context.Context, q Query) (*dto.WeatherOutput, error)
}

// Query describes one weather lookup. Either City or Coords is set.
type Query struct {
	City    string
	Coords  *vo.Coordinates
	Days    int
	Options Options
}

// Options are passed through to the provider untouched.
type Options struct {
	AQI           string
	Alerts        string
	Pollen        string
	CurrentFields string
	Wind100KPH    string
}

// Location renders the query's q parameter: the city name or "lat,lon".
func (q Query) Location() string {
	if q.Coords != nil {
		return q.Coords.String()
	}
	return q.City
}

// ErrMalformedResponse marks a provider reply that could not be decoded.
var ErrMalformedResponse = errors.New("malformed weather provider response")

// UpstreamError carries a non-200 status returned by the provider so the
// handler can propagate it.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("weather provider returned status %d", e.StatusCode)
}
