package openweathermap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/MariusVasileMaftei/python-weather-backend/internal/dto"
	"github.com/MariusVasileMaftei/python-weather-backend/internal/provider"
	owm "github.com/briandowns/openweathermap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	metricUnits = "C"
	language    = "en"

	// cnt on the 5-day endpoint counts 3-hour timestamps, not days;
	// 40 covers the full window, reshape folds and truncates afterwards.
	forecastCnt = 40

	msToKPH = 3.6
	msToMPH = 2.236936
)

// Client serves weather lookups from OpenWeatherMap. The library performs
// two calls per lookup: current conditions and the 5-day forecast.
type Client struct {
	apiKey     string
	httpClient *http.Client
	tracer     trace.Tracer
}

func New(apiKey string, httpClient *http.Client) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: httpClient,
		tracer:     otel.Tracer("openweathermap"),
	}
}

func (c *Client) Forecast(ctx context.Context, q provider.Query) (*dto.WeatherOutput, error) {
	_, span := c.tracer.Start(ctx, "GET-WEATHER")
	defer span.End()

	current, err := owm.NewCurrent(metricUnits, language, c.apiKey, owm.WithHttpClient(c.httpClient))
	if err != nil {
		return nil, fmt.Errorf("creating current weather client: %w", err)
	}
	if q.Coords != nil {
		err = current.CurrentByCoordinates(&owm.Coordinates{
			Latitude:  q.Coords.Latitude(),
			Longitude: q.Coords.Longitude(),
		})
	} else {
		err = current.CurrentByName(q.City)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching current conditions: %w", err)
	}

	fc, err := owm.NewForecast("5", metricUnits, language, c.apiKey, owm.WithHttpClient(c.httpClient))
	if err != nil {
		return nil, fmt.Errorf("creating forecast client: %w", err)
	}
	if q.Coords != nil {
		err = fc.DailyByCoordinates(&owm.Coordinates{
			Latitude:  q.Coords.Latitude(),
			Longitude: q.Coords.Longitude(),
		}, forecastCnt)
	} else {
		err = fc.DailyByName(q.City, forecastCnt)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching forecast: %w", err)
	}
	fiveDay, ok := fc.ForecastWeatherJson.(*owm.Forecast5WeatherData)
	if !ok {
		return nil, provider.ErrMalformedResponse
	}

	return reshape(current, fiveDay, q.Days), nil
}

// reshape normalizes the two OpenWeatherMap bodies into the same output
// shape the WeatherAPI client produces. The 5-day forecast arrives in
// 3-hour steps, so entries are folded into per-day min/max temperatures.
func reshape(current *owm.CurrentWeatherData, fiveDay *owm.Forecast5WeatherData, days int) *dto.WeatherOutput {
	out := &dto.WeatherOutput{
		City:         current.Name,
		Country:      current.Sys.Country,
		TemperatureC: current.Main.Temp,
		WindKPH:      current.Wind.Speed * msToKPH,
		WindMPH:      current.Wind.Speed * msToMPH,
	}
	if len(current.Weather) > 0 {
		out.Conditions = current.Weather[0].Description
	}

	type dayAgg struct {
		min        float64
		max        float64
		conditions string
	}
	var order []string
	daily := map[string]*dayAgg{}
	for _, item := range fiveDay.List {
		date := time.Unix(int64(item.Dt), 0).UTC().Format("2006-01-02")
		agg, seen := daily[date]
		if !seen {
			agg = &dayAgg{min: item.Main.TempMin, max: item.Main.TempMax}
			if len(item.Weather) > 0 {
				agg.conditions = item.Weather[0].Description
			}
			daily[date] = agg
			order = append(order, date)
			continue
		}
		if item.Main.TempMin < agg.min {
			agg.min = item.Main.TempMin
		}
		if item.Main.TempMax > agg.max {
			agg.max = item.Main.TempMax
		}
	}
	if len(order) > days {
		order = order[:days]
	}
	out.ForecastDays = make([]dto.ForecastDayOutput, 0, len(order))
	for _, date := range order {
		agg := daily[date]
		out.ForecastDays = append(out.ForecastDays, dto.ForecastDayOutput{
			Date:       date,
			MaxTempC:   agg.max,
			MinTempC:   agg.min,
			Conditions: agg.conditions,
		})
	}
	return out
}
