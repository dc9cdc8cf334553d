package openweathermap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/MariusVasileMaftei/python-weather-backend/internal/provider"
	"github.com/MariusVasileMaftei/python-weather-backend/internal/vo"
	owm "github.com/briandowns/openweathermap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// the library rejects keys that are not 32 characters long
const testAPIKey = "0123456789abcdef0123456789abcdef"

func ts(day int, hour int) int {
	return int(time.Date(2026, 8, day, hour, 0, 0, 0, time.UTC).Unix())
}

const currentBody = `{
	"name": "Paris",
	"sys": {"country": "FR"},
	"main": {"temp": 18.5},
	"wind": {"speed": 5.0},
	"weather": [{"description": "scattered clouds"}]
}`

func forecastBody() string {
	return fmt.Sprintf(`{
		"cod": "200",
		"list": [
			{"dt": %d, "main": {"temp_min": 12, "temp_max": 18}, "weather": [{"description": "light rain"}]},
			{"dt": %d, "main": {"temp_min": 14, "temp_max": 21}},
			{"dt": %d, "main": {"temp_min": 11, "temp_max": 19}, "weather": [{"description": "clear sky"}]},
			{"dt": %d, "main": {"temp_min": 10, "temp_max": 16}}
		],
		"city": {"name": "Paris", "country": "FR"}
	}`, ts(29, 9), ts(29, 15), ts(30, 12), ts(31, 12))
}

// stubTransport answers the library's current and forecast calls with
// canned bodies and records each request.
type stubTransport struct {
	requests []*http.Request
}

func (s *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.requests = append(s.requests, req)
	body := currentBody
	if strings.Contains(req.URL.Path, "forecast") {
		body = forecastBody()
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}, nil
}

func (s *stubTransport) forecastRequest(t *testing.T) *http.Request {
	t.Helper()
	for _, req := range s.requests {
		if strings.Contains(req.URL.Path, "forecast") {
			return req
		}
	}
	t.Fatal("no forecast request captured")
	return nil
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestForecast_RequestsFullWindowAndTruncates(t *testing.T) {
	transport := &stubTransport{}
	client := New(testAPIKey, &http.Client{Transport: transport})

	out, err := client.Forecast(context.Background(), provider.Query{City: "Paris", Days: 3})
	require.NoError(t, err)

	params := transport.forecastRequest(t).URL.Query()
	assert.Equal(t, "Paris", params.Get("q"))
	assert.Equal(t, testAPIKey, params.Get("appid"))
	// cnt counts 3-hour timestamps; a cnt of 3 covers 9 hours, one day
	assert.Equal(t, "40", params.Get("cnt"))

	assert.Equal(t, "Paris", out.City)
	assert.Equal(t, "FR", out.Country)
	assert.Equal(t, 18.5, out.TemperatureC)
	require.Len(t, out.ForecastDays, 3)
	assert.Equal(t, "2026-08-29", out.ForecastDays[0].Date)
	assert.Equal(t, "2026-08-30", out.ForecastDays[1].Date)
	assert.Equal(t, "2026-08-31", out.ForecastDays[2].Date)
}

func TestForecast_ByCoordinates(t *testing.T) {
	transport := &stubTransport{}
	client := New(testAPIKey, &http.Client{Transport: transport})

	coords, err := vo.NewCoordinates(48.8567, 2.3508)
	require.NoError(t, err)

	_, err = client.Forecast(context.Background(), provider.Query{Coords: &coords, Days: 1})
	require.NoError(t, err)

	params := transport.forecastRequest(t).URL.Query()
	lat, err := strconv.ParseFloat(params.Get("lat"), 64)
	require.NoError(t, err)
	lon, err := strconv.ParseFloat(params.Get("lon"), 64)
	require.NoError(t, err)
	assert.InDelta(t, 48.8567, lat, 0.0001)
	assert.InDelta(t, 2.3508, lon, 0.0001)
}

func TestForecast_NetworkFailure(t *testing.T) {
	client := New(testAPIKey, &http.Client{Transport: failingTransport{}})

	_, err := client.Forecast(context.Background(), provider.Query{City: "Paris", Days: 1})
	require.Error(t, err)

	var upstream *provider.UpstreamError
	assert.False(t, errors.As(err, &upstream))
}

func TestReshape(t *testing.T) {
	current := &owm.CurrentWeatherData{
		Name: "London",
		Sys:  owm.Sys{Country: "GB"},
		Main: owm.Main{Temp: 17.2},
		Wind: owm.Wind{Speed: 5.0},
		Weather: []owm.Weather{
			{Description: "scattered clouds"},
		},
	}
	fiveDay := &owm.Forecast5WeatherData{
		List: []owm.Forecast5WeatherList{
			{Dt: ts(29, 9), Main: owm.Main{TempMin: 12, TempMax: 18}, Weather: []owm.Weather{{Description: "light rain"}}},
			{Dt: ts(29, 15), Main: owm.Main{TempMin: 14, TempMax: 21}},
			{Dt: ts(30, 12), Main: owm.Main{TempMin: 11, TempMax: 19}, Weather: []owm.Weather{{Description: "clear sky"}}},
			{Dt: ts(31, 12), Main: owm.Main{TempMin: 10, TempMax: 16}},
		},
	}

	out := reshape(current, fiveDay, 2)

	assert.Equal(t, "London", out.City)
	assert.Equal(t, "GB", out.Country)
	assert.Equal(t, 17.2, out.TemperatureC)
	assert.Equal(t, "scattered clouds", out.Conditions)
	assert.InDelta(t, 18.0, out.WindKPH, 0.001)
	assert.InDelta(t, 11.18468, out.WindMPH, 0.001)

	// days beyond the requested count are truncated
	require.Len(t, out.ForecastDays, 2)
	assert.Equal(t, "2026-08-29", out.ForecastDays[0].Date)
	assert.Equal(t, 12.0, out.ForecastDays[0].MinTempC)
	assert.Equal(t, 21.0, out.ForecastDays[0].MaxTempC)
	assert.Equal(t, "light rain", out.ForecastDays[0].Conditions)
	assert.Equal(t, "2026-08-30", out.ForecastDays[1].Date)
	assert.Equal(t, "clear sky", out.ForecastDays[1].Conditions)
}

func TestReshape_NoWeatherBlocks(t *testing.T) {
	current := &owm.CurrentWeatherData{Name: "London"}
	out := reshape(current, &owm.Forecast5WeatherData{}, 1)

	assert.Empty(t, out.Conditions)
	assert.Empty(t, out.ForecastDays)
	assert.Nil(t, out.Pollen)
}
