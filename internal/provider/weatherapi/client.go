package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MariusVasileMaftei/python-weather-backend/internal/dto"
	"github.com/MariusVasileMaftei/python-weather-backend/internal/provider"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Client talks to the WeatherAPI forecast endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

func New(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tracer: otel.Tracer("weatherapi"),
	}
}

func (c *Client) Forecast(ctx context.Context, q provider.Query) (*dto.WeatherOutput, error) {
	ctx, span := c.tracer.Start(ctx, "GET-WEATHER")
	defer span.End()

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", q.Location())
	params.Set("days", strconv.Itoa(q.Days))
	params.Set("aqi", q.Options.AQI)
	params.Set("alerts", q.Options.Alerts)
	params.Set("pollen", q.Options.Pollen)
	params.Set("current_fields", q.Options.CurrentFields)
	params.Set("wind100kph", q.Options.Wind100KPH)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/forecast.json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating weather request: %w", err)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling weather provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &provider.UpstreamError{StatusCode: resp.StatusCode}
	}

	var decoded dto.WeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrMalformedResponse, err)
	}
	return reshape(&decoded), nil
}

func reshape(data *dto.WeatherResponse) *dto.WeatherOutput {
	out := &dto.WeatherOutput{
		City:         data.Location.Name,
		Country:      data.Location.Country,
		TemperatureC: data.Current.TempC,
		Conditions:   data.Current.Condition.Text,
		WindKPH:      data.Current.WindKPH,
		WindMPH:      data.Current.WindMPH,
		ForecastDays: make([]dto.ForecastDayOutput, 0, len(data.Forecast.ForecastDay)),
	}
	if len(data.Forecast.ForecastDay) > 0 {
		out.Pollen = data.Forecast.ForecastDay[0].Day.Pollen
	}
	for _, d := range data.Forecast.ForecastDay {
		out.ForecastDays = append(out.ForecastDays, dto.ForecastDayOutput{
			Date:       d.Date,
			MaxTempC:   d.Day.MaxTempC,
			MinTempC:   d.Day.MinTempC,
			Conditions: d.Day.Condition.Text,
		})
	}
	return out
}
