package dto

import "encoding/json"

// WeatherOutput is the reshaped body returned to the frontend.
type WeatherOutput struct {
	City         string              `json:"city"`
	Country      string              `json:"country"`
	TemperatureC float64             `json:"temperature_C"`
	Conditions   string              `json:"conditions"`
	WindKPH      float64             `json:"wind_kph"`
	WindMPH      float64             `json:"wind_mph"`
	Pollen       json.RawMessage     `json:"pollen"`
	ForecastDays []ForecastDayOutput `json:"forecast_days"`
}

type ForecastDayOutput struct {
	Date       string  `json:"date"`
	MaxTempC   float64 `json:"max_temp_C"`
	MinTempC   float64 `json:"min_temp_C"`
	Conditions string  `json:"conditions"`
}
