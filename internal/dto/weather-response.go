package dto

import "encoding/json"

// WeatherResponse mirrors the subset of the WeatherAPI forecast.json body
// this service reads.
type WeatherResponse struct {
	Location LocationInfo `json:"location"`
	Current  CurrentInfo  `json:"current"`
	Forecast ForecastInfo `json:"forecast"`
}

type LocationInfo struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

type CurrentInfo struct {
	TempC     float64       `json:"temp_c"`
	TempF     float64       `json:"temp_f"`
	Condition ConditionInfo `json:"condition"`
	WindKPH   float64       `json:"wind_kph"`
	WindMPH   float64       `json:"wind_mph"`
	Humidity  int           `json:"humidity"`
}

type ConditionInfo struct {
	Text string `json:"text"`
}

type ForecastInfo struct {
	ForecastDay []ForecastDayInfo `json:"forecastday"`
}

type ForecastDayInfo struct {
	Date string  `json:"date"`
	Day  DayInfo `json:"day"`
}

type DayInfo struct {
	MaxTempC  float64         `json:"maxtemp_c"`
	MinTempC  float64         `json:"mintemp_c"`
	Condition ConditionInfo   `json:"condition"`
	Pollen    json.RawMessage `json:"pollen,omitempty"`
}
