package vo

import (
	"errors"
	"strconv"
)

const (
	MinForecastDays     = 1
	MaxForecastDays     = 10
	DefaultForecastDays = 1
)

type ForecastDays struct {
	value int
}

var ErrInvalidForecastDays = errors.New("days must be between 1 and 10")

// NewForecastDays parses the raw days query parameter, an empty value
// meaning the default of one day.
func NewForecastDays(raw string) (ForecastDays, error) {
	if raw == "" {
		return ForecastDays{value: DefaultForecastDays}, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return ForecastDays{}, ErrInvalidForecastDays
	}
	if days < MinForecastDays || days > MaxForecastDays {
		return ForecastDays{}, ErrInvalidForecastDays
	}
	return ForecastDays{value: days}, nil
}

func (d ForecastDays) Value() int {
	return d.value
}
