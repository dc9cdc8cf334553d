package vo

import (
	"errors"
	"strings"
)

type City struct {
	value string
}

var ErrInvalidCity = errors.New("invalid city")

func NewCity(value string) (City, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return City{}, ErrInvalidCity
	}
	return City{value: trimmed}, nil
}

func (c City) Value() string {
	return c.value
}
