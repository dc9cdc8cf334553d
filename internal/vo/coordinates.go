package vo

import (
	"errors"
	"strconv"
)

type Coordinates struct {
	lat float64
	lon float64
}

var (
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
)

func NewCoordinates(lat, lon float64) (Coordinates, error) {
	if lat < -90 || lat > 90 {
		return Coordinates{}, ErrInvalidLatitude
	}
	if lon < -180 || lon > 180 {
		return Coordinates{}, ErrInvalidLongitude
	}
	return Coordinates{lat: lat, lon: lon}, nil
}

func (c Coordinates) Latitude() float64 {
	return c.lat
}

func (c Coordinates) Longitude() float64 {
	return c.lon
}

// String renders the pair the way the weather provider expects its q
// parameter, e.g. "48.8567,2.3508".
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.lon, 'f', -1, 64)
}
