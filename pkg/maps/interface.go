package maps

import (
	"context"
	"errors"
)

// ErrNoResults is returned when the provider finds nothing for the query.
var ErrNoResults = errors.New("maps: no results")

type Geocoder interface {
	Geocode(ctx context.Context, address string) (*GeocodeResult, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (*GeocodeResult, error)
}

// GeocodeResult is the best match for a query.
type GeocodeResult struct {
	PlaceID     string   `json:"place_id"`
	Address     string   `json:"formatted_address"`
	Coordinates Location `json:"geometry"`
	Types       []string `json:"types"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
