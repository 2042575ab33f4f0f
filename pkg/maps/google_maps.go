package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

type GoogleMapsProvider struct {
	client *maps.Client
}

func NewGoogleMapsProvider(apiKey string) (*GoogleMapsProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return &GoogleMapsProvider{
		client: client,
	}, nil
}

func (g *GoogleMapsProvider) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	resp, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return nil, fmt.Errorf("geocoding failed: %w", err)
	}

	return firstGoogleResult(resp)
}

func (g *GoogleMapsProvider) ReverseGeocode(ctx context.Context, lat, lng float64) (*GeocodeResult, error) {
	resp, err := g.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lng},
	})
	if err != nil {
		return nil, fmt.Errorf("reverse geocoding failed: %w", err)
	}

	return firstGoogleResult(resp)
}

func firstGoogleResult(resp []maps.GeocodingResult) (*GeocodeResult, error) {
	if len(resp) == 0 {
		return nil, ErrNoResults
	}

	result := resp[0]
	return &GeocodeResult{
		PlaceID: result.PlaceID,
		Address: result.FormattedAddress,
		Coordinates: Location{
			Latitude:  result.Geometry.Location.Lat,
			Longitude: result.Geometry.Location.Lng,
		},
		Types: result.Types,
	}, nil
}
