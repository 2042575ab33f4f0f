package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type MapboxProvider struct {
	accessToken string
	httpClient  *http.Client
	baseURL     string
}

func NewMapboxProvider(accessToken string) *MapboxProvider {
	return &MapboxProvider{
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     "https://api.mapbox.com",
	}
}

type mapboxResponse struct {
	Features []struct {
		ID        string    `json:"id"`
		PlaceName string    `json:"place_name"`
		PlaceType []string  `json:"place_type"`
		Center    []float64 `json:"center"`
	} `json:"features"`
}

func (m *MapboxProvider) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	return m.lookup(ctx, url.PathEscape(address))
}

func (m *MapboxProvider) ReverseGeocode(ctx context.Context, lat, lng float64) (*GeocodeResult, error) {
	return m.lookup(ctx, fmt.Sprintf("%f,%f", lng, lat))
}

func (m *MapboxProvider) lookup(ctx context.Context, query string) (*GeocodeResult, error) {
	apiURL := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?limit=1&access_token=%s",
		m.baseURL, query, url.QueryEscape(m.accessToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mapbox API error: %d %s", resp.StatusCode, string(body))
	}

	var mapboxResp mapboxResponse
	if err := json.Unmarshal(body, &mapboxResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	for _, feature := range mapboxResp.Features {
		if len(feature.Center) < 2 {
			continue
		}
		return &GeocodeResult{
			PlaceID: feature.ID,
			Address: feature.PlaceName,
			Coordinates: Location{
				Latitude:  feature.Center[1],
				Longitude: feature.Center[0],
			},
			Types: feature.PlaceType,
		}, nil
	}

	return nil, ErrNoResults
}
