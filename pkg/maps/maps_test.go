package maps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"rentit/internal/config"
	"rentit/pkg/breaker"
	"rentit/pkg/logger"
)

func newTestMapbox(t *testing.T, handler http.HandlerFunc) *MapboxProvider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := NewMapboxProvider("tok")
	p.baseURL = srv.URL
	return p
}

func TestMapboxGeocode(t *testing.T) {
	p := newTestMapbox(t, func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.URL.Path, "/geocoding/v5/mapbox.places/"))
		require.Equal(t, "tok", r.URL.Query().Get("access_token"))
		w.Write([]byte(`{"features":[{"id":"place.1","place_name":"London, UK","place_type":["place"],"center":[-0.1276,51.5072]}]}`))
	})

	res, err := p.Geocode(context.Background(), "London")
	require.NoError(t, err)
	require.Equal(t, "London, UK", res.Address)
	require.InDelta(t, 51.5072, res.Coordinates.Latitude, 1e-9)
	require.InDelta(t, -0.1276, res.Coordinates.Longitude, 1e-9)
}

func TestMapboxNoResults(t *testing.T) {
	p := newTestMapbox(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[]}`))
	})

	_, err := p.ReverseGeocode(context.Background(), 1, 2)
	require.ErrorIs(t, err, ErrNoResults)
}

func TestMapboxHTTPError(t *testing.T) {
	p := newTestMapbox(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	})

	_, err := p.Geocode(context.Background(), "x")
	require.Error(t, err)
}

type stubGeocoder struct {
	geocodeFn func(address string) (*GeocodeResult, error)
}

func (s *stubGeocoder) Geocode(_ context.Context, address string) (*GeocodeResult, error) {
	return s.geocodeFn(address)
}

func (s *stubGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (*GeocodeResult, error) {
	return nil, ErrNoResults
}

var _ Geocoder = (*stubGeocoder)(nil)

func TestBreakerGeocoderNoResultsDoesNotTrip(t *testing.T) {
	g := NewBreakerGeocoder(&stubGeocoder{geocodeFn: func(string) (*GeocodeResult, error) {
		return nil, ErrNoResults
	}}, logger.NewNop())

	for i := 0; i < 5; i++ {
		_, err := g.Geocode(context.Background(), "nowhere")
		require.ErrorIs(t, err, ErrNoResults)
	}
}

func TestBreakerGeocoderOpens(t *testing.T) {
	g := NewBreakerGeocoder(&stubGeocoder{geocodeFn: func(string) (*GeocodeResult, error) {
		return nil, errors.New("timeout")
	}}, logger.NewNop())

	for i := 0; i < 3; i++ {
		_, err := g.Geocode(context.Background(), "x")
		require.Error(t, err)
	}

	_, err := g.Geocode(context.Background(), "x")
	require.ErrorIs(t, err, breaker.ErrUnavailable)
}

func TestNewGeocoderDisabled(t *testing.T) {
	g, err := NewGeocoder(&config.MapsConfig{Provider: "google", GoogleMaps: &config.GoogleMapsConfig{}}, logger.NewNop())
	require.NoError(t, err)
	require.Nil(t, g)

	g, err = NewGeocoder(&config.MapsConfig{Provider: "mapbox", Mapbox: &config.MapboxConfig{AccessToken: "t"}}, logger.NewNop())
	require.NoError(t, err)
	require.NotNil(t, g)
}
