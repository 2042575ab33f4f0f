package maps

import (
	"context"
	"fmt"

	"github.com/sony/gobreaker"

	"rentit/internal/config"
	"rentit/pkg/breaker"
	"rentit/pkg/logger"
)

// BreakerGeocoder guards a Geocoder with a circuit breaker. A missing
// result does not count as a failure.
type BreakerGeocoder struct {
	next Geocoder
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerGeocoder(next Geocoder, log *logger.Logger) *BreakerGeocoder {
	return &BreakerGeocoder{
		next: next,
		cb:   breaker.New("geocoder", log),
	}
}

func (b *BreakerGeocoder) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	return b.run(func() (*GeocodeResult, error) {
		return b.next.Geocode(ctx, address)
	})
}

func (b *BreakerGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (*GeocodeResult, error) {
	return b.run(func() (*GeocodeResult, error) {
		return b.next.ReverseGeocode(ctx, lat, lng)
	})
}

func (b *BreakerGeocoder) run(fn func() (*GeocodeResult, error)) (*GeocodeResult, error) {
	var notFound bool
	result, err := breaker.Execute(b.cb, func() (*GeocodeResult, error) {
		res, err := fn()
		if err == ErrNoResults {
			notFound = true
			return nil, nil
		}
		return res, err
	})
	if err != nil {
		return nil, err
	}
	if notFound {
		return nil, ErrNoResults
	}
	return result, nil
}

// NewGeocoder returns the configured provider wrapped in a breaker, or nil
// when geocoding is not configured.
func NewGeocoder(cfg *config.MapsConfig, log *logger.Logger) (Geocoder, error) {
	if cfg == nil || !cfg.Enabled() {
		return nil, nil
	}

	var provider Geocoder
	switch cfg.Provider {
	case "google":
		google, err := NewGoogleMapsProvider(cfg.GoogleMaps.APIKey)
		if err != nil {
			return nil, err
		}
		provider = google
	case "mapbox":
		provider = NewMapboxProvider(cfg.Mapbox.AccessToken)
	default:
		return nil, fmt.Errorf("unknown maps provider: %s", cfg.Provider)
	}

	return NewBreakerGeocoder(provider, log), nil
}
