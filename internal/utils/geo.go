package utils

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
)

var ErrInvalidCoordinates = errors.New("invalid coordinates")

func IsValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// ParseCoordinates decodes a "[lng,lat]" JSON array as sent by multipart forms.
func ParseCoordinates(raw string) ([]float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidCoordinates
	}

	var coords []float64
	if err := json.Unmarshal([]byte(raw), &coords); err != nil {
		return nil, ErrInvalidCoordinates
	}

	if len(coords) != 2 || !IsValidCoordinates(coords[1], coords[0]) {
		return nil, ErrInvalidCoordinates
	}

	return coords, nil
}

// CalculateDistance returns the haversine distance in kilometers.
func CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKM * c
}

func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
