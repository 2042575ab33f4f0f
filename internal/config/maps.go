package config

type MapsConfig struct {
	Provider   string            `yaml:"provider"`
	GoogleMaps *GoogleMapsConfig `yaml:"google_maps"`
	Mapbox     *MapboxConfig     `yaml:"mapbox"`
}

type GoogleMapsConfig struct {
	APIKey string `yaml:"api_key"`
}

type MapboxConfig struct {
	AccessToken string `yaml:"access_token"`
}

func loadMapsConfig() *MapsConfig {
	return &MapsConfig{
		Provider: getEnv("MAPS_PROVIDER", "google"),
		GoogleMaps: &GoogleMapsConfig{
			APIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
		},
		Mapbox: &MapboxConfig{
			AccessToken: getEnv("MAPBOX_ACCESS_TOKEN", ""),
		},
	}
}

// Enabled reports whether the selected provider has credentials.
func (m *MapsConfig) Enabled() bool {
	switch m.Provider {
	case "google":
		return m.GoogleMaps != nil && m.GoogleMaps.APIKey != ""
	case "mapbox":
		return m.Mapbox != nil && m.Mapbox.AccessToken != ""
	}
	return false
}
