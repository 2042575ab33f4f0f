package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 4000, cfg.App.Port)
	require.Equal(t, "e-commerce", cfg.Database.Database)
	require.Equal(t, StorageProviderLocal, cfg.Storage.Provider)
	require.Equal(t, 6, cfg.Storage.MaxImages)
	require.InDelta(t, 0.10, cfg.Order.TaxRate, 1e-9)
	require.Equal(t, 24*time.Hour, cfg.Security.JWTAccessTokenTTL)
	require.False(t, cfg.Payment.StripeEnabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("MONGODB_DB", "rentit")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("LOGIN_LOCKOUT_TIME", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 8081, cfg.App.Port)
	require.Equal(t, "rentit", cfg.Database.Database)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Security.CORSAllowedOrigins)
	require.True(t, cfg.Payment.StripeEnabled())
	require.Equal(t, 30*time.Minute, cfg.Security.LoginLockoutTime)
}

func TestLoadRejectsUnknownStorageProvider(t *testing.T) {
	t.Setenv("STORAGE_PROVIDER", "ftp")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())
}

func TestLoadAppliesYAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
app:
  port: 9090
order:
  shipping_fee: 7.5
security:
  jwt_access_token_ttl: 1h
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.App.Port)
	require.InDelta(t, 7.5, cfg.Order.ShippingFee, 1e-9)
	require.Equal(t, time.Hour, cfg.Security.JWTAccessTokenTTL)
	// untouched keys keep env defaults
	require.Equal(t, "e-commerce", cfg.Database.Database)
}

func TestMapsEnabled(t *testing.T) {
	m := &MapsConfig{Provider: "google", GoogleMaps: &GoogleMapsConfig{}}
	require.False(t, m.Enabled())

	m.GoogleMaps.APIKey = "key"
	require.True(t, m.Enabled())

	m.Provider = "mapbox"
	m.Mapbox = &MapboxConfig{AccessToken: "tok"}
	require.True(t, m.Enabled())
}
