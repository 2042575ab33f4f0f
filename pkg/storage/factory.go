package storage

import (
	"context"
	"fmt"

	"rentit/internal/config"
)

// NewProvider builds the provider selected in cfg.
func NewProvider(ctx context.Context, cfg *config.StorageConfig) (StorageProvider, error) {
	switch cfg.Provider {
	case config.StorageProviderLocal, "":
		return NewLocalStorage(cfg.Local.BasePath, cfg.Local.BaseURL)
	case config.StorageProviderS3:
		return NewAWSS3Storage(ctx, cfg.AWS.Region, cfg.AWS.Bucket, cfg.AWS.CDNDomain)
	case config.StorageProviderGCS:
		return NewGCPStorage(ctx, cfg.GCP.ProjectID, cfg.GCP.Bucket, cfg.GCP.CredentialsFile, cfg.GCP.CDNDomain)
	case config.StorageProviderCloudinary:
		return NewCloudinaryStorage(cfg.Cloudinary.URL, cfg.Cloudinary.Folder)
	default:
		return nil, fmt.Errorf("unknown storage provider: %s", cfg.Provider)
	}
}
