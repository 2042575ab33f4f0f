package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCPStorage struct {
	client    *storage.Client
	bucket    string
	cdnDomain string
}

func NewGCPStorage(ctx context.Context, projectID, bucket, credentialsFile, cdnDomain string) (*GCPStorage, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	if projectID != "" {
		opts = append(opts, option.WithQuotaProject(projectID))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP storage client: %w", err)
	}

	return &GCPStorage{
		client:    client,
		bucket:    bucket,
		cdnDomain: cdnDomain,
	}, nil
}

func (g *GCPStorage) Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error) {
	if request.Key == "" {
		return nil, ErrInvalidKey
	}

	writer := g.client.Bucket(g.bucket).Object(request.Key).NewWriter(ctx)
	writer.ContentType = request.ContentType

	if len(request.Metadata) > 0 {
		writer.Metadata = request.Metadata
	}

	if request.CacheControl != "" {
		writer.CacheControl = request.CacheControl
	}

	size, err := io.Copy(writer, request.Reader)
	if err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("failed to write to GCP storage: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	return &UploadResponse{
		Key:  request.Key,
		URL:  g.generateURL(request.Key),
		Size: size,
	}, nil
}

func (g *GCPStorage) Delete(ctx context.Context, key string) error {
	err := g.client.Bucket(g.bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete from GCP storage: %w", err)
	}

	return nil
}

func (g *GCPStorage) generateURL(key string) string {
	if g.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", g.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, key)
}
