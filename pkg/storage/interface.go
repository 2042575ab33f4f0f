package storage

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidKey is returned for keys that are empty or escape the store root.
var ErrInvalidKey = errors.New("storage: invalid key")

type StorageProvider interface {
	Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error)
	Delete(ctx context.Context, key string) error
}

type UploadRequest struct {
	Key          string            `json:"key"`
	Reader       io.Reader         `json:"-"`
	ContentType  string            `json:"content_type"`
	Size         int64             `json:"size"`
	Metadata     map[string]string `json:"metadata"`
	CacheControl string            `json:"cache_control"`
}

type UploadResponse struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
	ETag string `json:"etag,omitempty"`
}
