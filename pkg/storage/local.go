package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base path: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

func (l *LocalStorage) Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error) {
	filePath, err := l.resolve(request.Key)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	size, err := io.Copy(file, request.Reader)
	if err != nil {
		_ = os.Remove(filePath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &UploadResponse{
		Key:  request.Key,
		URL:  l.generateURL(request.Key),
		Size: size,
	}, nil
}

func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	filePath, err := l.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// resolve maps key to a path under basePath, rejecting traversal.
func (l *LocalStorage) resolve(key string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	if key == "" || clean == string(filepath.Separator) {
		return "", ErrInvalidKey
	}
	return filepath.Join(l.basePath, clean), nil
}

func (l *LocalStorage) generateURL(key string) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(l.baseURL, "/"), strings.TrimLeft(key, "/"))
}
