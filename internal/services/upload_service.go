package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"

	"rentit/internal/utils"
	"rentit/pkg/logger"
	"rentit/pkg/storage"
)

type UploadService interface {
	// UploadImages stores every file under folder and returns their URLs in
	// order. Nothing is left behind when one of them fails.
	UploadImages(ctx context.Context, files []*multipart.FileHeader, folder string) ([]string, error)
	UploadImage(ctx context.Context, file *multipart.FileHeader, folder string) (string, error)
}

type uploadService struct {
	storage   storage.StorageProvider
	maxImages int
	logger    *logger.Logger
}

func NewUploadService(provider storage.StorageProvider, maxImages int, logger *logger.Logger) UploadService {
	if maxImages <= 0 {
		maxImages = utils.MaxImagesPerItem
	}

	return &uploadService{
		storage:   provider,
		maxImages: maxImages,
		logger:    logger,
	}
}

func (s *uploadService) UploadImages(ctx context.Context, files []*multipart.FileHeader, folder string) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}
	if len(files) > s.maxImages {
		return nil, utils.NewBadRequestError(fmt.Sprintf("You can upload at most %d images", s.maxImages))
	}

	for _, file := range files {
		if err := utils.ValidateImageHeader(file); err != nil {
			return nil, utils.NewBadRequestError(err.Error())
		}
	}

	urls := make([]string, 0, len(files))
	stored := make([]string, 0, len(files)*2)
	for _, file := range files {
		keys, url, err := s.store(ctx, file, folder)
		stored = append(stored, keys...)
		if err != nil {
			s.cleanup(stored)
			return nil, err
		}
		urls = append(urls, url)
	}

	return urls, nil
}

func (s *uploadService) UploadImage(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	if file == nil {
		return "", utils.NewBadRequestError("No image uploaded")
	}

	urls, err := s.UploadImages(ctx, []*multipart.FileHeader{file}, folder)
	if err != nil {
		return "", err
	}

	return urls[0], nil
}

// store uploads the image and its thumbnail. It returns every key written,
// even on failure, so the caller can clean up.
func (s *uploadService) store(ctx context.Context, file *multipart.FileHeader, folder string) ([]string, string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read upload: %w", err)
	}

	key := path.Join(folder, utils.GenerateUniqueFilename(file.Filename))
	resp, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:          key,
		Reader:       bytes.NewReader(data),
		ContentType:  utils.GetContentType(file.Filename),
		Size:         int64(len(data)),
		CacheControl: "public, max-age=31536000",
	})
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Error("Failed to upload image")
		return nil, "", utils.NewAppError(http.StatusInternalServerError, utils.CodeInternal, utils.ErrFileUploadFailed)
	}
	keys := []string{key}

	thumb, _, err := utils.GenerateThumbnail(bytes.NewReader(data))
	if err != nil {
		// Formats the decoder does not know (webp) keep only the original.
		s.logger.WithError(err).WithField("key", key).Debug("Skipping thumbnail")
		return keys, resp.URL, nil
	}

	thumbKey := utils.ThumbnailPrefix + key
	if _, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:          thumbKey,
		Reader:       bytes.NewReader(thumb),
		ContentType:  utils.GetContentType(file.Filename),
		Size:         int64(len(thumb)),
		CacheControl: "public, max-age=31536000",
	}); err != nil {
		s.logger.WithError(err).WithField("key", thumbKey).Warn("Failed to upload thumbnail")
		return keys, resp.URL, nil
	}

	return append(keys, thumbKey), resp.URL, nil
}

func (s *uploadService) cleanup(keys []string) {
	ctx := context.Background()
	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.WithError(err).WithField("key", key).Warn("Failed to remove orphaned upload")
		}
	}
}
