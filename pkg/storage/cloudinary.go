package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorage stores images on Cloudinary. Keys become public IDs
// inside the configured folder, without their file extension.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStorage(cloudinaryURL, folder string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}

	return &CloudinaryStorage{
		cld:    cld,
		folder: folder,
	}, nil
}

func (c *CloudinaryStorage) Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error) {
	if request.Key == "" {
		return nil, ErrInvalidKey
	}

	resp, err := c.cld.Upload.Upload(ctx, request.Reader, uploader.UploadParams{
		PublicID:  publicID(request.Key),
		Folder:    c.folder,
		Overwrite: api.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("failed to upload to cloudinary: %s", resp.Error.Message)
	}

	return &UploadResponse{
		Key:  request.Key,
		URL:  resp.SecureURL,
		Size: int64(resp.Bytes),
		ETag: resp.Etag,
	}, nil
}

func (c *CloudinaryStorage) Delete(ctx context.Context, key string) error {
	id := publicID(key)
	if c.folder != "" {
		id = c.folder + "/" + id
	}

	resp, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: id})
	if err != nil {
		return fmt.Errorf("failed to delete from cloudinary: %w", err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("failed to delete from cloudinary: %s", resp.Error.Message)
	}

	return nil
}

func publicID(key string) string {
	return strings.TrimSuffix(key, path.Ext(key))
}
