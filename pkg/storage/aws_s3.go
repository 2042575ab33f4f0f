package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type AWSS3Storage struct {
	client    *s3.Client
	bucket    string
	region    string
	cdnDomain string
}

func NewAWSS3Storage(ctx context.Context, region, bucket, cdnDomain string) (*AWSS3Storage, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSS3Storage{
		client:    s3.NewFromConfig(cfg),
		bucket:    bucket,
		region:    region,
		cdnDomain: cdnDomain,
	}, nil
}

func (a *AWSS3Storage) Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error) {
	if request.Key == "" {
		return nil, ErrInvalidKey
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(request.Key),
		Body:        request.Reader,
		ContentType: aws.String(request.ContentType),
	}

	if request.Size > 0 {
		input.ContentLength = aws.Int64(request.Size)
	}

	if request.CacheControl != "" {
		input.CacheControl = aws.String(request.CacheControl)
	}

	if len(request.Metadata) > 0 {
		input.Metadata = request.Metadata
	}

	resp, err := a.client.PutObject(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResponse{
		Key:  request.Key,
		URL:  a.generateURL(request.Key),
		Size: request.Size,
		ETag: aws.ToString(resp.ETag),
	}, nil
}

func (a *AWSS3Storage) Delete(ctx context.Context, key string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}

	return nil
}

func (a *AWSS3Storage) generateURL(key string) string {
	if a.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", a.cdnDomain, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, key)
}
