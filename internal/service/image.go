package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/hferris/caltrack/backend/config"
)

// ImageService stores uploaded meal photos in S3 so an analyzed meal
// keeps a reference to the photo it came from.
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// StoreMealPhoto uploads the photo bytes and returns the object key.
func (s *ImageService) StoreMealPhoto(ctx context.Context, imageData []byte, mimeType string) (string, error) {
	ext := ".jpg"
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		ext = exts[0]
	}
	key := fmt.Sprintf("meal-photos/%s%s", uuid.New().String(), ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	log.Printf("[ImageService] Stored meal photo as %s", key)
	return key, nil
}

// PhotoURL returns a short-lived presigned URL for a stored photo.
func (s *ImageService) PhotoURL(ctx context.Context, key string) (string, error) {
	return s.s3Config.GeneratePresignedURL(ctx, key, 15*time.Minute)
}
