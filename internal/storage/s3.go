package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/anwarbahou/saifautoBeta-sub000/internal/config"
)

// ImageStore abstracts the blob store holding car images so services and
// tests do not depend on S3 directly.
type ImageStore interface {
	DeleteImage(ctx context.Context, imageURL string) error
}

// S3ImageStore deletes car images from the configured S3 bucket.
type S3ImageStore struct {
	client *s3.Client
	bucket string
}

func NewS3ImageStore(cfg appconfig.StorageConfig) (*S3ImageStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3ImageStore{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
	}, nil
}

// DeleteImage removes the object behind a stored image URL. The key is
// the URL path with the leading slash (and bucket segment, for
// path-style URLs) stripped.
func (s *S3ImageStore) DeleteImage(ctx context.Context, imageURL string) error {
	key, err := s.keyFromURL(imageURL)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s from S3: %w", key, err)
	}
	return nil
}

func (s *S3ImageStore) keyFromURL(imageURL string) (string, error) {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "", fmt.Errorf("invalid image URL %q: %w", imageURL, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	key = strings.TrimPrefix(key, s.bucket+"/")
	if key == "" {
		return "", fmt.Errorf("image URL %q has no object key", imageURL)
	}
	return key, nil
}
