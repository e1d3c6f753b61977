package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-backoffice/internal/config"
	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
)

type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Store(cfg config.S3Config) *S3Store {
	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKeyID != "" {
		opts.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		)
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return &S3Store{
		client:  s3.New(opts),
		bucket:  cfg.Bucket,
		baseURL: publicBaseURL(cfg),
	}
}

func publicBaseURL(cfg config.S3Config) string {
	switch {
	case cfg.PublicBaseURL != "":
		return cfg.PublicBaseURL
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

func (s *S3Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}

// Uploader is nil-store safe: without a bucket every upload is refused.
type Uploader struct {
	store Store
}

func NewUploader(cfg *config.Config) *Uploader {
	if !cfg.S3.Enabled() {
		return &Uploader{}
	}
	return &Uploader{store: NewS3Store(cfg.S3)}
}

func NewUploaderWithStore(store Store) *Uploader {
	return &Uploader{store: store}
}

func (u *Uploader) Enabled() bool {
	return u.store != nil
}

// Upload stores an image under organizations/<id>/<kind>/<uuid>.webp and returns its URL.
func (u *Uploader) Upload(ctx context.Context, organizationID uint, kind string, r io.Reader) (string, error) {
	if !u.Enabled() {
		return "", httperr.ErrBusiness("uploads_disabled")
	}

	data, err := Process(r)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("organizations/%d/%s/%s.webp", organizationID, kind, uuid.NewString())
	return u.store.Put(ctx, key, data, "image/webp")
}
