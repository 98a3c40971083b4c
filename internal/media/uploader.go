// Package media uploads validated clothing photos to S3-compatible object
// storage and returns their public URLs.
package media

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"

	"github.com/ytakeda/mimamori/internal/register"
)

// s3Client is an interface for testability.
type s3Client interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config holds object storage configuration.
type Config struct {
	Endpoint      string
	Bucket        string
	Region        string
	AccessKey     string
	SecretKey     string
	PublicHostURL string
}

// Uploader writes photo objects under clothing/<millis>-<index>-<name> keys.
// Uploads fan out concurrently and the aggregate is all-or-nothing from the
// caller's perspective: one failed upload fails the whole batch, and objects
// that did land are not deleted. There is no retry.
type Uploader struct {
	client     s3Client
	bucket     string
	publicHost string
	logger     *slog.Logger

	now func() time.Time
}

func NewUploader(cfg Config, logger *slog.Logger) *Uploader {
	return &Uploader{
		client:     newS3Client(cfg),
		bucket:     cfg.Bucket,
		publicHost: cfg.PublicHostURL,
		logger:     logger,
		now:        time.Now,
	}
}

func newS3Client(cfg Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

// Upload stores each file independently and concurrently, and returns the
// public URLs in input order. Total latency is bounded by the slowest single
// upload rather than the sum.
func (u *Uploader) Upload(ctx context.Context, files []register.File) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	urls := make([]string, len(files))
	millis := u.now().UnixMilli()

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			key := fmt.Sprintf("clothing/%d-%d-%s", millis, i, f.Name)
			_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
				Bucket:        aws.String(u.bucket),
				Key:           aws.String(key),
				Body:          bytes.NewReader(f.Data),
				ContentType:   aws.String(f.ContentType),
				ContentLength: aws.Int64(int64(len(f.Data))),
			})
			if err != nil {
				return fmt.Errorf("upload %s: %w", key, err)
			}
			u.logger.Debug("uploaded photo", "key", key, "bytes", len(f.Data))
			urls[i] = u.publicHost + "/" + key
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}
