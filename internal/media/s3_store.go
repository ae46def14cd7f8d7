package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// objectAPI is the subset of the S3 client used by s3Store.
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Options configures an S3-backed store.
type S3Options struct {
	Bucket string
	Region string
	// Prefix is prepended to every key inside the bucket.
	Prefix string
	// PublicURL is the base URL objects are served from, such as a CDN. When
	// empty the virtual-hosted bucket URL is used.
	PublicURL string
}

// s3Store implements Store on AWS S3.
type s3Store struct {
	client  objectAPI
	opts    S3Options
	baseURL string
	logger  zerolog.Logger
}

// NewS3Store creates an S3-backed store using the default AWS credential chain.
func NewS3Store(ctx context.Context, opts S3Options, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "s3-media-store").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(opts.Region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", opts.Bucket).
		Str("region", opts.Region).
		Str("prefix", opts.Prefix).
		Msg("S3 media store initialised")

	return newS3Store(s3.NewFromConfig(cfg), opts, logger), nil
}

func newS3Store(client objectAPI, opts S3Options, logger zerolog.Logger) *s3Store {
	base := strings.TrimRight(opts.PublicURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	}
	return &s3Store{
		client:  client,
		opts:    opts,
		baseURL: base,
		logger:  logger,
	}
}

func (s *s3Store) objectKey(key string) string {
	return s.opts.Prefix + key
}

// Put uploads body to the bucket.
func (s *s3Store) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	objectKey := s.objectKey(key)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(objectKey),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.opts.Bucket).
			Str("key", objectKey).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.opts.Bucket, objectKey, err)
	}

	s.logger.Info().
		Str("bucket", s.opts.Bucket).
		Str("key", objectKey).
		Int64("bytes", size).
		Msg("media uploaded to S3")

	return s.baseURL + "/" + objectKey, nil
}

// Delete removes the object from the bucket. S3 treats deleting a missing key
// as success.
func (s *s3Store) Delete(ctx context.Context, key string) error {
	objectKey := s.objectKey(key)

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.opts.Bucket).
			Str("key", objectKey).
			Msg("failed to delete object from S3")
		return fmt.Errorf("failed to delete object from S3 (bucket=%s, key=%s): %w", s.opts.Bucket, objectKey, err)
	}

	return nil
}
