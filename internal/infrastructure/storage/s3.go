package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/alimikegami/marketplace-service/config"
	circuitbreaker "github.com/alimikegami/marketplace-service/internal/infrastructure/circuit-breaker"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ObjectStorage keeps the uploaded images.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
}

type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Storage struct {
	client S3API
	bucket string
	cb     *gobreaker.CircuitBreaker[struct{}]
}

func CreateNewS3Client(ctx context.Context, conf config.S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(conf.Region),
		awsconfig.WithHTTPClient(&http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}),
	}
	if conf.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AccessKey, conf.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func CreateNewS3Storage(client S3API, bucket string) *S3Storage {
	return &S3Storage{
		client: client,
		bucket: bucket,
		cb:     circuitbreaker.CreateCircuitBreaker[struct{}]("s3-storage"),
	}
}

// Upload stores data under key with a public-read ACL.
func (s *S3Storage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.cb.Execute(func() (struct{}, error) {
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(s.bucket),
			Key:           aws.String(normalizeKey(key)),
			Body:          bytes.NewReader(data),
			ContentLength: aws.Int64(int64(len(data))),
			ContentType:   aws.String(contentType),
			ACL:           types.ObjectCannedACLPublicRead,
		})
		return struct{}{}, err
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Upload").Str("key", key).Msg("")
		return fmt.Errorf("uploading %s: %w", key, err)
	}

	return nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.cb.Execute(func() (struct{}, error) {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(normalizeKey(key)),
		})
		return struct{}{}, err
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Delete").Str("key", key).Msg("")
		return fmt.Errorf("deleting %s: %w", key, err)
	}

	return nil
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(key, "\\", "/")
}

// NopStorage discards every object. It is used when no bucket is configured.
type NopStorage struct{}

func (NopStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	log.Ctx(ctx).Debug().Str("component", "Upload").Str("key", key).Msg("storage disabled, skipping upload")
	return nil
}

func (NopStorage) Delete(ctx context.Context, key string) error {
	log.Ctx(ctx).Debug().Str("component", "Delete").Str("key", key).Msg("storage disabled, skipping delete")
	return nil
}
