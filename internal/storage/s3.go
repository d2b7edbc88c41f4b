package storage

import (
	"context"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "umd-backend/internal/config"
)

// S3Store keeps uploads in an S3-compatible bucket (AWS or R2).
type S3Store struct {
	client *s3.Client
	bucket string
}

func NewS3Store(cfg *appconfig.Config) (*S3Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Media.S3.AccessKey,
			cfg.Media.S3.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Media.S3.Region),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Media.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Media.S3.Endpoint)
		}
	})

	return &S3Store{client: client, bucket: cfg.Media.S3.Bucket}, nil
}

func (s *S3Store) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String("media/" + key),
		Body:   r,
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *S3Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String("media/" + key),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}
