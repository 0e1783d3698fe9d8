// Package archive keeps a copy of every course page that was fetched
// successfully, so extraction problems can be replayed later.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"coursework_service/internal/config"
	"coursework_service/internal/model"
	"coursework_service/pkg/logging"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	s3Config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

type objectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

func NewClient(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	s3Cfg, err := s3Config.LoadDefaultConfig(ctx,
		s3Config.WithRegion(cfg.S3Region),
		s3Config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.S3AccessKeyID,
				cfg.S3SecretAccessKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(s3Cfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		o.UsePathStyle = true
	}), nil
}

type S3Archive struct {
	client objectStore
	bucket *string
}

func New(client objectStore, bucket string) *S3Archive {
	return &S3Archive{client: client, bucket: aws.String(bucket)}
}

// EnsureBucket creates the archive bucket, tolerating one that already exists.
func (a *S3Archive) EnsureBucket(ctx context.Context) error {
	_, err := a.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: a.bucket})
	if err == nil {
		return nil
	}

	var owned *types.BucketAlreadyOwnedByYou
	var respErr *awshttp.ResponseError
	if errors.As(err, &owned) || (errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusConflict) {
		if logger, ok := logging.GetFromContext(ctx); ok {
			logger.Info(ctx, "Archive bucket already exists", zap.String("bucket", *a.bucket))
		}
		return nil
	}
	return fmt.Errorf("failed to create archive bucket: %w", err)
}

// Store writes content under "<course>/<as-of date>.html"; a later store for the
// same day replaces the earlier one.
func (a *S3Archive) Store(ctx context.Context, course string, asOf time.Time, content []byte) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      a.bucket,
		Key:         aws.String(ObjectKey(course, asOf)),
		Body:        bytes.NewReader(content),
		ContentType: aws.String("text/html; charset=utf-8"),
	})
	if err != nil {
		return fmt.Errorf("failed to archive %s page: %w", course, err)
	}
	return nil
}

func ObjectKey(course string, asOf time.Time) string {
	return course + "/" + asOf.Format(model.DateLayout) + ".html"
}
