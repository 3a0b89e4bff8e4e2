// Package storage keeps generated reports in S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/fiscalmanager/backend/internal/domain/report"
	"github.com/fiscalmanager/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Ensure S3ReportArchive implements report.Archive
var _ report.Archive = (*S3ReportArchive)(nil)

// s3API is the subset of *s3.Client the archive uses
type s3API interface {
	s3.ListObjectsV2APIClient
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// S3ReportArchive stores reports in a bucket. It works with AWS S3 and any
// S3-compatible server (MinIO, RustFS).
type S3ReportArchive struct {
	client s3API
	bucket string
	prefix string
	logger *zap.Logger
}

// S3ReportArchiveOption is a functional option for configuring S3ReportArchive
type S3ReportArchiveOption func(*S3ReportArchive)

// WithLogger sets a custom logger for S3ReportArchive
func WithLogger(logger *zap.Logger) S3ReportArchiveOption {
	return func(s *S3ReportArchive) {
		s.logger = logger
	}
}

// withClient replaces the S3 client; used by tests
func withClient(c s3API) S3ReportArchiveOption {
	return func(s *S3ReportArchive) {
		s.client = c
	}
}

// NewS3ReportArchive creates an archive from configuration. Static
// credentials are used when both keys are set; otherwise the default AWS
// credential chain applies.
func NewS3ReportArchive(ctx context.Context, cfg *config.StorageConfig, opts ...S3ReportArchiveOption) (*S3ReportArchive, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if (cfg.AccessKeyID == "") != (cfg.SecretAccessKey == "") {
		return nil, errors.New("storage access key id and secret access key must be set together")
	}

	a := &S3ReportArchive{
		bucket: cfg.Bucket,
		prefix: normalizePrefix(cfg.Prefix),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.client != nil {
		return a, nil
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	a.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint := endpointURL(cfg.Endpoint); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return a, nil
}

// endpointURL adds a scheme to bare host:port endpoints
func endpointURL(endpoint string) string {
	if endpoint == "" {
		return ""
	}
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return "https://" + endpoint
}

func normalizePrefix(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	return p + "/"
}

// EnsureBucket creates the bucket if it doesn't exist.
// Call this during application startup to ensure the bucket is ready.
func (s *S3ReportArchive) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating report bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Put uploads a rendered report
func (s *S3ReportArchive) Put(ctx context.Context, key string, body []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.prefix + key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload report: %w", err)
	}

	s.logger.Debug("Report archived",
		zap.String("bucket", s.bucket),
		zap.String("key", s.prefix+key),
		zap.Int("bytes", len(body)),
	)
	return nil
}

// List returns every report under prefix, newest first. Keys are returned
// without the configured bucket prefix.
func (s *S3ReportArchive) List(ctx context.Context, prefix string) ([]report.ArchivedReport, error) {
	var out []report.ArchivedReport

	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix + prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", err)
		}
		for _, obj := range page.Contents {
			out = append(out, report.ArchivedReport{
				Key:          strings.TrimPrefix(aws.ToString(obj.Key), s.prefix),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}

	sortNewestFirst(out)
	return out, nil
}

// Bucket returns the bucket name
func (s *S3ReportArchive) Bucket() string {
	return s.bucket
}

func sortNewestFirst(items []report.ArchivedReport) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].LastModified.Equal(items[j].LastModified) {
			return items[i].LastModified.After(items[j].LastModified)
		}
		return items[i].Key > items[j].Key
	})
}
