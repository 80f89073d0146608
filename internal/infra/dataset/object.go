package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const maxObjectSize = 4 << 20

// ObjectOptions locates datasets in S3-compatible object storage.
type ObjectOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
}

// ObjectSource fetches datasets from a bucket.
type ObjectSource struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

// NewObjectSource constructs the minio backed source.
func NewObjectSource(opts ObjectOptions, logger *slog.Logger) (*ObjectSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(opts.Endpoint) == "" || strings.TrimSpace(opts.Bucket) == "" {
		return nil, fmt.Errorf("object storage endpoint and bucket are required")
	}
	useSSL := !strings.HasPrefix(strings.ToLower(opts.Endpoint), "http://")
	client, err := minio.New(sanitizeEndpoint(opts.Endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure:       useSSL,
		Region:       opts.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init object storage client: %w", err)
	}
	return &ObjectSource{client: client, bucket: opts.Bucket, logger: logger.With("component", "dataset.object")}, nil
}

// Fetch downloads and parses the YAML object stored under key.
func (s *ObjectSource) Fetch(ctx context.Context, key string) (Dataset, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return Dataset{}, fmt.Errorf("get dataset object: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(io.LimitReader(obj, maxObjectSize+1))
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset object: %w", err)
	}
	if len(data) > maxObjectSize {
		return Dataset{}, fmt.Errorf("dataset object %q exceeds %d bytes", key, maxObjectSize)
	}
	s.logger.Info("dataset object fetched", "bucket", s.bucket, "key", key, "bytes", len(data))
	return Parse(data)
}

func sanitizeEndpoint(endpoint string) string {
	trimmed := strings.TrimSpace(endpoint)
	trimmed = strings.TrimPrefix(trimmed, "https://")
	trimmed = strings.TrimPrefix(trimmed, "http://")
	return strings.TrimRight(trimmed, "/")
}
