// Package storage archives seed run summaries in S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"marketadmin/internal/seeder"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ReportPrefix is the object key prefix for archived summaries
const ReportPrefix = "seed-reports/"

type objectClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// ReportStore uploads seed summaries to one bucket
type ReportStore struct {
	client objectClient
	bucket string
}

// NewReportStore connects a MinIO client to endpoint. The bucket is created
// on first upload.
func NewReportStore(endpoint, accessKey, secretKey string, useSSL bool, bucket string) (*ReportStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &ReportStore{client: client, bucket: bucket}, nil
}

// ObjectName returns the key a summary is stored under
func ObjectName(summary *seeder.Summary) string {
	return ReportPrefix + summary.StartedAt.UTC().Format("20060102T150405Z") + ".json"
}

// Upload writes summary as JSON and returns the object key
func (s *ReportStore) Upload(ctx context.Context, summary *seeder.Summary) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	body, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode seed summary: %w", err)
	}

	name := ObjectName(summary)
	_, err = s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	return name, nil
}

func (s *ReportStore) ensureBucket(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !found {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}
