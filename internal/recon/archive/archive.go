// Package archive copies raw scan results to S3-compatible object storage.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/aussiebroadwan/recon/internal/recon/domain"
)

type Config struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET" envDefault:"recon-scans"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// Enabled reports whether an endpoint is configured.
func (c Config) Enabled() bool { return c.Endpoint != "" }

// objectAPI is the subset of *minio.Client used here.
type objectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type MinIO struct {
	api    objectAPI
	bucket string
}

// Open connects to the configured endpoint and makes sure the bucket exists.
func Open(ctx context.Context, cfg Config) (*MinIO, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("archive: create client: %w", err)
	}
	return NewMinIOWithAPI(ctx, client, cfg.Bucket)
}

// NewMinIOWithAPI allows injecting a fake object store in tests.
func NewMinIOWithAPI(ctx context.Context, api objectAPI, bucket string) (*MinIO, error) {
	m := &MinIO{api: api, bucket: bucket}

	exists, err := api.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("archive: check bucket: %w", err)
	}
	if !exists {
		if err := api.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("archive: create bucket: %w", err)
		}
	}
	return m, nil
}

// ObjectKey is where a record's results are stored:
// scans/<category>/<yyyy>/<mm>/<dd>/<id>.json.
func ObjectKey(rec domain.ScanRecord) string {
	return fmt.Sprintf("scans/%s/%s/%s.json",
		rec.ScanCategory, rec.CreatedAt.UTC().Format("2006/01/02"), rec.ID)
}

// Archive uploads the raw results of rec.
func (m *MinIO) Archive(ctx context.Context, rec domain.ScanRecord) error {
	_, err := m.api.PutObject(ctx, m.bucket, ObjectKey(rec),
		bytes.NewReader(rec.Results), int64(len(rec.Results)),
		minio.PutObjectOptions{
			ContentType: "application/json",
			UserMetadata: map[string]string{
				"target":  rec.URLOrIP,
				"user-id": rec.UserID,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("archive: upload %s: %w", rec.ID, err)
	}
	return nil
}
