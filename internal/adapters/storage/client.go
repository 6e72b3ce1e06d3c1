// Package storage archives document uploads to MinIO before extraction runs.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"salesdesk_backend/internal/documents"
	"salesdesk_backend/internal/leads/domain"
	"salesdesk_backend/platform/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOArchiver stores original uploads in a MinIO bucket, keyed by lead
// and document type so review cases can be pulled up later.
type MinIOArchiver struct {
	client *minio.Client
	bucket string
}

// NewMinIOArchiver creates the archiver from configuration.
func NewMinIOArchiver(cfg config.StorageConfig) (*MinIOArchiver, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("MinIO is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &MinIOArchiver{
		client: client,
		bucket: cfg.GetMinioBucketLeadDocuments(),
	}, nil
}

// EnsureBucketExists creates the archive bucket if it doesn't exist.
func (a *MinIOArchiver) EnsureBucketExists(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
		}
	}

	return nil
}

// Ping verifies the MinIO connection for readiness checks.
func (a *MinIOArchiver) Ping(ctx context.Context) error {
	_, err := a.client.BucketExists(ctx, a.bucket)
	return err
}

// Archive uploads the original file and returns its object key. The key
// carries a UUID fragment so repeated uploads of the same slot never
// overwrite earlier attempts.
func (a *MinIOArchiver) Archive(ctx context.Context, leadID string, docType domain.DocumentType, upload documents.Upload) (string, error) {
	ext := path.Ext(upload.Filename)
	baseName := strings.TrimSuffix(upload.Filename, ext)
	uniqueFileName := fmt.Sprintf("%s_%s%s", baseName, uuid.New().String()[:8], ext)
	fileKey := filepath.ToSlash(filepath.Join(leadID, string(docType), uniqueFileName))

	_, err := a.client.PutObject(ctx, a.bucket, fileKey, bytes.NewReader(upload.Data), upload.Size, minio.PutObjectOptions{
		ContentType: upload.MIMEType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file %s: %w", fileKey, err)
	}
	return fileKey, nil
}

// Download fetches an archived upload. The caller closes the reader.
func (a *MinIOArchiver) Download(ctx context.Context, fileKey string) (io.ReadCloser, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, fileKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", fileKey, err)
	}
	return obj, nil
}
