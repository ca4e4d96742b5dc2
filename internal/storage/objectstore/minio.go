// Package objectstore stores contestant photos in an S3-compatible
// bucket and hands back publicly reachable URLs.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/goodnessw/election-api/internal/config"
	"github.com/goodnessw/election-api/internal/logger"
)

// allowedContentTypes maps accepted photo content types to file extensions
var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// PhotoStore uploads contestant photos to a bucket
type PhotoStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
	log       *log.Logger
}

// NewPhotoStore connects to the object store and ensures the photo
// bucket exists
func NewPhotoStore(ctx context.Context, cfg *config.Config) (*PhotoStore, error) {
	log := logger.Storage()

	client, err := minio.New(cfg.ObjectStore.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.ObjectStore.AccessKey, cfg.ObjectStore.SecretKey, ""),
		Secure: cfg.ObjectStore.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	store := &PhotoStore{
		client:    client,
		bucket:    cfg.ObjectStore.Bucket,
		publicURL: strings.TrimRight(cfg.ObjectStore.PublicURL, "/"),
		log:       log,
	}

	if store.publicURL == "" {
		scheme := "http"
		if cfg.ObjectStore.UseSSL {
			scheme = "https"
		}
		store.publicURL = scheme + "://" + cfg.ObjectStore.Endpoint
	}

	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}

	log.Info("Object store ready", "endpoint", cfg.ObjectStore.Endpoint, "bucket", store.bucket)
	return store, nil
}

// ensureBucket creates the photo bucket when it does not exist and
// applies a public read policy so photo URLs resolve without signing
func (s *PhotoStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}

	policy := fmt.Sprintf(`{
        "Version": "2012-10-17",
        "Statement": [{
            "Effect": "Allow",
            "Principal": {"AWS": ["*"]},
            "Action": ["s3:GetObject"],
            "Resource": ["arn:aws:s3:::%s/*"]
        }]
    }`, s.bucket)

	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy on %s: %w", s.bucket, err)
	}

	s.log.Info("Created photo bucket", "bucket", s.bucket)
	return nil
}

// UploadPhoto stores a contestant photo and returns its public URL.
// Object names are contestant-scoped and time-stamped so re-uploads
// never collide with cached copies of the previous photo.
func (s *PhotoStore) UploadPhoto(ctx context.Context, contestantID string, reader io.Reader, size int64, contentType string) (string, error) {
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported photo content type %q", contentType)
	}

	objectName := path.Join(
		contestantID,
		fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.NewString()[:8], ext),
	)

	s.log.Debug("uploading contestant photo",
		"contestant_id", contestantID,
		"object", objectName,
		"size", size,
		"content_type", contentType,
	)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.log.Error("photo upload failed", "contestant_id", contestantID, "error", err)
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	url := s.publicURL + "/" + s.bucket + "/" + objectName
	s.log.Info("contestant photo uploaded", "contestant_id", contestantID, "url", url)
	return url, nil
}

// RemovePhoto deletes a previously uploaded photo by its public URL.
// Unknown URLs are ignored so contestant deletion never fails on a
// missing object.
func (s *PhotoStore) RemovePhoto(ctx context.Context, photoURL string) error {
	prefix := s.publicURL + "/" + s.bucket + "/"
	objectName, found := strings.CutPrefix(photoURL, prefix)
	if !found || objectName == "" {
		return nil
	}

	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove photo %s: %w", objectName, err)
	}

	s.log.Debug("removed contestant photo", "object", objectName)
	return nil
}
