package uploads

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/atelier-north/studio-backend/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store writes validated images to an S3-compatible bucket and hands
// back the public URL the site embeds. Image content is never
// inspected or transformed here.
type Store struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

func NewStore(cfg *config.StorageConfig) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("object storage client: %w", err)
	}

	base := cfg.PublicBaseURL
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &Store{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(base, "/"),
	}, nil
}

// EnsureBucket creates the bucket on first run.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}
	return nil
}

// Put validates and stores one image under
// <folder>/<uuid><ext> and returns its public URL.
func (s *Store) Put(ctx context.Context, folder, contentType string, size int64, r io.Reader) (string, error) {
	if err := ValidateFolder(folder); err != nil {
		return "", err
	}
	if err := Validate(contentType, size); err != nil {
		return "", err
	}

	key := path.Join(folder, uuid.NewString()+extFor(contentType))

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}

	return s.publicBaseURL + "/" + key, nil
}
