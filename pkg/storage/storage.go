package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/anonto42/promptswipe/backend/pkg/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// SignedURLExpiry is how long a signed image link stays valid
const SignedURLExpiry = 7 * 24 * time.Hour

// Kind selects the bucket an image is stored in
type Kind string

const (
	KindUser Kind = "user"
	KindPost Kind = "post"
)

// Client wraps the S3-compatible object store holding avatars and post images
type Client struct {
	mc         *minio.Client
	userBucket string
	postBucket string
}

// New connects to the object store
func New(ctx context.Context, cfg config.StorageConfig) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage client: %w", err)
	}
	if _, err := mc.BucketExists(ctx, cfg.PostBucket); err != nil {
		return nil, fmt.Errorf("failed to reach storage server: %w", err)
	}
	return &Client{mc: mc, userBucket: cfg.UserBucket, postBucket: cfg.PostBucket}, nil
}

// SplitRef splits an image reference "bucket/key/with/slashes".
func SplitRef(ref string) (bucket, key string, ok bool) {
	bucket, key, found := strings.Cut(ref, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// SignedURL returns a time-limited GET link for ref. An empty or malformed ref yields "".
func (c *Client) SignedURL(ctx context.Context, ref string) (string, error) {
	bucket, key, ok := SplitRef(ref)
	if !ok {
		return "", nil
	}
	u, err := c.mc.PresignedGetObject(ctx, bucket, key, SignedURLExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s: %w", ref, err)
	}
	return u.String(), nil
}

// Upload stores an image under a fresh key and returns its reference
func (c *Client) Upload(ctx context.Context, kind Kind, r io.Reader, size int64, contentType string) (string, error) {
	bucket := c.postBucket
	if kind == KindUser {
		bucket = c.userBucket
	}
	key := uuid.NewString()
	_, err := c.mc.PutObject(ctx, bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return bucket + "/" + key, nil
}
