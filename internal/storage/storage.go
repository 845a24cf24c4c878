// Package storage keeps uploaded images on local disk or in an
// S3-compatible bucket.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/advisorsite/internal/config"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

// DefaultMaxBytes caps a single upload.
const DefaultMaxBytes = 10 << 20

var (
	// ErrNotImage 表示上传内容不是受支持的图片格式。
	ErrNotImage = errors.New("only jpeg, png, gif and webp images are allowed")
	// ErrTooLarge 表示上传内容超过大小限制。
	ErrTooLarge = errors.New("image is too large")
)

// Backend stores blobs under a key and returns their public URL.
type Backend interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
	Name() string
}

// Object describes a stored image.
type Object struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Images validates uploads and hands them to a Backend.
type Images struct {
	backend  Backend
	maxBytes int64
	now      func() time.Time
}

// NewImages wraps backend. maxBytes <= 0 uses DefaultMaxBytes.
func NewImages(backend Backend, maxBytes int64) *Images {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Images{backend: backend, maxBytes: maxBytes, now: time.Now}
}

// Backend returns the underlying store.
func (s *Images) Backend() Backend {
	return s.backend
}

// Save reads r, checks that it decodes as an image and stores it under a
// fresh date-prefixed uuid key.
func (s *Images) Save(ctx context.Context, r io.Reader) (Object, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return Object{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return Object{}, ErrTooLarge
	}

	contentType := http.DetectContentType(data)
	ext, ok := extensions[contentType]
	if !ok {
		return Object{}, ErrNotImage
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Object{}, ErrNotImage
	}

	key := fmt.Sprintf("%s-%s%s", s.now().Format("20060102"), uuid.New().String(), ext)
	url, err := s.backend.Put(ctx, key, contentType, data)
	if err != nil {
		return Object{}, fmt.Errorf("store %s: %w", key, err)
	}

	return Object{
		Key:         key,
		URL:         url,
		ContentType: contentType,
		Size:        int64(len(data)),
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}

// New builds the backend selected by cfg.
func New(ctx context.Context, cfg config.StorageConfig) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", "local":
		return NewLocal(cfg.UploadDir, cfg.UploadURLPath)
	case "s3":
		return NewS3(ctx, S3Options{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicBaseURL:   cfg.S3PublicBaseURL,
			UsePathStyle:    cfg.S3UsePathStyle,
		})
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}
