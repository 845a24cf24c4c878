package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Local writes files into a directory served under urlPath.
type Local struct {
	dir     string
	urlPath string
}

// NewLocal creates dir if needed.
func NewLocal(dir, urlPath string) (*Local, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "web/static/uploads"
	}
	urlPath = "/" + strings.Trim(strings.TrimSpace(urlPath), "/")
	if urlPath == "/" {
		urlPath = "/static/uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir, urlPath: urlPath}, nil
}

// Name implements Backend.
func (l *Local) Name() string {
	return "local"
}

// Put implements Backend.
func (l *Local) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	target, err := l.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", err
	}
	return path.Join(l.urlPath, key), nil
}

// Delete implements Backend. Missing files are ignored.
func (l *Local) Delete(_ context.Context, key string) error {
	target, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (l *Local) resolve(key string) (string, error) {
	clean := filepath.Base(filepath.Clean("/" + key))
	if clean != key || clean == "." || clean == "/" {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(l.dir, clean), nil
}
