package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/blood-heros/apiserver/config"
	"github.com/google/uuid"
)

const (
	BackendMinio = "minio"
	BackendGCS   = "gcs"

	imagePrefix = "images/"
)

var (
	// ErrObjectNotFound is returned when a key does not exist in the bucket.
	ErrObjectNotFound = errors.New("object not found")

	// ErrInvalidKey is returned for keys outside the image namespace.
	ErrInvalidKey = errors.New("invalid object key")
)

// Object is an opened stored object.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// ObjectStorage defines common object operations across backends.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (Object, error)
	Delete(ctx context.Context, key string) error
	Bucket() string
	Close() error
}

// Storage stores user-uploaded images on an ObjectStorage backend.
type Storage struct {
	backend ObjectStorage
}

// NewStorage constructs a Storage wrapper for the provided backend.
func NewStorage(backend ObjectStorage) *Storage {
	return &Storage{backend: backend}
}

// Open builds the configured backend and makes sure its bucket exists. It
// returns nil, nil when no backend is configured.
func Open(ctx context.Context, cfg config.StorageConfig) (*Storage, error) {
	var (
		backend ObjectStorage
		err     error
	)
	switch cfg.Backend {
	case "":
		return nil, nil
	case BackendMinio:
		backend, err = NewMinioClient(cfg.Minio)
	case BackendGCS:
		backend, err = NewGCSClient(ctx, cfg.GCS)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	if err := backend.EnsureBucket(ctx); err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("ensure bucket %s: %w", backend.Bucket(), err)
	}
	return NewStorage(backend), nil
}

// PutImage stores an image under a fresh key and returns the key.
func (s *Storage) PutImage(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	key := imagePrefix + uuid.NewString() + imageExtension(filename, contentType)
	if err := s.backend.Put(ctx, key, r, size, contentType); err != nil {
		return "", err
	}
	return key, nil
}

// GetImage opens a previously stored image.
func (s *Storage) GetImage(ctx context.Context, key string) (Object, error) {
	if !IsImageKey(key) {
		return Object{}, ErrInvalidKey
	}
	return s.backend.Get(ctx, key)
}

// DeleteImage removes a previously stored image.
func (s *Storage) DeleteImage(ctx context.Context, key string) error {
	if !IsImageKey(key) {
		return ErrInvalidKey
	}
	return s.backend.Delete(ctx, key)
}

// Bucket returns the configured bucket name.
func (s *Storage) Bucket() string {
	return s.backend.Bucket()
}

// Close releases the backend client.
func (s *Storage) Close() error {
	return s.backend.Close()
}

// IsImageKey reports whether key was produced by PutImage.
func IsImageKey(key string) bool {
	if !strings.HasPrefix(key, imagePrefix) {
		return false
	}
	name := strings.TrimPrefix(key, imagePrefix)
	return name != "" && !strings.Contains(name, "/") && path.Clean(key) == key
}

func imageExtension(filename, contentType string) string {
	if ext := strings.ToLower(path.Ext(filename)); ext != "" && len(ext) <= 5 {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
