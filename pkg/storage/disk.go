// Package storage abstracts where product photos and other binary assets
// live. Two drivers ship with the service:
//
//   - "local"  writes under STORAGE_LOCAL_ROOT on the local filesystem
//   - "s3"     S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Boot once in the server, then write through the default disk:
//
//	storage.Connect()
//	storage.Put(ctx, "products/basmati-rice.jpg", data)
//	url := storage.URL("products/basmati-rice.jpg")
package storage

import (
	"context"
	"io"
)

// Disk is the object storage driver interface.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(ctx context.Context, path string, content []byte) error

	// Get returns the full content of the object at path.
	Get(ctx context.Context, path string) ([]byte, error)

	// GetStream returns a ReadCloser for the object. Caller must close it.
	GetStream(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists reports whether an object exists at path.
	Exists(ctx context.Context, path string) bool

	// Size returns the byte size of the object.
	Size(ctx context.Context, path string) (int64, error)

	// Delete removes an object. Returns nil if it did not exist.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string

	// Files lists object paths directly under directory.
	Files(ctx context.Context, directory string) ([]string, error)
}
