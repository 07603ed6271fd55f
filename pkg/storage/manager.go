package storage

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/config"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. Call once at application startup.
// The local disk always boots; the s3 disk boots only when S3_BUCKET is set.
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDefault()
	disks["local"] = newLocalDisk()

	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Use returns the named disk ("local" or "s3").
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk plugs in a custom Disk implementation, replacing any driver
// registered under the same name. Tests use it to swap in an in-memory disk.
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	if defaultDisk == "" {
		defaultDisk = name
	}
	managerMu.Unlock()
}

// ─── Default disk helpers ─────────────────────────────────────────────────────
// These proxy to the default disk (STORAGE_DISK env var, default "local").

func defaultD() Disk { return Use(defaultDisk) }

// Put writes content to path on the default disk.
func Put(ctx context.Context, path string, content []byte) error {
	return defaultD().Put(ctx, path, content)
}

// Get returns object content from the default disk.
func Get(ctx context.Context, path string) ([]byte, error) {
	return defaultD().Get(ctx, path)
}

// GetStream returns a ReadCloser from the default disk.
func GetStream(ctx context.Context, path string) (io.ReadCloser, error) {
	return defaultD().GetStream(ctx, path)
}

// Exists reports whether path exists on the default disk.
func Exists(ctx context.Context, path string) bool { return defaultD().Exists(ctx, path) }

// Size returns the object size in bytes on the default disk.
func Size(ctx context.Context, path string) (int64, error) { return defaultD().Size(ctx, path) }

// Delete removes path from the default disk.
func Delete(ctx context.Context, path string) error { return defaultD().Delete(ctx, path) }

// URL returns the public URL for path on the default disk.
func URL(path string) string { return defaultD().URL(path) }

// Files lists objects directly under directory on the default disk.
func Files(ctx context.Context, directory string) ([]string, error) {
	return defaultD().Files(ctx, directory)
}
