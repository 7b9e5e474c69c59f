package storage

import (
	"io"
	"time"
)

// Disk is the storage backend interface. Product and blog images are
// written through a Disk so the shop can run on the local filesystem in
// development and S3-compatible object storage in production.
type Disk interface {
	Put(path string, content []byte) error
	PutStream(path string, r io.Reader) error

	Get(path string) ([]byte, error)
	GetStream(path string) (io.ReadCloser, error)

	Exists(path string) bool
	Size(path string) (int64, error)
	LastModified(path string) (time.Time, error)

	Delete(path string) error

	// Files lists files directly under directory (non-recursive).
	Files(directory string) ([]string, error)

	// URL returns the public URL for a stored file.
	URL(path string) string
}
