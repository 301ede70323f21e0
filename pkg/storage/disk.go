// Package storage abstracts where uploaded files live.
//
// Two drivers ship with Vitrine:
//   - "local" — files under STORAGE_LOCAL_ROOT on the local filesystem
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// The upload endpoint only ever talks to the Manager:
//
//	m, _ := storage.NewManager(cfg)
//	err := m.Disk().PutStream("uploads/abc.png", file)
//	url := m.Disk().URL("uploads/abc.png")
package storage

import (
	"io"
)

// Disk is the driver interface.
type Disk interface {
	// Put writes content to path, creating parents as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content at path.
	Get(path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Size returns the byte size of the file at path.
	Size(path string) (int64, error)

	// Delete removes path. Deleting an absent file is not an error.
	Delete(path string) error

	// URL returns the public URL for path.
	URL(path string) string
}
