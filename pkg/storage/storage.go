// Package storage archives processed statement files on the local filesystem.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FileInfo contains metadata about an archived statement
type FileInfo struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ImportID   uuid.UUID `json:"import_id"`
	Path       string    `json:"path"` // stored filename under the archive root
	ArchivedAt time.Time `json:"archived_at"`
}

// Storage defines the interface for statement archiving
type Storage interface {
	// Save archives a processed statement and returns its metadata
	Save(ctx context.Context, name string, importID uuid.UUID, data []byte) (*FileInfo, error)

	// Open returns the archived bytes and metadata for a file by its ID
	Open(ctx context.Context, id uuid.UUID) ([]byte, *FileInfo, error)

	// List returns all archived statements, newest first
	List(ctx context.Context) ([]*FileInfo, error)
}
