package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalStorage implements Storage using the local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local filesystem archive
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(filepath.Join(basePath, ".meta"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Save archives a processed statement and returns its metadata
func (s *LocalStorage) Save(ctx context.Context, name string, importID uuid.UUID, data []byte) (*FileInfo, error) {
	id := uuid.New()

	// Sanitize the filename and add a UUID prefix for uniqueness
	storedFilename := fmt.Sprintf("%s_%s", id.String()[:8], sanitizeFilename(name))
	filePath := filepath.Join(s.basePath, storedFilename)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write archive file: %w", err)
	}

	info := &FileInfo{
		ID:         id,
		Name:       name,
		Size:       int64(len(data)),
		ImportID:   importID,
		Path:       storedFilename,
		ArchivedAt: time.Now(),
	}

	if err := s.saveMetadata(id, info); err != nil {
		os.Remove(filePath) // Cleanup on error
		return nil, err
	}

	return info, nil
}

// Open returns the archived bytes and metadata for a file by its ID
func (s *LocalStorage) Open(ctx context.Context, id uuid.UUID) ([]byte, *FileInfo, error) {
	info, err := s.getInfo(id)
	if err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.basePath, info.Path))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read archive file: %w", err)
	}

	return data, info, nil
}

// List returns all archived statements, newest first
func (s *LocalStorage) List(ctx context.Context) ([]*FileInfo, error) {
	metaDir := filepath.Join(s.basePath, ".meta")
	entries, err := os.ReadDir(metaDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*FileInfo{}, nil
		}
		return nil, fmt.Errorf("failed to list metadata: %w", err)
	}

	files := make([]*FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		id, err := uuid.Parse(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue
		}

		info, err := s.getInfo(id)
		if err != nil {
			continue
		}
		files = append(files, info)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ArchivedAt.After(files[j].ArchivedAt)
	})

	return files, nil
}

// getInfo reads metadata for an archived file
func (s *LocalStorage) getInfo(id uuid.UUID) (*FileInfo, error) {
	metaPath := filepath.Join(s.basePath, ".meta", id.String()+".json")

	data, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("archived file not found: %s", id)
		}
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var info FileInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}

	return &info, nil
}

// saveMetadata saves file metadata to a JSON file
func (s *LocalStorage) saveMetadata(id uuid.UUID, info *FileInfo) error {
	metaPath := filepath.Join(s.basePath, ".meta", id.String()+".json")

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	if err := os.WriteFile(metaPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	return nil
}

// sanitizeFilename removes unsafe characters from filenames
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		"..", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}
