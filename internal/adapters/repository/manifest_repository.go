package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/afromations/assetctl/internal/core/domain"
	"github.com/afromations/assetctl/pkg/schema"
)

// ManifestRepository persists the manifest as an indented JSON document
type ManifestRepository struct {
	now func() time.Time
}

func NewManifestRepository() *ManifestRepository {
	return &ManifestRepository{now: time.Now}
}

// Load reads the manifest from disk, or returns an empty one when the file is absent
func (r *ManifestRepository) Load(ctx context.Context, path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewManifest(), nil
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	if err := schema.ValidateManifest(data); err != nil {
		return nil, &domain.FormatError{Path: path, Err: err}
	}

	var m domain.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &domain.FormatError{Path: path, Err: err}
	}
	if m.Assets == nil {
		m.Assets = make(map[string]domain.Asset)
	}

	return &m, nil
}

// Save stamps generated_at and overwrites the manifest.
// The document is written to a sibling temp file and renamed into place.
func (r *ManifestRepository) Save(ctx context.Context, path string, m *domain.Manifest) error {
	m.MarkGenerated(r.now())

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, ".manifest-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp manifest: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close manifest: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to set manifest permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace manifest: %w", err)
	}

	return nil
}
