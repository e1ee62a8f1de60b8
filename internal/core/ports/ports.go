package ports

import (
	"context"

	"github.com/afromations/assetctl/internal/core/domain"
)

// ManifestStore defines the port for manifest persistence
type ManifestStore interface {
	// Load reads the manifest at path, or returns an empty one when absent.
	// A present but malformed file yields *domain.FormatError.
	Load(ctx context.Context, path string) (*domain.Manifest, error)

	// Save stamps generated_at and fully overwrites the file at path
	Save(ctx context.Context, path string, manifest *domain.Manifest) error
}

// Journal defines the port for the write-ahead log of pending moves
type Journal interface {
	// Append durably records an entry before the corresponding move
	Append(ctx context.Context, entry domain.JournalEntry) error

	// Pending returns entries not yet cleared
	Pending(ctx context.Context) ([]domain.JournalEntry, error)

	// Clear drops all entries once the manifest has been saved
	Clear(ctx context.Context) error
}

// Hasher computes content fingerprints (lowercase hex, untagged)
type Hasher interface {
	File(path string) (string, error)
}

// MediaProber guesses content types and image sizes
type MediaProber interface {
	// MimeType guesses from the file extension
	MimeType(path string) string

	// Dimensions returns nil when the file is not a decodable raster image
	Dimensions(path string) *domain.Dimensions
}

// Exporter writes the manifest in another format
type Exporter interface {
	Export(ctx context.Context, entries []domain.AssetEntry, dest string) error
}
