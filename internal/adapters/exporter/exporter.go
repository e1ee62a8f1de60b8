package exporter

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/afromations/assetctl/internal/core/domain"
	"github.com/afromations/assetctl/internal/core/ports"
)

// Format names an export encoding
type Format string

const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// Formats lists the supported formats
func Formats() []Format {
	return []Format{FormatCSV, FormatJSON, FormatSQLite}
}

// New returns the exporter for a format name
func New(format string) (ports.Exporter, error) {
	switch Format(strings.ToLower(format)) {
	case FormatCSV:
		return &CSVExporter{}, nil
	case FormatJSON:
		return &JSONExporter{}, nil
	case FormatSQLite:
		return &SQLiteExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q (want csv, json or sqlite)", format)
	}
}

// Record is the flat row written by every exporter
type Record struct {
	Path         string    `json:"path" gorm:"primaryKey"`
	OriginalName string    `json:"original_name"`
	ContentHash  string    `json:"content_hash" gorm:"uniqueIndex"`
	SizeBytes    int64     `json:"size_bytes"`
	MimeType     string    `json:"mime_type"`
	Category     string    `json:"category" gorm:"index"`
	UploadedAt   time.Time `json:"uploaded_at"`
	Width        int       `json:"width,omitempty"`
	Height       int       `json:"height,omitempty"`
}

// TableName keeps the table name stable regardless of the struct name
func (Record) TableName() string {
	return "assets"
}

func toRecord(e domain.AssetEntry) Record {
	r := Record{
		Path:         e.Path,
		OriginalName: e.Asset.OriginalName,
		ContentHash:  e.Asset.ContentHash,
		SizeBytes:    e.Asset.SizeBytes,
		MimeType:     e.Asset.MimeType,
		Category:     string(e.Asset.Category),
		UploadedAt:   e.Asset.UploadedAt.UTC(),
	}
	if e.Asset.Dimensions != nil {
		r.Width = e.Asset.Dimensions.Width
		r.Height = e.Asset.Dimensions.Height
	}
	return r
}

func createDest(dest string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return os.Create(dest)
}

// CSVExporter writes one header row and one row per asset
type CSVExporter struct{}

var csvHeader = []string{"path", "original_name", "content_hash", "size_bytes", "mime_type", "category", "uploaded_at", "width", "height"}

func (e *CSVExporter) Export(ctx context.Context, entries []domain.AssetEntry, dest string) error {
	f, err := createDest(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		r := toRecord(entry)
		row := []string{
			r.Path,
			r.OriginalName,
			r.ContentHash,
			strconv.FormatInt(r.SizeBytes, 10),
			r.MimeType,
			r.Category,
			r.UploadedAt.Format(time.RFC3339),
			dimension(r.Width),
			dimension(r.Height),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func dimension(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

// JSONExporter writes a flat JSON array of records
type JSONExporter struct{}

func (e *JSONExporter) Export(ctx context.Context, entries []domain.AssetEntry, dest string) error {
	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		records = append(records, toRecord(entry))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	return os.WriteFile(dest, append(data, '\n'), 0644)
}

// SQLiteExporter writes an assets table into a fresh SQLite database
type SQLiteExporter struct{}

func (e *SQLiteExporter) Export(ctx context.Context, entries []domain.AssetEntry, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	// Replace rather than merge with a previous export
	if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to replace %s: %w", dest, err)
	}

	db, err := gorm.Open(sqlite.Open(dest), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	db = db.WithContext(ctx)
	if err := db.AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if len(entries) == 0 {
		return nil
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		records = append(records, toRecord(entry))
	}
	return db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(records, 100).Error
	})
}
