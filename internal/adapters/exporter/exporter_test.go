package exporter

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/afromations/assetctl/internal/core/domain"
)

func testEntries() []domain.AssetEntry {
	uploaded := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []domain.AssetEntry{
		{
			Path: "brand/logo.png",
			Asset: domain.Asset{
				OriginalName: "logo.png",
				ContentHash:  "sha256:aa",
				SizeBytes:    42,
				MimeType:     "image/png",
				Category:     domain.CategoryBrand,
				UploadedAt:   uploaded,
				Dimensions:   &domain.Dimensions{Width: 64, Height: 32},
			},
		},
		{
			Path: "video/clip.mp4",
			Asset: domain.Asset{
				OriginalName: "clip.mp4",
				ContentHash:  "sha256:bb",
				SizeBytes:    1024,
				MimeType:     "video/mp4",
				Category:     domain.CategoryVideo,
				UploadedAt:   uploaded,
			},
		},
	}
}

func TestNew(t *testing.T) {
	for _, f := range Formats() {
		e, err := New(string(f))
		require.NoError(t, err)
		assert.NotNil(t, e)
	}

	_, err := New("xml")
	assert.Error(t, err)
}

func TestCSVExporter(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out", "assets.csv")
	require.NoError(t, (&CSVExporter{}).Export(context.Background(), testEntries(), dest))

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"brand/logo.png", "logo.png", "sha256:aa", "42", "image/png", "brand", "2024-05-01T12:00:00Z", "64", "32"}, rows[1])
	assert.Equal(t, "", rows[2][7], "video has no width")
}

func TestJSONExporter(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "assets.json")
	require.NoError(t, (&JSONExporter{}).Export(context.Background(), testEntries(), dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)

	var records []Record
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)
	assert.Equal(t, "video/clip.mp4", records[1].Path)
	assert.Equal(t, 64, records[0].Width)
}

func TestJSONExporter_Empty(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "assets.json")
	require.NoError(t, (&JSONExporter{}).Export(context.Background(), nil, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestSQLiteExporter(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "assets.db")
	exp := &SQLiteExporter{}

	require.NoError(t, exp.Export(context.Background(), testEntries(), dest))
	// A second export replaces the first instead of conflicting on primary keys
	require.NoError(t, exp.Export(context.Background(), testEntries()[:1], dest))

	db, err := gorm.Open(sqlite.Open(dest), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	var records []Record
	require.NoError(t, db.Order("path").Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, "brand/logo.png", records[0].Path)
	assert.Equal(t, "brand", records[0].Category)
	assert.Equal(t, int64(42), records[0].SizeBytes)
}
