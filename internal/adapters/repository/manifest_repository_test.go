package repository

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afromations/assetctl/internal/core/domain"
)

func testHash(c string) string {
	return "sha256:" + strings.Repeat(c, 64)
}

func TestManifestRepository_LoadMissing(t *testing.T) {
	repo := NewManifestRepository()

	m, err := repo.Load(context.Background(), filepath.Join(t.TempDir(), "manifest.json"))
	require.NoError(t, err)
	assert.Equal(t, "1.0", m.Version)
	assert.Nil(t, m.GeneratedAt)
	assert.Equal(t, 0, m.Count())
}

func TestManifestRepository_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "assets", "manifest.json")

	fixed := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	repo := NewManifestRepository()
	repo.now = func() time.Time { return fixed }

	m := domain.NewManifest()
	require.NoError(t, m.Add("images/photo.png", domain.Asset{
		OriginalName: "photo.png",
		ContentHash:  testHash("a"),
		SizeBytes:    2048,
		MimeType:     "image/png",
		Category:     domain.CategoryImages,
		UploadedAt:   fixed,
		Dimensions:   &domain.Dimensions{Width: 640, Height: 480},
	}))

	require.NoError(t, repo.Save(ctx, path, m))

	loaded, err := repo.Load(ctx, path)
	require.NoError(t, err)
	require.NotNil(t, loaded.GeneratedAt)
	assert.True(t, loaded.GeneratedAt.Equal(fixed))

	asset, ok := loaded.Get("images/photo.png")
	require.True(t, ok)
	assert.Equal(t, int64(2048), asset.SizeBytes)
	assert.Equal(t, 640, asset.Dimensions.Width)

	found, ok := loaded.FindByHash(testHash("a"))
	assert.True(t, ok)
	assert.Equal(t, "images/photo.png", found)
}

func TestManifestRepository_OnDiskFormat(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "manifest.json")
	repo := NewManifestRepository()

	m := domain.NewManifest()
	require.NoError(t, m.Add("video/clip.mp4", domain.Asset{
		OriginalName: "clip.mp4",
		ContentHash:  testHash("b"),
		SizeBytes:    10,
		MimeType:     "video/mp4",
		Category:     domain.CategoryVideo,
		UploadedAt:   time.Now().UTC(),
	}))
	require.NoError(t, repo.Save(ctx, path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "1.0", raw["version"])
	assert.NotNil(t, raw["generated_at"])

	assets := raw["assets"].(map[string]any)
	entry := assets["video/clip.mp4"].(map[string]any)
	for _, key := range []string{"original_name", "content_hash", "size_bytes", "mime_type", "category", "uploaded_at"} {
		assert.Contains(t, entry, key)
	}
	assert.NotContains(t, entry, "dimensions")
	assert.True(t, strings.HasPrefix(string(data), "{\n  \""), "expected indented JSON")
}

func TestManifestRepository_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "manifest.json")
	repo := NewManifestRepository()

	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat(" ", 10000)), 0644))
	require.NoError(t, repo.Save(ctx, path, domain.NewManifest()))

	loaded, err := repo.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Count())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestManifestRepository_LoadMalformed(t *testing.T) {
	tests := map[string]string{
		"syntax":      `{"version": "1.0", "assets": {`,
		"wrong shape": `{"version": "1.0", "assets": []}`,
		"bad entry":   `{"version": "1.0", "assets": {"misc/x": {"original_name": "x"}}}`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "manifest.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			_, err := NewManifestRepository().Load(context.Background(), path)
			require.Error(t, err)

			var fmtErr *domain.FormatError
			require.True(t, errors.As(err, &fmtErr), "expected *domain.FormatError, got %T", err)
			assert.Equal(t, path, fmtErr.Path)
		})
	}
}

func TestManifestRepository_LoadsForeignTimestamps(t *testing.T) {
	// Timestamps as written by other tools: microseconds with a Z suffix
	doc := `{
  "version": "1.0",
  "generated_at": "2024-05-01T10:11:12.123456Z",
  "assets": {
    "brand/logo.png": {
      "original_name": "logo.png",
      "content_hash": "` + testHash("c") + `",
      "size_bytes": 2048,
      "mime_type": "image/png",
      "category": "brand",
      "uploaded_at": "2024-05-01T10:11:12.000001Z"
    }
  }
}`
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	m, err := NewManifestRepository().Load(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, m.GeneratedAt)
	assert.Equal(t, 2024, m.GeneratedAt.Year())
	assert.True(t, m.Has("brand/logo.png"))
}
