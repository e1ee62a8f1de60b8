package mediainfo

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMimeType(t *testing.T) {
	p := NewProber()

	tests := map[string]string{
		"logo.png":      "image/png",
		"PHOTO.JPG":     "image/jpeg",
		"clip.mp4":      "video/mp4",
		"icon.svg":      "image/svg+xml",
		"track.mp3":     "audio/mpeg",
		"notes.md":      "text/markdown",
		"font.woff2":    "font/woff2",
		"no_extension":  DefaultMimeType,
		"weird.zzzzzzz": DefaultMimeType,
	}

	for name, want := range tests {
		assert.Equal(t, want, p.MimeType(name), name)
	}
}

func TestDimensions_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	img := image.NewRGBA(image.Rect(0, 0, 32, 18))
	img.Set(1, 1, color.White)

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	dims := NewProber().Dimensions(path)
	require.NotNil(t, dims)
	assert.Equal(t, 32, dims.Width)
	assert.Equal(t, 18, dims.Height)
}

func TestDimensions_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.png")
	require.NoError(t, os.WriteFile(path, []byte("not really a png"), 0644))

	assert.Nil(t, NewProber().Dimensions(path))
}

func TestDimensions_MissingFile(t *testing.T) {
	assert.Nil(t, NewProber().Dimensions(filepath.Join(t.TempDir(), "gone.png")))
}
