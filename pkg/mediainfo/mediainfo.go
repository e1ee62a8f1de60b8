package mediainfo

import (
	"image"
	"mime"
	"os"
	"path/filepath"
	"strings"

	// Raster decoders used for dimension probing
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/afromations/assetctl/internal/core/domain"
)

// DefaultMimeType is reported when the extension is unknown
const DefaultMimeType = "application/octet-stream"

// knownTypes pins the content types of the extensions the organizer
// categorizes, so results do not depend on the host's mime.types file.
var knownTypes = map[string]string{
	".gif":   "image/gif",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".webp":  "image/webp",
	".svg":   "image/svg+xml",
	".ico":   "image/vnd.microsoft.icon",
	".bmp":   "image/bmp",
	".mp4":   "video/mp4",
	".mov":   "video/quicktime",
	".avi":   "video/x-msvideo",
	".webm":  "video/webm",
	".mkv":   "video/x-matroska",
	".mp3":   "audio/mpeg",
	".wav":   "audio/x-wav",
	".m4a":   "audio/mp4",
	".ogg":   "audio/ogg",
	".pdf":   "application/pdf",
	".txt":   "text/plain",
	".md":    "text/markdown",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".psd":   "image/vnd.adobe.photoshop",
	".ai":    "application/postscript",
}

// Prober guesses content types and reads image dimensions
type Prober struct{}

// NewProber creates a prober
func NewProber() *Prober {
	return &Prober{}
}

// MimeType guesses the content type from the file extension
func (p *Prober) MimeType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return DefaultMimeType
	}
	if t, ok := knownTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if mt, _, err := mime.ParseMediaType(t); err == nil {
			return mt
		}
		return t
	}
	return DefaultMimeType
}

// Dimensions decodes the image header at path. It returns nil when the
// file is not a decodable raster image.
func (p *Prober) Dimensions(path string) *domain.Dimensions {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil
	}
	return &domain.Dimensions{Width: cfg.Width, Height: cfg.Height}
}
