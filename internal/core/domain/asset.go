package domain

import "time"

// Dimensions holds the pixel size of a raster image
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Asset represents metadata for one organized file
type Asset struct {
	OriginalName string      `json:"original_name"` // Name at ingestion time
	ContentHash  string      `json:"content_hash"`  // sha256:<hex>
	SizeBytes    int64       `json:"size_bytes"`
	MimeType     string      `json:"mime_type"`
	Category     Category    `json:"category"`
	UploadedAt   time.Time   `json:"uploaded_at"`
	Dimensions   *Dimensions `json:"dimensions,omitempty"`
}

// AssetEntry pairs an asset with its relative path in the output tree
type AssetEntry struct {
	Path  string
	Asset Asset
}
