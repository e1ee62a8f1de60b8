package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ManifestVersion is the schema version written to new manifests
const ManifestVersion = "1.0"

// Manifest is the persisted record of every organized asset, keyed by
// relative output path ("<category>/<filename>").
type Manifest struct {
	Version     string           `json:"version"`
	GeneratedAt *time.Time       `json:"generated_at"`
	Assets      map[string]Asset `json:"assets"`

	// content hash -> path, built lazily
	byHash map[string]string
}

// NewManifest creates an empty manifest that has never been saved
func NewManifest() *Manifest {
	return &Manifest{
		Version: ManifestVersion,
		Assets:  make(map[string]Asset),
	}
}

func (m *Manifest) ensureIndex() {
	if m.Assets == nil {
		m.Assets = make(map[string]Asset)
	}
	if m.byHash != nil {
		return
	}
	m.byHash = make(map[string]string, len(m.Assets))
	// Sorted so hand-edited manifests with repeated hashes resolve to a stable path
	for _, path := range m.Paths() {
		hash := m.Assets[path].ContentHash
		if _, exists := m.byHash[hash]; !exists {
			m.byHash[hash] = path
		}
	}
}

// Add records an asset under path. Entries are never overwritten.
func (m *Manifest) Add(path string, asset Asset) error {
	m.ensureIndex()

	if _, exists := m.Assets[path]; exists {
		return fmt.Errorf("%w: %s", ErrPathTaken, path)
	}
	if existing, exists := m.byHash[asset.ContentHash]; exists {
		return fmt.Errorf("%w: %s matches %s", ErrDuplicateContent, path, existing)
	}

	m.Assets[path] = asset
	m.byHash[asset.ContentHash] = path
	return nil
}

// FindByHash returns the path of the asset with the given tagged content hash
func (m *Manifest) FindByHash(hash string) (string, bool) {
	m.ensureIndex()
	path, ok := m.byHash[hash]
	return path, ok
}

// Get retrieves an asset by its relative path
func (m *Manifest) Get(path string) (Asset, bool) {
	asset, ok := m.Assets[path]
	return asset, ok
}

// Has checks if a path is recorded
func (m *Manifest) Has(path string) bool {
	_, ok := m.Assets[path]
	return ok
}

// Count returns the number of recorded assets
func (m *Manifest) Count() int {
	return len(m.Assets)
}

// Paths returns all recorded paths in lexical order
func (m *Manifest) Paths() []string {
	paths := make([]string, 0, len(m.Assets))
	for p := range m.Assets {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Entries returns all assets ordered by path
func (m *Manifest) Entries() []AssetEntry {
	entries := make([]AssetEntry, 0, len(m.Assets))
	for _, p := range m.Paths() {
		entries = append(entries, AssetEntry{Path: p, Asset: m.Assets[p]})
	}
	return entries
}

// ContainsName reports whether any recorded path contains name as a substring
func (m *Manifest) ContainsName(name string) bool {
	for p := range m.Assets {
		if strings.Contains(p, name) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy that can be mutated without touching m
func (m *Manifest) Clone() *Manifest {
	c := &Manifest{
		Version: m.Version,
		Assets:  make(map[string]Asset, len(m.Assets)),
	}
	if m.GeneratedAt != nil {
		t := *m.GeneratedAt
		c.GeneratedAt = &t
	}
	for p, a := range m.Assets {
		if a.Dimensions != nil {
			d := *a.Dimensions
			a.Dimensions = &d
		}
		c.Assets[p] = a
	}
	return c
}

// MarkGenerated stamps the manifest with the save time
func (m *Manifest) MarkGenerated(now time.Time) {
	t := now.UTC()
	m.GeneratedAt = &t
}
