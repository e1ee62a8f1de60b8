package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/afromations/assetctl/internal/core/domain"
)

// MockManifestStore is an in-memory implementation of the ManifestStore interface
type MockManifestStore struct {
	mu        sync.Mutex
	manifests map[string]*domain.Manifest
	loadErr   error
	saveErr   error
	saves     int
}

// NewMockManifestStore creates a new mock manifest store
func NewMockManifestStore() *MockManifestStore {
	return &MockManifestStore{
		manifests: make(map[string]*domain.Manifest),
	}
}

// Load returns a copy of the stored manifest, or an empty one
func (m *MockManifestStore) Load(ctx context.Context, path string) (*domain.Manifest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if stored, ok := m.manifests[path]; ok {
		return stored.Clone(), nil
	}
	return domain.NewManifest(), nil
}

// Save stores a copy of the manifest
func (m *MockManifestStore) Save(ctx context.Context, path string, manifest *domain.Manifest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}
	manifest.MarkGenerated(time.Now())
	m.manifests[path] = manifest.Clone()
	m.saves++
	return nil
}

// Put seeds the store with a manifest
func (m *MockManifestStore) Put(path string, manifest *domain.Manifest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.manifests[path] = manifest.Clone()
}

// Stored returns the last saved manifest for path
func (m *MockManifestStore) Stored(path string) (*domain.Manifest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.manifests[path]
	return stored, ok
}

// SaveCount returns how many times Save succeeded
func (m *MockManifestStore) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// SetLoadError makes Load fail
func (m *MockManifestStore) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// SetSaveError makes Save fail
func (m *MockManifestStore) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}
