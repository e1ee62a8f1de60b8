package mocks

import (
	"context"
	"sync"

	"github.com/afromations/assetctl/internal/core/domain"
)

// MockJournal is an in-memory implementation of the Journal interface
type MockJournal struct {
	mu        sync.Mutex
	entries   []domain.JournalEntry
	appendErr error
	clears    int
}

// NewMockJournal creates a new mock journal
func NewMockJournal() *MockJournal {
	return &MockJournal{}
}

func (m *MockJournal) Append(ctx context.Context, entry domain.JournalEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockJournal) Pending(ctx context.Context) ([]domain.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.JournalEntry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *MockJournal) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	m.clears++
	return nil
}

// ClearCount returns how many times Clear was called
func (m *MockJournal) ClearCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clears
}

// SetAppendError makes Append fail
func (m *MockJournal) SetAppendError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appendErr = err
}
