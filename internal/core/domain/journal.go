package domain

import "time"

// JournalEntry is a write-ahead record of a move that has not yet been
// persisted to the manifest.
type JournalEntry struct {
	RunID    string    `json:"run_id"`
	Path     string    `json:"path"`   // Relative destination
	Source   string    `json:"source"` // Absolute source before the move
	Asset    Asset     `json:"asset"`
	LoggedAt time.Time `json:"logged_at"`
}
