package domain

// SkipReason explains why a file was not organized
type SkipReason string

const (
	SkipNone       SkipReason = ""
	SkipSystemFile SkipReason = "system_file"
	SkipDuplicate  SkipReason = "duplicate"
)

// FileResult is the outcome of organizing a single file
type FileResult struct {
	Name string // File name in the input directory

	// Path is the resolved relative destination ("<category>/<name>").
	// Empty when skipped.
	Path     string
	Category Category
	Hash     string // Tagged content hash, empty for system files

	Skipped     bool
	Reason      SkipReason
	MatchedPath string // Existing manifest path for duplicates

	DryRun bool
	Asset  *Asset // Record inserted into the manifest, nil on dry-run or skip
}

// Organized reports whether the file was (or in dry-run would be) placed
func (r FileResult) Organized() bool {
	return !r.Skipped && r.Path != ""
}
