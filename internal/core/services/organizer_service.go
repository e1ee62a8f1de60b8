package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/afromations/assetctl/internal/core/domain"
	"github.com/afromations/assetctl/internal/core/ports"
	"github.com/afromations/assetctl/pkg/hasher"
	"github.com/afromations/assetctl/pkg/workspace"
)

// OrganizerService moves incoming files into the category tree and records them in the manifest
type OrganizerService struct {
	store       ports.ManifestStore
	journal     ports.Journal // nil disables write-ahead logging
	hasher      ports.Hasher
	prober      ports.MediaProber
	categorizer *Categorizer
	reporter    *ReportService
	ignore      []string

	now      func() time.Time
	newRunID func() string
}

// NewOrganizerService wires the pipeline. ignore holds glob patterns matched
// against bare filenames; matching files are skipped as system files.
func NewOrganizerService(
	store ports.ManifestStore,
	journal ports.Journal,
	h ports.Hasher,
	prober ports.MediaProber,
	categorizer *Categorizer,
	reporter *ReportService,
	ignore []string,
) *OrganizerService {
	return &OrganizerService{
		store:       store,
		journal:     journal,
		hasher:      h,
		prober:      prober,
		categorizer: categorizer,
		reporter:    reporter,
		ignore:      ignore,
		now:         time.Now,
		newRunID:    func() string { return uuid.NewString() },
	}
}

// OrganizeRequest represents a batch run over an input directory
type OrganizeRequest struct {
	Workspace *workspace.Workspace
	DryRun    bool

	// Logf receives verbose diagnostics. Optional.
	Logf func(format string, args ...any)

	// OnResult is called after each file, in processing order. Optional.
	OnResult func(domain.FileResult)
}

// OrganizeResponse represents the outcome of a batch run
type OrganizeResponse struct {
	RunID     string
	Files     int // Regular files found in the input directory
	Results   []domain.FileResult
	Recovered []string // Paths restored from the journal
	Saved     bool

	BytesOrganized int64
	Duration       time.Duration
	Report         *Report
}

type run struct {
	id     string
	dryRun bool
	logf   func(format string, args ...any)
}

// Execute organizes every regular file of the input directory, sorted by name,
// strictly one after another. The manifest is saved once at the end when at
// least one file was organized.
func (s *OrganizerService) Execute(ctx context.Context, req OrganizeRequest) (*OrganizeResponse, error) {
	start := s.now()
	ws := req.Workspace

	r := &run{id: s.newRunID(), dryRun: req.DryRun, logf: req.Logf}
	if r.logf == nil {
		r.logf = func(string, ...any) {}
	}

	if err := ws.CheckInput(); err != nil {
		return nil, err
	}

	manifest, err := s.store.Load(ctx, ws.ManifestPath)
	if err != nil {
		return nil, err
	}

	resp := &OrganizeResponse{RunID: r.id}

	if !req.DryRun && s.journal != nil {
		resp.Recovered, err = s.recover(ctx, ws.OutputPath, manifest, r)
		if err != nil {
			return nil, err
		}
	}

	files, err := listInputFiles(ws.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list input directory: %w", err)
	}
	resp.Files = len(files)
	r.logf("run %s: %d file(s) in %s", r.id, len(files), ws.InputPath)

	// Dry-run plans against a scratch copy so duplicates inside the batch are still reported
	working := manifest
	if req.DryRun {
		working = manifest.Clone()
	}

	var runErr error
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		res, err := s.organize(ctx, r, file, ws.OutputPath, working)
		if err != nil {
			runErr = err
			break
		}

		if res.DryRun && res.Organized() {
			_ = working.Add(res.Path, domain.Asset{ContentHash: res.Hash, Category: res.Category, OriginalName: res.Name})
		}
		if res.Asset != nil {
			resp.BytesOrganized += res.Asset.SizeBytes
		}

		resp.Results = append(resp.Results, res)
		if req.OnResult != nil {
			req.OnResult(res)
		}
	}

	organized := 0
	for _, res := range resp.Results {
		if res.Organized() {
			organized++
		}
	}

	// Files already moved are recorded even when the loop stopped early
	if !req.DryRun && (organized > 0 || len(resp.Recovered) > 0) {
		if err := s.store.Save(ctx, ws.ManifestPath, manifest); err != nil {
			return resp, fmt.Errorf("failed to save manifest: %w", err)
		}
		resp.Saved = true
	}
	if !req.DryRun && s.journal != nil && runErr == nil {
		if err := s.journal.Clear(ctx); err != nil {
			return resp, err
		}
	}

	resp.Report = s.reporter.Build(manifest, resp.Results, req.DryRun)
	resp.Duration = s.now().Sub(start)

	return resp, runErr
}

// Organize runs the per-file pipeline on a single file. In dry-run mode the
// manifest and filesystem are left untouched and the would-be destination is returned.
func (s *OrganizerService) Organize(ctx context.Context, file, outputRoot string, manifest *domain.Manifest, dryRun bool) (domain.FileResult, error) {
	r := &run{id: s.newRunID(), dryRun: dryRun, logf: func(string, ...any) {}}
	return s.organize(ctx, r, file, outputRoot, manifest)
}

func (s *OrganizerService) organize(ctx context.Context, r *run, file, outputRoot string, manifest *domain.Manifest) (domain.FileResult, error) {
	name := filepath.Base(file)
	res := domain.FileResult{Name: name, DryRun: r.dryRun}

	// 1. System-file filter
	if s.isSystemFile(name) {
		res.Skipped = true
		res.Reason = domain.SkipSystemFile
		return res, nil
	}

	// 2. Fingerprint
	digest, err := s.hasher.File(file)
	if err != nil {
		return res, err
	}
	res.Hash = hasher.Tag(digest)
	r.logf("%s: %s", name, res.Hash)

	// 3. Duplicate check
	if existing, ok := manifest.FindByHash(res.Hash); ok {
		res.Skipped = true
		res.Reason = domain.SkipDuplicate
		res.MatchedPath = existing
		return res, nil
	}

	// 4. Categorize
	res.Category = s.categorizer.Categorize(name)
	destDir := filepath.Join(outputRoot, string(res.Category))

	// 5. Collision resolution
	finalName := resolveName(destDir, string(res.Category), name, manifest)
	res.Path = path.Join(string(res.Category), finalName)
	r.logf("%s: category %s, destination %s", name, res.Category, res.Path)

	if r.dryRun {
		return res, nil
	}

	// 6. Commit
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return res, fmt.Errorf("failed to create %s: %w", destDir, err)
	}

	uploadedAt := s.now().UTC()
	if s.journal != nil {
		absSource, _ := filepath.Abs(file)
		entry := domain.JournalEntry{
			RunID:  r.id,
			Path:   res.Path,
			Source: absSource,
			Asset: domain.Asset{
				OriginalName: name,
				ContentHash:  res.Hash,
				Category:     res.Category,
				UploadedAt:   uploadedAt,
			},
			LoggedAt: uploadedAt,
		}
		if err := s.journal.Append(ctx, entry); err != nil {
			return res, fmt.Errorf("failed to journal %s: %w", name, err)
		}
	}

	destPath := filepath.Join(destDir, finalName)
	if err := moveFile(file, destPath); err != nil {
		return res, fmt.Errorf("failed to move %s: %w", name, err)
	}

	asset, err := s.buildAsset(destPath, name, res.Hash, res.Category, uploadedAt)
	if err != nil {
		return res, err
	}
	if err := manifest.Add(res.Path, asset); err != nil {
		return res, err
	}
	res.Asset = &asset

	return res, nil
}

// recover replays journal entries whose move completed but never reached the manifest
func (s *OrganizerService) recover(ctx context.Context, outputRoot string, manifest *domain.Manifest, r *run) ([]string, error) {
	pending, err := s.journal.Pending(ctx)
	if err != nil {
		return nil, err
	}

	var recovered []string
	for _, entry := range pending {
		if manifest.Has(entry.Path) {
			continue
		}
		if _, ok := manifest.FindByHash(entry.Asset.ContentHash); ok {
			continue
		}

		dest := filepath.Join(outputRoot, filepath.FromSlash(entry.Path))
		if !exists(dest) {
			r.logf("journal: %s was never moved, dropping", entry.Path)
			continue
		}

		digest, err := s.hasher.File(dest)
		if err != nil || hasher.Tag(digest) != entry.Asset.ContentHash {
			r.logf("journal: %s changed since it was moved, dropping", entry.Path)
			continue
		}

		asset, err := s.buildAsset(dest, entry.Asset.OriginalName, entry.Asset.ContentHash, entry.Asset.Category, entry.Asset.UploadedAt)
		if err != nil {
			return recovered, err
		}
		if err := manifest.Add(entry.Path, asset); err != nil {
			return recovered, err
		}
		r.logf("journal: recovered %s from run %s", entry.Path, entry.RunID)
		recovered = append(recovered, entry.Path)
	}

	return recovered, nil
}

func (s *OrganizerService) buildAsset(destPath, originalName, hash string, category domain.Category, uploadedAt time.Time) (domain.Asset, error) {
	info, err := os.Stat(destPath)
	if err != nil {
		return domain.Asset{}, fmt.Errorf("failed to stat %s: %w", destPath, err)
	}

	asset := domain.Asset{
		OriginalName: originalName,
		ContentHash:  hash,
		SizeBytes:    info.Size(),
		MimeType:     s.prober.MimeType(destPath),
		Category:     category,
		UploadedAt:   uploadedAt.UTC(),
	}
	if category.IsImageLike() {
		asset.Dimensions = s.prober.Dimensions(destPath)
	}
	return asset, nil
}

func (s *OrganizerService) isSystemFile(name string) bool {
	for _, pattern := range s.ignore {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// listInputFiles returns the regular files directly inside dir, sorted by name
func listInputFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		// Stat follows symlinks
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, p)
	}
	return files, nil
}

// resolveName appends _1, _2, ... to the stem until neither the disk nor the
// manifest holds the candidate path.
func resolveName(destDir, category, name string, manifest *domain.Manifest) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := name
	for counter := 1; ; counter++ {
		if !exists(filepath.Join(destDir, candidate)) && !manifest.Has(path.Join(category, candidate)) {
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d%s", stem, counter, ext)
	}
}

func exists(p string) bool {
	_, err := os.Lstat(p)
	return err == nil
}

// moveFile renames src to dst, falling back to copy and remove across filesystems
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := copyFile(src, dst); err != nil {
		os.Remove(dst)
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
