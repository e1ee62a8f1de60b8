package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/afromations/assetctl/internal/core/domain"
	"github.com/afromations/assetctl/internal/core/ports"
	"github.com/afromations/assetctl/pkg/hasher"
	"github.com/afromations/assetctl/pkg/workspace"
)

// VerifyStatus is the integrity state of a single path
type VerifyStatus string

const (
	VerifyOK         VerifyStatus = "ok"
	VerifyMissing    VerifyStatus = "missing"
	VerifyMismatch   VerifyStatus = "mismatch"
	VerifyUntracked  VerifyStatus = "untracked"
	VerifyUnreadable VerifyStatus = "unreadable"
)

// VerifyResult is the check outcome for one path
type VerifyResult struct {
	Path     string
	Status   VerifyStatus
	Expected string // Hash recorded in the manifest
	Actual   string // Hash found on disk, empty when missing or untracked
	Err      error  // Read failure for unreadable files
}

// VerifyResponse lists every checked path, sorted
type VerifyResponse struct {
	Results []VerifyResult
	Counts  map[VerifyStatus]int
}

// Problems returns every result that is not ok
func (r *VerifyResponse) Problems() []VerifyResult {
	var out []VerifyResult
	for _, res := range r.Results {
		if res.Status != VerifyOK {
			out = append(out, res)
		}
	}
	return out
}

// OK reports whether the output tree matches the manifest exactly
func (r *VerifyResponse) OK() bool {
	return len(r.Problems()) == 0
}

// VerifyService re-hashes the output tree against the manifest
type VerifyService struct {
	store   ports.ManifestStore
	hasher  ports.Hasher
	workers int
}

// NewVerifyService creates a verifier. workers bounds concurrent hashing.
func NewVerifyService(store ports.ManifestStore, h ports.Hasher, workers int) *VerifyService {
	if workers < 1 {
		workers = 1
	}
	return &VerifyService{store: store, hasher: h, workers: workers}
}

// Execute checks every manifest entry and looks for untracked files in the category directories
func (s *VerifyService) Execute(ctx context.Context, ws *workspace.Workspace) (*VerifyResponse, error) {
	manifest, err := s.store.Load(ctx, ws.ManifestPath)
	if err != nil {
		return nil, err
	}

	entries := manifest.Entries()
	results := make([]VerifyResult, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, entry := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.check(ws, entry)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	untracked, err := findUntracked(ws, manifest)
	if err != nil {
		return nil, err
	}
	results = append(results, untracked...)

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	resp := &VerifyResponse{Results: results, Counts: make(map[VerifyStatus]int)}
	for _, r := range results {
		resp.Counts[r.Status]++
	}
	return resp, nil
}

func (s *VerifyService) check(ws *workspace.Workspace, entry domain.AssetEntry) VerifyResult {
	res := VerifyResult{Path: entry.Path, Expected: entry.Asset.ContentHash}

	digest, err := s.hasher.File(ws.GetAssetPath(entry.Path))
	if errors.Is(err, fs.ErrNotExist) {
		res.Status = VerifyMissing
		return res
	}
	if err != nil {
		res.Status = VerifyUnreadable
		res.Err = err
		return res
	}

	res.Actual = hasher.Tag(digest)
	if res.Actual != res.Expected {
		res.Status = VerifyMismatch
		return res
	}
	res.Status = VerifyOK
	return res
}

// findUntracked lists regular files inside category directories that the manifest does not know
func findUntracked(ws *workspace.Workspace, manifest *domain.Manifest) ([]VerifyResult, error) {
	var out []VerifyResult

	for _, c := range domain.AllCategories() {
		dir := ws.GetCategoryPath(c)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", dir, err)
		}

		for _, e := range entries {
			if !e.Type().IsRegular() {
				continue
			}
			rel := path.Join(string(c), e.Name())
			if manifest.Has(rel) {
				continue
			}
			out = append(out, VerifyResult{Path: rel, Status: VerifyUntracked})
		}
	}

	return out, nil
}
