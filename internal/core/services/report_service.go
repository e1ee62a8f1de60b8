package services

import (
	"github.com/afromations/assetctl/internal/core/domain"
	"github.com/afromations/assetctl/pkg/config"
)

// ChecklistItem is a required asset and whether the manifest holds it
type ChecklistItem struct {
	Name    string
	Purpose string
	Found   bool
}

// Status returns FOUND or MISSING
func (c ChecklistItem) Status() string {
	if c.Found {
		return "FOUND"
	}
	return "MISSING"
}

// Report summarizes a run
type Report struct {
	Organized int
	Skipped   int
	SkippedBy map[domain.SkipReason]int
	DryRun    bool

	TotalAssets int
	Checklist   []ChecklistItem
}

// Missing returns the checklist items that were not found
func (r *Report) Missing() []ChecklistItem {
	var missing []ChecklistItem
	for _, item := range r.Checklist {
		if !item.Found {
			missing = append(missing, item)
		}
	}
	return missing
}

// ReportService builds run summaries and the required-asset checklist
type ReportService struct {
	required []config.RequiredAsset
}

// NewReportService creates a report service for the given checklist
func NewReportService(required []config.RequiredAsset) *ReportService {
	return &ReportService{required: required}
}

// Checklist marks each required asset FOUND when any manifest path contains its name
func (s *ReportService) Checklist(m *domain.Manifest) []ChecklistItem {
	items := make([]ChecklistItem, 0, len(s.required))
	for _, r := range s.required {
		items = append(items, ChecklistItem{
			Name:    r.Name,
			Purpose: r.Purpose,
			Found:   m.ContainsName(r.Name),
		})
	}
	return items
}

// Build summarizes per-file results against the manifest
func (s *ReportService) Build(m *domain.Manifest, results []domain.FileResult, dryRun bool) *Report {
	report := &Report{
		SkippedBy:   make(map[domain.SkipReason]int),
		DryRun:      dryRun,
		TotalAssets: m.Count(),
		Checklist:   s.Checklist(m),
	}

	for _, r := range results {
		if r.Organized() {
			report.Organized++
			continue
		}
		report.Skipped++
		report.SkippedBy[r.Reason]++
	}

	return report
}
