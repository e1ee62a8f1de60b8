package services

import (
	"testing"

	"github.com/afromations/assetctl/internal/core/domain"
	"github.com/afromations/assetctl/pkg/config"
)

func TestReportService_Checklist(t *testing.T) {
	svc := NewReportService([]config.RequiredAsset{
		{Name: "afromations_flag_pick.gif", Purpose: "Hero section background media"},
		{Name: "logo.svg", Purpose: "Site header"},
	})

	m := domain.NewManifest()
	_ = m.Add("hero/afromations_flag_pick.gif", domain.Asset{ContentHash: "sha256:1"})

	items := svc.Checklist(m)
	if len(items) != 2 {
		t.Fatalf("expected 2 checklist items, got %d", len(items))
	}
	if items[0].Status() != "FOUND" {
		t.Errorf("expected hero media FOUND, got %s", items[0].Status())
	}
	if items[1].Status() != "MISSING" || items[1].Purpose != "Site header" {
		t.Errorf("expected logo MISSING, got %+v", items[1])
	}
}

func TestReportService_Build(t *testing.T) {
	svc := NewReportService(config.DefaultRequiredAssets())
	m := domain.NewManifest()
	_ = m.Add("video/clip.mp4", domain.Asset{ContentHash: "sha256:1"})

	results := []domain.FileResult{
		{Name: "clip.mp4", Path: "video/clip.mp4"},
		{Name: "clip_copy.mp4", Skipped: true, Reason: domain.SkipDuplicate, MatchedPath: "video/clip.mp4"},
		{Name: ".DS_Store", Skipped: true, Reason: domain.SkipSystemFile},
		{Name: "README.md", Skipped: true, Reason: domain.SkipSystemFile},
	}

	report := svc.Build(m, results, false)

	if report.Organized != 1 || report.Skipped != 3 {
		t.Errorf("expected 1 organized, 3 skipped, got %d/%d", report.Organized, report.Skipped)
	}
	if report.SkippedBy[domain.SkipSystemFile] != 2 || report.SkippedBy[domain.SkipDuplicate] != 1 {
		t.Errorf("unexpected skip breakdown: %v", report.SkippedBy)
	}
	if report.TotalAssets != 1 {
		t.Errorf("expected 1 total asset, got %d", report.TotalAssets)
	}
	if missing := report.Missing(); len(missing) != 1 || missing[0].Name != "afromations_flag_pick.gif" {
		t.Errorf("expected hero media missing, got %+v", missing)
	}
}

func TestReportService_EmptyChecklist(t *testing.T) {
	svc := NewReportService(nil)
	report := svc.Build(domain.NewManifest(), nil, true)

	if len(report.Checklist) != 0 || len(report.Missing()) != 0 {
		t.Errorf("expected empty checklist, got %+v", report.Checklist)
	}
	if !report.DryRun {
		t.Error("expected dry-run flag to carry through")
	}
}
