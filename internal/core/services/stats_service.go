package services

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/afromations/assetctl/internal/core/domain"
	"github.com/afromations/assetctl/internal/core/ports"
)

// CategoryStats aggregates one category
type CategoryStats struct {
	Category domain.Category
	Count    int
	Bytes    int64
}

// Stats summarizes a manifest
type Stats struct {
	TotalAssets int
	TotalBytes  int64

	// Every category, in canonical order, including empty ones
	Categories []CategoryStats

	Largest []domain.AssetEntry // Biggest first
	Newest  *domain.AssetEntry
}

// StatsService aggregates manifest statistics
type StatsService struct {
	store ports.ManifestStore
}

func NewStatsService(store ports.ManifestStore) *StatsService {
	return &StatsService{store: store}
}

// Execute loads the manifest and computes statistics, keeping the top n largest assets
func (s *StatsService) Execute(ctx context.Context, manifestPath string, top int) (*Stats, error) {
	m, err := s.store.Load(ctx, manifestPath)
	if err != nil {
		return nil, err
	}
	return Compute(m, top), nil
}

// Compute aggregates the manifest in memory
func Compute(m *domain.Manifest, top int) *Stats {
	stats := &Stats{}

	byCategory := make(map[domain.Category]*CategoryStats)
	for _, c := range domain.AllCategories() {
		byCategory[c] = &CategoryStats{Category: c}
	}

	entries := m.Entries()
	for i, e := range entries {
		stats.TotalAssets++
		stats.TotalBytes += e.Asset.SizeBytes

		cs, ok := byCategory[e.Asset.Category]
		if !ok {
			cs = byCategory[domain.CategoryMisc]
		}
		cs.Count++
		cs.Bytes += e.Asset.SizeBytes

		if stats.Newest == nil || e.Asset.UploadedAt.After(stats.Newest.Asset.UploadedAt) {
			stats.Newest = &entries[i]
		}
	}

	for _, c := range domain.AllCategories() {
		stats.Categories = append(stats.Categories, *byCategory[c])
	}

	largest := make([]domain.AssetEntry, len(entries))
	copy(largest, entries)
	sort.SliceStable(largest, func(i, j int) bool {
		return largest[i].Asset.SizeBytes > largest[j].Asset.SizeBytes
	})
	if top >= 0 && top < len(largest) {
		largest = largest[:top]
	}
	stats.Largest = largest

	return stats
}

// RenderChart writes an HTML bar chart of asset counts and sizes per category
func (s *Stats) RenderChart(w io.Writer) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Assets by category",
			Subtitle: fmt.Sprintf("%d assets, %s", s.TotalAssets, FormatBytes(s.TotalBytes)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	var labels []string
	counts := make([]opts.BarData, 0, len(s.Categories))
	sizes := make([]opts.BarData, 0, len(s.Categories))
	for _, c := range s.Categories {
		labels = append(labels, string(c.Category))
		counts = append(counts, opts.BarData{Value: c.Count})
		sizes = append(sizes, opts.BarData{Value: c.Bytes / 1024})
	}

	bar.SetXAxis(labels).
		AddSeries("files", counts).
		AddSeries("KiB", sizes)

	return bar.Render(w)
}

// FormatBytes renders a size with a binary unit
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
