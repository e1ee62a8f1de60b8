package cmd

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/afromations/assetctl/internal/core/domain"
	"github.com/afromations/assetctl/internal/core/services"
	"github.com/afromations/assetctl/pkg/ui"
)

var (
	listCategory string
	listPick     bool
	listGallery  bool
)

var listCmd = &cobra.Command{
	Use:     "list [query]",
	Aliases: []string{"ls"},
	Short:   "List assets recorded in the manifest",
	Long: `List manifest entries as a table.

The optional query matches the stored path or the original filename
(case-insensitive). Use --category to restrict to one category.

  --pick     choose an asset with a fuzzy finder and copy its path
  --gallery  open an HTML gallery of the matching images`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Only show this category")
	listCmd.Flags().BoolVarP(&listPick, "pick", "p", false, "Pick an asset interactively and copy its path")
	listCmd.Flags().BoolVarP(&listGallery, "gallery", "g", false, "View image assets in a browser")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx, cancel := getContext()
	defer cancel()

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	var category domain.Category
	if listCategory != "" {
		c, err := domain.ParseCategory(listCategory)
		if err != nil {
			return err
		}
		category = c
	}

	m, err := manifestRepo.Load(ctx, appWorkspace.ManifestPath)
	if err != nil {
		return err
	}

	entries := filterEntries(m.Entries(), query, category)
	if len(entries) == 0 {
		fmt.Println(ui.FormatWarning("No matching assets found."))
		return nil
	}

	if listPick {
		return pickAsset(entries)
	}
	if listGallery {
		return generateGallery(entries, query)
	}

	title := fmt.Sprintf("Assets (%d)", len(entries))
	if category != "" {
		title = fmt.Sprintf("Assets in %s (%d)", category, len(entries))
	}
	fmt.Println(ui.FormatTitle(title))
	fmt.Println()
	fmt.Print(renderAssetTable(entries))

	return nil
}

// filterEntries keeps entries whose path or original name contains query, optionally in one category
func filterEntries(entries []domain.AssetEntry, query string, category domain.Category) []domain.AssetEntry {
	q := strings.ToLower(query)

	var out []domain.AssetEntry
	for _, e := range entries {
		if category != "" && e.Asset.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(e.Path), q) &&
			!strings.Contains(strings.ToLower(e.Asset.OriginalName), q) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func renderAssetTable(entries []domain.AssetEntry) string {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "PATH", MaxWidth: 48},
		{Header: "ORIGINAL", MaxWidth: 32},
		{Header: "SIZE", Align: "right"},
		{Header: "TYPE"},
		{Header: "DIMENSIONS", Align: "right"},
		{Header: "UPLOADED"},
	})

	for _, e := range entries {
		dims := ""
		if d := e.Asset.Dimensions; d != nil {
			dims = fmt.Sprintf("%dx%d", d.Width, d.Height)
		}
		table.AddRow([]string{
			e.Path,
			e.Asset.OriginalName,
			services.FormatBytes(e.Asset.SizeBytes),
			e.Asset.MimeType,
			dims,
			e.Asset.UploadedAt.Local().Format("2006-01-02 15:04"),
		})
	}

	return table.Render()
}

// pickAsset launches the fuzzy finder and copies the chosen path
func pickAsset(entries []domain.AssetEntry) error {
	idx, err := fuzzyfinder.Find(
		entries,
		func(i int) string {
			e := entries[i]
			return fmt.Sprintf("%s  %s", e.Path, e.Asset.OriginalName)
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			e := entries[i]

			var s strings.Builder
			s.WriteString(fmt.Sprintf("Path:     %s\n", e.Path))
			s.WriteString(fmt.Sprintf("Original: %s\n", e.Asset.OriginalName))
			s.WriteString(fmt.Sprintf("Category: %s\n", e.Asset.Category))
			s.WriteString(fmt.Sprintf("Size:     %s\n", services.FormatBytes(e.Asset.SizeBytes)))
			s.WriteString(fmt.Sprintf("Type:     %s\n", e.Asset.MimeType))
			if d := e.Asset.Dimensions; d != nil {
				s.WriteString(fmt.Sprintf("Pixels:   %dx%d\n", d.Width, d.Height))
			}
			s.WriteString(fmt.Sprintf("Uploaded: %s\n", e.Asset.UploadedAt.Local().Format("Jan 02, 2006 15:04")))
			s.WriteString("\n")
			s.WriteString(e.Asset.ContentHash)
			return s.String()
		}),
	)
	if err != nil {
		fmt.Println(ui.FormatInfo("Selection cancelled."))
		return nil
	}

	selected := entries[idx]
	fmt.Println(ui.FormatSuccess("Selected: " + selected.Path))

	if err := clipboard.WriteAll(selected.Path); err != nil {
		fmt.Println(ui.FormatMuted("(Clipboard access failed)"))
		return nil
	}
	fmt.Println(ui.FormatMuted("Path copied to clipboard"))
	return nil
}

func generateGallery(entries []domain.AssetEntry, query string) error {
	var b strings.Builder
	title := "All assets"
	if query != "" {
		title = fmt.Sprintf("Results: %q", query)
	}

	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>assetctl gallery</title>
	<style>
		body { font-family: sans-serif; background: #1a1b26; color: #a9b1d6; padding: 20px; }
		.grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(200px, 1fr)); gap: 20px; }
		.card { background: #24283b; border-radius: 8px; padding: 10px; }
		.card img { width: 100%; height: 150px; object-fit: contain; background: #000; }
		.title { color: #7aa2f7; font-weight: bold; display: block; margin-top: 5px; word-break: break-all; }
		.desc { font-size: 0.9em; margin-top: 5px; display: block; }
	</style></head><body><h1>` + html.EscapeString(title) + `</h1><div class="grid">`)

	shown := 0
	for _, e := range entries {
		if !e.Asset.Category.IsImageLike() {
			continue
		}
		abs, err := filepath.Abs(appWorkspace.GetAssetPath(e.Path))
		if err != nil {
			continue
		}
		src := html.EscapeString("file://" + filepath.ToSlash(abs))
		b.WriteString(fmt.Sprintf(`
		<div class="card">
			<a href="%s" target="_blank"><img src="%s" loading="lazy"></a>
			<span class="title">%s</span>
			<span class="desc">%s</span>
		</div>`, src, src, html.EscapeString(e.Path), html.EscapeString(services.FormatBytes(e.Asset.SizeBytes))))
		shown++
	}
	b.WriteString(`</div></body></html>`)

	if shown == 0 {
		fmt.Println(ui.FormatWarning("No image assets to show."))
		return nil
	}

	if err := os.MkdirAll(appWorkspace.CachePath, 0755); err != nil {
		return err
	}
	path := appWorkspace.GetCachePath("gallery.html")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return err
	}

	fmt.Println(ui.FormatRocket("Opening gallery..."))
	return OpenFile(path, appConfig.Viewer)
}
