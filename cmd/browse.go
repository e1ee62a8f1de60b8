package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/afromations/assetctl/internal/core/domain"
	"github.com/afromations/assetctl/internal/core/services"
	"github.com/afromations/assetctl/pkg/ui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the manifest interactively",
	Long: `Browse every recorded asset in a terminal table.

Controls:
  - ↑/↓   : Navigate
  - Tab   : Cycle category filter
  - Enter : Open the asset
  - c     : Copy the asset path
  - q     : Quit`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx, cancel := getContext()
	defer cancel()

	m, err := manifestRepo.Load(ctx, appWorkspace.ManifestPath)
	if err != nil {
		return err
	}
	if m.Count() == 0 {
		fmt.Println(ui.FormatWarning("The manifest is empty. Run 'assetctl organize' first."))
		return nil
	}

	p := tea.NewProgram(initialBrowseModel(m.Entries()))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// --- TUI Model ---

type browseModel struct {
	table   table.Model
	all     []domain.AssetEntry
	visible []domain.AssetEntry

	// Index into filters; 0 shows every category
	filter  int
	filters []domain.Category
	status  string
}

func initialBrowseModel(entries []domain.AssetEntry) browseModel {
	columns := []table.Column{
		{Title: "Path", Width: 40},
		{Title: "Original", Width: 24},
		{Title: "Size", Width: 10},
		{Title: "Type", Width: 20},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorMuted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(ui.ColorDefault).
		Background(ui.ColorPrimary).
		Bold(true)
	t.SetStyles(s)

	m := browseModel{
		table:   t,
		all:     entries,
		filters: append([]domain.Category{""}, domain.AllCategories()...),
	}
	m.applyFilter()
	return m
}

func (m *browseModel) applyFilter() {
	category := m.filters[m.filter]
	m.visible = filterEntries(m.all, "", category)

	rows := make([]table.Row, 0, len(m.visible))
	for _, e := range m.visible {
		rows = append(rows, table.Row{
			runewidth.Truncate(e.Path, 40, "…"),
			runewidth.Truncate(e.Asset.OriginalName, 24, "…"),
			services.FormatBytes(e.Asset.SizeBytes),
			e.Asset.MimeType,
		})
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m browseModel) selected() (domain.AssetEntry, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return domain.AssetEntry{}, false
	}
	return m.visible[idx], true
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "tab":
			m.filter = (m.filter + 1) % len(m.filters)
			m.applyFilter()
			m.status = ""
			return m, nil

		case "shift+tab":
			m.filter = (m.filter - 1 + len(m.filters)) % len(m.filters)
			m.applyFilter()
			m.status = ""
			return m, nil

		case "enter":
			if target, ok := m.selected(); ok {
				path := appWorkspace.GetAssetPath(target.Path)
				if err := OpenFile(path, appConfig.Viewer); err != nil {
					m.status = err.Error()
				} else {
					m.status = "Opened " + target.Path
				}
			}
			return m, nil

		case "c":
			if target, ok := m.selected(); ok {
				if err := clipboard.WriteAll(target.Path); err != nil {
					m.status = "Clipboard access failed"
				} else {
					m.status = "Copied " + target.Path
				}
			}
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m browseModel) View() string {
	label := "all"
	if c := m.filters[m.filter]; c != "" {
		label = string(c)
	}

	header := ui.StyleTitle.Render(" Assets ") + " " +
		ui.FormatMuted(fmt.Sprintf("%s · %d of %d", label, len(m.visible), len(m.all)))

	body := m.table.View()
	if len(m.visible) == 0 {
		body = ui.FormatMuted("  No assets in this category")
	}

	footer := ui.FormatMuted(" [Tab] Category  [Enter] Open  [c] Copy path  [q] Quit")
	if m.status != "" {
		footer = ui.StyleInfo.Render(" "+m.status) + "\n" + footer
	}

	return "\n" + header + "\n\n" + body + "\n\n" + footer + "\n"
}
