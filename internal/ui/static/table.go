// Package static provides non-interactive terminal output components.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/jsonenv/json_env/internal/ui/styles"
)

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// FileStatus is one located config file with its trust state.
type FileStatus struct {
	Path    string
	Trusted bool
	Active  bool // the file commands use by default
}

// StatusTableRow converts a FileStatus into a row for RenderTable.
func StatusTableRow(s FileStatus) []string {
	marker := ""
	if s.Active {
		marker = "*"
	}
	return []string{marker, s.Path, styles.Trusted(s.Trusted)}
}

// StatusHeaders matches StatusTableRow.
var StatusHeaders = []string{"", "FILE", "TRUST"}

// VarsTableRows renders resolved variables with the source each came from.
func VarsTableRows(keys []string, vars, origins map[string]string) [][]string {
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, vars[k], styles.MutedStyle.Render(origins[k])})
	}
	return rows
}

// VarsHeaders matches VarsTableRows.
var VarsHeaders = []string{"KEY", "VALUE", "SOURCE"}
