// Package styles provides shared lipgloss styles for json_env's terminal
// output.
//
// Styles are rendered with full color and downsampled on the way out by
// Writer, so output piped to a file or another program carries no escape
// sequences.
package styles

import (
	"image/color"
	"io"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
)

// Palette colors, replaced by Init.
var (
	Primary color.Color = DefaultTheme.Primary
	Success color.Color = DefaultTheme.Success
	Error   color.Color = DefaultTheme.Error
	Muted   color.Color = DefaultTheme.Muted
	Warning color.Color = DefaultTheme.Warning
)

// Common styles
var (
	Bold = lipgloss.NewStyle().Bold(true)

	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
)

// Writer wraps w so that styled text is reduced to what the destination
// supports, stripping color entirely for non-terminals and NO_COLOR.
func Writer(w io.Writer) io.Writer {
	return colorprofile.NewWriter(w, os.Environ())
}

// Trusted renders a trust state label.
func Trusted(trusted bool) string {
	if trusted {
		return SuccessStyle.Render("trusted")
	}
	return WarningStyle.Render("untrusted")
}
