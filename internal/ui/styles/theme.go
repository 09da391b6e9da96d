package styles

import (
	"image/color"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-isatty"

	"github.com/jsonenv/json_env/internal/config"
)

// Theme defines the color palette for UI components
type Theme struct {
	Primary color.Color // titles, file paths
	Success color.Color // trusted, added
	Error   color.Color // failures
	Muted   color.Color // secondary text
	Warning color.Color // untrusted files
}

// themeFamily groups light and dark variants of a theme
type themeFamily struct {
	Light *Theme
	Dark  *Theme
}

var (
	// DefaultTheme is the default color scheme (dark)
	DefaultTheme = Theme{
		Primary: lipgloss.Color("62"),
		Success: lipgloss.Color("82"),
		Error:   lipgloss.Color("196"),
		Muted:   lipgloss.Color("240"),
		Warning: lipgloss.Color("214"),
	}

	// DefaultLightTheme darkens the default palette for light terminals
	DefaultLightTheme = Theme{
		Primary: lipgloss.Color("25"),
		Success: lipgloss.Color("28"),
		Error:   lipgloss.Color("160"),
		Muted:   lipgloss.Color("245"),
		Warning: lipgloss.Color("130"),
	}

	// NordTheme is based on the Nord color scheme (dark)
	NordTheme = Theme{
		Primary: lipgloss.Color("#88c0d0"), // nord8
		Success: lipgloss.Color("#a3be8c"), // nord14
		Error:   lipgloss.Color("#bf616a"), // nord11
		Muted:   lipgloss.Color("#4c566a"), // nord3
		Warning: lipgloss.Color("#ebcb8b"), // nord13
	}

	// NordLightTheme is based on the Nord color scheme (light)
	NordLightTheme = Theme{
		Primary: lipgloss.Color("#5e81ac"), // nord10
		Success: lipgloss.Color("#a3be8c"),
		Error:   lipgloss.Color("#bf616a"),
		Muted:   lipgloss.Color("#9a9a9a"),
		Warning: lipgloss.Color("#d08770"), // nord12
	}

	// NoneTheme renders without any colors; bold is preserved
	NoneTheme = Theme{
		Primary: lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
	}
)

var themeFamilies = map[string]themeFamily{
	"default": {Light: &DefaultLightTheme, Dark: &DefaultTheme},
	"nord":    {Light: &NordLightTheme, Dark: &NordTheme},
	"none":    {Light: &NoneTheme, Dark: &NoneTheme},
}

var currentTheme = DefaultTheme

// hasDarkBackground is swapped out in tests.
var hasDarkBackground = func() bool {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return true
	}
	return lipgloss.HasDarkBackground(os.Stdin, os.Stderr)
}

// Current returns the current theme
func Current() Theme {
	return currentTheme
}

// Init selects the theme from config and updates the shared styles.
// Call this after loading config and before rendering anything.
func Init(cfg config.ThemeConfig) {
	currentTheme = selectTheme(cfg)
	applyTheme(currentTheme)
}

func selectTheme(cfg config.ThemeConfig) Theme {
	family, ok := themeFamilies[cfg.Name]
	if !ok {
		family = themeFamilies[config.DefaultThemeName]
	}

	switch cfg.Mode {
	case "light":
		return *family.Light
	case "dark":
		return *family.Dark
	}
	if hasDarkBackground() {
		return *family.Dark
	}
	return *family.Light
}

func applyTheme(t Theme) {
	Primary = t.Primary
	Success = t.Success
	Error = t.Error
	Muted = t.Muted
	Warning = t.Warning

	PrimaryStyle = lipgloss.NewStyle().Foreground(t.Primary)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)
}
