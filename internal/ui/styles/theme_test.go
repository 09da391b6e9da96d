package styles

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/jsonenv/json_env/internal/config"
)

// Tests in this file mutate package state and must not run in parallel.

func TestInit_Modes(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ThemeConfig
		dark bool
		want Theme
	}{
		{"default dark", config.ThemeConfig{Name: "default", Mode: "dark"}, false, DefaultTheme},
		{"default light", config.ThemeConfig{Name: "default", Mode: "light"}, true, DefaultLightTheme},
		{"nord auto on dark", config.ThemeConfig{Name: "nord", Mode: "auto"}, true, NordTheme},
		{"nord auto on light", config.ThemeConfig{Name: "nord", Mode: "auto"}, false, NordLightTheme},
		{"empty config", config.ThemeConfig{}, true, DefaultTheme},
		{"unknown name falls back", config.ThemeConfig{Name: "solarized", Mode: "dark"}, true, DefaultTheme},
	}

	orig := hasDarkBackground
	defer func() {
		hasDarkBackground = orig
		Init(config.ThemeConfig{Mode: "dark"})
	}()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dark := tt.dark
			hasDarkBackground = func() bool { return dark }

			Init(tt.cfg)
			if got := Current(); got != tt.want {
				t.Errorf("Current() = %+v, want %+v", got, tt.want)
			}
			if Primary != tt.want.Primary {
				t.Errorf("Primary = %v, want %v", Primary, tt.want.Primary)
			}
		})
	}
}

func TestInit_NoneThemeHasNoColor(t *testing.T) {
	defer Init(config.ThemeConfig{Mode: "dark"})

	Init(config.ThemeConfig{Name: "none", Mode: "dark"})
	if got := SuccessStyle.Render("trusted"); got != "trusted" {
		t.Errorf("none theme rendered %q, want plain text", got)
	}
}

func TestWriter_StripsColorForNonTerminal(t *testing.T) {
	defer Init(config.ThemeConfig{Mode: "dark"})
	Init(config.ThemeConfig{Name: "default", Mode: "dark"})

	var buf bytes.Buffer
	fmt.Fprint(Writer(&buf), Trusted(true))

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("Writer output %q still contains escape sequences", buf.String())
	}
	if buf.String() != "trusted" {
		t.Errorf("Writer output = %q, want trusted", buf.String())
	}
}
