package shell

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// Marker identifies the line Install writes into a profile.
const Marker = "# json_env shell hook"

// ReservedPrefix marks variables that configure json_env itself. They are
// never exported into a shell, so a loaded file cannot change which files
// later hook runs trust.
const ReservedPrefix = "JSON_ENV_"

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Variant describes one supported shell.
type Variant struct {
	Name string
	// Profile is the startup file relative to the home directory.
	Profile string
	// Hook is the script printed by "json_env init".
	Hook string
	// Loader is the profile line that evaluates Hook.
	Loader string

	quote  func(string) string
	export string
}

var variants = []Variant{
	{
		Name:    "bash",
		Profile: ".bashrc",
		Hook:    bashHook,
		Loader:  `eval "$(json_env init bash)"`,
		quote:   posixQuote,
		export:  "export %s=%s",
	},
	{
		Name:    "zsh",
		Profile: ".zshrc",
		Hook:    zshHook,
		Loader:  `eval "$(json_env init zsh)"`,
		quote:   posixQuote,
		export:  "export %s=%s",
	},
	{
		Name:    "fish",
		Profile: filepath.Join(".config", "fish", "config.fish"),
		Hook:    fishHook,
		Loader:  "json_env init fish | source",
		quote:   fishQuote,
		export:  "set -gx %s %s",
	},
}

// Names lists the supported shells.
func Names() []string {
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.Name
	}
	return names
}

// Lookup returns the variant for name.
func Lookup(name string) (Variant, error) {
	for _, v := range variants {
		if v.Name == name {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("unsupported shell: %s (supported: %s)", name, strings.Join(Names(), ", "))
}

// Detect picks the variant named by the basename of a $SHELL value.
func Detect(shellEnv string) (Variant, error) {
	if shellEnv == "" {
		return Variant{}, fmt.Errorf("cannot detect shell: $SHELL is not set")
	}
	return Lookup(filepath.Base(shellEnv))
}

// Export renders one assignment. The value is quoted so the shell takes it
// literally.
func (v Variant) Export(key, value string) string {
	return fmt.Sprintf(v.export, key, v.quote(value))
}

// Exportable reports whether key can be assigned by a shell script: a plain
// identifier outside ReservedPrefix.
func Exportable(key string) bool {
	return namePattern.MatchString(key) && !strings.HasPrefix(key, ReservedPrefix)
}

// Script renders assignments for vars in key order, one per line. Keys that
// are not Exportable are left out and returned in skipped, sorted.
func (v Variant) Script(vars map[string]string) (script string, skipped []string) {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	for _, k := range keys {
		if !Exportable(k) {
			skipped = append(skipped, k)
			continue
		}
		b.WriteString(v.Export(k, vars[k]))
		b.WriteByte('\n')
	}
	return b.String(), skipped
}

// posixQuote wraps s in single quotes. A single quote is written by closing
// the quoted string, adding an escaped quote, and reopening: it's -> 'it'\''s'.
func posixQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// fishQuote wraps s in single quotes. Fish treats \\ and \' as escapes
// inside single quotes.
func fishQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

const bashHook = `# json_env shell hook
# Install: eval "$(json_env init bash)"

_json_env_hook() {
    if [[ "$PWD" != "${_JSON_ENV_LAST_PWD:-}" ]]; then
        _JSON_ENV_LAST_PWD="$PWD"
        eval "$(command json_env hook bash)"
    fi
}

if [[ ";${PROMPT_COMMAND:-};" != *";_json_env_hook;"* ]]; then
    PROMPT_COMMAND="_json_env_hook${PROMPT_COMMAND:+;$PROMPT_COMMAND}"
fi
`

const zshHook = `# json_env shell hook
# Install: eval "$(json_env init zsh)"

_json_env_hook() {
    eval "$(command json_env hook zsh)"
}

autoload -Uz add-zsh-hook
add-zsh-hook chpwd _json_env_hook
_json_env_hook
`

const fishHook = `# json_env shell hook
# Install: json_env init fish | source
# Or add to config.fish: json_env init fish | source

function __json_env_hook --on-variable PWD --description 'Export variables from trusted .env.json files'
    command json_env hook fish | source
end

__json_env_hook
`
