// Package expand substitutes $NAME references with values from an
// environment snapshot.
//
// This is a literal substring replacement, not a shell expander: there is
// no ${NAME} form, no default values, no escaping and no recursion. A
// reference to a name absent from the snapshot is left as written.
//
// When one variable name is a prefix of another ($FOO and $FOOBAR) the
// result would depend on substitution order. Names are therefore
// substituted longest first, so "$FOOBAR" always resolves to FOOBAR.
package expand

import (
	"cmp"
	"slices"
	"strings"
)

// Expand replaces every occurrence of $name in s with env[name].
// Each position of s is substituted at most once.
func Expand(s string, env map[string]string) string {
	if !strings.Contains(s, "$") || len(env) == 0 {
		return s
	}

	names := candidates(s, env)
	if len(names) == 0 {
		return s
	}

	// Substitutions are done in one left-to-right scan so that text coming
	// from an env value is never searched again.
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '$' {
			if name, ok := matchAt(s[i+1:], names); ok {
				b.WriteString(env[name])
				i += 1 + len(name)
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// Environ converts an os.Environ-style list into a map. Later duplicates
// win, entries without '=' are ignored.
func Environ(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}

// candidates returns the names referenced somewhere in s, longest first.
func candidates(s string, env map[string]string) []string {
	var names []string
	for name := range env {
		if name != "" && strings.Contains(s, "$"+name) {
			names = append(names, name)
		}
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return names
}

func matchAt(rest string, names []string) (string, bool) {
	for _, name := range names {
		if strings.HasPrefix(rest, name) {
			return name, true
		}
	}
	return "", false
}
