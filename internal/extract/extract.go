// Package extract selects nodes from a loaded document with a JSONPath
// expression.
package extract

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ohler55/ojg/jp"
	"github.com/sahilm/fuzzy"

	"github.com/jsonenv/json_env/internal/source"
)

// maxSuggestions caps the "did you mean" list on a PathError.
const maxSuggestions = 3

// PathErrorKind classifies why an expression produced no usable nodes.
type PathErrorKind int

const (
	// PathInvalid means the expression could not be parsed.
	PathInvalid PathErrorKind = iota
	// PathNoMatch means the expression selected nothing.
	PathNoMatch
	// PathNoObject means the expression matched, but no match is an object.
	PathNoObject
)

func (k PathErrorKind) String() string {
	switch k {
	case PathInvalid:
		return "invalid expression"
	case PathNoMatch:
		return "no match"
	case PathNoObject:
		return "no object"
	}
	return fmt.Sprintf("PathErrorKind(%d)", int(k))
}

// PathError reports an expression that could not be applied to a file.
type PathError struct {
	File        string
	Expression  string
	Kind        PathErrorKind
	Suggestions []string
	Err         error
}

func (e *PathError) Error() string {
	var b strings.Builder
	switch e.Kind {
	case PathInvalid:
		fmt.Fprintf(&b, "invalid path expression %q for %s", e.Expression, e.File)
	case PathNoMatch:
		fmt.Fprintf(&b, "path %q matched nothing in %s", e.Expression, e.File)
	case PathNoObject:
		fmt.Fprintf(&b, "path %q in %s does not select an object", e.Expression, e.File)
	default:
		fmt.Fprintf(&b, "path %q in %s: %s", e.Expression, e.File, e.Kind)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return b.String()
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Extract evaluates expression against doc and returns every match in
// document order. An expression that selects nothing is an error; one that
// selects an empty object is not.
func Extract(doc *source.Document, expression string) ([]any, error) {
	x, err := jp.ParseString(expression)
	if err != nil {
		return nil, &PathError{File: doc.Path, Expression: expression, Kind: PathInvalid, Err: err}
	}

	matches := x.Get(doc.Root)
	if len(matches) == 0 {
		return nil, &PathError{
			File:        doc.Path,
			Expression:  expression,
			Kind:        PathNoMatch,
			Suggestions: suggest(x, doc.Root),
		}
	}
	return matches, nil
}

// Objects keeps only the object matches.
func Objects(matches []any) []map[string]any {
	var objs []map[string]any
	for _, m := range matches {
		if obj, ok := m.(map[string]any); ok {
			objs = append(objs, obj)
		}
	}
	return objs
}

// suggest returns keys at the parent location that resemble the final child
// name of x. Only expressions ending in a plain child have a parent to search.
func suggest(x jp.Expr, root any) []string {
	if len(x) < 2 {
		return nil
	}
	child, ok := x[len(x)-1].(jp.Child)
	if !ok {
		return nil
	}

	var keys []string
	for _, parent := range x[:len(x)-1].Get(root) {
		if obj, ok := parent.(map[string]any); ok {
			for k := range obj {
				if !slices.Contains(keys, k) {
					keys = append(keys, k)
				}
			}
		}
	}
	if len(keys) == 0 {
		return nil
	}
	slices.Sort(keys)

	var out []string
	for _, m := range fuzzy.Find(string(child), keys) {
		out = append(out, m.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
