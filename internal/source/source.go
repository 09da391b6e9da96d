package source

import (
	"fmt"
	"strings"
)

// DefaultExpression selects the whole document.
const DefaultExpression = "$"

// Source identifies one document and the sub-tree selected from it.
// Sources are applied in slice order; later ones override earlier keys.
type Source struct {
	File       string
	Expression string
}

func (s Source) String() string {
	return s.File + " " + s.Expression
}

// Build pairs files with path expressions:
//
//   - no expressions: every file uses defaultExpr
//   - one expression: it applies to every file
//   - one file, several expressions: each expression applies to that file
//   - as many expressions as files: paired by position
//
// Any other combination is ambiguous and rejected.
func Build(files, exprs []string, defaultExpr string) ([]Source, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no config files given")
	}
	if defaultExpr == "" {
		defaultExpr = DefaultExpression
	}
	for _, e := range exprs {
		if strings.TrimSpace(e) == "" {
			return nil, fmt.Errorf("empty path expression")
		}
	}

	var sources []Source
	switch {
	case len(exprs) == 0:
		for _, f := range files {
			sources = append(sources, Source{File: f, Expression: defaultExpr})
		}
	case len(exprs) == 1:
		for _, f := range files {
			sources = append(sources, Source{File: f, Expression: exprs[0]})
		}
	case len(files) == 1:
		for _, e := range exprs {
			sources = append(sources, Source{File: files[0], Expression: e})
		}
	case len(files) == len(exprs):
		for i := range files {
			sources = append(sources, Source{File: files[i], Expression: exprs[i]})
		}
	default:
		return nil, fmt.Errorf("cannot pair %d files with %d path expressions: give one expression, one file, or one expression per file", len(files), len(exprs))
	}
	return sources, nil
}
