package resolve

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jsonenv/json_env/internal/expand"
	"github.com/jsonenv/json_env/internal/extract"
	"github.com/jsonenv/json_env/internal/log"
	"github.com/jsonenv/json_env/internal/source"
	"github.com/jsonenv/json_env/internal/value"
)

// Request describes one resolution.
type Request struct {
	Sources []source.Source
	// Env is the snapshot used for $NAME expansion.
	Env    map[string]string
	Expand bool
}

// Entry is one resolved variable.
type Entry struct {
	Key    string
	Raw    value.Value
	Value  string
	Source source.Source
}

// Result holds the merged environment.
type Result struct {
	Vars map[string]string
	// Entries lists the winning entry per key, sorted by key.
	Entries []Entry
	// Origins maps each key to the source that supplied its final value.
	Origins map[string]string
}

// InvalidKeyError reports a key that cannot be used as a variable name.
type InvalidKeyError struct {
	File       string
	Expression string
	Key        string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid variable name %q in %s (path %s)", e.Key, e.File, e.Expression)
}

// Resolve loads every source in order and merges their variables.
func Resolve(ctx context.Context, req Request) (*Result, error) {
	l := log.FromContext(ctx)

	winners := make(map[string]Entry)
	docs := make(map[string]*source.Document)

	for _, src := range req.Sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, ok := docs[src.File]
		if !ok {
			l.Debug("loading source", "file", src.File)
			var err error
			doc, err = source.Load(src.File)
			if err != nil {
				return nil, err
			}
			docs[src.File] = doc
		}

		matches, err := extract.Extract(doc, src.Expression)
		if err != nil {
			return nil, err
		}
		objs := extract.Objects(matches)
		if len(objs) == 0 {
			return nil, &extract.PathError{File: src.File, Expression: src.Expression, Kind: extract.PathNoObject}
		}

		count := 0
		for _, obj := range objs {
			for _, key := range sortedKeys(obj) {
				if !validKey(key) {
					return nil, &InvalidKeyError{File: src.File, Expression: src.Expression, Key: key}
				}
				raw, err := value.FromAny(obj[key])
				if err != nil {
					return nil, &source.ParseError{Path: src.File, Format: "value", Err: fmt.Errorf("%s: %w", key, err)}
				}
				s := value.Coerce(raw)
				if req.Expand {
					s = expand.Expand(s, req.Env)
				}
				winners[key] = Entry{Key: key, Raw: raw, Value: s, Source: src}
				count++
			}
		}
		l.Debug("applied source", "file", src.File, "path", src.Expression, "vars", count)
	}

	res := &Result{
		Vars:    make(map[string]string, len(winners)),
		Entries: make([]Entry, 0, len(winners)),
		Origins: make(map[string]string, len(winners)),
	}
	for _, key := range sortedKeys(winners) {
		e := winners[key]
		res.Vars[key] = e.Value
		res.Entries = append(res.Entries, e)
		res.Origins[key] = e.Source.String()
	}
	return res, nil
}

// MergeEnviron overlays vars on an environ list. Resolved variables win over
// inherited ones. The result is sorted.
func MergeEnviron(base []string, vars map[string]string) []string {
	merged := make(map[string]string, len(base)+len(vars))
	for _, kv := range base {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		merged[k] = v
	}
	for k, v := range vars {
		merged[k] = v
	}

	out := make([]string, 0, len(merged))
	for _, k := range sortedKeys(merged) {
		out = append(out, k+"="+merged[k])
	}
	return out
}

func validKey(key string) bool {
	return key != "" && !strings.ContainsAny(key, "=\x00")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
