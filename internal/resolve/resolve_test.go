package resolve

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jsonenv/json_env/internal/extract"
	"github.com/jsonenv/json_env/internal/source"
)

func writeEnvFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestResolve(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	plain := writeEnvFile(t, dir, "plain.json", `{"NODE_ENV": "DEV"}`)
	ref := writeEnvFile(t, dir, "ref.json", `{"TEST": "$FOO", "OTHER": "$MISSING"}`)
	nested := writeEnvFile(t, dir, "nested.json", `{"nested": {"hello": "world"}, "top": "x"}`)
	typed := writeEnvFile(t, dir, "typed.json", `{"N": 1.50, "B": true, "Z": null, "A": [1, "a"], "O": {"b": 1, "a": 2}}`)

	tests := []struct {
		name    string
		sources []source.Source
		env     map[string]string
		expand  bool
		want    map[string]string
	}{
		{
			name:    "plain string",
			sources: []source.Source{{File: plain, Expression: "$"}},
			want:    map[string]string{"NODE_ENV": "DEV"},
		},
		{
			name:    "expansion enabled",
			sources: []source.Source{{File: ref, Expression: "$"}},
			env:     map[string]string{"FOO": "Bar"},
			expand:  true,
			want:    map[string]string{"TEST": "Bar", "OTHER": "$MISSING"},
		},
		{
			name:    "expansion disabled",
			sources: []source.Source{{File: ref, Expression: "$"}},
			env:     map[string]string{"FOO": "Bar"},
			want:    map[string]string{"TEST": "$FOO", "OTHER": "$MISSING"},
		},
		{
			name:    "nested path",
			sources: []source.Source{{File: nested, Expression: "$.nested"}},
			want:    map[string]string{"hello": "world"},
		},
		{
			name:    "coerced kinds",
			sources: []source.Source{{File: typed, Expression: "$"}},
			want: map[string]string{
				"N": "1.5",
				"B": "true",
				"Z": "null",
				"A": `[1,"a"]`,
				"O": `{"a":2,"b":1}`,
			},
		},
		{
			name: "same file twice",
			sources: []source.Source{
				{File: nested, Expression: "$"},
				{File: nested, Expression: "$.nested"},
			},
			want: map[string]string{"nested": `{"hello":"world"}`, "top": "x", "hello": "world"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := Resolve(context.Background(), Request{Sources: tt.sources, Env: tt.env, Expand: tt.expand})
			if err != nil {
				t.Fatalf("Resolve error = %v", err)
			}
			if !reflect.DeepEqual(res.Vars, tt.want) {
				t.Errorf("Vars = %v, want %v", res.Vars, tt.want)
			}
		})
	}
}

func TestResolve_LaterSourceWins(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := writeEnvFile(t, dir, "first.json", `{"KEY": "first", "ONLY_FIRST": "1"}`)
	second := writeEnvFile(t, dir, "second.json", `{"KEY": "second"}`)

	res, err := Resolve(context.Background(), Request{Sources: []source.Source{
		{File: first, Expression: "$"},
		{File: second, Expression: "$"},
	}})
	if err != nil {
		t.Fatalf("Resolve error = %v", err)
	}

	if res.Vars["KEY"] != "second" {
		t.Errorf("KEY = %q, want second", res.Vars["KEY"])
	}
	if res.Vars["ONLY_FIRST"] != "1" {
		t.Errorf("ONLY_FIRST = %q, want 1", res.Vars["ONLY_FIRST"])
	}
	if got, want := res.Origins["KEY"], second+" $"; got != want {
		t.Errorf("Origins[KEY] = %q, want %q", got, want)
	}
	if len(res.Entries) != 2 || res.Entries[0].Key != "KEY" || res.Entries[1].Key != "ONLY_FIRST" {
		t.Errorf("Entries = %+v, want sorted KEY, ONLY_FIRST", res.Entries)
	}
}

func TestResolve_AppendingSourceKeepsKeys(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := []string{
		writeEnvFile(t, dir, "a.json", `{"A": "1", "B": "2"}`),
		writeEnvFile(t, dir, "b.json", `{"B": "3", "C": "4"}`),
		writeEnvFile(t, dir, "c.json", `{}`),
	}

	var sources []source.Source
	prev := map[string]string{}
	for _, f := range files {
		sources = append(sources, source.Source{File: f, Expression: "$"})
		res, err := Resolve(context.Background(), Request{Sources: sources})
		if err != nil {
			t.Fatalf("Resolve error = %v", err)
		}
		for k := range prev {
			if _, ok := res.Vars[k]; !ok {
				t.Errorf("after adding %s, key %s disappeared", f, k)
			}
		}
		prev = res.Vars
	}
}

func TestResolve_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeEnvFile(t, dir, "good.json", `{"nested": {"hello": "world"}, "scalar": 1}`)
	badKey := writeEnvFile(t, dir, "badkey.json", `{"A=B": "x"}`)
	emptyKey := writeEnvFile(t, dir, "emptykey.json", `{"": "x"}`)
	malformed := writeEnvFile(t, dir, "bad.json", `{"A": `)

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()
		_, err := Resolve(context.Background(), Request{Sources: []source.Source{{File: good, Expression: "$.missing"}}})
		var pathErr *extract.PathError
		if !errors.As(err, &pathErr) || pathErr.Kind != extract.PathNoMatch {
			t.Fatalf("Resolve error = %v, want PathNoMatch", err)
		}
	})

	t.Run("scalar match", func(t *testing.T) {
		t.Parallel()
		_, err := Resolve(context.Background(), Request{Sources: []source.Source{{File: good, Expression: "$.scalar"}}})
		var pathErr *extract.PathError
		if !errors.As(err, &pathErr) || pathErr.Kind != extract.PathNoObject {
			t.Fatalf("Resolve error = %v, want PathNoObject", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := Resolve(context.Background(), Request{Sources: []source.Source{{File: filepath.Join(dir, "nope.json"), Expression: "$"}}})
		var ioErr *source.IOError
		if !errors.As(err, &ioErr) {
			t.Fatalf("Resolve error = %v, want *source.IOError", err)
		}
	})

	t.Run("malformed file aborts everything", func(t *testing.T) {
		t.Parallel()
		res, err := Resolve(context.Background(), Request{Sources: []source.Source{
			{File: good, Expression: "$.nested"},
			{File: malformed, Expression: "$"},
		}})
		var parseErr *source.ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("Resolve error = %v, want *source.ParseError", err)
		}
		if res != nil {
			t.Errorf("Resolve returned partial result %+v", res)
		}
	})

	for _, f := range []string{badKey, emptyKey} {
		t.Run("invalid key "+filepath.Base(f), func(t *testing.T) {
			t.Parallel()
			_, err := Resolve(context.Background(), Request{Sources: []source.Source{{File: f, Expression: "$"}}})
			var keyErr *InvalidKeyError
			if !errors.As(err, &keyErr) {
				t.Fatalf("Resolve error = %v, want *InvalidKeyError", err)
			}
			if keyErr.File != f {
				t.Errorf("InvalidKeyError.File = %q, want %q", keyErr.File, f)
			}
		})
	}
}

func TestResolve_CanceledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	f := writeEnvFile(t, dir, "a.json", `{"A": "1"}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Resolve(ctx, Request{Sources: []source.Source{{File: f, Expression: "$"}}}); !errors.Is(err, context.Canceled) {
		t.Errorf("Resolve error = %v, want context.Canceled", err)
	}
}

func TestMergeEnviron(t *testing.T) {
	t.Parallel()

	base := []string{"PATH=/bin", "HOME=/home/u", "NODE_ENV=prod", "broken"}
	got := MergeEnviron(base, map[string]string{"NODE_ENV": "DEV", "EXTRA": "a=b"})
	want := []string{"EXTRA=a=b", "HOME=/home/u", "NODE_ENV=DEV", "PATH=/bin"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeEnviron = %v, want %v", got, want)
	}
}
