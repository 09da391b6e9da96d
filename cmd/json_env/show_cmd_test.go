package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestShow(t *testing.T) {
	e := newTestEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env.json"), sampleConfig)
	writeFile(t, filepath.Join(dir, "override.json"), `{"PORT": 8080, "EXTRA": [1, "a"]}`)

	tests := []struct {
		name  string
		args  []string
		extra []string
		want  string
	}{
		{
			name: "default",
			args: []string{"show"},
			want: "NODE_ENV=DEV\nPORT=3000\nTEST=$FOO\nnested={\"hello\":\"world\"}\n",
		},
		{
			name:  "expand",
			args:  []string{"-e", "show"},
			extra: []string{"FOO=Bar"},
			want:  "NODE_ENV=DEV\nPORT=3000\nTEST=Bar\nnested={\"hello\":\"world\"}\n",
		},
		{
			name:  "expand from config",
			args:  []string{"show"},
			extra: []string{"FOO=Bar", "JSON_ENV_EXPAND=true"},
			want:  "NODE_ENV=DEV\nPORT=3000\nTEST=Bar\nnested={\"hello\":\"world\"}\n",
		},
		{
			name: "nested path",
			args: []string{"-p", "$.nested", "show"},
			want: "hello=world\n",
		},
		{
			name: "later file wins",
			args: []string{"-f", ".env.json", "-f", "override.json", "show"},
			want: "EXTRA=[1,\"a\"]\nNODE_ENV=DEV\nPORT=8080\nTEST=$FOO\nnested={\"hello\":\"world\"}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := e.run(t, dir, tt.extra, tt.args...)
			mustSucceed(t, r)
			if r.stdout != tt.want {
				t.Errorf("stdout =\n%s\nwant\n%s", r.stdout, tt.want)
			}
		})
	}
}

func TestShow_JSON(t *testing.T) {
	e := newTestEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env.json"), sampleConfig)

	r := e.run(t, dir, nil, "show", "--json")
	mustSucceed(t, r)

	var got map[string]string
	if err := json.Unmarshal([]byte(r.stdout), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", r.stdout, err)
	}
	if got["PORT"] != "3000" || got["nested"] != `{"hello":"world"}` {
		t.Errorf("got %v", got)
	}
}

func TestShow_Sources(t *testing.T) {
	e := newTestEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env.json"), sampleConfig)

	r := e.run(t, dir, nil, "show", "--sources")
	mustSucceed(t, r)
	for _, want := range []string{"KEY", "SOURCE", "NODE_ENV", ".env.json $"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, r.stdout)
		}
	}
}

func TestShow_Errors(t *testing.T) {
	e := newTestEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env.json"), sampleConfig)
	writeFile(t, filepath.Join(dir, "broken.json"), `{"a": `)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "path matches nothing", args: []string{"-p", "$.missing", "show"}, want: "matched nothing"},
		{name: "path matches no object", args: []string{"-p", "$.NODE_ENV", "show"}, want: "$.NODE_ENV"},
		{name: "invalid path", args: []string{"-p", "$[1", "show"}, want: "$[1"},
		{name: "parse error", args: []string{"-f", "broken.json", "show"}, want: "broken.json"},
		{name: "missing file", args: []string{"-f", "nope.json", "show"}, want: "nope.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := e.run(t, dir, nil, tt.args...)
			if r.code != 1 {
				t.Errorf("exit code = %d, want 1", r.code)
			}
			if r.stdout != "" {
				t.Errorf("stdout = %q, want empty", r.stdout)
			}
			if !strings.Contains(r.stderr, tt.want) {
				t.Errorf("stderr = %q, want it to mention %q", r.stderr, tt.want)
			}
		})
	}
}

func TestShow_SuggestsKeys(t *testing.T) {
	e := newTestEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env.json"), `{"development": {"A": 1}, "production": {"A": 2}}`)

	r := e.run(t, dir, nil, "-p", "$.devlopment", "show")
	if !strings.Contains(r.stderr, "development") {
		t.Errorf("stderr = %q, want a suggestion", r.stderr)
	}
}
