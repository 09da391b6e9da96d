package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Document is one parsed config file.
type Document struct {
	Path string
	Root any
}

// Load reads and parses the file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return Parse(path, data)
}

// Parse decodes data, choosing the format from the path's extension.
func Parse(path string, data []byte) (*Document, error) {
	var (
		root   any
		err    error
		format string
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "YAML"
		root, err = decodeYAML(data)
	default:
		format = "JSON"
		root, err = decodeJSON(data)
	}
	if err != nil {
		return nil, &ParseError{Path: path, Format: format, Err: err}
	}
	return &Document{Path: path, Root: root}, nil
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after the top-level value")
	}
	return root, nil
}

func decodeYAML(data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var root any
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("multiple YAML documents in one file")
	}
	return normalizeYAML(root)
}

// normalizeYAML rewrites yaml.v3 output into the JSON tree shape. Mapping
// keys must be scalars; they are converted to their string form.
func normalizeYAML(x any) (any, error) {
	switch t := x.(type) {
	case map[string]any:
		for k, v := range t {
			n, err := normalizeYAML(v)
			if err != nil {
				return nil, err
			}
			t[k] = n
		}
		return t, nil
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, v := range t {
			switch k.(type) {
			case map[string]any, map[any]any, []any:
				return nil, fmt.Errorf("unsupported non-scalar mapping key %v", k)
			}
			n, err := normalizeYAML(v)
			if err != nil {
				return nil, err
			}
			m[fmt.Sprint(k)] = n
		}
		return m, nil
	case []any:
		for i, v := range t {
			n, err := normalizeYAML(v)
			if err != nil {
				return nil, err
			}
			t[i] = n
		}
		return t, nil
	default:
		return t, nil
	}
}
