package trust

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/jsonenv/json_env/internal/storage"
)

// FileName is the record's base name inside the json_env config dir.
const FileName = "trusted.json"

// CurrentVersion is the record format this build reads and writes.
const CurrentVersion = 1

// Record is the on-disk trust list.
type Record struct {
	Version int      `json:"version"`
	Trusted []string `json:"trusted"`
}

// StoreError reports a failure to read or update the trust record.
type StoreError struct {
	Path string
	Op   string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("trust store %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Store is a handle on one trust record file.
type Store struct {
	path string
}

// DefaultPath returns the record path inside the json_env config dir.
func DefaultPath() (string, error) {
	dir, err := storage.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Open returns a store backed by path. Nothing is read or created until the
// store is used.
func Open(path string) *Store {
	return &Store{path: path}
}

// Path returns the record file path.
func (s *Store) Path() string { return s.path }

func (s *Store) lockPath() string { return s.path + ".lock" }

// IsTrusted reports whether path is in the record. A missing, unreadable or
// unrecognised record means nothing is trusted.
func (s *Store) IsTrusted(path string) bool {
	canonical, err := Canonical(path)
	if err != nil {
		return false
	}
	rec, err := s.load()
	if err != nil {
		return false
	}
	return slices.Contains(rec.Trusted, canonical)
}

// Trust adds path to the record. It reports false without writing when the
// path is already trusted.
func (s *Store) Trust(path string) (bool, error) {
	canonical, err := Canonical(path)
	if err != nil {
		return false, &StoreError{Path: s.path, Op: "resolve " + path, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return false, &StoreError{Path: s.path, Op: "create directory", Err: err}
	}

	lock := newFileLock(s.lockPath())
	if err := lock.Lock(); err != nil {
		return false, &StoreError{Path: s.path, Op: "lock", Err: err}
	}
	defer lock.Unlock()

	rec, err := s.load()
	if err != nil {
		return false, err
	}
	if slices.Contains(rec.Trusted, canonical) {
		return false, nil
	}

	rec.Trusted = append(rec.Trusted, canonical)
	if err := storage.SaveJSON(s.path, rec); err != nil {
		return false, &StoreError{Path: s.path, Op: "write", Err: err}
	}
	return true, nil
}

// List returns the trusted paths in the order they were added.
func (s *Store) List() ([]string, error) {
	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	return rec.Trusted, nil
}

// load reads the record. A missing file is an empty record.
func (s *Store) load() (*Record, error) {
	var rec Record
	if err := storage.LoadJSON(s.path, &rec); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Record{Version: CurrentVersion, Trusted: []string{}}, nil
		}
		return nil, &StoreError{Path: s.path, Op: "read", Err: err}
	}
	if rec.Version != CurrentVersion {
		return nil, &StoreError{Path: s.path, Op: "read", Err: fmt.Errorf("unsupported record version %d", rec.Version)}
	}
	if rec.Trusted == nil {
		rec.Trusted = []string{}
	}
	return &rec, nil
}

// Canonical returns the absolute, symlink-free form of path.
func Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
