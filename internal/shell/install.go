package shell

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Install appends the hook loader to the variant's profile under home.
// It returns the profile path and whether anything was written; a profile
// that already carries the marker is left untouched.
func Install(v Variant, home string) (string, bool, error) {
	profile := filepath.Join(home, v.Profile)

	installed, err := hasMarker(profile)
	if err != nil {
		return profile, false, err
	}
	if installed {
		return profile, false, nil
	}

	if err := os.MkdirAll(filepath.Dir(profile), 0o755); err != nil {
		return profile, false, fmt.Errorf("create profile directory: %w", err)
	}

	f, err := os.OpenFile(profile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return profile, false, fmt.Errorf("open profile: %w", err)
	}

	block := "\n" + Marker + "\n" + v.Loader + "\n"
	if _, err := f.WriteString(block); err != nil {
		f.Close()
		return profile, false, fmt.Errorf("write profile: %w", err)
	}
	if err := f.Close(); err != nil {
		return profile, false, fmt.Errorf("write profile: %w", err)
	}
	return profile, true, nil
}

// Installed reports whether the profile under home already loads the hook.
func Installed(v Variant, home string) (bool, error) {
	return hasMarker(filepath.Join(home, v.Profile))
}

func hasMarker(profile string) (bool, error) {
	f, err := os.Open(profile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read profile: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == Marker {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("read profile: %w", err)
	}
	return false, nil
}
