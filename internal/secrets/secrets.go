// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads search provider credentials from a directory of
// plain-text files. Each file holds one secret: the filename is the key
// and the trimmed contents are the value.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Key files understood by the search providers.
const (
	GoogleAPIKey = "google-api-key"
	GoogleCSEID  = "google-cse-id"
	SearxNGURL   = "searxng-url"
)

// Store maps secret names to values.
type Store map[string]string

// Get returns the value for key, or "" when it was not loaded.
func (s Store) Get(key string) string {
	return s[key]
}

// Or returns override when non-empty, otherwise the stored value for key.
// Command-line flags take precedence over files on disk.
func (s Store) Or(key, override string) string {
	if override != "" {
		return override
	}
	return s.Get(key)
}

// Load reads all files in dir. A missing directory is not an error; Load
// returns an empty Store. Unreadable files are logged and skipped.
func Load(dir string, logger *log.Logger) (Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	store := make(Store)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := entry.Name()

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret", "name", name, "err", err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			store[name] = value
		}
	}
	return store, nil
}
