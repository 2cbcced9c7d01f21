// Package cache persists fetched API payloads and tree snapshots as JSON
// files under a single directory, one file per key. A key is derived from
// the request URL so that repeated fetches of the same resource are served
// from disk.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is the cache directory used when none is configured.
const DefaultDir = ".cache"

// Dir is a handle to an on-disk cache directory. The zero value is not
// usable; construct with New. The directory itself is created lazily on the
// first write.
type Dir struct {
	path string
}

// New returns a handle for the cache directory at path.
func New(path string) *Dir {
	if path == "" {
		path = DefaultDir
	}
	return &Dir{path: path}
}

// Path returns the cache directory path.
func (d *Dir) Path() string { return d.path }

// Key derives the cache filename for a request URL: path separators are
// replaced with underscores and a .json suffix is appended. Within one cache
// directory this mapping is one-to-one with the URL.
func Key(url string) string {
	return strings.ReplaceAll(url, "/", "_") + ".json"
}

// Load reads the entry for key into v. It returns false with a nil error
// when no entry exists.
func (d *Dir) Load(key string, v any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(d.path, key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read cache entry %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	return true, nil
}

// Store writes v as the entry for key, creating the cache directory if
// needed. The file is overwritten whole.
func (d *Dir) Store(key string, v any) error {
	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	if err := os.WriteFile(filepath.Join(d.path, key), data, 0o644); err != nil {
		return fmt.Errorf("write cache entry %s: %w", key, err)
	}
	return nil
}

// SnapshotKey is the per-repository filename that records the last processed
// tree descriptor for change detection.
func SnapshotKey(owner, name string) string {
	return fmt.Sprintf("%s_%s_tree.json", owner, name)
}
