package collect

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExclusions are the directory names pruned when the caller supplies
// none.
var DefaultExclusions = []string{".git", "node_modules"}

// ResolveExclusions joins exclusion names to root, producing the exact
// directory paths the enumerator prunes. A nil slice selects
// DefaultExclusions; absolute entries pass through unchanged.
func ResolveExclusions(root string, names []string) []string {
	if names == nil {
		names = DefaultExclusions
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		switch {
		case n == "":
		case filepath.IsAbs(n):
			out = append(out, n)
		default:
			out = append(out, filepath.Join(root, n))
		}
	}
	return out
}

// LocalSource aggregates files under a directory tree on disk.
type LocalSource struct {
	Root string
	// Exclusions are directory paths pruned before descent. Matching is by
	// exact cleaned path, not by pattern; children of a matched directory
	// are never visited.
	Exclusions []string
}

func (s *LocalSource) Preamble(ctx context.Context) string { return "" }

// Enumerate walks the root and returns paths of files with a supported
// extension. filepath.WalkDir visits entries in lexical order, so the result
// is deterministic for a given tree.
func (s *LocalSource) Enumerate(ctx context.Context) ([]string, error) {
	excluded := make(map[string]struct{}, len(s.Exclusions))
	for _, e := range s.Exclusions {
		excluded[filepath.Clean(e)] = struct{}{}
	}

	var files []string
	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := excluded[filepath.Clean(path)]; skip {
				return filepath.SkipDir
			}
			return nil
		}
		if SupportedFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", s.Root, err)
	}
	return files, nil
}

func (s *LocalSource) Load(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func (s *LocalSource) Commit() error { return nil }
