package collect

import (
	"context"
	"fmt"

	"github.com/martinmagala/repo2prompt/internal/cache"
	"github.com/martinmagala/repo2prompt/internal/gh"
	"github.com/martinmagala/repo2prompt/internal/logging"
)

const readmePlaceholder = "README.md: Not found or error fetching README\n\n"

// RemoteSource aggregates a GitHub repository through the API client. The
// recursive tree is fetched once per run; if its sha matches the recorded
// snapshot for the repository, enumeration reports ErrUnchanged and the
// per-file loads are skipped.
type RemoteSource struct {
	Client *gh.Client
	Ref    gh.Ref
	Branch string

	tree *gh.Tree // set by Enumerate, persisted by Commit
}

// NewRemoteSource returns a source for ref on the default branch.
func NewRemoteSource(client *gh.Client, ref gh.Ref) *RemoteSource {
	return &RemoteSource{Client: client, Ref: ref, Branch: gh.DefaultBranch}
}

// Preamble fetches and formats the root README. Absence of a README is
// non-fatal; any fetch error yields a placeholder block instead.
func (s *RemoteSource) Preamble(ctx context.Context) string {
	content, err := s.Client.Contents(ctx, s.Ref, "README.md")
	if err != nil {
		logging.New("remote").Warn("readme fetch failed", "repo", s.Ref.String(), "error", err)
		return readmePlaceholder
	}
	return fmt.Sprintf("README.md:\n```\n%s\n```\n\n", content)
}

// Enumerate fetches the recursive tree descriptor and returns the paths of
// blob entries with supported extensions, in descriptor order. When the
// descriptor's sha equals the recorded snapshot it returns ErrUnchanged.
func (s *RemoteSource) Enumerate(ctx context.Context) ([]string, error) {
	tree, err := s.Client.Tree(ctx, s.Ref, s.Branch)
	if err != nil {
		return nil, fmt.Errorf("fetch tree for %s: %w", s.Ref, err)
	}
	s.tree = tree

	key := cache.SnapshotKey(s.Ref.Owner, s.Ref.Name)
	var prev gh.Tree
	hit, err := s.Client.Cache.Load(key, &prev)
	if err != nil {
		logging.New("remote").Warn("snapshot record unreadable, treating tree as changed", "error", err)
	} else if hit && prev.SHA == tree.SHA {
		return nil, ErrUnchanged
	}

	var paths []string
	for _, e := range tree.Entries {
		if e.Type == "blob" && SupportedFile(e.Path) {
			paths = append(paths, e.Path)
		}
	}
	return paths, nil
}

func (s *RemoteSource) Load(ctx context.Context, path string) (string, error) {
	return s.Client.Contents(ctx, s.Ref, path)
}

// Commit overwrites the snapshot record with the tree processed this run.
func (s *RemoteSource) Commit() error {
	if s.tree == nil {
		return nil
	}
	return s.Client.Cache.Store(cache.SnapshotKey(s.Ref.Owner, s.Ref.Name), s.tree)
}
