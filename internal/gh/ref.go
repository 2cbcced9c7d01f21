package gh

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidRepoURL reports a repository URL from which owner and name could
// not be extracted.
var ErrInvalidRepoURL = errors.New("invalid repository URL")

// Ref identifies a remote repository for the lifetime of one run.
type Ref struct {
	Owner string
	Name  string
}

func (r Ref) String() string { return r.Owner + "/" + r.Name }

// ParseRepoURL extracts the first two non-empty path segments of a
// URL-shaped string as (owner, name). A trailing ".git" on the name is
// dropped so git remote URLs resolve to the same repository.
func ParseRepoURL(raw string) (Ref, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Ref{}, fmt.Errorf("parse repository URL %q: %w", raw, err)
	}
	var segments []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) < 2 {
		return Ref{}, fmt.Errorf("%w: %q", ErrInvalidRepoURL, raw)
	}
	return Ref{Owner: segments[0], Name: strings.TrimSuffix(segments[1], ".git")}, nil
}
