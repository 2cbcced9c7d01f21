// Package gitutil resolves the remote repository URL from a local checkout,
// so the repo command can run without an explicit URL argument.
package gitutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
)

// ErrNoOriginURL reports a repository whose origin remote carries no URL.
var ErrNoOriginURL = errors.New("origin remote has no URL")

// OriginURL opens the repository at dir and returns the first URL of its
// origin remote, normalized to URL form.
func OriginURL(dir string) (string, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return "", fmt.Errorf("open repository at %s: %w", dir, err)
	}
	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		return "", fmt.Errorf("origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", ErrNoOriginURL
	}
	return NormalizeRemoteURL(urls[0]), nil
}

// NormalizeRemoteURL rewrites scp-style remotes (git@host:owner/name.git)
// into https URL form so owner and name can be parsed from path segments.
// Remotes already in URL form pass through unchanged.
func NormalizeRemoteURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, "://") {
		return raw
	}
	at := strings.Index(raw, "@")
	colon := strings.Index(raw, ":")
	if at < 0 || colon < at {
		return raw
	}
	return "https://" + raw[at+1:colon] + "/" + raw[colon+1:]
}
