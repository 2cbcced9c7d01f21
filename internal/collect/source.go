// Package collect aggregates the textual contents of a source tree, remote
// or local, into one formatted document. The aggregator is written once
// against the Source interface; the two variants differ only in how they
// enumerate candidates and load content.
package collect

import (
	"context"
	"errors"
)

// ErrUnchanged is returned by a Source's Enumerate when the tree matches the
// last processed snapshot and content loading can be skipped entirely.
var ErrUnchanged = errors.New("tree unchanged since last run")

// Source yields candidate files and their contents for one aggregation run.
type Source interface {
	// Preamble returns the leading document block, empty when the source
	// has none. Failures producing the preamble are non-fatal and are
	// resolved to a placeholder inside the source.
	Preamble(ctx context.Context) string

	// Enumerate returns the ordered candidate identifiers, or ErrUnchanged
	// when nothing needs loading.
	Enumerate(ctx context.Context) ([]string, error)

	// Load returns the textual content for one identifier.
	Load(ctx context.Context, identifier string) (string, error)

	// Commit records that the enumerated tree was fully aggregated.
	Commit() error
}
