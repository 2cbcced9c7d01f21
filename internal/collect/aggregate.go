package collect

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/martinmagala/repo2prompt/internal/logging"
)

// Aggregator turns a Source into one formatted document per invocation:
// preamble, then one block per enumerated file in discovery order. Content
// loads run on a bounded worker pool; a single load failure fails the run.
type Aggregator struct {
	// Workers bounds the content-load pool. <= 0 uses the number of CPUs.
	Workers int
}

// Run produces the formatted document for src.
func (a Aggregator) Run(ctx context.Context, src Source) (string, error) {
	logger := logging.New("aggregate")

	var doc strings.Builder
	doc.WriteString(src.Preamble(ctx))

	identifiers, err := src.Enumerate(ctx)
	if errors.Is(err, ErrUnchanged) {
		logger.Info("tree unchanged since last run, skipping content load")
		return doc.String(), nil
	}
	if err != nil {
		return "", err
	}
	logger.Info("loading contents", "files", len(identifiers), "workers", a.Workers)

	blocks, err := Map(ctx, a.Workers, identifiers, func(ctx context.Context, id string) (string, error) {
		content, err := src.Load(ctx, id)
		if err != nil {
			return "", fmt.Errorf("load %s: %w", id, err)
		}
		return Block(id, content), nil
	})
	if err != nil {
		return "", err
	}
	for _, b := range blocks {
		doc.WriteString(b)
	}

	if err := src.Commit(); err != nil {
		return "", fmt.Errorf("record snapshot: %w", err)
	}
	return doc.String(), nil
}
