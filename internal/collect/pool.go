package collect

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Map runs fn over items with at most workers concurrent goroutines and
// returns the results in input order, regardless of completion order.
// The first error cancels the remaining work and fails the whole map; no
// partial results are returned. workers <= 0 uses the number of CPUs.
func Map[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]R, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := fn(ctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
