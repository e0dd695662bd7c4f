package bvh

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchOptions contains configuration for batch queries.
type BatchOptions struct {
	// Concurrency is the number of worker goroutines. Defaults to the
	// number of CPUs.
	Concurrency int
}

// BatchClosestPoint answers one closest-point query per input point,
// fanning the work out across worker goroutines. Results are in input
// order. The whole batch fails if the context is canceled or the tree
// is empty.
func (t *TriangleAABBTree[S, I]) BatchClosestPoint(ctx context.Context, queries [][]S, optFns ...func(o *BatchOptions)) ([]ClosestPoint[S, I], error) {
	opts := BatchOptions{
		Concurrency: runtime.NumCPU(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	for _, q := range queries {
		if len(q) != t.dim {
			return nil, &DimensionError{Got: len(q), Want: t.dim}
		}
	}

	if len(queries) == 0 {
		return nil, nil
	}
	if t.root < 0 {
		return nil, ErrEmptyTree
	}

	results := make([]ClosestPoint[S, I], len(queries))

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < opts.Concurrency; w++ {
		g.Go(func() error {
			for i := w; i < len(queries); i += opts.Concurrency {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[i], _ = t.closest(queries[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
