package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// BatchResult pairs an input path with its run.
type BatchResult struct {
	Path   string
	Result *Result
}

// ProcessAll runs independent documents in parallel, at most limit at once
// (unbounded when limit <= 0). Results keep input order. The first failure
// cancels the remaining runs.
func (e *Engine) ProcessAll(ctx context.Context, paths []string, limit int) ([]BatchResult, error) {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	results := make([]BatchResult, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			res, err := e.ParseFile(ctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = BatchResult{Path: path, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
