// internal/pipeline/pipeline.go
package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"simreads/internal/simulate"
)

// Invoker is the minimal capability the dispatcher needs.
// Any runner (including fakes in tests) can satisfy this.
type Invoker interface {
	RunOne(ctx context.Context, t simulate.Task) (simulate.Result, error)
}

// Options control task dispatch.
type Options struct {
	Threads int  // worker bound (>=1)
	Debug   bool // strictly sequential, submission order preserved
}

// Run executes every task and returns results in task order. The first
// failure cancels the batch: queued tasks are never started and running
// invocations are killed through their context.
func Run(ctx context.Context, opt Options, inv Invoker, tasks []simulate.Task) ([]simulate.Result, error) {
	results := make([]simulate.Result, len(tasks))

	if opt.Debug {
		for i, t := range tasks {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			res, err := inv.RunOne(ctx, t)
			if err != nil {
				return nil, err
			}
			results[i] = res
		}
		return results, nil
	}

	threads := opt.Threads
	if threads < 1 {
		threads = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i := range tasks {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			// A worker may win its slot after the group is already
			// cancelled; it must not start new work.
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := inv.RunOne(gctx, tasks[i])
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
