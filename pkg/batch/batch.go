// Package batch runs many bitmap comparisons on a bounded worker pool.
package batch

import (
	"context"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"

	"guicheck/pkg/bitmap"
)

// Job is one comparison. Set either the images or the paths; images win
// when both are present.
type Job struct {
	Name          string
	Reference     image.Image
	Actual        image.Image
	ReferencePath string
	ActualPath    string
	Options       bitmap.CompareOptions
}

// Result pairs a job name with its comparison result.
type Result struct {
	Name string
	bitmap.Result
}

// Runner compares jobs concurrently. The zero value uses one worker per CPU.
type Runner struct {
	// Limit caps concurrent comparisons; <= 0 means runtime.NumCPU().
	Limit int
}

// Run executes every job and returns results in job order. Comparisons
// themselves never fail; the only error is ctx being cancelled, in which
// case jobs not yet started are skipped and ctx.Err() is returned.
func (r Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	limit := r.Limit
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Result{Name: job.Name, Result: run(job)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	// gctx is always done after Wait; only the caller's context matters.
	return results, ctx.Err()
}

func run(job Job) bitmap.Result {
	if job.Reference != nil || job.Actual != nil {
		return bitmap.Compare(job.Reference, job.Actual, job.Options)
	}
	return bitmap.CompareFiles(job.ReferencePath, job.ActualPath, job.Options)
}
