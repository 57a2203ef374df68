package md2site

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-md2site/internal/fileutil"
)

// Result holds the outcome of building one page.
type Result struct {
	InputPath  string
	OutputPath string
	Duration   time.Duration
	Err        error
}

// Report collects the results of a site build in discovery order.
type Report struct {
	Results    []Result
	Stylesheet string        // Path of the written stylesheet, "" if none
	Duration   time.Duration // Wall time of the whole build
}

// Succeeded returns the number of pages written.
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of pages that could not be built.
func (r *Report) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// BuildSite builds every file below inputRoot into outputRoot.
//
// The output root is created first, so an empty input tree still yields an
// existing output directory. The first failing page stops the build; the
// returned Report holds the pages attempted so far.
func (b *Builder) BuildSite(ctx context.Context, inputRoot, outputRoot string) (*Report, error) {
	start := time.Now()
	report := &Report{Results: []Result{}}

	if err := fileutil.DirExists(inputRoot); err != nil {
		return report, fmt.Errorf("%w: %w", ErrReadDirectory, err)
	}
	if err := fileutil.EnsureDir(outputRoot); err != nil {
		return report, fmt.Errorf("%w: %w", ErrCreateOutputDir, err)
	}

	if b.writesStylesheet() {
		css := filepath.Join(outputRoot, filepath.FromSlash(b.cfg.href))
		if err := fileutil.WriteFile(css, []byte(b.stylesheet)); err != nil {
			return report, fmt.Errorf("%w: %w", ErrWriteStylesheet, err)
		}
		report.Stylesheet = css
	}

	jobs, err := Discover(inputRoot, outputRoot)
	if err != nil {
		return report, err
	}

	if b.cfg.workers > 1 {
		err = b.buildParallel(ctx, jobs, report)
	} else {
		err = b.buildSequential(ctx, jobs, report)
	}
	report.Duration = time.Since(start)
	return report, err
}

// buildSequential builds jobs one after another, stopping at the first error.
func (b *Builder) buildSequential(ctx context.Context, jobs []Job, report *Report) error {
	for _, job := range jobs {
		res := b.buildResult(ctx, job)
		report.Results = append(report.Results, res)
		if res.Err != nil {
			return res.Err
		}
	}
	return nil
}

// buildParallel builds jobs on a bounded number of goroutines. The first
// error cancels the jobs not yet started.
func (b *Builder) buildParallel(ctx context.Context, jobs []Job, report *Report) error {
	results := make([]Result, len(jobs))
	started := make([]bool, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.workers)

	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		started[i] = true
		g.Go(func() error {
			results[i] = b.buildResult(gctx, job)
			return results[i].Err
		})
	}
	err := g.Wait()

	for i := range jobs {
		if started[i] {
			report.Results = append(report.Results, results[i])
		}
	}
	if err == nil {
		err = ctx.Err()
	}
	return err
}

func (b *Builder) buildResult(ctx context.Context, job Job) Result {
	start := time.Now()
	err := b.Build(ctx, job)
	return Result{
		InputPath:  job.InputPath,
		OutputPath: job.OutputPath,
		Duration:   time.Since(start),
		Err:        err,
	}
}
