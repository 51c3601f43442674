package decrypt

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/deploymenttheory/go-dmcrypt/internal/discovery"
	"github.com/deploymenttheory/go-dmcrypt/internal/types"
	"github.com/deploymenttheory/go-dmcrypt/pkg/app"
	"github.com/deploymenttheory/go-dmcrypt/pkg/services"
)

// Handle processes a batch decryption request.
//
// Every discovered container is decrypted independently on a bounded worker
// pool. A failing file never stops the batch: the response always carries one
// result per file, and the returned error combines the per-file failures.
func Handle(ctx *app.Context, fs afero.Fs, req *Request) (*Response, error) {
	startTime := time.Now()

	// 1. Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	logger := ctx.Log()
	response := &Response{
		RunID:     uuid.NewString(),
		StartedAt: startTime,
	}

	// 2. Discover containers
	finder := discovery.NewFinder(fs, req.Extension, req.Recursive)
	paths, discoveryErr := finder.Find(req.Inputs)
	for _, err := range multierr.Errors(discoveryErr) {
		logger.WithError(err).Warn("skipping input")
		response.Warnings = append(response.Warnings, err.Error())
	}

	logger.WithFields(log.Fields{
		"run_id":  response.RunID,
		"files":   len(paths),
		"workers": req.Workers,
	}).Debug("starting decryption")

	// 3. Decrypt on the worker pool
	svc, err := ctx.ContainerService(services.Options{StripPadding: req.StripPadding})
	if err != nil {
		return nil, err
	}
	results := make([]FileResult, len(paths))
	tracker := newProgressTracker(ctx, int64(len(paths)), startTime)

	p := pool.New().WithMaxGoroutines(req.Workers)
	for i, path := range paths {
		i, path := i, path
		p.Go(func() {
			if err := ctx.Err(); err != nil {
				results[i] = FileResult{Input: path, Status: StatusCancelled, Error: err.Error()}
				return
			}
			results[i] = processFile(fs, svc, req, path)
			logResult(logger, &results[i])
			tracker.done(path)
		})
	}
	p.Wait()

	// 4. Summarize
	var errs error
	for i := range results {
		r := &results[i]
		switch r.Status {
		case StatusDecrypted:
			response.Succeeded++
		case StatusSkipped:
			response.Skipped++
		case StatusCancelled:
			response.Cancelled++
		default:
			response.Failed++
			errs = multierr.Append(errs, fmt.Errorf("%s: %s error: %s", r.Input, r.ErrorKind, r.Error))
		}
	}
	if response.Cancelled > 0 {
		errs = multierr.Append(errs, app.NewError(app.ErrCodeCancelled, "decryption cancelled", ctx.Err()))
	}

	response.Files = results
	response.Total = len(results)
	response.Elapsed = time.Since(startTime)

	logger.WithFields(log.Fields{
		"run_id":    response.RunID,
		"succeeded": response.Succeeded,
		"failed":    response.Failed,
		"skipped":   response.Skipped,
		"elapsed":   response.Elapsed,
	}).Info("decryption complete")

	return response, errs
}

// processFile reads, decrypts and writes a single container
func processFile(fs afero.Fs, svc services.ContainerService, req *Request, path string) FileResult {
	start := time.Now()
	result := FileResult{
		Input:  path,
		Output: discovery.OutputPath(req.OutputDir, path),
	}

	fail := func(err error) FileResult {
		result.Status = StatusFailed
		result.Error = err.Error()
		result.ErrorKind = types.ErrorKind(err)
		result.Duration = time.Since(start)
		return result
	}

	if !req.Overwrite {
		exists, err := afero.Exists(fs, result.Output)
		if err != nil {
			return fail(fmt.Errorf("failed to check output %s: %w", result.Output, err))
		}
		if exists {
			result.Status = StatusSkipped
			result.Duration = time.Since(start)
			return result
		}
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fail(fmt.Errorf("failed to read container: %w", err))
	}

	decrypted, err := svc.Decrypt(req.Email, data)
	if err != nil {
		return fail(err)
	}
	result.Flock = decrypted.Flock

	if err := fs.MkdirAll(filepath.Dir(result.Output), 0o755); err != nil {
		return fail(fmt.Errorf("failed to create output directory: %w", err))
	}
	if err := afero.WriteFile(fs, result.Output, decrypted.Plaintext, 0o644); err != nil {
		return fail(fmt.Errorf("failed to write %s: %w", result.Output, err))
	}

	result.Status = StatusDecrypted
	result.Size = int64(len(decrypted.Plaintext))
	result.Duration = time.Since(start)
	return result
}

// logResult emits one structured event per processed file
func logResult(logger log.Interface, r *FileResult) {
	entry := logger.WithField("path", r.Input)

	switch r.Status {
	case StatusDecrypted:
		entry.WithFields(log.Fields{
			"output": r.Output,
			"flock":  r.Flock,
			"size":   r.Size,
		}).Info("decrypted")
	case StatusSkipped:
		entry.WithField("output", r.Output).Info("output exists, skipping")
	default:
		entry.WithField("kind", r.ErrorKind).WithError(errors.New(r.Error)).Error("failed to decrypt")
	}
}

// progressTracker serializes progress callbacks from pool workers
type progressTracker struct {
	mu        sync.Mutex
	ctx       *app.Context
	completed int64
	total     int64
	startedAt time.Time
}

func newProgressTracker(ctx *app.Context, total int64, startedAt time.Time) *progressTracker {
	return &progressTracker{ctx: ctx, total: total, startedAt: startedAt}
}

func (pt *progressTracker) done(path string) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	pt.completed++
	pt.ctx.Progress(app.ProgressUpdate{
		Message:     path,
		Completed:   pt.completed,
		Total:       pt.total,
		StartedAt:   pt.startedAt,
		ElapsedTime: time.Since(pt.startedAt),
	})
}
