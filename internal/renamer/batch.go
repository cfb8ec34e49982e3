package renamer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/airename/internal/format"
	"github.com/alnah/airename/internal/logger"
	"github.com/alnah/airename/internal/source"
)

// Loader turns a file into model input.
// *source.Loader implements this implicitly.
type Loader interface {
	Load(ctx context.Context, path string) (source.Material, error)
}

// Result is the outcome for one file.
// After Preview, NewName has no extension; after Apply it is the final
// base name and NewPath the renamed file.
type Result struct {
	Path         string   `json:"path"`
	OriginalName string   `json:"originalName"`
	NewName      string   `json:"newName,omitempty"`
	NewPath      string   `json:"newPath,omitempty"`
	Success      bool     `json:"success"`
	Error        string   `json:"error,omitempty"`
	Category     Category `json:"category,omitempty"`

	err error
}

// Err returns the underlying error of a failed result.
func (r Result) Err() error {
	return r.err
}

// Summary aggregates the results of a batch.
type Summary struct {
	Total      int      `json:"total"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Results    []Result `json:"results"`
}

func summarize(results []Result) Summary {
	s := Summary{Total: len(results), Results: results}
	for _, r := range results {
		if r.Success {
			s.Successful++
		} else {
			s.Failed++
		}
	}
	return s
}

func failed(r Result, err error) Result {
	r.Success = false
	r.err = err
	r.Error = err.Error()
	r.Category = Categorize(err)
	return r
}

// Preview computes a new name for every path.
//
// Files are processed by at most the configured number of workers and
// results keep the order of paths. A failing file is recorded in its Result
// and never stops the others; only cancellation of ctx cuts the batch short,
// leaving unprocessed files marked as canceled.
// base supplies everything but the content of each Request.
func (r *Renamer) Preview(ctx context.Context, paths []string, loader Loader, base Request) Summary {
	results := make([]Result, len(paths))
	for i, p := range paths {
		results[i] = Result{Path: p, OriginalName: filepath.Base(p)}
	}

	// Semaphore channel for concurrency control.
	sem := make(chan struct{}, r.concurrency)
	var g errgroup.Group

	for i, p := range paths {
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results[i] = failed(results[i], ctx.Err())
				return nil
			}
			defer func() { <-sem }()

			results[i] = r.previewOne(ctx, p, loader, base, results[i])
			return nil
		})
	}
	_ = g.Wait() // workers record failures in results and never return an error

	return summarize(results)
}

func (r *Renamer) previewOne(ctx context.Context, path string, loader Loader, base Request, res Result) Result {
	ctx = logger.WithFile(logger.WithRequestID(ctx, logger.GenerateRequestID()), path)
	log := r.log.WithContext(ctx)

	if err := ctx.Err(); err != nil {
		return failed(res, err)
	}

	m, err := loader.Load(ctx, path)
	if err != nil {
		r.log.LogError(ctx, err, "cannot read file")
		return failed(res, err)
	}
	log.Debug("file loaded", "kind", string(m.Kind), "size", format.Size(materialSize(m)))

	req := base
	req.Content = m.Content
	req.Images = m.Images
	req.VideoPrompt = m.VideoPrompt

	name, err := r.ComputeFilename(ctx, req)
	if err != nil {
		r.log.LogError(ctx, err, "no name computed", "category", string(Categorize(err)))
		return failed(res, err)
	}

	log.Info("name computed", "kind", string(m.Kind), "name", name)
	res.NewName = name
	res.Success = true
	return res
}

// materialSize is the number of bytes sent to the model for m.
func materialSize(m source.Material) int64 {
	n := int64(len(m.Content))
	for _, img := range m.Images {
		n += int64(len(img))
	}
	return n
}

// Apply renames every successful preview result in place, keeping the
// original extension. Failed previews are carried over unchanged.
//
// Renames run one after another so that two files given the same name
// cannot race: the second one fails with ErrTargetExists.
func (r *Renamer) Apply(preview []Result) Summary {
	results := make([]Result, len(preview))
	for i, res := range preview {
		if !res.Success {
			results[i] = res
			continue
		}
		results[i] = r.applyOne(res)
	}
	return summarize(results)
}

// TargetName returns name with the extension of path reattached, unless
// name already ends with it.
func TargetName(path, name string) string {
	ext := filepath.Ext(path)
	if ext != "" && !strings.HasSuffix(name, ext) {
		return name + ext
	}
	return name
}

func (r *Renamer) applyOne(res Result) Result {
	name := TargetName(res.Path, res.NewName)

	if name == "" || strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return failed(res, fmt.Errorf("%q: %w", name, ErrInvalidTarget))
	}

	target := filepath.Join(filepath.Dir(res.Path), name)
	res.NewName = name
	res.NewPath = target

	if target == filepath.Clean(res.Path) {
		return res
	}
	if _, err := os.Lstat(target); err == nil {
		return failed(res, fmt.Errorf("%s: %w", name, ErrTargetExists))
	} else if !os.IsNotExist(err) {
		return failed(res, fmt.Errorf("cannot check target: %w", err))
	}

	if err := os.Rename(res.Path, target); err != nil {
		return failed(res, fmt.Errorf("rename failed: %w", err))
	}

	r.log.Info("renamed", "from", res.Path, "to", target)
	return res
}
