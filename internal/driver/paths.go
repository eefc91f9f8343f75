package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"bwqlint/internal/trace"
)

// CollectPaths expands directories to the *.bwq files beneath them. Files
// named explicitly are kept whatever their extension. The result is
// sorted and free of duplicates.
func CollectPaths(paths []string) ([]string, error) {
	seen := make(map[string]struct{}, len(paths))
	var out []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// скрытые каталоги (.git и т.п.) пропускаем
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(d.Name(), QueryExt) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	slices.Sort(out)
	return out, nil
}

// LintPaths lints every query under paths in parallel. Reports come back
// in sorted path order regardless of completion order. Per-file read
// failures land in Report.Err; the returned error is reserved for path
// expansion failures and cancellation.
func LintPaths(ctx context.Context, paths []string, opts Options) ([]*Report, error) {
	files, err := CollectPaths(paths)
	if err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "lint")
	defer span.End(strconv.Itoa(len(files)) + " files")

	if len(files) == 0 {
		return nil, nil
	}

	for i, path := range files {
		opts.Progress.emit(ProgressEvent{Path: path, Index: i, Total: len(files), Status: ProgressQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	reports := make([]*Report, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			opts.Progress.emit(ProgressEvent{Path: path, Index: i, Total: len(files), Status: ProgressStarted})
			rep := LintFile(gctx, path, opts)
			reports[i] = rep
			opts.Progress.emit(ProgressEvent{Path: path, Index: i, Total: len(files), Status: ProgressDone, Report: rep})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}
	return reports, nil
}
