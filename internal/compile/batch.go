package compile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dgallion1/guidegen/internal/config"
	"github.com/dgallion1/guidegen/internal/parse"
	"github.com/dgallion1/guidegen/internal/render"
)

// BatchResult aggregates a directory compilation.
type BatchResult struct {
	Compiled int
	Failed   int
	Errors   []string
}

// RunDir compiles every supported source file in inputDir into outputDir
// using a bounded worker pool. Each file is an independent single-pass
// compilation; one failing file does not stop the others, but any failure
// makes the batch as a whole fail.
func RunDir(ctx context.Context, cfg config.Config, log *slog.Logger, inputDir, outputDir, title string, mode render.Mode, strict bool) (*BatchResult, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !parse.IsSupportedExtension(e.Name()) {
			continue
		}
		files = append(files, e.Name())
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no supported source files in %s", inputDir)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	jobs := make(chan string)
	var (
		mu  sync.Mutex
		res BatchResult
		wg  sync.WaitGroup
	)

	workers := cfg.WorkerCount
	if workers > len(files) {
		workers = len(files)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}

				jobLog := log.With("file", name)
				base := strings.TrimSuffix(name, filepath.Ext(name))
				_, err := Run(cfg, jobLog, Request{
					InputPath:  filepath.Join(inputDir, name),
					OutputPath: filepath.Join(outputDir, base+".html"),
					Title:      batchTitle(title, base),
					Mode:       mode,
					Strict:     strict,
				})

				mu.Lock()
				if err != nil {
					jobLog.Error("compilation failed", "error", err)
					res.Failed++
					res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", name, err))
				} else {
					res.Compiled++
				}
				mu.Unlock()
			}
		}()
	}

	for _, name := range files {
		jobs <- name
	}
	close(jobs)
	wg.Wait()

	if res.Failed > 0 {
		return &res, fmt.Errorf("%d of %d files failed to compile", res.Failed, len(files))
	}
	return &res, nil
}

// batchTitle derives a per-file title from the batch title and file base
// name, so documents in one batch stay distinguishable.
func batchTitle(title, base string) string {
	if title == "" {
		return base
	}
	return fmt.Sprintf("%s: %s", title, base)
}
