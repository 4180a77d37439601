// Package batch drives extraction runs over the two input folders and
// writes the timestamped summary file.
package batch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dsarkar/almirah/internal/extract"
	"github.com/dsarkar/almirah/internal/pipeline"
	"github.com/dsarkar/almirah/internal/record"
)

// imageExts are the input extensions the driver picks up, matched
// case-insensitively.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Config configures a Driver.
type Config struct {
	Processor  *pipeline.Processor
	Index1Dir  string
	Index2Dir  string
	ResultsDir string
	Delay      time.Duration
	Logger     *slog.Logger
}

// Driver processes every image in the INDEX I and INDEX II folders, either
// sequentially (INDEX I fully, then INDEX II fully) or as two independent
// parallel lanes. Lanes share nothing but the Processor, which opens its
// own database handle per document.
type Driver struct {
	proc       *pipeline.Processor
	index1Dir  string
	index2Dir  string
	resultsDir string
	delay      time.Duration
	logger     *slog.Logger
}

// New creates a Driver.
func New(cfg Config) *Driver {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{
		proc:       cfg.Processor,
		index1Dir:  cfg.Index1Dir,
		index2Dir:  cfg.Index2Dir,
		resultsDir: cfg.ResultsDir,
		delay:      cfg.Delay,
		logger:     logger,
	}
}

// RunAll processes both folders sequentially: the INDEX I lane end to end,
// then the INDEX II lane. A directory-listing failure aborts before any
// file is processed and returns the zeroed summary.
func (d *Driver) RunAll(ctx context.Context) *Summary {
	summary, index1Files, index2Files, ok := d.prepare()
	if !ok {
		return summary
	}

	d.logger.Info("starting batch extraction",
		"batch_id", summary.BatchInfo.BatchID,
		"total", summary.BatchInfo.TotalDocs,
		"index1", len(index1Files),
		"index2", len(index2Files))

	d.runLane(ctx, record.Index1, index1Files, &summary.Index1Results,
		&summary.Counts.Index1Successful, &summary.Counts.Index1Failed)
	d.runLane(ctx, record.Index2, index2Files, &summary.Index2Results,
		&summary.Counts.Index2Successful, &summary.Counts.Index2Failed)

	d.finish(summary)
	return summary
}

// RunParallel processes the two folders as independent lanes with no
// ordering guarantee between them. Each lane touches only its own result
// slice and counters.
func (d *Driver) RunParallel(ctx context.Context) *Summary {
	summary, index1Files, index2Files, ok := d.prepare()
	if !ok {
		return summary
	}

	d.logger.Info("starting parallel batch extraction",
		"batch_id", summary.BatchInfo.BatchID,
		"total", summary.BatchInfo.TotalDocs,
		"index1", len(index1Files),
		"index2", len(index2Files))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		d.runLane(ctx, record.Index1, index1Files, &summary.Index1Results,
			&summary.Counts.Index1Successful, &summary.Counts.Index1Failed)
	}()
	go func() {
		defer wg.Done()
		d.runLane(ctx, record.Index2, index2Files, &summary.Index2Results,
			&summary.Counts.Index2Successful, &summary.Counts.Index2Failed)
	}()
	wg.Wait()

	d.finish(summary)
	return summary
}

// prepare lists both folders and builds the zeroed summary. ok is false
// when a folder could not be listed.
func (d *Driver) prepare() (*Summary, []string, []string, bool) {
	summary := NewSummary(uuid.New().String())

	index1Files, err := ListImages(d.index1Dir)
	if err != nil {
		d.logger.Error("failed to list INDEX I folder", "dir", d.index1Dir, "err", err)
		return summary, nil, nil, false
	}
	index2Files, err := ListImages(d.index2Dir)
	if err != nil {
		d.logger.Error("failed to list INDEX II folder", "dir", d.index2Dir, "err", err)
		return summary, nil, nil, false
	}

	summary.BatchInfo.TotalIndex1Docs = len(index1Files)
	summary.BatchInfo.TotalIndex2Docs = len(index2Files)
	summary.BatchInfo.TotalDocs = len(index1Files) + len(index2Files)
	return summary, index1Files, index2Files, true
}

// runLane processes one folder's files in order, sleeping the configured
// delay between files but not after the last one.
func (d *Driver) runLane(ctx context.Context, kind record.Kind, files []string, results *[]*extract.Result, successful, failed *int) {
	if len(files) == 0 {
		d.logger.Info("no documents found", "kind", kind.Name)
		return
	}

	for i, path := range files {
		d.logger.Info("processing document",
			"kind", kind.Name, "file", filepath.Base(path), "n", i+1, "total", len(files))

		res := d.proc.ProcessDocument(ctx, path, kind)
		*results = append(*results, res)

		if res.Failed() {
			*failed++
			d.logger.Error("document failed", "kind", kind.Name, "file", filepath.Base(path), "err", res.Error)
		} else {
			*successful++
			d.logger.Info("document extracted",
				"kind", kind.Name, "file", filepath.Base(path), "entries", res.EntryCount())
		}

		if i < len(files)-1 && d.delay > 0 {
			time.Sleep(d.delay)
		}
	}
}

// finish logs totals and writes the summary file.
func (d *Driver) finish(summary *Summary) {
	c := summary.Counts
	d.logger.Info("batch complete",
		"index1_successful", c.Index1Successful, "index1_failed", c.Index1Failed,
		"index2_successful", c.Index2Successful, "index2_failed", c.Index2Failed,
		"total_successful", c.Index1Successful+c.Index2Successful,
		"total_failed", c.Index1Failed+c.Index2Failed)

	path, err := summary.WriteFile(d.resultsDir)
	if err != nil {
		d.logger.Warn("could not save batch results", "err", err)
		return
	}
	d.logger.Info("batch results saved", "path", path)
}

// ListImages returns the full paths of all jpg/jpeg/png files directly in
// dir, sorted lexicographically for deterministic processing order.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
