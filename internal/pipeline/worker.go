package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/specgest/internal/parser"
	"github.com/dgallion1/specgest/internal/record"
)

// Worker runs a single job through page extraction and the engine.
type Worker struct {
	stats *DurationStats
	log   *slog.Logger
}

func NewWorker(stats *DurationStats, log *slog.Logger) *Worker {
	return &Worker{stats: stats, log: log}
}

func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "document", job.Filename)
	start := time.Now()

	job.SetStatus(StatusExtracting, "extracting pages")
	p, err := parser.ForFile(job.Filename, job.Options.PDFFallback)
	if err != nil {
		log.Error("unsupported format", "error", err)
		w.stats.Observe(start, err)
		job.Fail("extracting", err)
		return
	}
	pages, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("page extraction failed", "error", err)
		w.stats.Observe(start, err)
		job.Fail("extracting", fmt.Errorf("parse: %w", err))
		return
	}
	job.SetPages(len(pages))

	job.SetStatus(StatusSegmenting, "segmenting")
	engine := NewEngine(job.Options, log)
	res, err := engine.RunFunc(ctx, pages, func(f record.Finalized) {
		job.AddSection(len(f.Requirements))
	})
	w.stats.Observe(start, err)
	if err != nil {
		log.Error("engine run failed", "error", err)
		job.Fail("segmenting", err)
		return
	}

	job.Complete(res)
	log.Info("job completed",
		"pages", res.Pages,
		"sections", res.Summary.TotalSections,
		"requirements", res.Summary.TotalRequirements,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
