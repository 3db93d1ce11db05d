package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/gridironhq/sportwire/internal/email"
	"github.com/gridironhq/sportwire/internal/feed"
	"github.com/gridironhq/sportwire/internal/logger"
	"github.com/gridironhq/sportwire/internal/models"
	"github.com/gridironhq/sportwire/internal/report"
)

// Runner executes one full aggregation run: gather and enrich items, write
// report files, deliver email. It also keeps the latest run's output for
// the status API.
type Runner struct {
	scheduler *feed.Scheduler
	reports   *report.Generator
	mailer    *email.Mailer
	sources   int

	mu      sync.RWMutex
	latest  []models.NewsItem
	lastRun time.Time
}

func NewRunner(scheduler *feed.Scheduler, reports *report.Generator, mailer *email.Mailer, sourceCount int) *Runner {
	return &Runner{
		scheduler: scheduler,
		reports:   reports,
		mailer:    mailer,
		sources:   sourceCount,
	}
}

// Run executes the pipeline once. Report and email failures are logged but
// do not fail the run; only the aggregation itself can.
func (r *Runner) Run(ctx context.Context) (report.Metadata, error) {
	items, err := r.scheduler.GetAllFeeds(ctx)
	if err != nil {
		return report.Metadata{}, err
	}

	meta := report.NewMetadata(len(items), r.sources)

	if _, err := r.reports.WriteMarkdown(items, meta); err != nil {
		logger.WithError(err).Msg("Failed to write markdown report")
	}
	if _, err := r.reports.WriteCSV(items, meta); err != nil {
		logger.WithError(err).Msg("Failed to write csv report")
	}
	if err := r.mailer.SendReport(items, meta); err != nil {
		logger.WithError(err).Msg("Failed to deliver report email")
	}

	r.mu.Lock()
	r.latest = items
	r.lastRun = meta.GeneratedAt
	r.mu.Unlock()

	return meta, nil
}

// Latest returns the item list from the most recent completed run.
func (r *Runner) Latest() ([]models.NewsItem, time.Time) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]models.NewsItem, len(r.latest))
	copy(items, r.latest)
	return items, r.lastRun
}

// Status exposes the scheduler's per-source cache view.
func (r *Runner) Status() []models.SourceStatus {
	return r.scheduler.Status()
}
