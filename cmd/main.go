package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"

	"github.com/gridironhq/sportwire/internal/api"
	"github.com/gridironhq/sportwire/internal/config"
	"github.com/gridironhq/sportwire/internal/email"
	"github.com/gridironhq/sportwire/internal/feed"
	"github.com/gridironhq/sportwire/internal/logger"
	"github.com/gridironhq/sportwire/internal/middleware"
	"github.com/gridironhq/sportwire/internal/pipeline"
	"github.com/gridironhq/sportwire/internal/report"
	"github.com/gridironhq/sportwire/internal/scrape"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: cfg.LogFile,
		Pretty: cfg.Env == "development",
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Msg("Starting sportwire...")

	sources, err := config.LoadSources(cfg.SourcesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load source configuration")
	}
	log.Info().
		Int("sources", len(sources)).
		Int("enabled", len(config.EnabledSources(sources))).
		Msg("Loaded source configuration")

	feedFetcher := feed.NewFetcher(feed.FetcherOptions{
		Timeout:    cfg.FeedTimeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		UserAgent:  cfg.UserAgent,
	})
	scrapeFetcher := feed.NewFetcher(feed.FetcherOptions{
		Timeout:    cfg.ScrapeTimeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		UserAgent:  cfg.UserAgent,
	})

	scraper := scrape.NewScraper(scrapeFetcher, cfg.ScrapeDelay)
	scheduler := feed.NewScheduler(cfg, feedFetcher, scraper, sources)

	reports, err := report.NewGenerator(cfg.OutputDir, cfg.ReportNamePrefix)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize report generator")
	}

	runner := pipeline.NewRunner(scheduler, reports, email.NewMailer(cfg), len(config.EnabledSources(sources)))

	// First run happens immediately; cron only schedules repeats.
	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()

	if meta, err := runner.Run(runCtx); err != nil {
		log.Fatal().Err(err).Msg("Aggregation run failed")
	} else {
		log.Info().
			Str("run_id", meta.RunID).
			Int("items", meta.TotalItems).
			Msg("Aggregation run complete")
	}

	var cronRunner *cron.Cron
	if cfg.CronSchedule != "" {
		cronRunner = cron.New()
		if _, err := cronRunner.AddFunc(cfg.CronSchedule, func() {
			if _, err := runner.Run(runCtx); err != nil {
				log.Error().Err(err).Msg("Scheduled aggregation run failed")
			}
		}); err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.CronSchedule).Msg("Invalid cron schedule")
		}
		cronRunner.Start()
		log.Info().Str("schedule", cfg.CronSchedule).Msg("Recurring runs scheduled")
	}

	app := fiber.New(fiber.Config{
		IdleTimeout:  120 * time.Second,
		ErrorHandler: middleware.ErrorHandler,
	})
	api.SetupRoutes(app, runner)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting status server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")
	cancelRun()
	if cronRunner != nil {
		cronRunner.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Exited properly")
}
