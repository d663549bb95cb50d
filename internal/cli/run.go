package cmd

import (
	"context"
	"fmt"

	"github.com/rohmanhakim/sitecrawler/internal/config"
	"github.com/rohmanhakim/sitecrawler/internal/scheduler"
)

// runCrawl wires a Config into a Scheduler and drives it to completion,
// printing the final summary the way the teacher's rootCmd prints the
// parsed configuration.
func runCrawl(ctx context.Context, cfg config.Config) error {
	sch, err := scheduler.New(cfg)
	if err != nil {
		return fmt.Errorf("initializing scheduler: %w", err)
	}

	summary, runErr := sch.Run(ctx)
	if runErr != nil {
		return fmt.Errorf("running crawl: %w", runErr)
	}

	fmt.Printf("Crawl complete: %d pages, %d failed URLs, %d errors\n",
		summary.PagesCrawled, len(summary.FailedURLs), summary.CrawlStats.Errors)
	return nil
}
