package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/vncsmyrnk/motionvote/internal/adapters/repository"
	"github.com/vncsmyrnk/motionvote/internal/config"
	"github.com/vncsmyrnk/motionvote/internal/core/services"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := run(logger, os.Args[1:]); err != nil {
		logger.Error("tally summarization failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, args []string) error {
	cfg, err := config.Load("tallysummarizing", args)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Use a timeout for the job execution to prevent it from hanging indefinitely
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	tallyService := services.NewTallyService(store.Snapshots, store.Results, logger)
	summaryService := services.NewSummaryService(store.Snapshots, tallyService, logger)

	logger.Info("starting tally summarization job")

	if err := summaryService.SummarizeAllTallies(ctx); err != nil {
		return fmt.Errorf("failed to summarize tallies: %w", err)
	}

	logger.Info("tally summarization completed successfully")
	return nil
}
