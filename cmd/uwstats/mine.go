package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/unlimitedworld/uwstats/internal/config"
	"github.com/unlimitedworld/uwstats/internal/log"
	"github.com/unlimitedworld/uwstats/internal/miner"
	"github.com/unlimitedworld/uwstats/internal/model"
	"github.com/unlimitedworld/uwstats/internal/pipeline"
)

// NewMineCmd creates the mine command.
func NewMineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Download all pages of a forum thread into local snapshots",
		Long: `Mine resolves a thread's last page via the forum's own redirect,
then downloads every page into numbered HTML snapshot files.

The snapshot files are the input of the stats command. Re-running mine
with --only-new-pages resumes from the highest page already on disk,
re-fetching that page because it may have grown since the last run.

Examples:
  # Mine a full thread
  uwstats mine --url https://uwmc.de/threads/example.12345/

  # Mine with a bounded worker pool instead of sequentially
  uwstats mine --url https://uwmc.de/threads/example.12345/ --threaded

  # Resume a previous run, fetching only new pages
  uwstats mine --url https://uwmc.de/threads/example.12345/ --only-new-pages`,
		Args: cobra.NoArgs,
		RunE: runMineCmd,
	}

	cmd.Flags().StringP("url", "u", "",
		"Thread base address (required)")
	cmd.Flags().StringP("path", "p", config.DefaultSnapshotDir,
		"Directory for page snapshot files")
	cmd.Flags().Bool("threaded", false,
		"Fetch pages with a bounded worker pool instead of sequentially")
	cmd.Flags().IntP("concurrency", "b", config.DefaultConcurrency,
		"Worker limit in threaded mode")
	cmd.Flags().BoolP("only-new-pages", "n", false,
		"Resume from the highest page already on disk")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")

	if err := cmd.MarkFlagRequired("url"); err != nil {
		panic(err)
	}

	return cmd
}

// runMineCmd executes the mine command.
func runMineCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildMineConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)

	// Handle interrupt signals. Cancellation takes effect between pages,
	// never mid-page, so already-saved snapshots stay usable.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	fetcher := miner.NewFetcher(
		miner.WithTimeout(cfg.Timeout),
		miner.WithUserAgent(cfg.UserAgent),
		miner.WithMaxBodySize(cfg.MaxBodySize),
	)
	m := miner.New(fetcher, cfg.ThreadURL,
		miner.WithParallel(cfg.Parallel),
		miner.WithConcurrency(cfg.Concurrency),
		miner.WithLogger(logger),
	)

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddStep(pipeline.NewFetchStep(m,
		pipeline.WithOnlyNewPages(cfg.OnlyNewPages),
		pipeline.WithFetchLogger(logger),
	))

	report := model.NewThreadReport(cfg.ThreadURL, cfg.SnapshotDir)
	if err := p.Execute(ctx, report); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "mined %d page(s), thread has %d page(s), snapshots in %s\n",
		report.PagesFetched, report.LastPage, report.Dir)
	return nil
}

// buildMineConfig creates a Config from the mine command's flags.
func buildMineConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	rawURL, err := cmd.Flags().GetString("url")
	if err != nil {
		return nil, err
	}
	cfg.ThreadURL, err = config.NormalizeThreadURL(rawURL)
	if err != nil {
		return nil, err
	}

	cfg.SnapshotDir, err = cmd.Flags().GetString("path")
	if err != nil {
		return nil, err
	}

	cfg.Parallel, err = cmd.Flags().GetBool("threaded")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.OnlyNewPages, err = cmd.Flags().GetBool("only-new-pages")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}
