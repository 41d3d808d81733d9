package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/unlimitedworld/uwstats/internal/config"
	"github.com/unlimitedworld/uwstats/internal/database"
	"github.com/unlimitedworld/uwstats/internal/extract"
	"github.com/unlimitedworld/uwstats/internal/log"
	"github.com/unlimitedworld/uwstats/internal/model"
	"github.com/unlimitedworld/uwstats/internal/pipeline"
	"github.com/unlimitedworld/uwstats/internal/report"
	"github.com/unlimitedworld/uwstats/internal/stats"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [format]",
		Short: "Extract messages from mined snapshots and report compliance",
		Long: `Stats parses the page snapshots produced by the mine command,
classifies every message against the forum's posting rules, and renders
a per-author compliance table.

Formats: simple (default), markdown, bbcode, json.

Examples:
  # Plain text table from the default snapshot directory
  uwstats stats

  # BBCode table restricted to pages 10 through 19
  uwstats stats bbcode --pagerange 10,20

  # Persist extracted records and write a Markdown report to a file
  uwstats stats markdown --save-db --url https://uwmc.de/threads/example.12345/ -o report.md

  # Re-report from the database without touching the snapshots
  uwstats stats json --from-db --url https://uwmc.de/threads/example.12345/`,
		Args: cobra.MaximumNArgs(1),
		RunE: runStatsCmd,
	}

	cmd.Flags().StringP("path", "p", config.DefaultSnapshotDir,
		"Directory holding page snapshot files")
	cmd.Flags().String("pagerange", "",
		"Restrict to pages \"n1,n2\" (n2 exclusive, mutually exclusive with --postrange)")
	cmd.Flags().String("postrange", "",
		"Restrict to posts \"n1,n2\" (n2 exclusive, mutually exclusive with --pagerange)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().StringP("url", "u", "",
		"Thread base address, required with --save-db or --from-db")
	cmd.Flags().Bool("save-db", false,
		"Persist extracted records to the statistics database")
	cmd.Flags().Bool("from-db", false,
		"Report from previously persisted records instead of snapshots")
	cmd.Flags().String("db", "",
		"Statistics database directory (default: XDG data directory)")
	cmd.Flags().StringP("rules", "c", "",
		"Extraction rules file path (default: .uwstats in current or home directory)")

	return cmd
}

// runStatsCmd executes the stats command.
func runStatsCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildStatsConfig(cmd, args)
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	sel, err := buildSelection(cfg)
	if err != nil {
		return err
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fromDB, err := cmd.Flags().GetBool("from-db")
	if err != nil {
		return err
	}

	var summary *model.ThreadSummary
	if fromDB {
		summary, err = summarizeFromDB(ctx, cfg, sel)
	} else {
		summary, err = summarizeFromSnapshots(ctx, cfg, sel, cfg.SaveToDB, logger)
	}
	if err != nil {
		return err
	}

	output, closeOutput, err := openReportOutput(cmd, cfg.ReportFile)
	if err != nil {
		return err
	}
	defer closeOutput()

	renderer, err := report.NewRenderer(format, output)
	if err != nil {
		return err
	}
	if _, err := renderer.Render(summary); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// summarizeFromSnapshots runs the extract pipeline over the snapshot
// directory, optionally persisting the records.
func summarizeFromSnapshots(ctx context.Context, cfg *config.Config, sel model.Selection, saveDB bool, logger *slog.Logger) (*model.ThreadSummary, error) {
	extractor := extract.NewExtractor(cfg.Rules, extract.WithLogger(logger))

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddStep(pipeline.NewExtractStep(extractor, pipeline.WithExtractLogger(logger)))

	var db *database.StatsDB
	if saveDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return nil, err
		}
		defer func() { _ = db.Close() }()
		p.AddStep(pipeline.NewStoreStep(db, pipeline.WithStoreLogger(logger)))
	}
	p.AddStep(pipeline.NewSummarizeStep(sel))

	threadReport := model.NewThreadReport(cfg.ThreadURL, cfg.SnapshotDir)
	if err := p.Execute(ctx, threadReport); err != nil {
		return nil, err
	}
	return threadReport.Summary, nil
}

// openReportOutput resolves the report destination: stdout by default,
// or a file whose parent directories are created on demand.
func openReportOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("create report directory: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("create report file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// summarizeFromDB loads previously persisted records and aggregates them.
func summarizeFromDB(ctx context.Context, cfg *config.Config, sel model.Selection) (*model.ThreadSummary, error) {
	if cfg.ThreadURL == "" {
		return nil, config.ErrNoThreadURL
	}

	db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	records, err := db.ListRecords(ctx, cfg.ThreadURL)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no stored records for thread %s", cfg.ThreadURL)
	}

	return stats.Summarize(records, sel)
}

// buildSelection parses the optional range flags into a Selection.
func buildSelection(cfg *config.Config) (model.Selection, error) {
	var sel model.Selection
	var err error

	if cfg.PageRange != "" {
		sel.Pages, err = model.ParseRange(cfg.PageRange)
		if err != nil {
			return sel, err
		}
	}
	if cfg.PostRange != "" {
		sel.Posts, err = model.ParseRange(cfg.PostRange)
		if err != nil {
			return sel, err
		}
	}

	return sel, sel.Validate()
}

// buildStatsConfig creates a Config from the stats command's flags.
func buildStatsConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	cfg.Format = string(report.FormatSimple)
	if len(args) == 1 {
		cfg.Format = args[0]
	}

	var err error
	cfg.SnapshotDir, err = cmd.Flags().GetString("path")
	if err != nil {
		return nil, err
	}

	cfg.PageRange, err = cmd.Flags().GetString("pagerange")
	if err != nil {
		return nil, err
	}

	cfg.PostRange, err = cmd.Flags().GetString("postrange")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	rawURL, err := cmd.Flags().GetString("url")
	if err != nil {
		return nil, err
	}
	if rawURL != "" {
		cfg.ThreadURL, err = config.NormalizeThreadURL(rawURL)
		if err != nil {
			return nil, err
		}
	}

	cfg.SaveToDB, err = cmd.Flags().GetBool("save-db")
	if err != nil {
		return nil, err
	}
	if dbDir, err := cmd.Flags().GetString("db"); err != nil {
		return nil, err
	} else if dbDir != "" {
		cfg.DBDir = dbDir
	}
	if cfg.SaveToDB && cfg.ThreadURL == "" {
		return nil, fmt.Errorf("--save-db requires --url to key the stored records: %w", config.ErrNoThreadURL)
	}

	cfg.RulesFilePath, err = cmd.Flags().GetString("rules")
	if err != nil {
		return nil, err
	}

	// An explicitly specified rules file must exist; the implicit search
	// silently falls back to the built-in defaults.
	rulesPath := config.FindRulesFile(cfg.RulesFilePath)
	if rulesPath != "" {
		cfg.Rules, err = config.LoadRulesFile(rulesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load rules file %s: %w", rulesPath, err)
		}
	} else if cfg.RulesFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrRulesNotFound, cfg.RulesFilePath)
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}
