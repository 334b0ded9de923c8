package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/codegenius/codegenius/internal/config"
	"github.com/codegenius/codegenius/internal/history"
	"github.com/codegenius/codegenius/internal/log"
	"github.com/codegenius/codegenius/internal/model"
	"github.com/codegenius/codegenius/internal/pipeline"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [directory...]",
		Short: "Scan a source tree and generate its documentation artifact",
		Long: `Scan walks one or more directories, classifies source files by language
family, extracts a lexical dependency graph, and writes a markdown document
with mermaid diagrams.

Each scanned root gets its own artifact, by default at outputs/docs.md
under the root. Scan summaries are recorded in a local history database
for later listing and comparison.

Examples:
  # Scan the current directory
  codegenius scan

  # Scan a specific project
  codegenius scan ~/src/myproject

  # Scan several trees concurrently
  codegenius scan ./service-a ./service-b ./service-c

  # Write the artifact somewhere else
  codegenius scan -o docs/architecture.md ./service-a

  # Print the outcome as JSON
  codegenius scan --json ./service-a

  # Honor the project's .gitignore during the walk
  codegenius scan --use-gitignore ./service-a

Configuration file (.codegenius) example:
  defaults:
    useGitignore: true
  roots:
    ./service-a:
      output: docs/service-a.md
      extraIgnoreDirs:
        - vendor
        - testdata`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Walk behavior flags
	cmd.Flags().BoolP("use-gitignore", "g", false,
		"Honor a .gitignore file at each scan root")
	cmd.Flags().StringSliceP("ignore", "i", nil,
		"Additional directory names to prune during the walk")

	// Batch scanning flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent scans when multiple roots are given")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .codegenius in current or home directory)")

	// Output flags
	cmd.Flags().BoolP("json", "j", false,
		"Print the scan outcome as JSON instead of human-readable text")
	cmd.Flags().StringP("output", "o", "",
		"Write the artifact to the specified path (single root only)")

	// History flags
	cmd.Flags().Bool("no-history", false,
		"Do not record this scan in the history database")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.UseGitignore, err = cmd.Flags().GetBool("use-gitignore")
	if err != nil {
		return nil, err
	}

	cfg.ExtraIgnoreDirs, err = cmd.Flags().GetStringSlice("ignore")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-root configurations from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.FileConfig, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.FileConfig = &config.File{
			Roots: make(map[string]config.RootConfig),
		}
	}

	cfg.JSONOutcome, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.OutputPath, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory

	cfg.Verbose = getVerboseFlag(cmd)

	// Positional arguments are the scan roots; default to the current
	// directory when none are given.
	cfg.Roots = args
	if len(cfg.Roots) == 0 {
		cfg.Roots = []string{"."}
	}

	return cfg, nil
}

// setupLogger creates a structured logger based on verbosity setting.
// Path attributes are abbreviated so log lines stay readable on deep trees.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewLogger(os.Stderr, verbose)
}

// runScan executes the scan over all configured roots.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting scan",
		"roots", cfg.Roots,
		"batchSize", cfg.BatchSize,
		"saveHistory", cfg.SaveHistory,
	)

	// Open the history database if saving is enabled
	var db *history.ScanDB
	if cfg.SaveHistory {
		var err error
		db, err = history.Open(cfg.HistoryDir, history.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close() //nolint:errcheck // Best effort cleanup
		logger.Info("history database opened", "dir", cfg.HistoryDir)
	}

	// Use the batch processor for parallel scanning if multiple roots
	if len(cfg.Roots) > 1 && cfg.BatchSize > 1 {
		return runBatchScan(ctx, cfg, db, logger)
	}

	return runSequentialScan(ctx, cfg, db, logger)
}

// runSequentialScan scans roots one at a time.
func runSequentialScan(ctx context.Context, cfg *config.Config, db *history.ScanDB, logger *slog.Logger) error {
	for _, root := range cfg.Roots {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p := createPipelineForRoot(cfg, root, logger)

		result := model.NewScanResult(root)

		fmt.Printf("Scanning %s...\n", root)
		startTime := time.Now()

		if err := p.Execute(ctx, result); err != nil {
			logger.Error("scan failed", "root", root, "error", err)
			fmt.Fprintf(os.Stderr, "Scan error for %s: %v\n", root, err)
			if err := outputOutcome(cfg, result); err != nil {
				logger.Error("outcome output failed", "root", root, "error", err)
			}
			continue
		}

		elapsed := time.Since(startTime)
		fmt.Printf("Scan completed in %s\n", elapsed.Round(time.Millisecond))

		if err := outputOutcome(cfg, result); err != nil {
			logger.Error("outcome output failed", "root", root, "error", err)
		}

		if err := saveScanRecord(ctx, db, result, logger); err != nil {
			logger.Error("failed to save scan record", "root", root, "error", err)
		}
	}

	return nil
}

// runBatchScan scans multiple roots concurrently using BatchProcessor.
func runBatchScan(ctx context.Context, cfg *config.Config, db *history.ScanDB, logger *slog.Logger) error {
	fmt.Printf("Starting batch scan of %d roots (concurrency: %d)...\n\n",
		len(cfg.Roots), cfg.BatchSize)

	startTime := time.Now()

	bp := pipeline.NewBatchProcessor(
		func(root string) *pipeline.Pipeline {
			return createPipelineForRoot(cfg, root, logger)
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	// Process with callback for streaming output
	var mu sync.Mutex
	err := bp.ProcessBatchWithCallback(ctx, cfg.Roots, func(result *model.ScanResult, index int) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Printf("[%d/%d] Scan completed: %s\n", index+1, len(cfg.Roots), result.Root)

		if err := outputOutcome(cfg, result); err != nil {
			logger.Error("outcome output failed", "root", result.Root, "error", err)
		}

		if err := saveScanRecord(ctx, db, result, logger); err != nil {
			logger.Error("failed to save scan record", "root", result.Root, "error", err)
		}
	})

	elapsed := time.Since(startTime)
	fmt.Printf("\nBatch scan completed in %s\n", elapsed.Round(time.Millisecond))

	return err
}

// createPipelineForRoot creates a pipeline honoring per-root configuration.
func createPipelineForRoot(cfg *config.Config, root string, logger *slog.Logger) *pipeline.Pipeline {
	var rootCfg config.RootConfig
	if cfg.FileConfig != nil {
		rootCfg = cfg.FileConfig.GetRootConfig(root)
	}

	// CLI flags override the config file.
	ignoreDirs := rootCfg.ExtraIgnoreDirs
	if len(cfg.ExtraIgnoreDirs) > 0 {
		ignoreDirs = append(ignoreDirs, cfg.ExtraIgnoreDirs...)
	}

	useGitignore := cfg.UseGitignore
	if !useGitignore && rootCfg.UseGitignore != nil {
		useGitignore = *rootCfg.UseGitignore
	}

	outputPath := cfg.OutputPath
	if outputPath == "" {
		outputPath = rootCfg.Output
	}

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewWalkStep(
			pipeline.WithWalkExtraIgnoreDirs(ignoreDirs),
			pipeline.WithWalkGitignore(useGitignore),
			pipeline.WithWalkLogger(logger),
		),
		pipeline.NewReadmeStep(logger),
		pipeline.NewExtractStep(
			pipeline.WithExtractLanguages(parseLanguages(rootCfg.Languages, root, logger)),
			pipeline.WithExtractLogger(logger),
		),
		pipeline.NewRenderStep(
			pipeline.WithRenderOutputPath(outputPath),
			pipeline.WithRenderLogger(logger),
		),
	)
	return p
}

// parseLanguages resolves configured family names for one root.
// Unrecognized names are logged and skipped; when nothing valid remains
// the restriction is lifted and every covered family is extracted.
func parseLanguages(names []string, root string, logger *slog.Logger) []model.Language {
	langs := make([]model.Language, 0, len(names))
	for _, name := range names {
		lang, ok := model.ParseLanguage(name)
		if !ok {
			logger.Warn("unknown language family in config",
				"root", root,
				"language", name,
			)
			continue
		}
		langs = append(langs, lang)
	}
	return langs
}

// outputOutcome prints the scan outcome in the requested format.
func outputOutcome(cfg *config.Config, result *model.ScanResult) error {
	outcome := result.Outcome()

	if cfg.JSONOutcome {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(outcome)
	}

	if outcome.OK {
		fmt.Printf("  root:     %s\n", outcome.Root)
		fmt.Printf("  artifact: %s (%d bytes)\n", outcome.ArtifactPath, outcome.SizeBytes)
		fmt.Printf("  files:    %d classified\n\n", result.TotalFiles())
		return nil
	}

	fmt.Printf("  root:  %s\n", outcome.Root)
	fmt.Printf("  error: %s\n\n", outcome.Error)
	return nil
}

// saveScanRecord saves the scan summary to the history database if enabled.
// If db is nil or the scan failed, this function is a no-op.
func saveScanRecord(ctx context.Context, db *history.ScanDB, result *model.ScanResult, logger *slog.Logger) error {
	if db == nil || result.ErrorMessage != "" {
		return nil
	}

	id, err := db.SaveScan(ctx, history.NewRecord(result))
	if err != nil {
		return fmt.Errorf("failed to save scan record: %w", err)
	}

	logger.Info("scan record saved", "root", result.Root, "id", id)
	return nil
}
