// Command merger reads CSV files of insurance user-account records from an
// input directory, keeps the highest-versioned record per user per company,
// and writes one sorted CSV file per company into an output directory.
//
// Usage:
//
//	merger [flags] <inputDirectory> <outputDirectory>
//
// Exit codes: 0 on success, 1 on a fatal failure (unusable input directory
// or output directory that cannot be created), 2 on bad usage. The original
// importer this replaces always exited zero; the distinct codes are a
// deliberate, documented change.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"uarcli/internal/config"
	"uarcli/internal/exporter"
	"uarcli/internal/infrastructure"
	"uarcli/internal/ingestion"
	"uarcli/internal/validation"
)

func main() {
	logLevel := flag.String("log-level", "", "override configured log level (debug|info|warn|error)")
	withExcel := flag.Bool("xlsx", false, "also ingest .xlsx workbooks with the same column layout")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *withExcel {
		cfg.Ingestion.IncludeExcel = true
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	// One trace ID per run so every log line is attributable
	ctx := infrastructure.ContextWithTraceID(context.Background())
	logger = logger.With(slog.String("trace_id", infrastructure.GetTraceID(ctx)))

	code := run(flag.Arg(0), flag.Arg(1), cfg, logger)
	_ = infrastructure.CloseLogFile()
	os.Exit(code)
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: merger [flags] <inputDirectory> <outputDirectory>")
	fmt.Fprintln(os.Stderr, "\nMerges insurance user-account CSV records, keeping the highest version")
	fmt.Fprintln(os.Stderr, "per user per company, and writes one sorted CSV file per company.")
	fmt.Fprintln(os.Stderr, "\nFlags:")
	flag.PrintDefaults()
}

// run executes the two-phase pipeline and returns the process exit code.
func run(inDir, outDir string, cfg *config.Config, logger *slog.Logger) int {
	logger.Info("starting account record merge",
		slog.String("input_dir", inDir),
		slog.String("output_dir", outDir),
		slog.Bool("include_excel", cfg.Ingestion.IncludeExcel))

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputDirectory(inDir, "*.csv"); err != nil {
		logger.Error("input directory validation failed", slog.String("error", err.Error()))
		return 1
	}

	stage := ingestion.NewStage(ingestion.Options{
		Reporter:     ingestion.NewLogReporter(logger),
		Logger:       logger,
		IncludeExcel: cfg.Ingestion.IncludeExcel,
	})

	table, err := stage.LoadDirectory(inDir)
	if err != nil {
		logger.Error("failed to read input directory", slog.String("error", err.Error()))
		return 1
	}

	companyExporter := exporter.NewCompanyExporter(logger)
	if err := companyExporter.Export(table, outDir); err != nil {
		logger.Error("emission failed", slog.String("error", err.Error()))
		return 1
	}

	stats := stage.Stats()
	logger.Info("merge complete",
		slog.Int("files_processed", stats.FilesProcessed),
		slog.Int("files_failed", stats.FilesFailed),
		slog.Int("lines_parsed", stats.LinesParsed),
		slog.Int("lines_malformed", stats.LinesMalformed),
		slog.Int("lines_bad_version", stats.LinesBadVersion),
		slog.Int("companies", len(table.Companies())),
		slog.Int("records_written", table.Len()))

	return 0
}
