package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"salespulse/internal/config"
	"salespulse/internal/dataprocessing"
	"salespulse/internal/exporter"
	"salespulse/internal/files"
	"salespulse/internal/infrastructure"
)

func main() {
	configFile := flag.String("config", "salespulse.yaml", "path to YAML configuration file")
	inPath := flag.String("in", "", "raw dataset CSV (defaults to the newest CSV in the raw data directory)")
	outName := flag.String("out", "enriched_sales.csv", "enriched dataset filename, written to the processed directory")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	paths := config.NewPaths(cfg.Paths)
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	if cfg.Logging.Output != "stdout" {
		cfg.Logging.FilePath = paths.GetLogPath("pipeline.log")
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	runID := uuid.NewString()
	ctx := infrastructure.WithRunID(context.Background(), runID)

	logger.InfoContext(ctx, "Starting sales pipeline",
		slog.String("config_file", *configFile),
		slog.String("base_dir", paths.BaseDir))

	// Resolve the input dataset
	input := *inPath
	if input == "" {
		// paths.RawDir is already resolved, so the discovery roots at cwd
		discovery := files.NewDiscovery(".")
		latest, ok, err := discovery.FindLatestCSV(paths.RawDir)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to scan raw data directory", "error", err)
			os.Exit(1)
		}
		if !ok {
			logger.ErrorContext(ctx, "No raw dataset found",
				slog.String("raw_dir", paths.RawDir))
			fmt.Fprintln(os.Stderr, "no raw dataset found; run the generator first or pass -in")
			os.Exit(1)
		}
		input = latest.Path
		logger.InfoContext(ctx, "Using newest raw dataset",
			slog.String("path", input),
			slog.Int64("size_bytes", latest.Size))
	} else if _, err := os.Stat(input); err != nil {
		logger.ErrorContext(ctx, "Input dataset does not exist", slog.String("path", input))
		os.Exit(1)
	}

	raw, typeRejected, err := dataprocessing.ParseFile(input)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to parse raw dataset",
			slog.String("path", input), "error", err)
		os.Exit(1)
	}
	fmt.Printf("Parsed %d records from %s\n", len(raw), input)

	pipeline, err := dataprocessing.NewPipeline(logger, pipelineConfig(cfg.Pipeline))
	if err != nil {
		logger.ErrorContext(ctx, "Invalid pipeline configuration", "error", err)
		os.Exit(1)
	}

	result, err := pipeline.Run(ctx, raw)
	if err != nil {
		logger.ErrorContext(ctx, "Pipeline run failed", "error", err)
		os.Exit(1)
	}

	rejected := append(typeRejected, result.Rejected...)
	for _, reject := range rejected {
		logger.WarnContext(ctx, "Record rejected",
			slog.String("id", reject.ID),
			slog.Int("line", reject.Line),
			slog.String("reason", reject.Reason))
	}
	fmt.Printf("Validated: %d accepted, %d rejected\n", len(result.Enriched), len(rejected))

	// Write every output; the files are independent so they go in parallel
	enrichedExporter := exporter.NewEnrichedExporter(paths)
	reportExporter := exporter.NewReportExporter(paths)
	excelExporter := exporter.NewExcelExporter(paths)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return enrichedExporter.ExportEnriched(result.Enriched, "processed/"+*outName)
	})
	g.Go(func() error {
		return enrichedExporter.ExportRejected(rejected, "rejected_records.csv")
	})
	g.Go(func() error {
		return reportExporter.ExportJSON(result.Report, "kpi_report.json")
	})
	g.Go(func() error {
		return reportExporter.ExportTextSummary(result.Report, "kpi_summary.txt")
	})
	g.Go(func() error {
		return excelExporter.ExportWorkbook(result.Report, "kpi_report.xlsx")
	})
	if err := g.Wait(); err != nil {
		logger.ErrorContext(ctx, "Failed to write outputs", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Pipeline complete",
		slog.String("report_id", result.Report.ReportID),
		slog.Int("records", result.Report.RecordCount),
		slog.Float64("total_revenue", result.Report.TotalRevenue),
		slog.Int("unique_customers", result.Report.UniqueCustomers),
		slog.Int("rejected", len(rejected)))

	fmt.Printf("Report %s written to %s\n", result.Report.ReportID, paths.ReportsDir)
}

// pipelineConfig maps the application configuration onto the core's settings.
func pipelineConfig(cfg config.PipelineConfig) dataprocessing.Config {
	return dataprocessing.Config{
		BucketBoundaries:   cfg.BucketBoundaries,
		BucketLabels:       cfg.BucketLabels,
		DeliveryThresholds: cfg.DeliveryThresholds,
		DeliveryLabels:     cfg.DeliveryLabels,
		TierCuts: dataprocessing.TierCuts{
			GoldPercent:   cfg.GoldPercent,
			SilverPercent: cfg.SilverPercent,
			BronzePercent: cfg.BronzePercent,
		},
		CompletedOnlyRevenue: cfg.CompletedOnlyRevenue,
		MarginRate:           cfg.MarginRate,
		Workers:              cfg.Workers,
	}
}
