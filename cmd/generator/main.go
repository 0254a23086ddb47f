package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"salespulse/internal/config"
	"salespulse/internal/exporter"
	"salespulse/internal/files"
	"salespulse/internal/generator"
	"salespulse/internal/infrastructure"
)

func main() {
	configFile := flag.String("config", "salespulse.yaml", "path to YAML configuration file")
	outName := flag.String("out", "sales.csv", "output filename, written to the raw data directory")
	count := flag.Int("count", 0, "number of records to generate (overrides configuration)")
	seed := flag.Int64("seed", 0, "random seed (overrides configuration)")
	force := flag.Bool("force", false, "overwrite the output file if it already exists")
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
		cfg.Logging.FilePath = paths.GetLogPath("generator.log")
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	genCfg := generator.Config{
		RecordCount: cfg.Generator.RecordCount,
		Seed:        cfg.Generator.Seed,
		DateFrom:    cfg.Generator.DateFrom,
		DateTo:      cfg.Generator.DateTo,
	}
	if *count > 0 {
		genCfg.RecordCount = *count
	}
	if *seed != 0 {
		genCfg.Seed = *seed
	}

	manager := files.NewManager(paths)
	outPath := "raw/" + *outName
	if manager.FileExists(outPath) && !*force {
		logger.Error("Output file already exists",
			slog.String("path", paths.GetRawPath(*outName)))
		fmt.Fprintln(os.Stderr, "output file already exists; pass -force to overwrite")
		os.Exit(1)
	}

	g, err := generator.NewGenerator(logger, genCfg)
	if err != nil {
		logger.Error("Invalid generator configuration", "error", err)
		os.Exit(1)
	}

	records := g.Generate()

	writer := exporter.NewCSVWriter(paths)
	if err := writer.WriteCSV(outPath, exporter.WriteOptions{
		Headers: generator.Headers(),
		Records: generator.Rows(records),
	}); err != nil {
		logger.Error("Failed to write raw dataset", "error", err)
		os.Exit(1)
	}

	size, err := manager.GetFileSize(outPath)
	if err != nil {
		size = 0
	}

	logger.Info("Raw dataset written",
		slog.String("path", paths.GetRawPath(*outName)),
		slog.Int("records", len(records)),
		slog.Int64("seed", genCfg.Seed),
		slog.Int64("size_bytes", size))

	fmt.Printf("Generated %d records into %s\n", len(records), paths.GetRawPath(*outName))
}
