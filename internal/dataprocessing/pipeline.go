package dataprocessing

import (
	"context"
	"log/slog"

	"salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// Pipeline orchestrates one full run: validation, enrichment, segmentation,
// tier annotation and aggregation. It owns the lifetime of every
// intermediate structure for a single run; nothing outlives the run or is
// shared across concurrent runs.
type Pipeline struct {
	cfg        Config
	logger     *slog.Logger
	validator  *Validator
	enricher   *Enricher
	segmenter  *Segmenter
	aggregator *Aggregator
}

// Result is the complete output of one pipeline run.
type Result struct {
	Enriched []domain.EnrichedSaleRecord
	Profiles map[string]domain.CustomerProfile
	Report   *domain.KPIReport
	Rejected []domain.RejectedRecord
}

// NewPipeline validates the configuration and wires the pipeline stages.
/// A configuration inconsistency is fatal: the run never begins.
func NewPipeline(logger *slog.Logger, cfg Config) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:        cfg,
		logger:     logger.With(slog.String("component", "pipeline")),
		validator:  NewValidator(logger),
		enricher:   NewEnricher(cfg),
		segmenter:  NewSegmenter(logger, cfg),
		aggregator: NewAggregator(logger, cfg),
	}, nil
}

// Run executes the pipeline over one raw batch. Data-quality issues surface
// in Result.Rejected; the only fatal condition after construction is a batch
// with no valid records.
func (p *Pipeline) Run(ctx context.Context, raw []domain.RawSaleRecord) (*Result, error) {
	p.logger.InfoContext(ctx, "pipeline run started", slog.Int("raw_records", len(raw)))

	valid, rejected := p.validator.ValidateBatch(raw)
	if len(valid) == 0 {
		return nil, errors.NewValidationError("no valid records in input").
			WithContext("raw_records", len(raw)).
			WithContext("rejected", len(rejected))
	}

	enriched, err := p.enricher.EnrichBatch(ctx, valid)
	if err != nil {
		return nil, err
	}

	profiles := p.segmenter.Segment(enriched)
	p.segmenter.AnnotateTiers(enriched, profiles)

	report := p.aggregator.Aggregate(ctx, enriched)

	p.logger.InfoContext(ctx, "pipeline run complete",
		slog.Int("enriched_records", len(enriched)),
		slog.Int("customers", len(profiles)),
		slog.Int("rejected_records", len(rejected)),
		slog.String("report_id", report.ReportID))

	return &Result{
		Enriched: enriched,
		Profiles: profiles,
		Report:   report,
		Rejected: rejected,
	}, nil
}
