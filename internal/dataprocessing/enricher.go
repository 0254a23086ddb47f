package dataprocessing

import (
	"context"

	"golang.org/x/sync/errgroup"

	"salespulse/pkg/contracts/domain"
)

// DeliveryCategoryUnknown is the sentinel assigned when a record carries no
// delivery duration. Absence of a duration is never an error.
const DeliveryCategoryUnknown = "N/A"

// Enricher derives per-record business attributes. Enrichment is a total,
// deterministic function over the validated domain: same record in, same
// enriched record out, independent of batch context or ordering.
type Enricher struct {
	cfg Config
}

// NewEnricher creates an enricher for an already-validated configuration.
func NewEnricher(cfg Config) *Enricher {
	return &Enricher{cfg: cfg}
}

// Enrich derives the calendar, monetary and behavioral attributes of one
// record. The calendar decomposition uses UTC for the whole pipeline.
func (e *Enricher) Enrich(record domain.RawSaleRecord) domain.EnrichedSaleRecord {
	date := record.Date.UTC()
	_, week := date.ISOWeek()

	return domain.EnrichedSaleRecord{
		RawSaleRecord:    record,
		Year:             date.Year(),
		Month:            int(date.Month()),
		MonthName:        date.Month().String(),
		Quarter:          (int(date.Month())-1)/3 + 1,
		Week:             week,
		Weekday:          date.Weekday().String(),
		ValueBucket:      e.valueBucket(record.FinalValue),
		DeliveryCategory: e.deliveryCategory(record.DeliveryDays),
		Success:          record.Status == domain.StatusCompleted,
		ProfitMargin:     record.FinalValue * e.cfg.MarginRate,
		CustomerTier:     domain.TierUnknown,
	}
}

// EnrichBatch enriches every record, preserving input order. When the
// configuration allows more than one worker the batch is partitioned and
// partitions are enriched independently; results are written back by index
// so the output always matches input order.
func (e *Enricher) EnrichBatch(ctx context.Context, records []domain.RawSaleRecord) ([]domain.EnrichedSaleRecord, error) {
	enriched := make([]domain.EnrichedSaleRecord, len(records))

	workers := e.cfg.Workers
	if workers < 2 || len(records) < workers {
		for i, record := range records {
			enriched[i] = e.Enrich(record)
		}
		return enriched, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	chunk := (len(records) + workers - 1) / workers

	for start := 0; start < len(records); start += chunk {
		end := start + chunk
		if end > len(records) {
			end = len(records)
		}
		start, end := start, end

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				enriched[i] = e.Enrich(records[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return enriched, nil
}

// valueBucket maps a non-negative monetary value to its configured bucket.
// Boundaries are upper bounds; the last bucket is open-ended, so the mapping
// is exhaustive and non-overlapping.
func (e *Enricher) valueBucket(value float64) string {
	for i, boundary := range e.cfg.BucketBoundaries {
		if value < boundary {
			return e.cfg.BucketLabels[i]
		}
	}
	return e.cfg.BucketLabels[len(e.cfg.BucketLabels)-1]
}

// deliveryCategory maps a delivery duration in days to its configured
// category, or the unknown sentinel when no duration is present.
func (e *Enricher) deliveryCategory(days *int) string {
	if days == nil {
		return DeliveryCategoryUnknown
	}
	for i, threshold := range e.cfg.DeliveryThresholds {
		if *days <= threshold {
			return e.cfg.DeliveryLabels[i]
		}
	}
	return e.cfg.DeliveryLabels[len(e.cfg.DeliveryLabels)-1]
}
