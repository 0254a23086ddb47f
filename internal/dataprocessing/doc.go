// Package dataprocessing implements the sales enrichment and aggregation
// pipeline: schema validation of raw transactional records, per-record
// attribute derivation (calendar, value bucket, delivery category, success
// flag, profit margin), whole-batch customer segmentation into spend tiers,
// and KPI aggregation into global totals plus grouped breakdowns.
//
// The pipeline is a single-pass batch computation. Enrichment is a pure
// per-record function and may be partitioned across workers; segmentation
// and aggregation are whole-batch reductions and always see the complete
// enriched set. All tunables (bucket boundaries, delivery thresholds, tier
// cut points, the revenue-inclusion flag) arrive as an explicit immutable
// Config validated before any run starts.
//
// Data flows one way:
//
//	raw records -> validated records -> enriched records
//	            -> customer profiles -> tier-annotated records -> KPI report
//
// Malformed records are never fatal: they are excluded and reported
// individually with their rejection reason. Only an empty valid batch or an
// inconsistent configuration aborts a run.
package dataprocessing
