package dataprocessing

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"salespulse/pkg/contracts/domain"
)

// Validator checks raw records against the expected schema before
// enrichment. Malformed records are reported, never raised: validation is a
// pure function over the input batch.
type Validator struct {
	logger   *slog.Logger
	validate *validator.Validate
}

// NewValidator creates a schema validator.
func NewValidator(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}

	v := validator.New()

	// Use JSON tag names in rejection reasons
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		logger:   logger.With(slog.String("component", "validator")),
		validate: v,
	}
}

// ValidateBatch returns the records that conform to the schema, paired with
// the rejected records and their rejection reasons. The first occurrence of
// a duplicated identifier wins; later duplicates are rejected.
func (v *Validator) ValidateBatch(records []domain.RawSaleRecord) ([]domain.RawSaleRecord, []domain.RejectedRecord) {
	valid := make([]domain.RawSaleRecord, 0, len(records))
	var rejected []domain.RejectedRecord

	seen := make(map[string]bool, len(records))

	for _, record := range records {
		if reason := v.checkRecord(record, seen); reason != "" {
			rejected = append(rejected, domain.RejectedRecord{
				ID:     record.ID,
				Reason: reason,
			})
			continue
		}
		seen[record.ID] = true
		valid = append(valid, record)
	}

	if len(rejected) > 0 {
		v.logger.Warn("records rejected during schema validation",
			slog.Int("rejected", len(rejected)),
			slog.Int("valid", len(valid)))
	}

	return valid, rejected
}

// checkRecord returns an empty string for a conforming record, or the
// rejection reason otherwise. Checks are ordered so the reported reason is
// the most specific one.
func (v *Validator) checkRecord(record domain.RawSaleRecord, seen map[string]bool) string {
	if record.ID != "" && seen[record.ID] {
		return "duplicate identifier"
	}

	if record.Date.IsZero() {
		return "missing field: date"
	}

	if record.Region == "" {
		return "missing field: region"
	}
	if !record.Region.IsValid() {
		return fmt.Sprintf("value outside enumeration: region %q", record.Region)
	}
	if record.PaymentMethod == "" {
		return "missing field: payment_method"
	}
	if !record.PaymentMethod.IsValid() {
		return fmt.Sprintf("value outside enumeration: payment_method %q", record.PaymentMethod)
	}
	if record.Status == "" {
		return "missing field: status"
	}
	if !record.Status.IsValid() {
		return fmt.Sprintf("value outside enumeration: status %q", record.Status)
	}

	if record.FinalValue < 0 {
		return "negative value: final_value"
	}
	if record.UnitPrice < 0 {
		return "negative value: unit_price"
	}
	if record.GrossValue < 0 {
		return "negative value: gross_value"
	}

	if record.DeliveryDays != nil && *record.DeliveryDays < 1 {
		return "invalid delivery_days: must be at least one day"
	}

	// Struct tag validation catches the remaining violations (missing
	// required strings, quantity and discount ranges).
	if err := v.validate.Struct(record); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
			return reasonFromFieldError(fieldErrors[0])
		}
		return "schema violation"
	}

	return ""
}

// reasonFromFieldError maps a validator field error to a rejection reason.
func reasonFromFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("missing field: %s", fe.Field())
	case "min", "max":
		return fmt.Sprintf("value out of range: %s", fe.Field())
	default:
		return fmt.Sprintf("invalid field: %s", fe.Field())
	}
}
