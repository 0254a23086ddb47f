package domain

import (
	"time"
)

// Region is one of the fixed sales regions used across the dataset.
type Region string

const (
	RegionNorth     Region = "North"
	RegionNortheast Region = "Northeast"
	RegionMidwest   Region = "Midwest"
	RegionSoutheast Region = "Southeast"
	RegionSouth     Region = "South"
)

// Regions lists every valid region in canonical order.
func Regions() []Region {
	return []Region{RegionNorth, RegionNortheast, RegionMidwest, RegionSoutheast, RegionSouth}
}

// IsValid reports whether the region belongs to the closed enumeration.
func (r Region) IsValid() bool {
	switch r {
	case RegionNorth, RegionNortheast, RegionMidwest, RegionSoutheast, RegionSouth:
		return true
	}
	return false
}

// PaymentMethod is one of the accepted payment methods.
type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "Credit Card"
	PaymentDebitCard    PaymentMethod = "Debit Card"
	PaymentPIX          PaymentMethod = "PIX"
	PaymentBoleto       PaymentMethod = "Boleto"
	PaymentInstallments PaymentMethod = "Installments"
)

// PaymentMethods lists every valid payment method in canonical order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCreditCard, PaymentDebitCard, PaymentPIX, PaymentBoleto, PaymentInstallments}
}

// IsValid reports whether the payment method belongs to the closed enumeration.
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCreditCard, PaymentDebitCard, PaymentPIX, PaymentBoleto, PaymentInstallments:
		return true
	}
	return false
}

// SaleStatus represents the lifecycle state of a sale.
type SaleStatus string

const (
	StatusCompleted SaleStatus = "Completed"
	StatusPending   SaleStatus = "Pending"
	StatusCancelled SaleStatus = "Cancelled"
	StatusReturned  SaleStatus = "Returned"
)

// SaleStatuses lists every valid status in canonical order.
func SaleStatuses() []SaleStatus {
	return []SaleStatus{StatusCompleted, StatusPending, StatusCancelled, StatusReturned}
}

// IsValid reports whether the status belongs to the closed enumeration.
func (s SaleStatus) IsValid() bool {
	switch s {
	case StatusCompleted, StatusPending, StatusCancelled, StatusReturned:
		return true
	}
	return false
}

// RawSaleRecord represents a single transactional row as received from the
// data source. It is immutable once produced; all enrichment happens on a
// copy embedded in EnrichedSaleRecord.
type RawSaleRecord struct {
	ID              string        `json:"id" csv:"id" validate:"required"`
	Date            time.Time     `json:"date" csv:"date" validate:"required"`
	CustomerID      string        `json:"customer_id" csv:"customer_id" validate:"required"`
	CustomerName    string        `json:"customer_name" csv:"customer_name" validate:"required"`
	Product         string        `json:"product" csv:"product" validate:"required"`
	Category        string        `json:"category" csv:"category"`
	Quantity        int           `json:"quantity" csv:"quantity" validate:"min=1"`
	UnitPrice       float64       `json:"unit_price" csv:"unit_price" validate:"min=0"`
	GrossValue      float64       `json:"gross_value" csv:"gross_value" validate:"min=0"`
	DiscountPercent float64       `json:"discount_percent" csv:"discount_percent" validate:"min=0,max=100"`
	FinalValue      float64       `json:"final_value" csv:"final_value" validate:"min=0"`
	Region          Region        `json:"region" csv:"region" validate:"required"`
	PaymentMethod   PaymentMethod `json:"payment_method" csv:"payment_method" validate:"required"`
	Status          SaleStatus    `json:"status" csv:"status" validate:"required"`
	DeliveryDays    *int          `json:"delivery_days,omitempty" csv:"delivery_days"` // nil when the sale was never delivered
}

// EnrichedSaleRecord is a RawSaleRecord plus derived business attributes.
// Every derived field except CustomerTier is a pure function of the raw
// record itself; CustomerTier is merged in after whole-batch segmentation.
type EnrichedSaleRecord struct {
	RawSaleRecord

	Year             int     `json:"year" csv:"year"`
	Month            int     `json:"month" csv:"month"`
	MonthName        string  `json:"month_name" csv:"month_name"`
	Quarter          int     `json:"quarter" csv:"quarter"`
	Week             int     `json:"week" csv:"week"`
	Weekday          string  `json:"weekday" csv:"weekday"`
	ValueBucket      string  `json:"value_bucket" csv:"value_bucket"`
	DeliveryCategory string  `json:"delivery_category" csv:"delivery_category"`
	Success          bool    `json:"success" csv:"success"`
	ProfitMargin     float64 `json:"profit_margin" csv:"profit_margin"`
	CustomerTier     Tier    `json:"customer_tier" csv:"customer_tier"`
}

// RejectedRecord pairs a record that failed schema validation with the
// reason it was excluded. Rejections are reported results, never errors.
type RejectedRecord struct {
	ID     string `json:"id"`
	Line   int    `json:"line,omitempty"` // 1-based source line when known, 0 otherwise
	Reason string `json:"reason"`
}
