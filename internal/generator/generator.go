package generator

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// product is a catalog entry with its fixed unit price.
type product struct {
	Name  string
	Price float64
}

// catalog is the fixed product list. Order matters: the generator draws by
// index, so reordering changes the output for a given seed.
var catalog = []product{
	{"Dell XPS 13 Laptop", 4500},
	{"iPhone 15 Pro", 7999},
	{"Samsung Galaxy S24", 5999},
	{"iPad Air", 4999},
	{"Apple Watch Series 9", 3499},
	{"AirPods Pro", 1899},
	{`LG 27" Monitor`, 1299},
	{"Mechanical Keyboard", 599},
	{"Logitech Mouse", 299},
	{"HD Webcam", 399},
	{"Gaming Headset", 799},
	{"1TB SSD", 699},
	{"16GB RAM Kit", 399},
	{"RTX 4070 Graphics Card", 3999},
	{"Intel i9 Processor", 2499},
}

var categories = []string{
	"Electronics", "Peripherals", "Components", "Accessories", "Smartphones",
}

var customerNames = []string{
	"João Silva", "Maria Santos", "Pedro Oliveira", "Ana Costa", "Carlos Ferreira",
	"Juliana Rocha", "Lucas Martins", "Fernanda Lima", "Roberto Alves", "Patricia Gomes",
	"Felipe Souza", "Beatriz Ribeiro", "Gustavo Pereira", "Camila Nunes", "Ricardo Dias",
}

// discountChoices skews toward undiscounted sales.
var discountChoices = []float64{0, 0, 0, 5, 10, 15, 20}

// Config controls synthetic dataset generation.
type Config struct {
	RecordCount int
	Seed        int64
	DateFrom    time.Time
	DateTo      time.Time
}

// DefaultConfig returns the reference generation settings.
func DefaultConfig() Config {
	return Config{
		RecordCount: 5000,
		Seed:        42,
		DateFrom:    time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		DateTo:      time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC),
	}
}

// Validate checks the generation settings before any record is produced.
func (c Config) Validate() error {
	if c.RecordCount <= 0 {
		return errors.NewConfigError(fmt.Sprintf("record count must be positive, got %d", c.RecordCount), nil)
	}
	if !c.DateTo.After(c.DateFrom) {
		return errors.NewConfigError(fmt.Sprintf("date window is empty: %s .. %s",
			c.DateFrom.Format("2006-01-02"), c.DateTo.Format("2006-01-02")), nil)
	}
	return nil
}

// Generator produces deterministic synthetic sale records. The same seed and
// settings always yield the same batch.
type Generator struct {
	cfg    Config
	logger *slog.Logger
}

// NewGenerator validates the settings and creates a generator.
func NewGenerator(logger *slog.Logger, cfg Config) (*Generator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "generator")),
	}, nil
}

// Generate produces the configured number of raw sale records.
func (g *Generator) Generate() []domain.RawSaleRecord {
	rng := rand.New(rand.NewSource(g.cfg.Seed))
	windowDays := int(g.cfg.DateTo.Sub(g.cfg.DateFrom).Hours() / 24)

	records := make([]domain.RawSaleRecord, 0, g.cfg.RecordCount)
	for i := 0; i < g.cfg.RecordCount; i++ {
		item := catalog[rng.Intn(len(catalog))]
		quantity := rng.Intn(5) + 1
		gross := item.Price * float64(quantity)
		discount := discountChoices[rng.Intn(len(discountChoices))]
		final := round2(gross * (1 - discount/100))
		status := g.drawStatus(rng)

		record := domain.RawSaleRecord{
			ID:              fmt.Sprintf("VND%06d", i+1),
			Date:            g.cfg.DateFrom.AddDate(0, 0, rng.Intn(windowDays+1)),
			CustomerID:      fmt.Sprintf("CLI%04d", rng.Intn(9000)+1000),
			CustomerName:    customerNames[rng.Intn(len(customerNames))],
			Product:         item.Name,
			Category:        categories[rng.Intn(len(categories))],
			Quantity:        quantity,
			UnitPrice:       item.Price,
			GrossValue:      gross,
			DiscountPercent: discount,
			FinalValue:      final,
			Region:          domain.Regions()[rng.Intn(len(domain.Regions()))],
			PaymentMethod:   domain.PaymentMethods()[rng.Intn(len(domain.PaymentMethods()))],
			Status:          status,
		}

		// Delivery time only exists once a sale has actually shipped
		if status == domain.StatusCompleted {
			days := rng.Intn(30) + 1
			record.DeliveryDays = &days
		}

		records = append(records, record)
	}

	g.logger.Info("synthetic dataset generated",
		slog.Int("records", len(records)),
		slog.Int64("seed", g.cfg.Seed))

	return records
}

// drawStatus samples the sale status with weights 75/15/5/5.
func (g *Generator) drawStatus(rng *rand.Rand) domain.SaleStatus {
	switch draw := rng.Float64(); {
	case draw < 0.75:
		return domain.StatusCompleted
	case draw < 0.90:
		return domain.StatusPending
	case draw < 0.95:
		return domain.StatusCancelled
	default:
		return domain.StatusReturned
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
