package dataprocessing

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

const sampleHeader = "id,date,customer_id,customer_name,product,category,quantity,unit_price,gross_value,discount_percent,final_value,region,payment_method,status,delivery_days"

func TestParseCSV_TypedRecord(t *testing.T) {
	input := sampleHeader + "\n" +
		`VND000001,2024-03-10,CLI1001,Ana Costa,Mechanical Keyboard,Peripherals,2,599.00,1198.00,10,1078.20,Southeast,PIX,Completed,5`

	records, rejected, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Empty(t, rejected)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, "VND000001", record.ID)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), record.Date)
	assert.Equal(t, "CLI1001", record.CustomerID)
	assert.Equal(t, "Ana Costa", record.CustomerName)
	assert.Equal(t, "Mechanical Keyboard", record.Product)
	assert.Equal(t, "Peripherals", record.Category)
	assert.Equal(t, 2, record.Quantity)
	assert.InDelta(t, 599.00, record.UnitPrice, 1e-9)
	assert.InDelta(t, 1198.00, record.GrossValue, 1e-9)
	assert.InDelta(t, 10.0, record.DiscountPercent, 1e-9)
	assert.InDelta(t, 1078.20, record.FinalValue, 1e-9)
	assert.Equal(t, domain.RegionSoutheast, record.Region)
	assert.Equal(t, domain.PaymentPIX, record.PaymentMethod)
	assert.Equal(t, domain.StatusCompleted, record.Status)
	require.NotNil(t, record.DeliveryDays)
	assert.Equal(t, 5, *record.DeliveryDays)
}

func TestParseCSV_DateFormats(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2024-03-10", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
		{"2024-03-10 14:30:00", time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)},
		{"2024-03-10T14:30:00Z", time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		input := sampleHeader + "\n" +
			`VND000001,` + tt.raw + `,CLI1001,Ana Costa,Webcam,Peripherals,1,250,250,0,250,South,PIX,Pending,`
		records, rejected, err := ParseCSV(strings.NewReader(input))
		require.NoError(t, err, tt.raw)
		require.Empty(t, rejected, tt.raw)
		require.Len(t, records, 1, tt.raw)
		assert.True(t, tt.want.Equal(records[0].Date), "date %s", tt.raw)
	}
}

func TestParseCSV_EmptyDeliveryDaysIsNil(t *testing.T) {
	input := sampleHeader + "\n" +
		`VND000001,2024-03-10,CLI1001,Ana Costa,Webcam,Peripherals,1,250,250,0,250,South,PIX,Pending,`

	records, rejected, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Empty(t, rejected)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].DeliveryDays)
}

func TestParseCSV_BadRowsRejectedWithLine(t *testing.T) {
	input := sampleHeader + "\n" +
		`VND000001,2024-03-10,CLI1001,Ana Costa,Webcam,Peripherals,1,250,250,0,250,South,PIX,Completed,3` + "\n" +
		`VND000002,not-a-date,CLI1002,Jo Lima,Webcam,Peripherals,1,250,250,0,250,South,PIX,Completed,3` + "\n" +
		`VND000003,2024-03-11,CLI1003,Rui Dias,Webcam,Peripherals,two,250,250,0,250,South,PIX,Completed,3` + "\n" +
		`VND000004,2024-03-12,CLI1004,Eva Reis,Webcam,Peripherals,1,250,250,0,abc,South,PIX,Completed,3` + "\n" +
		`VND000005,2024-03-13,CLI1005,Leo Melo,Webcam,Peripherals,1,250,250,0,250,South,PIX,Completed,soon`

	records, rejected, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Len(t, rejected, 4)

	assert.Equal(t, domain.RejectedRecord{ID: "VND000002", Line: 3, Reason: `wrong type: date "not-a-date"`}, rejected[0])
	assert.Equal(t, domain.RejectedRecord{ID: "VND000003", Line: 4, Reason: `wrong type: quantity "two"`}, rejected[1])
	assert.Equal(t, domain.RejectedRecord{ID: "VND000004", Line: 5, Reason: `wrong type: final_value "abc"`}, rejected[2])
	assert.Equal(t, domain.RejectedRecord{ID: "VND000005", Line: 6, Reason: `wrong type: delivery_days "soon"`}, rejected[3])
}

func TestParseCSV_MissingRequiredColumn(t *testing.T) {
	input := "id,date,customer_id,product,final_value,region,payment_method\n" +
		"VND000001,2024-03-10,CLI1001,Webcam,250,South,PIX"

	_, _, err := ParseCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeParsing))
	assert.Contains(t, err.Error(), "missing required column: status")
}

func TestParseCSV_EmptyInput(t *testing.T) {
	_, _, err := ParseCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeParsing))
}

func TestParseCSV_HeaderCaseInsensitive(t *testing.T) {
	input := "ID,Date,Customer_ID,Customer_Name,Product,Category,Quantity,Unit_Price,Gross_Value,Discount_Percent,Final_Value,Region,Payment_Method,Status,Delivery_Days\n" +
		`VND000001,2024-03-10,CLI1001,Ana Costa,Webcam,Peripherals,1,250,250,0,250,South,PIX,Completed,3`

	records, rejected, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Empty(t, rejected)
	require.Len(t, records, 1)
}

func TestParseFile_MissingFile(t *testing.T) {
	_, _, err := ParseFile("/nonexistent/raw.csv")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeStorage))
}
