package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/hypevault/backend-go/internal/domain"
)

func TestWriteReport(t *testing.T) {
	shipping := 12.5
	view := domain.DashboardView{
		Items: []domain.EnrichedItem{
			{
				Item: domain.Item{
					ID:               1,
					ProductName:      "Jordan 1 Chicago",
					Brand:            "Nike",
					Category:         "Sneakers",
					Status:           domain.StatusListed,
					PurchaseDate:     "2026-01-10",
					PurchasePrice:    180,
					PurchaseCurrency: "GBP",
					ShippingPrice:    &shipping,
				},
				Derived: domain.DerivedMetrics{
					MarketPrice:     250,
					EstimatedProfit: 70,
					ROI:             38.89,
					DaysInInventory: 40,
				},
			},
			{
				Item: domain.Item{
					ID:               2,
					ProductName:      "Dunk Low Panda",
					Brand:            "Nike",
					Category:         "Sneakers",
					Status:           domain.StatusUnlisted,
					PurchaseDate:     "2026-02-01",
					PurchasePrice:    90,
					PurchaseCurrency: "GBP",
				},
				Derived: domain.DerivedMetrics{
					MarketPrice:     108,
					EstimatedProfit: 18,
					ROI:             20,
					DaysInInventory: 18,
				},
			},
		},
		Summary: domain.KPISummary{
			TotalItems:           2,
			UnlistedItems:        1,
			ListedItems:          1,
			TotalPurchaseValue:   270,
			TotalShippingValue:   12.5,
			TotalMarketValue:     358,
			TotalEstimatedProfit: 88,
			AverageROI:           29.45,
			Currency:             "GBP",
		},
	}

	var buf bytes.Buffer
	if err := WriteReport(&buf, view); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	reader := csv.NewReader(&buf)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}

	if got, want := len(records[0]), len(reportHeaders); got != want {
		t.Errorf("header fields = %d, want %d", got, want)
	}

	// header + 2 item rows + 9 footer rows (the blank separator is dropped
	// by the reader)
	if got, want := len(records), 12; got != want {
		t.Fatalf("record count = %d, want %d", got, want)
	}

	first := records[1]
	if first[1] != "Jordan 1 Chicago" {
		t.Errorf("row 1 product = %q, want Jordan 1 Chicago", first[1])
	}
	if first[8] != "12.50" {
		t.Errorf("row 1 shipping = %q, want 12.50", first[8])
	}

	second := records[2]
	if second[8] != "" {
		t.Errorf("row 2 shipping = %q, want empty", second[8])
	}

	var profitRow []string
	for _, record := range records {
		if len(record) > 0 && record[0] == "total_estimated_profit" {
			profitRow = record
		}
	}
	if profitRow == nil {
		t.Fatal("footer missing total_estimated_profit")
	}
	if profitRow[1] != "88.00" || profitRow[2] != "GBP" {
		t.Errorf("profit footer = %v, want [total_estimated_profit 88.00 GBP]", profitRow)
	}
}

func TestWriteReportEmptyInventory(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, domain.DashboardView{Summary: domain.KPISummary{Currency: "GBP"}}); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	reader := csv.NewReader(&buf)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}

	// Header plus footer only.
	if got, want := len(records), 10; got != want {
		t.Errorf("record count = %d, want %d", got, want)
	}
}
