package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/hypevault/backend-go/internal/domain"
)

var reportHeaders = []string{
	"id",
	"product_name",
	"brand",
	"category",
	"status",
	"purchase_date",
	"purchase_price",
	"purchase_currency",
	"shipping_price",
	"market_price",
	"estimated_profit",
	"roi_percent",
	"days_in_inventory",
}

// WriteReport renders the evaluated dashboard view as CSV: one row per item
// in the filtered order, then a blank row and the KPI summary footer. All
// monetary columns are already in the summary's display currency except the
// raw purchase columns, which keep the item's own currency for bookkeeping.
func WriteReport(w io.Writer, view domain.DashboardView) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(reportHeaders); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, item := range view.Items {
		record := []string{
			strconv.FormatInt(item.ID, 10),
			item.ProductName,
			item.Brand,
			item.Category,
			item.Status,
			item.PurchaseDate,
			formatMoney(item.PurchasePrice),
			item.PurchaseCurrency,
			formatOptional(item.ShippingPrice),
			formatMoney(item.Derived.MarketPrice),
			formatMoney(item.Derived.EstimatedProfit),
			formatMoney(item.Derived.ROI),
			strconv.Itoa(item.Derived.DaysInInventory),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}

	summary := view.Summary
	footer := [][]string{
		{},
		{"total_items", strconv.Itoa(summary.TotalItems)},
		{"unlisted_items", strconv.Itoa(summary.UnlistedItems)},
		{"listed_items", strconv.Itoa(summary.ListedItems)},
		{"sold_items", strconv.Itoa(summary.SoldItems)},
		{"total_purchase_value", formatMoney(summary.TotalPurchaseValue), summary.Currency},
		{"total_shipping_value", formatMoney(summary.TotalShippingValue), summary.Currency},
		{"total_market_value", formatMoney(summary.TotalMarketValue), summary.Currency},
		{"total_estimated_profit", formatMoney(summary.TotalEstimatedProfit), summary.Currency},
		{"average_roi_percent", formatMoney(summary.AverageROI)},
	}
	for _, record := range footer {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write report footer: %w", err)
		}
	}

	return nil
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatMoney(*v)
}
