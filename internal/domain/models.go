// internal/domain/models.go
package domain

import "time"

// Item represents a single inventory record as delivered by the API
type Item struct {
	ID               int64     `json:"id" db:"id"`
	ProductName      string    `json:"productName" db:"product_name"`
	Brand            string    `json:"brand" db:"brand"`
	Category         string    `json:"category" db:"category"`
	PurchasePrice    float64   `json:"purchasePrice" db:"purchase_price"`
	PurchaseCurrency string    `json:"purchaseCurrency" db:"purchase_currency"`
	ShippingPrice    *float64  `json:"shippingPrice,omitempty" db:"shipping_price"`
	ShippingCurrency string    `json:"shippingCurrency,omitempty" db:"shipping_currency"`
	MarketPrice      *float64  `json:"marketPrice,omitempty" db:"market_price"`
	PurchaseDate     string    `json:"purchaseDate" db:"purchase_date"`
	Status           string    `json:"status" db:"status"`
	Reference        string    `json:"reference,omitempty" db:"reference"`
	Size             string    `json:"size,omitempty" db:"size"`
	SizeSystem       string    `json:"sizeSystem,omitempty" db:"size_system"`
	Tags             []int64   `json:"tags" db:"-"`
	Listings         []Listing `json:"listings,omitempty" db:"-"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// Listing represents a marketplace listing attached to an item.
// Its currency is implicit: the parent item's purchase currency.
type Listing struct {
	ID       int64   `json:"id" db:"id"`
	ItemID   int64   `json:"item_id" db:"item_id"`
	Platform string  `json:"platform" db:"platform"`
	Price    float64 `json:"price" db:"price"`
	PostedAt string  `json:"postedAt" db:"posted_at"`
	Status   string  `json:"status" db:"status"`
	URL      string  `json:"url,omitempty" db:"url"`
}

// Tag is a globally owned label; items reference tags by id.
// Tag names are unique case-insensitively within the tag set.
type Tag struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Color string `json:"color" db:"color"`
}

// DerivedMetrics holds the computed, never-persisted fields for an item.
// Profit and ROI are expressed in the display currency of the computation
// pass; MarketPrice is the resolved value in the item's own currency.
type DerivedMetrics struct {
	MarketPrice     float64 `json:"marketPrice"`
	EstimatedProfit float64 `json:"estimatedProfit"`
	ROI             float64 `json:"roi"`
	DaysInInventory int     `json:"daysInInventory"`
}

// EnrichedItem is an item plus its derived metrics and the currency-normalized
// monetary values used by downstream sorting and aggregation.
type EnrichedItem struct {
	Item
	Derived DerivedMetrics `json:"derived"`

	// Values normalized into the display currency of the computation pass.
	PurchaseValue float64 `json:"-"`
	ShippingValue float64 `json:"-"`
	MarketValue   float64 `json:"-"`
}

// ActiveFilter is a structured filter chip: conjunctive equality on one field.
type ActiveFilter struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Value string `json:"value"`
	Label string `json:"label"`
}

// KPISummary is the aggregate strip computed over the filtered set.
type KPISummary struct {
	TotalItems           int     `json:"totalItems"`
	UnlistedItems        int     `json:"unlistedItems"`
	ListedItems          int     `json:"listedItems"`
	SoldItems            int     `json:"soldItems"`
	TotalPurchaseValue   float64 `json:"totalPurchaseValue"`
	TotalShippingValue   float64 `json:"totalShippingValue"`
	TotalMarketValue     float64 `json:"totalMarketValue"`
	TotalEstimatedProfit float64 `json:"totalEstimatedProfit"`
	AverageROI           float64 `json:"averageRoi"`
	Currency             string  `json:"currency"`
}

// DashboardView is the full evaluated result for one render pass: the
// complete filtered+sorted sequence, the visible page, and the KPI summary.
type DashboardView struct {
	Items    []EnrichedItem `json:"items"`
	Page     []EnrichedItem `json:"page"`
	Summary  KPISummary     `json:"summary"`
	Total    int            `json:"total"`
	PageIdx  int            `json:"pageIndex"`
	PageSize int            `json:"pageSize"`
}
