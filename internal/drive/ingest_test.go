package drive

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hypevault/backend-go/internal/domain"
)

type importItemRepo struct {
	items  map[string]domain.Item
	nextID int64
}

func newImportItemRepo() *importItemRepo {
	return &importItemRepo{items: map[string]domain.Item{}, nextID: 1}
}

func (r *importItemRepo) List(ctx context.Context) ([]domain.Item, error) { return nil, nil }
func (r *importItemRepo) Get(ctx context.Context, id int64) (*domain.Item, error) {
	return nil, nil
}
func (r *importItemRepo) Create(ctx context.Context, item *domain.Item) (int64, error) {
	return r.UpsertByReference(ctx, item)
}
func (r *importItemRepo) Update(ctx context.Context, item *domain.Item) error { return nil }
func (r *importItemRepo) Delete(ctx context.Context, id int64) error          { return nil }
func (r *importItemRepo) SetStatus(ctx context.Context, id int64, status string) error {
	return nil
}
func (r *importItemRepo) AddListing(ctx context.Context, itemID int64, listing *domain.Listing) (int64, error) {
	return 0, nil
}
func (r *importItemRepo) RemoveListing(ctx context.Context, itemID, listingID int64) error {
	return nil
}

func (r *importItemRepo) UpsertByReference(ctx context.Context, item *domain.Item) (int64, error) {
	if existing, ok := r.items[item.Reference]; ok {
		item.ID = existing.ID
	} else {
		item.ID = r.nextID
		r.nextID++
	}
	r.items[item.Reference] = *item
	return item.ID, nil
}

type importTagRepo struct {
	tags   map[string]domain.Tag
	nextID int64
}

func newImportTagRepo() *importTagRepo {
	return &importTagRepo{tags: map[string]domain.Tag{}, nextID: 1}
}

func (r *importTagRepo) List(ctx context.Context) ([]domain.Tag, error)   { return nil, nil }
func (r *importTagRepo) Update(ctx context.Context, tag *domain.Tag) error { return nil }
func (r *importTagRepo) Delete(ctx context.Context, id int64) error        { return nil }

func (r *importTagRepo) Create(ctx context.Context, tag *domain.Tag) (int64, error) {
	tag.ID = r.nextID
	r.nextID++
	r.tags[strings.ToLower(tag.Name)] = *tag
	return tag.ID, nil
}

func (r *importTagRepo) FindByName(ctx context.Context, name string) (*domain.Tag, error) {
	tag, ok := r.tags[strings.ToLower(name)]
	if !ok {
		return nil, nil
	}
	return &tag, nil
}

func buildColMap(header []string) map[string]int {
	colMap := make(map[string]int)
	for i, col := range header {
		colMap[col] = i
	}
	return colMap
}

var importHeader = []string{
	"productName", "brand", "category", "purchasePrice", "purchaseCurrency",
	"shippingPrice", "marketPrice", "purchaseDate", "status", "reference",
	"size", "tags",
}

func TestParseItemRow(t *testing.T) {
	colMap := buildColMap(importHeader)
	record := []string{
		"Jordan 1 Chicago", "Nike", "Sneakers", "180.50", "usd",
		"12.50", "250", "2026-01-10", "Listed", "AJ1-001",
		"UK 9", "Grails, hype;Personal",
	}

	item, tagNames, err := parseItemRow(record, colMap)
	if err != nil {
		t.Fatalf("parseItemRow: %v", err)
	}

	if item.ProductName != "Jordan 1 Chicago" {
		t.Errorf("ProductName = %q", item.ProductName)
	}
	if item.PurchasePrice != 180.50 {
		t.Errorf("PurchasePrice = %v, want 180.50", item.PurchasePrice)
	}
	if item.PurchaseCurrency != "USD" {
		t.Errorf("PurchaseCurrency = %q, want USD", item.PurchaseCurrency)
	}
	if item.ShippingPrice == nil || *item.ShippingPrice != 12.50 {
		t.Errorf("ShippingPrice = %v, want 12.50", item.ShippingPrice)
	}
	if item.MarketPrice == nil || *item.MarketPrice != 250 {
		t.Errorf("MarketPrice = %v, want 250", item.MarketPrice)
	}
	if item.Status != "listed" {
		t.Errorf("Status = %q, want listed", item.Status)
	}
	if item.Reference != "AJ1-001" {
		t.Errorf("Reference = %q, want AJ1-001", item.Reference)
	}

	wantTags := []string{"Grails", "hype", "Personal"}
	if len(tagNames) != len(wantTags) {
		t.Fatalf("tagNames = %v, want %v", tagNames, wantTags)
	}
	for i, want := range wantTags {
		if tagNames[i] != want {
			t.Errorf("tagNames[%d] = %q, want %q", i, tagNames[i], want)
		}
	}
}

func TestParseItemRowOptionalFieldsAbsent(t *testing.T) {
	colMap := buildColMap([]string{"productName", "purchasePrice", "reference"})
	record := []string{"Dunk Low", "90", "DL-001"}

	item, tagNames, err := parseItemRow(record, colMap)
	if err != nil {
		t.Fatalf("parseItemRow: %v", err)
	}

	if item.ShippingPrice != nil {
		t.Errorf("ShippingPrice = %v, want nil", item.ShippingPrice)
	}
	if item.MarketPrice != nil {
		t.Errorf("MarketPrice = %v, want nil", item.MarketPrice)
	}
	if item.Status != "unlisted" {
		t.Errorf("Status = %q, want unlisted", item.Status)
	}
	if len(tagNames) != 0 {
		t.Errorf("tagNames = %v, want none", tagNames)
	}
}

func TestParseItemRowRejectsBadRows(t *testing.T) {
	colMap := buildColMap([]string{"productName", "purchasePrice", "reference"})

	cases := []struct {
		name   string
		record []string
	}{
		{"missing product name", []string{"", "90", "DL-001"}},
		{"missing reference", []string{"Dunk Low", "90", ""}},
		{"unparseable price", []string{"Dunk Low", "ninety", "DL-001"}},
		{"negative price", []string{"Dunk Low", "-5", "DL-001"}},
	}
	for _, tc := range cases {
		if _, _, err := parseItemRow(tc.record, colMap); err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
		}
	}
}

func TestImportCSVSkipsBadRows(t *testing.T) {
	itemRepo := newImportItemRepo()
	tagRepo := newImportTagRepo()
	svc := NewImportService(nil, itemRepo, tagRepo)

	input := strings.Join([]string{
		"productName,purchasePrice,reference,tags",
		"Jordan 1 Chicago,180.50,AJ1-001,\"Grails, hype\"",
		",90,DL-001,",
		"Dunk Low,ninety,DL-002,",
		"Yeezy 350,220,YZ-001,Grails",
	}, "\n")

	result, err := svc.importCSV(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("importCSV: %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("Imported = %d, want 2", result.Imported)
	}
	if result.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", result.Skipped)
	}

	if _, ok := itemRepo.items["AJ1-001"]; !ok {
		t.Error("AJ1-001 not upserted")
	}
	if _, ok := itemRepo.items["YZ-001"]; !ok {
		t.Error("YZ-001 not upserted")
	}

	// Both rows name Grails so it must resolve to one tag.
	if len(tagRepo.tags) != 2 {
		t.Errorf("tags created = %d, want 2", len(tagRepo.tags))
	}
	aj1 := itemRepo.items["AJ1-001"]
	if len(aj1.Tags) != 2 {
		t.Errorf("AJ1-001 tags = %v, want 2 ids", aj1.Tags)
	}
}

func TestImportCSVRequiresColumns(t *testing.T) {
	svc := NewImportService(nil, newImportItemRepo(), newImportTagRepo())

	input := "productName,purchasePrice\nJordan 1,180\n"
	if _, err := svc.importCSV(context.Background(), strings.NewReader(input)); err == nil {
		t.Error("expected error for missing reference column, got nil")
	}
}

func TestImportLocalCSV(t *testing.T) {
	itemRepo := newImportItemRepo()
	svc := NewImportService(nil, itemRepo, newImportTagRepo())

	path := filepath.Join(t.TempDir(), "inventory.csv")
	content := "productName,purchasePrice,reference\nDunk Low,90,DL-001\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	result, err := svc.importLocalCSV(context.Background(), path)
	if err != nil {
		t.Fatalf("importLocalCSV: %v", err)
	}
	if result.Imported != 1 {
		t.Errorf("Imported = %d, want 1", result.Imported)
	}
	if _, ok := itemRepo.items["DL-001"]; !ok {
		t.Error("DL-001 not upserted")
	}
}

func TestParseItemRowShortRecord(t *testing.T) {
	// Records narrower than the header must not panic; trailing columns
	// just read as empty.
	colMap := buildColMap(importHeader)
	record := []string{"Dunk Low", "Nike", "Sneakers", "90", "GBP", "", "", "", "", "DL-001"}

	item, _, err := parseItemRow(record, colMap)
	if err != nil {
		t.Fatalf("parseItemRow: %v", err)
	}
	if item.Size != "" {
		t.Errorf("Size = %q, want empty", item.Size)
	}
}
