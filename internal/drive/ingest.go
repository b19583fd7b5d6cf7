package drive

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hypevault/backend-go/internal/domain"
	"github.com/hypevault/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

// ImportResult summarizes one bulk import run.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportService turns spreadsheet exports from the shared Drive folder into
// inventory items. Rows are keyed on the reference column so re-importing
// the same sheet updates rather than duplicates.
type ImportService struct {
	client *Client
	items  repository.ItemRepository
	tags   repository.TagRepository
}

func NewImportService(client *Client, items repository.ItemRepository, tags repository.TagRepository) *ImportService {
	return &ImportService{
		client: client,
		items:  items,
		tags:   tags,
	}
}

// ImportFile streams one CSV file from Drive into the inventory. A bad row
// is logged and skipped; it never aborts the rest of the file.
func (s *ImportService) ImportFile(ctx context.Context, fileID string) (*ImportResult, error) {
	pr, pw := io.Pipe()
	go func() {
		err := s.client.DownloadFile(fileID, pw)
		pw.CloseWithError(err)
	}()

	return s.importCSV(ctx, pr)
}

// ImportFolder pulls every spreadsheet out of the Drive folder and imports
// the resulting CSVs. A file that fails to import is logged and skipped so
// one bad sheet never blocks the rest of the folder.
func (s *ImportService) ImportFolder(ctx context.Context, opts DownloadOptions) (*ImportResult, error) {
	paths, err := NewDownloader(s.client).DownloadFolderCSV(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to download folder: %w", err)
	}

	total := &ImportResult{}
	for _, path := range paths {
		result, err := s.importLocalCSV(ctx, path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("skipping import file")
			continue
		}
		total.Imported += result.Imported
		total.Skipped += result.Skipped
	}

	return total, nil
}

func (s *ImportService) importLocalCSV(ctx context.Context, path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return s.importCSV(ctx, f)
}

func (s *ImportService) importCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.TrimSpace(col)] = i
	}

	for _, col := range []string{"productName", "purchasePrice", "reference"} {
		if _, ok := colMap[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	result := &ImportResult{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line++

		item, tagNames, err := parseItemRow(record, colMap)
		if err != nil {
			log.Warn().Err(err).Int("line", line).Msg("skipping import row")
			result.Skipped++
			continue
		}

		if err := s.resolveTags(ctx, item, tagNames); err != nil {
			log.Warn().Err(err).Int("line", line).Msg("skipping import row")
			result.Skipped++
			continue
		}

		if _, err := s.items.UpsertByReference(ctx, item); err != nil {
			log.Warn().Err(err).Int("line", line).Str("reference", item.Reference).Msg("skipping import row")
			result.Skipped++
			continue
		}
		result.Imported++
	}

	return result, nil
}

// parseItemRow maps one CSV record onto an item. It returns the tag names
// separately because tags are resolved to ids against the repository.
func parseItemRow(record []string, colMap map[string]int) (*domain.Item, []string, error) {
	getValue := func(colName string) string {
		if idx, ok := colMap[colName]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	name := getValue("productName")
	if name == "" {
		return nil, nil, fmt.Errorf("productName is empty")
	}

	reference := getValue("reference")
	if reference == "" {
		return nil, nil, fmt.Errorf("reference is empty")
	}

	rawPrice := getValue("purchasePrice")
	purchasePrice, err := strconv.ParseFloat(rawPrice, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid purchasePrice %q: %w", rawPrice, err)
	}
	if purchasePrice < 0 {
		return nil, nil, fmt.Errorf("negative purchasePrice %q", rawPrice)
	}

	item := &domain.Item{
		ProductName:      name,
		Brand:            getValue("brand"),
		Category:         getValue("category"),
		PurchasePrice:    purchasePrice,
		PurchaseCurrency: strings.ToUpper(getValue("purchaseCurrency")),
		ShippingCurrency: strings.ToUpper(getValue("shippingCurrency")),
		PurchaseDate:     getValue("purchaseDate"),
		Status:           domain.NormalizeStatus(getValue("status")),
		Reference:        reference,
		Size:             getValue("size"),
		SizeSystem:       getValue("sizeSystem"),
	}

	if raw := getValue("shippingPrice"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid shippingPrice %q: %w", raw, err)
		}
		item.ShippingPrice = &price
	}

	if raw := getValue("marketPrice"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid marketPrice %q: %w", raw, err)
		}
		item.MarketPrice = &price
	}

	var tagNames []string
	if raw := getValue("tags"); raw != "" {
		for _, tagName := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' }) {
			tagName = strings.TrimSpace(tagName)
			if tagName != "" {
				tagNames = append(tagNames, tagName)
			}
		}
	}

	return item, tagNames, nil
}

// resolveTags maps tag names onto ids, creating unseen tags on the fly.
// Matching is case-insensitive so sheet and console tags stay one set.
func (s *ImportService) resolveTags(ctx context.Context, item *domain.Item, tagNames []string) error {
	for _, name := range tagNames {
		existing, err := s.tags.FindByName(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to resolve tag %q: %w", name, err)
		}
		if existing != nil {
			item.Tags = append(item.Tags, existing.ID)
			continue
		}

		id, err := s.tags.Create(ctx, &domain.Tag{Name: name})
		if err != nil {
			return fmt.Errorf("failed to create tag %q: %w", name, err)
		}
		item.Tags = append(item.Tags, id)
	}
	return nil
}
