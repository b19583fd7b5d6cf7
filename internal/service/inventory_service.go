package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hypevault/backend-go/internal/cache"
	"github.com/hypevault/backend-go/internal/domain"
	"github.com/hypevault/backend-go/internal/metrics"
	"github.com/hypevault/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

var ErrItemNotFound = errors.New("item not found")

// InventoryService sits between the HTTP handlers and the repository. It
// owns the dashboard evaluation pipeline and keeps the KPI summary cache
// coherent across item mutations.
type InventoryService struct {
	repo   repository.ItemRepository
	cache  cache.SummaryCache
	engine *metrics.Engine
}

func NewInventoryService(repo repository.ItemRepository, summaryCache cache.SummaryCache, engine *metrics.Engine) *InventoryService {
	if summaryCache == nil {
		summaryCache = cache.NewNoopSummaryCache()
	}
	if engine == nil {
		engine = metrics.NewEngine(nil)
	}
	return &InventoryService{
		repo:   repo,
		cache:  summaryCache,
		engine: engine,
	}
}

// GetDashboard loads the raw inventory snapshot and runs one full pipeline
// pass. Cache errors degrade to a recompute; they never fail the request.
func (s *InventoryService) GetDashboard(ctx context.Context, q metrics.Query) (domain.DashboardView, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return domain.DashboardView{}, fmt.Errorf("failed to load inventory: %w", err)
	}

	view := s.engine.Evaluate(items, q, time.Now().UTC())

	if cached, ok, err := s.cache.Get(ctx, q); err != nil {
		log.Warn().Err(err).Msg("summary cache read failed")
	} else if ok {
		view.Summary = cached
	} else if err := s.cache.Set(ctx, q, view.Summary); err != nil {
		log.Warn().Err(err).Msg("summary cache write failed")
	}

	return view, nil
}

// GetSummary returns the KPI strip alone. This is the cache's fast path: a
// hit skips loading and evaluating the inventory entirely.
func (s *InventoryService) GetSummary(ctx context.Context, q metrics.Query) (domain.KPISummary, error) {
	if cached, ok, err := s.cache.Get(ctx, q); err != nil {
		log.Warn().Err(err).Msg("summary cache read failed")
	} else if ok {
		return cached, nil
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return domain.KPISummary{}, fmt.Errorf("failed to load inventory: %w", err)
	}

	view := s.engine.Evaluate(items, q, time.Now().UTC())
	if err := s.cache.Set(ctx, q, view.Summary); err != nil {
		log.Warn().Err(err).Msg("summary cache write failed")
	}

	return view.Summary, nil
}

func (s *InventoryService) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.repo.List(ctx)
}

func (s *InventoryService) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (s *InventoryService) CreateItem(ctx context.Context, item *domain.Item) (int64, error) {
	if err := validateItem(item); err != nil {
		return 0, err
	}
	applyItemDefaults(item)

	id, err := s.repo.Create(ctx, item)
	if err != nil {
		return 0, err
	}

	s.invalidateSummaries(ctx)
	return id, nil
}

func (s *InventoryService) UpdateItem(ctx context.Context, item *domain.Item) error {
	if err := validateItem(item); err != nil {
		return err
	}
	applyItemDefaults(item)

	if err := s.repo.Update(ctx, item); err != nil {
		return err
	}

	// The repository update leaves status alone; apply it through the same
	// transition path as the status endpoint so listings stay consistent
	// (moving to unlisted clears them).
	if err := s.repo.SetStatus(ctx, item.ID, item.Status); err != nil {
		return err
	}

	s.invalidateSummaries(ctx)
	return nil
}

func (s *InventoryService) DeleteItem(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateSummaries(ctx)
	return nil
}

// DuplicateItem clones an item into a fresh unlisted record. The copy keeps
// the source's prices and currency untouched; listings do not carry over,
// and the reference is suffixed so the copy stays unique.
func (s *InventoryService) DuplicateItem(ctx context.Context, id int64) (int64, error) {
	source, err := s.GetItem(ctx, id)
	if err != nil {
		return 0, err
	}

	clone := *source
	clone.ID = 0
	clone.Status = domain.StatusUnlisted
	clone.Listings = nil
	if clone.Reference != "" {
		clone.Reference = fmt.Sprintf("%s-copy-%d", clone.Reference, time.Now().Unix())
	}

	newID, err := s.repo.Create(ctx, &clone)
	if err != nil {
		return 0, fmt.Errorf("failed to duplicate item %d: %w", id, err)
	}

	s.invalidateSummaries(ctx)
	return newID, nil
}

func (s *InventoryService) SetItemStatus(ctx context.Context, id int64, status string) error {
	normalized := strings.ToLower(strings.TrimSpace(status))
	if !domain.ValidStatus(normalized) {
		return fmt.Errorf("invalid status %q", status)
	}

	if err := s.repo.SetStatus(ctx, id, normalized); err != nil {
		return err
	}

	s.invalidateSummaries(ctx)
	return nil
}

func (s *InventoryService) AddListing(ctx context.Context, itemID int64, listing *domain.Listing) (int64, error) {
	if listing.Platform == "" {
		return 0, errors.New("listing platform is required")
	}
	if listing.Price < 0 {
		return 0, errors.New("listing price must not be negative")
	}
	if listing.Status == "" {
		listing.Status = domain.ListingActive
	}

	id, err := s.repo.AddListing(ctx, itemID, listing)
	if err != nil {
		return 0, err
	}

	s.invalidateSummaries(ctx)
	return id, nil
}

func (s *InventoryService) RemoveListing(ctx context.Context, itemID, listingID int64) error {
	if err := s.repo.RemoveListing(ctx, itemID, listingID); err != nil {
		return err
	}

	s.invalidateSummaries(ctx)
	return nil
}

func (s *InventoryService) invalidateSummaries(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("summary cache invalidation failed")
	}
}

func validateItem(item *domain.Item) error {
	if strings.TrimSpace(item.ProductName) == "" {
		return errors.New("product name is required")
	}
	if item.PurchasePrice < 0 {
		return errors.New("purchase price must not be negative")
	}
	if item.Status != "" && !domain.ValidStatus(strings.ToLower(strings.TrimSpace(item.Status))) {
		return fmt.Errorf("invalid status %q", item.Status)
	}
	return nil
}

func applyItemDefaults(item *domain.Item) {
	item.Status = domain.NormalizeStatus(item.Status)
	if item.PurchaseCurrency == "" {
		item.PurchaseCurrency = metrics.DefaultPurchaseCurrency
	} else {
		item.PurchaseCurrency = strings.ToUpper(strings.TrimSpace(item.PurchaseCurrency))
	}
	if item.ShippingCurrency != "" {
		item.ShippingCurrency = strings.ToUpper(strings.TrimSpace(item.ShippingCurrency))
	}
}
