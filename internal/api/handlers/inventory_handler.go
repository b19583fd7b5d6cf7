package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hypevault/backend-go/internal/domain"
	"github.com/hypevault/backend-go/internal/metrics"
	"github.com/hypevault/backend-go/internal/service"
)

type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(service *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

func (h *InventoryHandler) parseQuery(c *gin.Context) metrics.Query {
	q := metrics.Query{
		PageSize: metrics.DefaultPageSize,
	}

	q.Search = strings.TrimSpace(c.Query("q"))

	if raw := strings.TrimSpace(c.Query("tag_id")); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			q.TagID = &id
		}
	}

	// Filter chips arrive as repeated or comma-separated values, e.g.
	//   ?brand=Nike&brand=Adidas or ?brand=Nike,Adidas
	appendFilters := func(param string) {
		values := c.QueryArray(param)
		for _, value := range values {
			for _, part := range strings.Split(value, ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				q.Filters = append(q.Filters, domain.ActiveFilter{
					ID:    param + ":" + strings.ToLower(part),
					Type:  param,
					Value: part,
					Label: part,
				})
			}
		}
	}
	appendFilters(domain.FilterCategory)
	appendFilters(domain.FilterBrand)
	appendFilters(domain.FilterStatus)

	if sortField := strings.TrimSpace(c.Query("sort_field")); sortField != "" {
		q.Sort.Field = sortField
		sortDir := strings.ToLower(strings.TrimSpace(c.Query("sort_direction")))
		if sortDir != metrics.OrderDesc {
			sortDir = metrics.OrderAsc
		}
		q.Sort.Order = sortDir
	}

	if page, err := strconv.Atoi(c.DefaultQuery("page", "0")); err == nil && page >= 0 {
		q.Page = page
	}

	if size, err := strconv.Atoi(c.DefaultQuery("page_size", "25")); err == nil && size > 0 {
		q.PageSize = size
	}

	if currency := strings.TrimSpace(c.Query("currency")); currency != "" {
		q.Currency = strings.ToUpper(currency)
	}

	return q
}

func (h *InventoryHandler) GetDashboard(c *gin.Context) {
	q := h.parseQuery(c)
	view, err := h.service.GetDashboard(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch dashboard", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *InventoryHandler) GetSummary(c *gin.Context) {
	q := h.parseQuery(c)
	summary, err := h.service.GetSummary(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch summary", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *InventoryHandler) ListItems(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch items", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

func (h *InventoryHandler) GetItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.service.GetItem(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var item domain.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item payload", "details": err.Error()})
		return
	}

	id, err := h.service.CreateItem(c.Request.Context(), &item)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to create item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var item domain.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item payload", "details": err.Error()})
		return
	}
	item.ID = id

	if err := h.service.UpdateItem(c.Request.Context(), &item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete item", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) DuplicateItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	newID, err := h.service.DuplicateItem(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to duplicate item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": newID})
}

func (h *InventoryHandler) SetItemStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status payload", "details": err.Error()})
		return
	}

	if err := h.service.SetItemStatus(c.Request.Context(), id, payload.Status); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update status", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": payload.Status})
}

func (h *InventoryHandler) AddListing(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var listing domain.Listing
	if err := c.ShouldBindJSON(&listing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing payload", "details": err.Error()})
		return
	}

	listingID, err := h.service.AddListing(c.Request.Context(), id, &listing)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to add listing", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": listingID})
}

func (h *InventoryHandler) RemoveListing(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	listingID, ok := parseIDParam(c, "listingId")
	if !ok {
		return
	}

	if err := h.service.RemoveListing(c.Request.Context(), id, listingID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove listing", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": domain.Categories()})
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
