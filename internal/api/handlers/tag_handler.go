package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hypevault/backend-go/internal/domain"
	"github.com/hypevault/backend-go/internal/service"
)

type TagHandler struct {
	service *service.TagService
}

func NewTagHandler(service *service.TagService) *TagHandler {
	return &TagHandler{service: service}
}

func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.service.ListTags(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tags", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var tag domain.Tag
	if err := c.ShouldBindJSON(&tag); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag payload", "details": err.Error()})
		return
	}

	id, err := h.service.CreateTag(c.Request.Context(), &tag)
	if err != nil {
		if errors.Is(err, service.ErrTagNameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "tag name already in use"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to create tag", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var tag domain.Tag
	if err := c.ShouldBindJSON(&tag); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag payload", "details": err.Error()})
		return
	}
	tag.ID = id

	if err := h.service.UpdateTag(c.Request.Context(), &tag); err != nil {
		if errors.Is(err, service.ErrTagNameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "tag name already in use"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update tag", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.DeleteTag(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete tag", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
