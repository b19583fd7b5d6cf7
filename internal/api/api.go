// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hypevault/backend-go/internal/api/handlers"
	"github.com/hypevault/backend-go/internal/api/middleware"
	"github.com/hypevault/backend-go/internal/service"
)

type Services struct {
	InventoryService *service.InventoryService
	TagService       *service.TagService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.InventoryService != nil {
			inventoryHandler := handlers.NewInventoryHandler(services.InventoryService)
			inventoryGroup := apiGroup.Group("/inventory")
			{
				inventoryGroup.GET("/dashboard", inventoryHandler.GetDashboard)
				inventoryGroup.GET("/summary", inventoryHandler.GetSummary)
				inventoryGroup.GET("/items", inventoryHandler.ListItems)
				inventoryGroup.POST("/items", inventoryHandler.CreateItem)
				inventoryGroup.GET("/items/:id", inventoryHandler.GetItem)
				inventoryGroup.PUT("/items/:id", inventoryHandler.UpdateItem)
				inventoryGroup.DELETE("/items/:id", inventoryHandler.DeleteItem)
				inventoryGroup.POST("/items/:id/duplicate", inventoryHandler.DuplicateItem)
				inventoryGroup.PATCH("/items/:id/status", inventoryHandler.SetItemStatus)
				inventoryGroup.POST("/items/:id/listings", inventoryHandler.AddListing)
				inventoryGroup.DELETE("/items/:id/listings/:listingId", inventoryHandler.RemoveListing)
				inventoryGroup.GET("/categories", inventoryHandler.GetCategories)
			}
		}

		if services.TagService != nil {
			tagHandler := handlers.NewTagHandler(services.TagService)
			tagGroup := apiGroup.Group("/tags")
			{
				tagGroup.GET("", tagHandler.ListTags)
				tagGroup.POST("", tagHandler.CreateTag)
				tagGroup.PUT("/:id", tagHandler.UpdateTag)
				tagGroup.DELETE("/:id", tagHandler.DeleteTag)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
