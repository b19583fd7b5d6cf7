// cmd/export/main.go
//
// Operational server for reports and bulk imports, kept off the main API
// process so long exports never compete with interactive traffic.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hypevault/backend-go/internal/cache"
	"github.com/hypevault/backend-go/internal/config"
	"github.com/hypevault/backend-go/internal/drive"
	"github.com/hypevault/backend-go/internal/export"
	"github.com/hypevault/backend-go/internal/metrics"
	"github.com/hypevault/backend-go/internal/repository/postgres"
	"github.com/hypevault/backend-go/internal/service"
	"github.com/hypevault/backend-go/internal/storage"
	"github.com/hypevault/backend-go/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.SetLevel(cfg.Server.Mode)

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	itemRepo := postgres.NewItemRepository(db)
	tagRepo := postgres.NewTagRepository(db)

	converter := metrics.NewConverter(map[string]float64{
		metrics.CurrencyUSD: cfg.Rates.USDPerGBP,
		metrics.CurrencyEUR: cfg.Rates.EURPerGBP,
	})
	inventoryService := service.NewInventoryService(itemRepo, cache.NewNoopSummaryCache(), metrics.NewEngine(converter))

	// Remote archiving is optional; exports still land in the local output dir.
	var store storage.ObjectStorage
	if cfg.Export.Endpoint != "" {
		minioClient, err := storage.NewMinioClient(storage.MinioConfig{
			Endpoint:  cfg.Export.Endpoint,
			AccessKey: cfg.Export.AccessKey,
			SecretKey: cfg.Export.SecretKey,
			Bucket:    cfg.Export.Bucket,
			Region:    cfg.Export.Region,
			UseSSL:    cfg.Export.UseSSL,
		})
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		store = minioClient
	}

	r := mux.NewRouter()

	exportService := export.NewService(inventoryService, store, cfg.Export.OutputDir)
	export.NewHandler(exportService).RegisterRoutes(r)

	if cfg.Drive.CredentialsJSON != "" {
		driveClient, err := drive.NewClient(context.Background(), cfg.Drive.CredentialsJSON)
		if err != nil {
			log.Fatalf("Failed to initialize drive client: %v", err)
		}
		importService := drive.NewImportService(driveClient, itemRepo, tagRepo)
		folderOpts := drive.DownloadOptions{
			FolderID:    cfg.Drive.FolderID,
			DownloadDir: cfg.Drive.DownloadDir,
		}
		drive.NewHandler(driveClient, importService, folderOpts).RegisterRoutes(r)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Export server starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
