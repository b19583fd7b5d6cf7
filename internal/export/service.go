package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hypevault/backend-go/internal/metrics"
	"github.com/hypevault/backend-go/internal/service"
	"github.com/hypevault/backend-go/internal/storage"
	"github.com/rs/zerolog/log"
)

const reportKeyPrefix = "reports/"

// Report describes one generated export.
type Report struct {
	Key       string    `json:"key"`
	Path      string    `json:"path"`
	Rows      int       `json:"rows"`
	Uploaded  bool      `json:"uploaded"`
	CreatedAt time.Time `json:"createdAt"`
}

// Service generates CSV inventory reports from the evaluated dashboard and
// archives them locally, plus remotely when object storage is configured.
type Service struct {
	inventory *service.InventoryService
	store     storage.ObjectStorage
	outputDir string
}

func NewService(inventory *service.InventoryService, store storage.ObjectStorage, outputDir string) *Service {
	return &Service{
		inventory: inventory,
		store:     store,
		outputDir: outputDir,
	}
}

// Generate evaluates the query over the full inventory and writes the report.
// The report always covers the whole filtered set, never a single page.
func (s *Service) Generate(ctx context.Context, q metrics.Query) (*Report, error) {
	// Pagination does not apply to exports
	q.Page = 0
	q.PageSize = 0

	view, err := s.inventory.GetDashboard(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate inventory for export: %w", err)
	}

	var buf bytes.Buffer
	if err := WriteReport(&buf, view); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	key := fmt.Sprintf("%s%s-%s.csv", reportKeyPrefix, now.Format("20060102"), uuid.NewString())

	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(s.outputDir, filepath.Base(key))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write report %s: %w", path, err)
	}

	report := &Report{
		Key:       key,
		Path:      path,
		Rows:      len(view.Items),
		CreatedAt: now,
	}

	if s.store != nil {
		if err := s.store.UploadObject(ctx, key, buf.Bytes()); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("report upload failed, local copy kept")
		} else {
			report.Uploaded = true
		}
	}

	log.Info().Str("path", path).Int("rows", report.Rows).Msg("inventory report generated")
	return report, nil
}

// List enumerates the generated reports. With object storage configured the
// archive is the source of truth; otherwise the local output dir is listed.
func (s *Service) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	if s.store != nil {
		return s.store.ListObjects(ctx, reportKeyPrefix)
	}

	entries, err := os.ReadDir(s.outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	var objects []storage.ObjectInfo
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".csv" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		objects = append(objects, storage.ObjectInfo{
			Key:  reportKeyPrefix + entry.Name(),
			Size: info.Size(),
		})
	}
	return objects, nil
}

// LocalPath resolves a report name to a readable local file, fetching it
// from the archive when the local copy is gone.
func (s *Service) LocalPath(ctx context.Context, name string) (string, error) {
	name = filepath.Base(name)
	if name == "." || name == ".." || filepath.Ext(name) != ".csv" {
		return "", fmt.Errorf("invalid report name %q", name)
	}

	path := filepath.Join(s.outputDir, name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if s.store == nil {
		return "", fmt.Errorf("report %s not found", name)
	}

	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := s.store.DownloadObject(ctx, reportKeyPrefix+name, path); err != nil {
		return "", fmt.Errorf("failed to fetch report %s: %w", name, err)
	}
	return path, nil
}
