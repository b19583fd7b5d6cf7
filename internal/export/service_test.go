package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hypevault/backend-go/internal/storage"
)

type fakeObjectStore struct {
	objects   map[string][]byte
	downloads []string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string][]byte{}}
}

func (s *fakeObjectStore) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	var out []storage.ObjectInfo
	for key, data := range s.objects {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			out = append(out, storage.ObjectInfo{Key: key, Size: int64(len(data))})
		}
	}
	return out, nil
}

func (s *fakeObjectStore) DownloadObject(ctx context.Context, key, destPath string) error {
	data, ok := s.objects[key]
	if !ok {
		return os.ErrNotExist
	}
	s.downloads = append(s.downloads, key)
	return os.WriteFile(destPath, data, 0o644)
}

func (s *fakeObjectStore) UploadObject(ctx context.Context, key string, data []byte) error {
	s.objects[key] = data
	return nil
}

func TestListReportsLocalDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"20260101-a.csv", "20260102-b.csv", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("id\n"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	svc := NewService(nil, nil, dir)
	reports, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("reports = %d, want 2", len(reports))
	}
	for _, r := range reports {
		if filepath.Ext(r.Key) != ".csv" {
			t.Errorf("Key = %q, want a csv key", r.Key)
		}
	}
}

func TestListReportsUsesStore(t *testing.T) {
	store := newFakeObjectStore()
	store.objects["reports/20260101-a.csv"] = []byte("id\n")
	store.objects["uploads/other.csv"] = []byte("id\n")

	svc := NewService(nil, store, t.TempDir())
	reports, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("reports = %d, want 1", len(reports))
	}
	if reports[0].Key != "reports/20260101-a.csv" {
		t.Errorf("Key = %q, want reports/20260101-a.csv", reports[0].Key)
	}
}

func TestLocalPathFetchesFromStore(t *testing.T) {
	dir := t.TempDir()
	store := newFakeObjectStore()
	store.objects["reports/20260101-a.csv"] = []byte("id\n1\n")

	svc := NewService(nil, store, dir)
	path, err := svc.LocalPath(context.Background(), "20260101-a.csv")
	if err != nil {
		t.Fatalf("LocalPath: %v", err)
	}
	if len(store.downloads) != 1 {
		t.Fatalf("downloads = %d, want 1", len(store.downloads))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "id\n1\n" {
		t.Errorf("content = %q", data)
	}

	// A second resolve must hit the local copy, not the store.
	if _, err := svc.LocalPath(context.Background(), "20260101-a.csv"); err != nil {
		t.Fatalf("LocalPath: %v", err)
	}
	if len(store.downloads) != 1 {
		t.Errorf("downloads = %d, want 1 after local hit", len(store.downloads))
	}
}

func TestLocalPathRejectsTraversal(t *testing.T) {
	svc := NewService(nil, nil, t.TempDir())

	for _, name := range []string{"../secret.csv", "..", "report.txt", ""} {
		if _, err := svc.LocalPath(context.Background(), name); err == nil {
			t.Errorf("%q: expected error, got nil", name)
		}
	}
}
