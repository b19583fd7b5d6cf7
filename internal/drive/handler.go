package drive

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

type Handler struct {
	client        *Client
	importService *ImportService
	folderOpts    DownloadOptions
}

func NewHandler(client *Client, importService *ImportService, folderOpts DownloadOptions) *Handler {
	return &Handler{
		client:        client,
		importService: importService,
		folderOpts:    folderOpts,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/drive/files", h.ListFiles).Methods("GET")
	router.HandleFunc("/api/v1/drive/import", h.ImportFile).Methods("POST")
	router.HandleFunc("/api/v1/drive/import-folder", h.ImportFolder).Methods("POST")
}

func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	folderID := query.Get("folderId")

	if folderPath := query.Get("path"); folderPath != "" {
		var err error
		folderID, err = h.client.FindFolderByPath(folderPath)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
	}

	files, err := h.client.ListFiles(folderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(files)
}

func (h *Handler) ImportFile(w http.ResponseWriter, r *http.Request) {
	fileID := r.URL.Query().Get("fileId")
	if fileID == "" {
		http.Error(w, "fileId parameter is required", http.StatusBadRequest)
		return
	}

	result, err := h.importService.ImportFile(r.Context(), fileID)
	if err != nil {
		http.Error(w, fmt.Sprintf("import failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *Handler) ImportFolder(w http.ResponseWriter, r *http.Request) {
	opts := h.folderOpts
	if folderID := r.URL.Query().Get("folderId"); folderID != "" {
		opts.FolderID = folderID
	}

	result, err := h.importService.ImportFolder(r.Context(), opts)
	if err != nil {
		http.Error(w, fmt.Sprintf("import failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
