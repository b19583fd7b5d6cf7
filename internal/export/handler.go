package export

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/hypevault/backend-go/internal/domain"
	"github.com/hypevault/backend-go/internal/metrics"
)

// Handler exposes report generation over the operational HTTP surface.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/v1/exports", h.GenerateReport).Methods("POST")
	r.HandleFunc("/api/v1/exports", h.ListReports).Methods("GET")
	r.HandleFunc("/api/v1/exports/{name}", h.DownloadReport).Methods("GET")
}

// GenerateReport accepts the same filter params as the dashboard endpoint
// and responds with the metadata of the generated report.
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	q := parseQuery(r)

	report, err := h.service.Generate(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate report: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(report)
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list reports: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"reports": reports,
		"total":   len(reports),
	})
}

func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	path, err := h.service.LocalPath(r.Context(), name)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	http.ServeFile(w, r, path)
}

func parseQuery(r *http.Request) metrics.Query {
	values := r.URL.Query()

	q := metrics.Query{
		Search: strings.TrimSpace(values.Get("q")),
	}

	if raw := strings.TrimSpace(values.Get("tag_id")); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			q.TagID = &id
		}
	}

	for _, filterType := range []string{domain.FilterCategory, domain.FilterBrand, domain.FilterStatus} {
		for _, value := range values[filterType] {
			for _, part := range strings.Split(value, ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				q.Filters = append(q.Filters, domain.ActiveFilter{
					ID:    filterType + ":" + strings.ToLower(part),
					Type:  filterType,
					Value: part,
					Label: part,
				})
			}
		}
	}

	if sortField := strings.TrimSpace(values.Get("sort_field")); sortField != "" {
		q.Sort.Field = sortField
		sortDir := strings.ToLower(strings.TrimSpace(values.Get("sort_direction")))
		if sortDir != metrics.OrderDesc {
			sortDir = metrics.OrderAsc
		}
		q.Sort.Order = sortDir
	}

	if currency := strings.TrimSpace(values.Get("currency")); currency != "" {
		q.Currency = strings.ToUpper(currency)
	}

	return q
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
