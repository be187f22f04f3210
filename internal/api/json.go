package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"country-explorer/internal/domain"
	"country-explorer/internal/service"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type listResponse struct {
	Items      []domain.Country `json:"items"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	TotalItems int              `json:"total_items"`
	HasPrev    bool             `json:"has_prev"`
	HasNext    bool             `json:"has_next"`
	Search     string           `json:"search"`
	Continent  string           `json:"continent"`
}

// ListCountries is the handler for the /api/countries endpoint.
func (h *CountryHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.List(r.Context(), listQuery(r, h.opts.PageSize))
	if err != nil {
		if isCanceled(r.Context(), err) {
			return
		}
		h.logger.Error("failed to load countries", zap.Error(err), zap.String("request_id", RequestID(r.Context())))
		h.respondError(w, http.StatusBadGateway, "Upstream countries API unavailable")
		return
	}

	items := res.Page.Items
	if items == nil {
		items = []domain.Country{}
	}
	h.respondJSON(w, http.StatusOK, listResponse{
		Items:      items,
		Page:       res.Page.Number,
		TotalPages: res.Page.TotalPages,
		TotalItems: res.Page.TotalItems,
		HasPrev:    res.Page.HasPrev,
		HasNext:    res.Page.HasNext,
		Search:     res.Query.Search,
		Continent:  res.Query.Continent,
	})
}

// GetCountry is the handler for the /api/countries/{slug} endpoint.
func (h *CountryHandler) GetCountry(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	country, err := h.service.Details(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			h.respondError(w, http.StatusNotFound, "Country not found")
		case isCanceled(r.Context(), err):
		default:
			h.logger.Error("failed to load country", zap.String("slug", slug), zap.Error(err))
			h.respondError(w, http.StatusBadGateway, "Upstream countries API unavailable")
		}
		return
	}
	h.respondJSON(w, http.StatusOK, country)
}

func (h *CountryHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

func (h *CountryHandler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
		http.Error(w, `{"error": "Internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(response); err != nil {
		h.logger.Warn("failed to write response", zap.Error(err))
	}
}
