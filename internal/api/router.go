package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"country-explorer/internal/metrics"
)

// NewRouter creates and configures a new HTTP router.
func NewRouter(h *CountryHandler, m *metrics.Metrics, logger *zap.Logger) *mux.Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, accessLogMiddleware(logger, m))

	r.HandleFunc("/", h.ListPage).Methods(http.MethodGet)
	r.HandleFunc("/country/{slug}", h.DetailsPage).Methods(http.MethodGet)
	r.HandleFunc("/theme", h.ToggleTheme).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/countries", h.ListCountries).Methods(http.MethodGet)
	api.HandleFunc("/countries/{slug}", h.GetCountry).Methods(http.MethodGet)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)
	if m != nil {
		r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	}
	return r
}
