package api

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"country-explorer/internal/catalog"
	"country-explorer/internal/config"
	"country-explorer/internal/service"
	"country-explorer/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	loadFailedMessage = "Could not load countries right now. Please try again later."
	notFoundMessage   = "Country not found."
)

// Options configures the pages.
type Options struct {
	PageSize       int
	SearchDebounce time.Duration
	DefaultTheme   string
}

// CountryHandler serves the list and details screens.
type CountryHandler struct {
	service service.CountryService
	logger  *zap.Logger
	opts    Options
	pages   map[string]*template.Template
}

type pageData struct {
	Title          string
	Theme          string
	Path           string
	Error          string
	DebounceMillis int64
	List           *view.List
	Details        *view.Details
	PrevURL        string
	NextURL        string
}

// NewCountryHandler creates a new handler with a given service.
func NewCountryHandler(s service.CountryService, logger *zap.Logger, opts Options) (*CountryHandler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = catalog.DefaultPageSize
	}
	if opts.DefaultTheme == "" {
		opts.DefaultTheme = config.ThemeLight
	}

	pages := make(map[string]*template.Template)
	for _, name := range []string{"list", "details"} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = t
	}

	return &CountryHandler{
		service: s,
		logger:  logger,
		opts:    opts,
		pages:   pages,
	}, nil
}

// ListPage is the handler for the / route.
func (h *CountryHandler) ListPage(w http.ResponseWriter, r *http.Request) {
	q := listQuery(r, h.opts.PageSize)
	data := h.newPageData(r, "Where in the world?")

	status := http.StatusOK
	res, err := h.service.List(r.Context(), q)
	if err != nil {
		if isCanceled(r.Context(), err) {
			return
		}
		h.logger.Error("failed to load countries", zap.Error(err), zap.String("request_id", RequestID(r.Context())))
		status = http.StatusBadGateway
		data.Error = loadFailedMessage
	}

	list := view.NewList(res)
	data.List = &list
	if list.HasPrev {
		data.PrevURL = pageURL(list, list.Page-1)
	}
	if list.HasNext {
		data.NextURL = pageURL(list, list.Page+1)
	}
	h.render(w, "list", status, data)
}

// DetailsPage is the handler for the /country/{slug} route.
func (h *CountryHandler) DetailsPage(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	data := h.newPageData(r, notFoundMessage)

	country, err := h.service.Details(r.Context(), slug)
	switch {
	case err == nil:
		d := view.NewDetails(*country)
		data.Details = &d
		data.Title = d.Name
		h.render(w, "details", http.StatusOK, data)
	case errors.Is(err, service.ErrNotFound):
		h.render(w, "details", http.StatusNotFound, data)
	case isCanceled(r.Context(), err):
		return
	default:
		h.logger.Error("failed to load country details",
			zap.String("slug", slug),
			zap.Error(err),
			zap.String("request_id", RequestID(r.Context())))
		data.Error = loadFailedMessage
		h.render(w, "details", http.StatusBadGateway, data)
	}
}

func (h *CountryHandler) newPageData(r *http.Request, title string) pageData {
	return pageData{
		Title:          title,
		Theme:          themeFromRequest(r, h.opts.DefaultTheme),
		Path:           r.URL.RequestURI(),
		DebounceMillis: h.opts.SearchDebounce.Milliseconds(),
	}
}

func (h *CountryHandler) render(w http.ResponseWriter, page string, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.pages[page].ExecuteTemplate(w, "layout", data); err != nil {
		h.logger.Error("failed to render page", zap.String("page", page), zap.Error(err))
	}
}

func listQuery(r *http.Request, pageSize int) service.Query {
	values := r.URL.Query()
	continent := values.Get("continent")
	if !catalog.IsContinent(continent) {
		continent = catalog.AllContinents
	}
	page, err := strconv.Atoi(values.Get("page"))
	if err != nil {
		page = 1
	}
	return service.Query{
		Search:    values.Get("q"),
		Continent: continent,
		Page:      page,
		PageSize:  pageSize,
	}
}

func pageURL(l view.List, page int) string {
	values := url.Values{}
	if l.Search != "" {
		values.Set("q", l.Search)
	}
	if l.Continent != "" && l.Continent != catalog.AllContinents {
		values.Set("continent", l.Continent)
	}
	values.Set("page", strconv.Itoa(page))
	return "/?" + values.Encode()
}

func isCanceled(ctx context.Context, err error) bool {
	return ctx.Err() != nil && errors.Is(err, ctx.Err())
}
