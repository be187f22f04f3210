package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"country-explorer/internal/cache"
	"country-explorer/internal/catalog"
	"country-explorer/internal/domain"
	"country-explorer/internal/metrics"
)

// ErrNotFound is returned when no country matches a slug.
var ErrNotFound = errors.New("country not found")

const snapshotKey = "countries"

// CountryClient defines the interface for an external country data source.
type CountryClient interface {
	ListCountries(ctx context.Context) ([]domain.Country, error)
}

// Query is the state of the list screen.
type Query struct {
	Search    string
	Continent string
	Page      int
	PageSize  int
}

// ListResult is one rendered page of the list screen.
type ListResult struct {
	Query Query
	Page  catalog.Page
}

// CountryService defines the list and details screens' data access.
type CountryService interface {
	Countries(ctx context.Context) ([]domain.Country, error)
	List(ctx context.Context, q Query) (ListResult, error)
	Details(ctx context.Context, slug string) (*domain.Country, error)
}

type countryService struct {
	cache   cache.Cache
	client  CountryClient
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewCountryService creates a new instance of the country service. Pass
// cache.Nop{} to fetch the collection on every call.
func NewCountryService(c cache.Cache, client CountryClient, m *metrics.Metrics, logger *zap.Logger) CountryService {
	if c == nil {
		c = cache.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &countryService{
		cache:   c,
		client:  client,
		metrics: m,
		logger:  logger,
	}
}

// Countries loads the whole collection. Callers must treat it as read-only.
func (s *countryService) Countries(ctx context.Context) ([]domain.Country, error) {
	return s.snapshot(ctx)
}

// List loads the collection, filters it and returns the requested page.
func (s *countryService) List(ctx context.Context, q Query) (ListResult, error) {
	if q.Continent == "" {
		q.Continent = catalog.AllContinents
	}
	if q.PageSize <= 0 {
		q.PageSize = catalog.DefaultPageSize
	}

	countries, err := s.snapshot(ctx)
	if err != nil {
		return ListResult{Query: q, Page: catalog.Paginate(nil, 1, q.PageSize)}, err
	}

	filtered := catalog.Filter(countries, catalog.Criteria{Search: q.Search, Continent: q.Continent})
	page := catalog.Paginate(filtered, q.Page, q.PageSize)
	q.Page = page.Number
	return ListResult{Query: q, Page: page}, nil
}

// Details loads the collection and returns the country whose slug matches.
func (s *countryService) Details(ctx context.Context, slug string) (*domain.Country, error) {
	countries, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	country, ok := catalog.FindBySlug(countries, slug)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return &country, nil
}

// snapshot returns the country collection, from the cache when it holds a
// fresh copy. Concurrent misses share a single upstream request; a caller
// whose context ends stops waiting without cancelling it for the others.
func (s *countryService) snapshot(ctx context.Context) ([]domain.Country, error) {
	if cached, found := s.cache.Get(snapshotKey); found {
		if countries, ok := cached.([]domain.Country); ok {
			s.logger.Debug("snapshot cache hit", zap.Int("countries", len(countries)))
			s.metrics.ObserveFetch(metrics.ResultCached, 0)
			return countries, nil
		}
	}

	ch := s.group.DoChan(snapshotKey, func() (interface{}, error) {
		start := time.Now()
		countries, err := s.client.ListCountries(context.WithoutCancel(ctx))
		elapsed := time.Since(start)
		if err != nil {
			s.metrics.ObserveFetch(metrics.ResultError, elapsed)
			return nil, err
		}
		s.metrics.ObserveFetch(metrics.ResultOK, elapsed)
		s.logger.Debug("fetched countries",
			zap.Int("countries", len(countries)),
			zap.Duration("elapsed", elapsed))
		s.cache.Set(snapshotKey, countries)
		return countries, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]domain.Country), nil
	}
}
