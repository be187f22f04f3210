package client

import (
	"context"
	"fmt"
	"strings"

	"country-explorer/internal/domain"
	"country-explorer/internal/httpclient"
)

const countriesPath = "/countries"

// JSONGetter performs a GET and decodes the JSON body.
type JSONGetter interface {
	GetJSON(ctx context.Context, url string, out interface{}) error
}

// CountriesClient fetches the full country collection from the API.
type CountriesClient struct {
	http    JSONGetter
	BaseURL string
}

// NewCountriesClient creates a client for the countries API at baseURL.
func NewCountriesClient(baseURL string, getter JSONGetter) *CountriesClient {
	if getter == nil {
		getter = httpclient.New(httpclient.Options{})
	}
	return &CountriesClient{
		http:    getter,
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

type listResponse struct {
	Data []domain.Country `json:"data"`
}

// ListCountries fetches every country. A response without data yields an
// empty, non-nil slice.
func (c *CountriesClient) ListCountries(ctx context.Context) ([]domain.Country, error) {
	var resp listResponse
	if err := c.http.GetJSON(ctx, c.BaseURL+countriesPath, &resp); err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	if resp.Data == nil {
		return []domain.Country{}, nil
	}
	return resp.Data, nil
}
