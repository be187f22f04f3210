package catalog

import "country-explorer/internal/domain"

// Page is one slice of a filtered list.
type Page struct {
	Items      []domain.Country `json:"items"`
	Number     int              `json:"page"`
	Size       int              `json:"size"`
	TotalItems int              `json:"total_items"`
	TotalPages int              `json:"total_pages"`
	HasPrev    bool             `json:"has_prev"`
	HasNext    bool             `json:"has_next"`
}

// Paginate slices items into pages of size and returns page number. The
// number is clamped into [1, max(TotalPages, 1)].
func Paginate(items []domain.Country, number, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := (len(items) + size - 1) / size

	last := total
	if last < 1 {
		last = 1
	}
	if number < 1 {
		number = 1
	}
	if number > last {
		number = last
	}

	start := (number - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page{
		Items:      items[start:end],
		Number:     number,
		Size:       size,
		TotalItems: len(items),
		TotalPages: total,
		HasPrev:    number > 1,
		HasNext:    number < total,
	}
}
