package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"country-explorer/internal/catalog"
	"country-explorer/internal/domain"
	"country-explorer/internal/service"
)

type stubSource struct {
	countries []domain.Country
	err       error
	calls     int
}

func (s *stubSource) Countries(ctx context.Context) ([]domain.Country, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.countries, nil
}

func (s *stubSource) Details(ctx context.Context, slug string) (*domain.Country, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	c, ok := catalog.FindBySlug(s.countries, slug)
	if !ok {
		return nil, fmt.Errorf("%w: %s", service.ErrNotFound, slug)
	}
	return &c, nil
}

func sampleCountries() []domain.Country {
	return []domain.Country{
		{Name: domain.Name{Common: "France"}, Region: "Europe", Population: 67391582,
			Borders: []domain.BorderRef{{Common: "Belgium"}, {Common: "Germany"}}},
		{Name: domain.Name{Common: "Belgium"}, Region: "Europe",
			Borders: []domain.BorderRef{{Common: "France"}}},
		{Name: domain.Name{Common: "Germany"}, Region: "Europe"},
		{Name: domain.Name{Common: "Brazil"}, Region: "South America"},
		{Name: domain.Name{Common: "Japan"}, Region: "Asia"},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok)
	return got, cmd
}

// press sends a key and, when it starts a fetch, delivers the result.
func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	m, cmd := update(t, m, key(k))
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case listLoadedMsg, detailsLoadedMsg:
		m, _ = update(t, m, msg)
	}
	return m
}

func loaded(t *testing.T, src Source, opts Options) Model {
	t.Helper()
	m := New(context.Background(), src, opts)
	m, _ = update(t, m, m.fetchList(m.seq)())
	return m
}

func TestInitialLoad(t *testing.T) {
	src := &stubSource{countries: sampleCountries()}
	m := New(context.Background(), src, Options{PageSize: 2})
	assert.Equal(t, stateLoading, m.state)
	assert.Contains(t, m.View(), "Loading countries...")

	m, _ = update(t, m, m.fetchList(m.seq)())
	assert.Equal(t, stateReady, m.state)

	page := m.currentPage()
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "France", page.Items[0].Name.Common)

	out := m.View()
	assert.Contains(t, out, "France")
	assert.Contains(t, out, "67,391,582")
	assert.Contains(t, out, "1 / 3")
}

func TestStaleListResponseIsDropped(t *testing.T) {
	m := New(context.Background(), &stubSource{}, Options{})
	m, _ = update(t, m, listLoadedMsg{seq: m.seq - 1, countries: sampleCountries()})

	assert.Equal(t, stateLoading, m.state)
	assert.Nil(t, m.countries)
}

func TestPagination(t *testing.T) {
	m := loaded(t, &stubSource{countries: sampleCountries()}, Options{PageSize: 2})

	m = press(t, m, "pgup")
	assert.Equal(t, 1, m.currentPage().Number)

	m = press(t, m, "pgdown")
	m = press(t, m, "pgdown")
	assert.Equal(t, 3, m.currentPage().Number)

	m = press(t, m, "pgdown")
	assert.Equal(t, 3, m.currentPage().Number)
	assert.Equal(t, "Japan", m.currentPage().Items[0].Name.Common)

	m = press(t, m, "pgup")
	assert.Equal(t, 2, m.currentPage().Number)
}

func TestContinentCycleResetsPage(t *testing.T) {
	m := loaded(t, &stubSource{countries: sampleCountries()}, Options{PageSize: 2})
	m = press(t, m, "pgdown")
	require.Equal(t, 2, m.currentPage().Number)

	m = press(t, m, "tab")
	assert.Equal(t, "Africa", m.criteria.Continent)
	assert.Equal(t, 1, m.page)
	assert.Empty(t, m.currentPage().Items)
	assert.Contains(t, m.View(), "No countries match your search.")

	for m.criteria.Continent != "Europe" {
		m = press(t, m, "tab")
	}
	assert.Equal(t, 3, m.currentPage().TotalItems)
}

func TestSearchIsDebounced(t *testing.T) {
	m := loaded(t, &stubSource{countries: sampleCountries()}, Options{PageSize: 2, SearchDebounce: time.Second})
	m = press(t, m, "pgdown")

	m, _ = update(t, m, key("b"))
	first := m.searchSeq
	m, _ = update(t, m, key("r"))

	assert.Equal(t, "br", m.search.Value())
	assert.Empty(t, m.criteria.Search)

	m, _ = update(t, m, searchSettledMsg{seq: first})
	assert.Empty(t, m.criteria.Search)

	m, _ = update(t, m, searchSettledMsg{seq: m.searchSeq})
	assert.Equal(t, "br", m.criteria.Search)
	assert.Equal(t, 1, m.page)
	require.Len(t, m.currentPage().Items, 1)
	assert.Equal(t, "Brazil", m.currentPage().Items[0].Name.Common)

	m = press(t, m, "esc")
	assert.Empty(t, m.search.Value())
	assert.Equal(t, 5, m.currentPage().TotalItems)
}

func TestSearchWithoutDebounceAppliesImmediately(t *testing.T) {
	m := loaded(t, &stubSource{countries: sampleCountries()}, Options{})
	m, _ = update(t, m, key("JAP"))

	assert.Equal(t, "JAP", m.criteria.Search)
	require.Len(t, m.currentPage().Items, 1)
	assert.Equal(t, "Japan", m.currentPage().Items[0].Name.Common)
}

func TestDetailsNavigation(t *testing.T) {
	src := &stubSource{countries: sampleCountries()}
	m := loaded(t, src, Options{PageSize: 2})

	m = press(t, m, "enter")
	assert.Equal(t, screenDetails, m.screen)
	require.NotNil(t, m.details)
	assert.Equal(t, "France", m.details.Name.Common)
	out := m.View()
	assert.Contains(t, out, "Border Countries:")
	assert.Contains(t, out, "Belgium")
	assert.Contains(t, out, "Germany")

	m = press(t, m, "right")
	m = press(t, m, "right")
	assert.Equal(t, 1, m.borderCursor)

	m = press(t, m, "enter")
	require.NotNil(t, m.details)
	assert.Equal(t, "Germany", m.details.Name.Common)
	assert.Contains(t, m.View(), "None")

	m = press(t, m, "esc")
	require.NotNil(t, m.details)
	assert.Equal(t, "France", m.details.Name.Common)

	calls := src.calls
	m = press(t, m, "esc")
	assert.Equal(t, screenList, m.screen)
	assert.Equal(t, stateReady, m.state)
	assert.Equal(t, calls, src.calls)
}

func TestListStateSurvivesDetails(t *testing.T) {
	m := loaded(t, &stubSource{countries: sampleCountries()}, Options{PageSize: 2})
	m = press(t, m, "pgdown")
	m = press(t, m, "down")

	m = press(t, m, "enter")
	require.NotNil(t, m.details)
	assert.Equal(t, "Brazil", m.details.Name.Common)

	m = press(t, m, "esc")
	assert.Equal(t, 2, m.currentPage().Number)
	assert.Equal(t, 1, m.cursor)
}

func TestStaleDetailsResponseIsDropped(t *testing.T) {
	m := loaded(t, &stubSource{countries: sampleCountries()}, Options{})

	m, cmd := update(t, m, key("enter"))
	require.NotNil(t, cmd)
	late := cmd()

	m = press(t, m, "esc")
	require.Equal(t, screenList, m.screen)

	m, _ = update(t, m, late)
	assert.Equal(t, screenList, m.screen)
	assert.Nil(t, m.details)
}

func TestUnknownCountryShowsNotFound(t *testing.T) {
	src := &stubSource{countries: sampleCountries()}
	m := loaded(t, src, Options{})

	msg := m.loadDetailsCmd("atlantis")()
	m, _ = update(t, m, msg)
	assert.Equal(t, screenDetails, m.screen)
	assert.Equal(t, stateReady, m.state)
	assert.Nil(t, m.details)
	out := m.View()
	assert.Contains(t, out, "Country not found.")
	assert.NotContains(t, out, "ctrl+r to retry")

	m = press(t, m, "ctrl+r")
	assert.Equal(t, stateReady, m.state)
}

func TestUnresolvedBorderShowsNotFound(t *testing.T) {
	countries := []domain.Country{
		{Name: domain.Name{Common: "Mainland"}, Region: "Europe",
			Borders: []domain.BorderRef{{Common: "Atlantis"}}},
	}
	m := loaded(t, &stubSource{countries: countries}, Options{})

	m = press(t, m, "enter")
	require.NotNil(t, m.details)

	m = press(t, m, "enter")
	assert.Equal(t, "atlantis", m.slug)
	assert.Equal(t, stateReady, m.state)
	assert.Contains(t, m.View(), "Country not found.")

	m = press(t, m, "esc")
	require.NotNil(t, m.details)
	assert.Equal(t, "Mainland", m.details.Name.Common)
}

func TestFailedLoadCanBeRetried(t *testing.T) {
	src := &stubSource{err: errors.New("boom")}
	m := loaded(t, src, Options{})

	assert.Equal(t, stateFailed, m.state)
	assert.Contains(t, m.View(), "Could not load countries: boom")
	assert.Contains(t, m.View(), "ctrl+r")

	src.err = nil
	src.countries = sampleCountries()
	m = press(t, m, "ctrl+r")
	assert.Equal(t, stateReady, m.state)
	assert.Equal(t, 5, m.currentPage().TotalItems)
}

func TestThemeToggle(t *testing.T) {
	m := loaded(t, &stubSource{countries: sampleCountries()}, Options{Theme: "dark"})
	assert.Equal(t, "dark", m.theme.Name)
	assert.Contains(t, m.View(), "Light Mode")

	m = press(t, m, "ctrl+t")
	assert.Equal(t, "light", m.theme.Name)
	assert.Contains(t, m.View(), "Dark Mode")
}

func TestCursorStaysOnPage(t *testing.T) {
	countries := make([]domain.Country, 3)
	for i := range countries {
		countries[i] = domain.Country{Name: domain.Name{Common: fmt.Sprintf("Country %d", i)}}
	}
	m := loaded(t, &stubSource{countries: countries}, Options{PageSize: 2})

	m = press(t, m, "up")
	assert.Equal(t, 0, m.cursor)
	m = press(t, m, "down")
	m = press(t, m, "down")
	assert.Equal(t, 1, m.cursor)
}
