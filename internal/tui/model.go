// Package tui is the terminal front-end: a list screen with debounced search,
// continent filter and pagination, and a details screen with border
// navigation.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"country-explorer/internal/catalog"
	"country-explorer/internal/domain"
	"country-explorer/internal/service"
	"country-explorer/internal/view"
)

// Source loads countries for the screens.
type Source interface {
	Countries(ctx context.Context) ([]domain.Country, error)
	Details(ctx context.Context, slug string) (*domain.Country, error)
}

// Options configures the model.
type Options struct {
	PageSize       int
	SearchDebounce time.Duration
	Theme          string
}

type screen int

const (
	screenList screen = iota
	screenDetails
)

type loadState int

const (
	stateLoading loadState = iota
	stateReady
	stateFailed
)

type listLoadedMsg struct {
	seq       int
	countries []domain.Country
	err       error
}

type detailsLoadedMsg struct {
	seq     int
	country *domain.Country
	err     error
}

type searchSettledMsg struct {
	seq int
}

// Model is the bubbletea model of the terminal browser.
type Model struct {
	ctx      context.Context
	source   Source
	pageSize int
	debounce time.Duration
	theme    Theme

	screen screen
	state  loadState
	err    error
	seq    int

	countries []domain.Country
	search    textinput.Model
	searchSeq int
	criteria  catalog.Criteria
	page      int
	cursor    int

	slug         string
	details      *domain.Country
	borderCursor int
	history      []string

	width int
}

// New creates the model. ctx bounds every fetch the model issues.
func New(ctx context.Context, source Source, opts Options) Model {
	if opts.PageSize <= 0 {
		opts.PageSize = catalog.DefaultPageSize
	}
	ti := textinput.New()
	ti.Placeholder = "Search for a country..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 64
	ti.Focus()

	return Model{
		ctx:      ctx,
		source:   source,
		pageSize: opts.PageSize,
		debounce: opts.SearchDebounce,
		theme:    ThemeByName(opts.Theme),
		search:   ti,
		criteria: catalog.Criteria{Continent: catalog.AllContinents},
		page:     1,
		seq:      1,
		state:    stateLoading,
	}
}

// Init starts loading the list screen.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetchList(m.seq))
}

func (m *Model) loadListCmd() tea.Cmd {
	m.seq++
	m.state = stateLoading
	m.err = nil
	return m.fetchList(m.seq)
}

func (m Model) fetchList(seq int) tea.Cmd {
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		countries, err := source.Countries(ctx)
		return listLoadedMsg{seq: seq, countries: countries, err: err}
	}
}

func (m *Model) loadDetailsCmd(slug string) tea.Cmd {
	m.seq++
	m.screen = screenDetails
	m.state = stateLoading
	m.err = nil
	m.slug = slug
	m.details = nil
	m.borderCursor = 0
	seq, ctx, source := m.seq, m.ctx, m.source
	return func() tea.Msg {
		country, err := source.Details(ctx, slug)
		return detailsLoadedMsg{seq: seq, country: country, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case listLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.state, m.err = stateFailed, msg.err
			return m, nil
		}
		m.state = stateReady
		m.countries = msg.countries
		return m, nil

	case detailsLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.details = msg.country
		if errors.Is(msg.err, service.ErrNotFound) {
			m.state, m.details = stateReady, nil
			return m, nil
		}
		if msg.err != nil {
			m.state, m.err = stateFailed, msg.err
			return m, nil
		}
		m.state = stateReady
		return m, nil

	case searchSettledMsg:
		if msg.seq == m.searchSeq && m.criteria.Search != m.search.Value() {
			m.criteria.Search = m.search.Value()
			m.page, m.cursor = 1, 0
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			if m.theme.Name == "dark" {
				m.theme = LightTheme()
			} else {
				m.theme = DarkTheme()
			}
			return m, nil
		case "ctrl+r":
			if m.state == stateFailed {
				if m.screen == screenDetails {
					return m, m.loadDetailsCmd(m.slug)
				}
				return m, m.loadListCmd()
			}
			return m, nil
		}
		if m.screen == screenDetails {
			return m.updateDetails(msg)
		}
		return m.updateList(msg)
	}

	if m.screen == screenList {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.currentPage()
	switch msg.String() {
	case "tab":
		m.criteria.Continent = catalog.NextContinent(m.criteria.Continent)
		m.page, m.cursor = 1, 0
		return m, nil
	case "pgdown":
		if page.HasNext {
			m.page, m.cursor = page.Number+1, 0
		}
		return m, nil
	case "pgup":
		if page.HasPrev {
			m.page, m.cursor = page.Number-1, 0
		}
		return m, nil
	case "down":
		if m.cursor < len(page.Items)-1 {
			m.cursor++
		}
		return m, nil
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "enter":
		if m.state == stateReady && m.cursor < len(page.Items) {
			m.history = nil
			return m, m.loadDetailsCmd(page.Items[m.cursor].Slug())
		}
		return m, nil
	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.criteria.Search = ""
			m.page, m.cursor = 1, 0
		}
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	m.searchSeq++
	seq := m.searchSeq
	if m.debounce <= 0 {
		return m.Update(searchSettledMsg{seq: seq})
	}
	return m, tea.Batch(cmd, tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return searchSettledMsg{seq: seq}
	}))
}

func (m Model) updateDetails(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var borders []view.Link
	if m.details != nil {
		borders = view.NewDetails(*m.details).Borders
	}
	switch msg.String() {
	case "left", "shift+tab":
		if m.borderCursor > 0 {
			m.borderCursor--
		}
	case "right", "tab":
		if m.borderCursor < len(borders)-1 {
			m.borderCursor++
		}
	case "enter":
		if m.state == stateReady && m.borderCursor < len(borders) {
			m.history = append(m.history, m.slug)
			return m, m.loadDetailsCmd(borders[m.borderCursor].Slug)
		}
	case "esc", "backspace":
		if n := len(m.history); n > 0 {
			prev := m.history[n-1]
			m.history = m.history[:n-1]
			return m, m.loadDetailsCmd(prev)
		}
		m.screen = screenList
		m.details = nil
		m.seq++
		if m.countries == nil {
			return m, m.loadListCmd()
		}
		m.state, m.err = stateReady, nil
	}
	return m, nil
}

func (m Model) currentPage() catalog.Page {
	return catalog.Paginate(catalog.Filter(m.countries, m.criteria), m.page, m.pageSize)
}
