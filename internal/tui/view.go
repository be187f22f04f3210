package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"country-explorer/internal/catalog"
	"country-explorer/internal/view"
)

const (
	listHelp    = "↑/↓ select • enter open • tab continent • pgup/pgdown page • esc clear • ctrl+t theme • ctrl+c quit"
	detailsHelp = "←/→ border • enter open • esc back • ctrl+t theme • ctrl+c quit"
)

// View renders the current screen.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Where in the world?"))
	b.WriteString("  ")
	if m.theme.Name == "dark" {
		b.WriteString(m.theme.Muted.Render("☀ Light Mode"))
	} else {
		b.WriteString(m.theme.Muted.Render("☾ Dark Mode"))
	}
	b.WriteString("\n\n")

	if m.screen == screenDetails {
		m.renderDetails(&b)
		b.WriteString("\n" + m.theme.Muted.Render(detailsHelp))
	} else {
		m.renderList(&b)
		b.WriteString("\n" + m.theme.Muted.Render(listHelp))
	}

	frame := m.theme.Frame
	if m.width > 0 {
		frame = frame.MaxWidth(m.width)
	}
	return frame.Render(b.String())
}

func (m Model) renderList(b *strings.Builder) {
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.renderContinents())
	b.WriteString("\n\n")

	switch m.state {
	case stateLoading:
		b.WriteString(m.theme.Muted.Render("Loading countries..."))
		b.WriteString("\n")
		return
	case stateFailed:
		b.WriteString(m.theme.Error.Render("Could not load countries: " + m.err.Error()))
		b.WriteString("\n" + m.theme.Muted.Render("press ctrl+r to retry"))
		b.WriteString("\n")
		return
	}

	page := m.currentPage()
	if len(page.Items) == 0 {
		b.WriteString(m.theme.Muted.Render("No countries match your search."))
		b.WriteString("\n")
	}
	for i, c := range page.Items {
		card := view.NewCard(c)
		name := card.Name
		prefix := "  "
		if i == m.cursor {
			prefix = "› "
			name = m.theme.Selected.Render(name)
		} else {
			name = m.theme.Label.Render(name)
		}
		fmt.Fprintf(b, "%s%s\n", prefix, name)
		fmt.Fprintf(b, "    %s %s  %s %s  %s %s\n",
			m.theme.Muted.Render("Population:"), card.Population,
			m.theme.Muted.Render("Region:"), card.Region,
			m.theme.Muted.Render("Capital:"), card.Capital)
	}
	b.WriteString("\n")
	b.WriteString(m.renderPager(page))
	b.WriteString("\n")
}

func (m Model) renderContinents() string {
	parts := make([]string, 0, len(catalog.Continents))
	for _, c := range catalog.Continents {
		if c == m.criteria.Continent {
			parts = append(parts, m.theme.Active.Render(c))
		} else {
			parts = append(parts, m.theme.Button.Render(c))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderPager(page catalog.Page) string {
	prev, next := m.theme.Disabled.Render("‹ Prev"), m.theme.Disabled.Render("Next ›")
	if page.HasPrev {
		prev = m.theme.Button.Render("‹ Prev")
	}
	if page.HasNext {
		next = m.theme.Button.Render("Next ›")
	}
	counter := fmt.Sprintf(" %d / %d ", page.Number, page.TotalPages)
	return lipgloss.JoinHorizontal(lipgloss.Top, prev, counter, next)
}

func (m Model) renderDetails(b *strings.Builder) {
	switch m.state {
	case stateLoading:
		b.WriteString(m.theme.Muted.Render("Loading country..."))
		b.WriteString("\n")
		return
	case stateFailed:
		b.WriteString(m.theme.Error.Render("Could not load country: " + m.err.Error()))
		b.WriteString("\n" + m.theme.Muted.Render("press ctrl+r to retry, esc to go back"))
		b.WriteString("\n")
		return
	}
	if m.details == nil {
		b.WriteString(m.theme.Muted.Render("Country not found."))
		b.WriteString("\n")
		return
	}

	d := view.NewDetails(*m.details)
	b.WriteString(m.theme.Title.Render(d.Name))
	b.WriteString("\n\n")
	for _, f := range [][2]string{
		{"Native Name", d.NativeName},
		{"Population", d.Population},
		{"Region", d.Region},
		{"Sub Region", d.Subregion},
		{"Capital", d.Capital},
		{"Languages", d.Languages},
		{"Currencies", d.Currencies},
		{"Area", d.Area},
	} {
		fmt.Fprintf(b, "%s %s\n", m.theme.Label.Render(f[0]+":"), f[1])
	}

	b.WriteString("\n" + m.theme.Label.Render("Border Countries:") + " ")
	if len(d.Borders) == 0 {
		b.WriteString(m.theme.Muted.Render("None"))
		b.WriteString("\n")
		return
	}
	buttons := make([]string, 0, len(d.Borders))
	for i, l := range d.Borders {
		if i == m.borderCursor {
			buttons = append(buttons, m.theme.Active.Render(l.Name))
		} else {
			buttons = append(buttons, m.theme.Button.Render(l.Name))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	b.WriteString("\n")
}

// Run starts the terminal browser and blocks until the user quits or ctx
// ends.
func Run(ctx context.Context, source Source, opts Options) error {
	p := tea.NewProgram(New(ctx, source, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
