package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"country-explorer/internal/catalog"
	"country-explorer/internal/service"
	"country-explorer/internal/view"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newListCmd(a *app) *cobra.Command {
	var (
		q      service.Query
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of countries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if q.Continent != "" && !catalog.IsContinent(q.Continent) {
				return fmt.Errorf("unknown continent %q, want one of %v", q.Continent, catalog.Continents)
			}
			q.PageSize = a.cfg.UI.PageSize

			svc := newService(a.cfg, a.logger, nil)
			res, err := svc.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res.Page)
			}
			return writeList(cmd.OutOrStdout(), view.NewList(res))
		},
	}
	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "case-insensitive name filter")
	cmd.Flags().StringVar(&q.Continent, "continent", catalog.AllContinents, "continent filter")
	cmd.Flags().IntVarP(&q.Page, "page", "p", 1, "page number, clamped to the available pages")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Print the details of one country",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newService(a.cfg, a.logger, nil)
			country, err := svc.Details(cmd.Context(), args[0])
			if errors.Is(err, service.ErrNotFound) {
				return fmt.Errorf("country %q not found", args[0])
			}
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), country)
			}
			return writeDetails(cmd.OutOrStdout(), view.NewDetails(*country))
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeList(w io.Writer, l view.List) error {
	if len(l.Cards) == 0 {
		_, err := fmt.Fprintln(w, "No countries match your search.")
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Name", "Population", "Region", "Capital", "Slug")
	for _, c := range l.Cards {
		t.Row(c.Name, c.Population, c.Region, c.Capital, c.Slug)
	}
	_, err := fmt.Fprintf(w, "%s\nPage %d / %d (%d countries)\n",
		t.Render(), l.Page, l.TotalPages, l.TotalItems)
	return err
}

func writeDetails(w io.Writer, d view.Details) error {
	borders := "None"
	if len(d.Borders) > 0 {
		names := make([]string, 0, len(d.Borders))
		for _, b := range d.Borders {
			names = append(names, b.Name+" ("+b.Slug+")")
		}
		borders = strings.Join(names, ", ")
	}
	_, err := fmt.Fprintf(w, "%s\n\nNative Name: %s\nPopulation: %s\nRegion: %s\nSub Region: %s\nCapital: %s\nLanguages: %s\nCurrencies: %s\nArea: %s\nBorder Countries: %s\n",
		d.Name, d.NativeName, d.Population, d.Region, d.Subregion, d.Capital,
		d.Languages, d.Currencies, d.Area, borders)
	return err
}
