package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"country-explorer/internal/tui"
)

func newBrowseCmd(a *app) *cobra.Command {
	var theme string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse countries in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if theme == "" {
				theme = a.cfg.UI.Theme
			}
			// Log lines on stderr would tear the alternate screen.
			svc := newService(a.cfg, zap.NewNop(), nil)
			return tui.Run(cmd.Context(), svc, tui.Options{
				PageSize:       a.cfg.UI.PageSize,
				SearchDebounce: a.cfg.UI.SearchDebounce,
				Theme:          theme,
			})
		},
	}
	cmd.Flags().StringVar(&theme, "theme", "", "light or dark, overrides ui.theme")
	return cmd
}
