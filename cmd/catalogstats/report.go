package main

import (
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"catalogstats/internal/adapters/terminal"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var (
		lang     string
		jsonFlag bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the catalog report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ctx.openCatalog(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer cat.Close()

			if lang == "" {
				lang = cat.cfg.Locale
			}
			report, err := cat.reports.BuildReport(cmd.Context(), lang)
			if err != nil {
				return err
			}

			if jsonFlag {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return terminal.NewRenderer(cat.translator, cat.seasons).Render(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "Report language (defaults to LOCALE)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print JSON instead of tables")
	return cmd
}
