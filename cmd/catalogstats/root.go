package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var databaseFlag string

	ctx := newCommandContext(&databaseFlag)

	rootCmd := &cobra.Command{
		Use:           "catalogstats",
		Short:         "Streaming catalog statistics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&databaseFlag, "database-url", "", "Catalog database URL (overrides DATABASE_URL)")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newImportCommand(ctx))
	rootCmd.AddCommand(newReportCommand(ctx))

	return rootCmd
}
