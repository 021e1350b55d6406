package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "pathctl",
		Short: "Administer the pathway finder question bank and scholarship catalog",
		Long: `pathctl validates question banks, scores saved answer files without a
running server, and converts scholarship catalogs between the JSON feed
format and XLSX spreadsheets for editing.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	root.AddCommand(newBankCmd(), newScoreCmd(), newCatalogCmd())
	return root
}
