package commands

import (
	"coniugo-backend/lib/scrapestore"
	"coniugo-backend/lib/serviceutil"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	historyDb    *string
	historyLimit *int
)

func init() {
	historyDb = historyCmd.Flags().String("db", "results.db", "The scrape history database to read.")
	historyLimit = historyCmd.Flags().Int("limit", 20, "Maximum number of entries to show.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [--db <path/to/results.db>]",
	Short: "Lists the most recent recorded scrapes.",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := scrapestore.Open(*historyDb)
		if err != nil {
			serviceutil.Fatal("failed to open scrape history", err)
		}
		defer db.Close()
		store := scrapestore.NewStore(db)

		entries, err := store.Recent(cmd.Context(), *historyLimit)
		if err != nil {
			serviceutil.Fatal("failed to read scrape history", err)
		}

		w := table.NewWriter()
		w.SetOutputMirror(os.Stdout)
		w.AppendHeader(table.Row{"Fetched", "Verb", "Auxiliary", "URL"})
		for _, entry := range entries {
			w.AppendRow(table.Row{
				entry.FetchedAt.Format(time.DateTime),
				entry.Verb,
				entry.Auxiliary,
				entry.URL,
			})
		}
		w.Render()
	},
}
