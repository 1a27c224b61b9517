package commands

import (
	"coniugo-backend/lib/scrapers/wordreference"
	"coniugo-backend/lib/scrapestore"
	"coniugo-backend/lib/serviceutil"
	"coniugo-backend/services/conjugation"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	conjugateFull    *bool
	conjugateMoods   *string
	conjugateTenses  *string
	conjugatePersons *string
	conjugateTable   *bool
	conjugateStrict  *bool
	conjugateBaseUrl *string
	conjugateDb      *string
)

func init() {
	conjugateFull = conjugateCmd.Flags().Bool("full", true, "Output the full conjugation table, ignoring filters.")
	conjugateMoods = conjugateCmd.Flags().String("moods", "", "Comma-separated moods to keep (implies --full=false).")
	conjugateTenses = conjugateCmd.Flags().String("tenses", "", "Comma-separated tenses to keep (implies --full=false).")
	conjugatePersons = conjugateCmd.Flags().String("persons", "", "Comma-separated persons to keep (implies --full=false).")
	conjugateTable = conjugateCmd.Flags().Bool("table", false, "Render a table instead of JSON.")
	conjugateStrict = conjugateCmd.Flags().Bool("strict", false, "Fail when the page deviates from the expected layout.")
	conjugateBaseUrl = conjugateCmd.Flags().String("base-url", "", "Override the WordReference conjugator URL.")
	conjugateDb = conjugateCmd.Flags().String("db", "", "Record the result in a scrape history database.")
	rootCmd.AddCommand(conjugateCmd)
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

var conjugateCmd = &cobra.Command{
	Use:   "conjugate <verb>",
	Short: "Scrapes the conjugation tables for a single italian verb.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, err := wordreference.NewClient(wordreference.ClientOptions{
			BaseUrl: *conjugateBaseUrl,
			Strict:  *conjugateStrict,
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize scraper", err)
		}

		result, _, err := client.Scrape(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}

		if *conjugateDb != "" {
			db, err := scrapestore.Open(*conjugateDb)
			if err != nil {
				serviceutil.Fatal("failed to open scrape history", err)
			}
			defer db.Close()
			store := scrapestore.NewStore(db)
			err = store.Push(cmd.Context(), result, time.Now())
			if err != nil {
				serviceutil.Fatal("failed to record scrape", err)
			}
		}

		moods := splitList(*conjugateMoods)
		tenses := splitList(*conjugateTenses)
		persons := splitList(*conjugatePersons)
		full := *conjugateFull
		if len(moods) > 0 || len(tenses) > 0 || len(persons) > 0 {
			full = false
		}
		result = conjugation.Narrow(result, moods, tenses, persons, full)

		if *conjugateTable {
			renderTable(result)
			return
		}
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			serviceutil.Fatal("failed to encode result", err)
		}
		fmt.Println(string(out))
	},
}

func renderTable(result wordreference.Result) {
	w := table.NewWriter()
	w.SetOutputMirror(os.Stdout)
	w.AppendHeader(table.Row{"Mood", "Tense", "Person", "Form"})

	conjugations := result.Conjugations
	if conjugations.Empty() {
		w.Render()
		return
	}
	for _, mood := range conjugations.Moods() {
		for _, tense := range conjugations.Tenses(mood) {
			for _, person := range conjugations.Persons(mood, tense) {
				form, _ := conjugations.Form(mood, tense, person)
				w.AppendRow(table.Row{mood, tense, person, form})
			}
		}
	}
	w.Render()
}
