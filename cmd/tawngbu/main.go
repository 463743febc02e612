// Package main provides a command line front end for the dictionary.
package main

import (
	"fmt"
	"github.com/gissleh/tawngbu"
	"github.com/gissleh/tawngbu/adapters/lexiconfile"
	"github.com/gissleh/tawngbu/adapters/sqlitestorage"
	"github.com/gissleh/tawngbu/config"
	"github.com/gissleh/tawngbu/service"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const definitionWidth = 60

var (
	lexiconPath string
	statePath   string
	logLevel    string
	reverse     bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "tawngbu",
		Short:        "English-Mizo dictionary",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&lexiconPath, "lexicon", "./dictionary.json", "lexicon file (.json or .yaml)")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", defaultStatePath(), "SQLite file holding favorites and history")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")

	searchCmd := &cobra.Command{
		Use:   "search WORD",
		Short: "Look up a word",
		Args:  cobra.ExactArgs(1),
		RunE:  withService(runSearch),
	}
	searchCmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "search Mizo words instead of English headwords")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every headword, or every Mizo term with --reverse",
		Args:  cobra.NoArgs,
		RunE:  withService(runList),
	}
	listCmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "list Mizo terms with the headwords using them")

	rootCmd.AddCommand(
		searchCmd,
		listCmd,
		&cobra.Command{
			Use:   "wotd",
			Short: "Show the word of the day",
			Args:  cobra.NoArgs,
			RunE:  withService(runWotd),
		},
		&cobra.Command{
			Use:   "favorite WORD",
			Short: "Add or remove a favorite",
			Args:  cobra.ExactArgs(1),
			RunE:  withService(runFavorite),
		},
		&cobra.Command{
			Use:   "favorites",
			Short: "List favorites",
			Args:  cobra.NoArgs,
			RunE:  withService(runFavorites),
		},
		&cobra.Command{
			Use:   "recent",
			Short: "List recent searches",
			Args:  cobra.NoArgs,
			RunE:  withService(runRecent),
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Show dictionary size",
			Args:  cobra.NoArgs,
			RunE:  withService(runStats),
		},
	)

	return rootCmd
}

type runFunc func(cmd *cobra.Command, svc *service.Service, args []string) error

func withService(run runFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := config.NewLogger(config.LogConfig{Level: logLevel, Format: "text"})

		lex, err := lexiconfile.Open(lexiconPath)
		if err != nil {
			return err
		}

		storage, err := sqlitestorage.Open(statePath)
		if err != nil {
			return fmt.Errorf("failed to open state: %w", err)
		}
		defer storage.Close()

		return run(cmd, service.New(lex, storage, logger), args)
	}
}

func runSearch(cmd *cobra.Command, svc *service.Service, args []string) error {
	direction := tawngbu.Forward
	if reverse {
		direction = tawngbu.Reverse
	}

	res, err := svc.Search(cmd.Context(), "", args[0], direction)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(res.Results) == 0 {
		fmt.Fprintf(out, "No matches found for %q\n", res.Query)
		return nil
	}
	if !res.Exact {
		fmt.Fprintln(out, "Did you mean one of these words?")
	}

	var tbl table.Table
	if direction == tawngbu.Reverse {
		tbl = table.New("", "Word", "Mizo", "Definition")
	} else {
		tbl = table.New("", "Word", "Definition")
	}
	tbl.WithWriter(out)

	for _, r := range res.Results {
		marker := ""
		if r.IsExact {
			marker = "*"
		}

		if direction == tawngbu.Reverse {
			tbl.AddRow(marker, r.Word, r.MatchedTargetWord, truncate(r.Definition, definitionWidth))
		} else {
			tbl.AddRow(marker, r.Word, truncate(r.Definition, definitionWidth))
		}
	}
	tbl.Print()

	fmt.Fprintf(out, "%d result(s) found\n", len(res.Results))
	return nil
}

func runWotd(cmd *cobra.Command, svc *service.Service, _ []string) error {
	view, err := svc.WordOfTheDay(cmd.Context())
	if view == nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n  %s\n", view.Word, view.Date, view.Definition)

	if len(view.History) > 1 {
		fmt.Fprintln(out, "\nRecent words of the day")
		printTable(out, []string{"Date", "Word", "Definition"}, len(view.History)-1, func(i int) []any {
			record := view.History[i+1]
			return []any{record.Date, record.Word, truncate(record.Definition, definitionWidth)}
		})
	}

	return err
}

func runFavorite(cmd *cobra.Command, svc *service.Service, args []string) error {
	added, _, err := svc.ToggleFavorite(cmd.Context(), "", args[0])
	if err != nil {
		return err
	}

	if added {
		fmt.Fprintf(cmd.OutOrStdout(), "Added %q to favorites\n", args[0])
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %q from favorites\n", args[0])
	}

	return nil
}

func runFavorites(cmd *cobra.Command, svc *service.Service, _ []string) error {
	favorites, err := svc.Favorites(cmd.Context(), "")
	if err != nil {
		return err
	}
	if len(favorites) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No favorites yet")
		return nil
	}

	printTable(cmd.OutOrStdout(), []string{"Word", "Definition"}, len(favorites), func(i int) []any {
		return []any{favorites[i].Word, truncate(favorites[i].Definition, definitionWidth)}
	})

	return nil
}

func runRecent(cmd *cobra.Command, svc *service.Service, _ []string) error {
	activity, err := svc.Activity(cmd.Context(), "")
	if err != nil {
		return err
	}
	if len(activity.RecentSearches) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recent searches")
		return nil
	}

	for _, word := range activity.RecentSearches {
		fmt.Fprintln(cmd.OutOrStdout(), word)
	}

	return nil
}

func runList(cmd *cobra.Command, svc *service.Service, _ []string) error {
	out := cmd.OutOrStdout()

	if reverse {
		terms := svc.Reverse.Keys()
		printTable(out, []string{"Mizo", "Words"}, len(terms), func(i int) []any {
			entries := svc.Reverse.Entries(terms[i])
			headwords := make([]string, 0, len(entries))
			for _, entry := range entries {
				headwords = append(headwords, entry.Headword)
			}

			return []any{terms[i], strings.Join(headwords, ", ")}
		})
		return nil
	}

	entries := svc.Lexicon.Entries()
	printTable(out, []string{"Word", "Definition"}, len(entries), func(i int) []any {
		return []any{entries[i].Word, truncate(entries[i].Definition, definitionWidth)}
	})

	return nil
}

func runStats(cmd *cobra.Command, svc *service.Service, _ []string) error {
	stats := svc.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "Mizo Dictionary • %d words • %d Mizo terms\n", stats.Words, stats.TargetTerms)

	return nil
}

func printTable(w io.Writer, headers []string, rows int, row func(i int) []any) {
	columns := make([]any, 0, len(headers))
	for _, h := range headers {
		columns = append(columns, h)
	}

	tbl := table.New(columns...).WithWriter(w)
	for i := 0; i < rows; i++ {
		tbl.AddRow(row(i)...)
	}
	tbl.Print()
}

func truncate(s string, length int) string {
	if utf8.RuneCountInString(s) <= length {
		return s
	}

	return string([]rune(s)[:length]) + "..."
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "tawngbu.db"
	}

	return filepath.Join(dir, "tawngbu", "state.db")
}
