package main

import (
	"fmt"
	"io"
	"strings"

	"subslikescript-crawler/internal/db"
	"subslikescript-crawler/pkg/models"

	"github.com/spf13/cobra"
)

var (
	queryDB      string
	queryPattern string
	queryLimit   int
)

func init() {
	queryCmd.Flags().StringVar(&queryDB, "db", "./movies.db", "Path to the SQLite database file")
	queryCmd.Flags().StringVar(&queryPattern, "title", "", "Text pattern to match in titles (using LIKE operator)")
	queryCmd.Flags().IntVar(&queryLimit, "limit", 10, "Number of results to show")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "List movies from the SQLite index.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbs, err := db.NewDBService(queryDB)
		if err != nil {
			return err
		}
		defer dbs.Close()

		return runQuery(cmd.OutOrStdout(), dbs, queryPattern, queryLimit)
	},
}

func runQuery(out io.Writer, dbs *db.DBService, pattern string, limit int) error {
	var (
		movies []models.Movie
		err    error
	)
	if pattern != "" {
		movies, err = dbs.GetMoviesByPattern(pattern, limit)
		fmt.Fprintf(out, "Movies matching pattern '%s' (limit %d):\n", pattern, limit)
	} else {
		movies, err = dbs.GetLatestMovies(limit)
		fmt.Fprintf(out, "Latest %d movies:\n", limit)
	}
	if err != nil {
		return fmt.Errorf("query movies: %w", err)
	}

	fmt.Fprintf(out, "%-8s %-50s %-6s %-10s %s\n", "ID", "Title", "Year", "Script", "Source")
	fmt.Fprintln(out, strings.Repeat("-", 110))
	for _, m := range movies {
		script := "-"
		if m.HasScript {
			script = fmt.Sprintf("%d chars", len([]rune(m.Script)))
		}
		fmt.Fprintf(out, "%-8d %-50s %-6d %-10s %s:%d\n",
			m.ID, truncateString(m.Title, 49), m.Year, script, m.SourceFile, m.Line)
	}

	if pattern != "" {
		matchCount, err := dbs.GetMatchCount(pattern)
		if err != nil {
			return fmt.Errorf("count matches: %w", err)
		}
		fmt.Fprintf(out, "\nFound %d matching movies\n", matchCount)
	}

	total, withScript, err := dbs.GetMovieCount()
	if err != nil {
		return fmt.Errorf("get statistics: %w", err)
	}
	fmt.Fprintf(out, "Total movies in database: %d\n", total)
	fmt.Fprintf(out, "Movies with transcripts: %d\n", withScript)
	return nil
}

// truncateString shortens s to maxLen runes, marking the cut with "..."
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
